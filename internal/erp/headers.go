package erp

import (
	"math/rand"
	"net/http"
)

// userAgents is pool of browser user agents, one is picked for each request.
var userAgents = []string{
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/119.0",
	"Mozilla/5.0 (iPad; CPU OS 16_7 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) CriOS/120.0.6099.119 Mobile/15E148 Safari/604.1",
}

// randomUserAgent returns random user agent from the pool.
func randomUserAgent() string {
	return userAgents[rand.Intn(len(userAgents))]
}

// setBrowserHeaders sets headers making request look like one sent by panel running in a browser.
func setBrowserHeaders(header http.Header, origin string) {
	header.Set("User-Agent", randomUserAgent())
	header.Set("Accept", "application/json, text/plain, */*")
	header.Set("Accept-Language", "tr-TR,tr;q=0.9,en-US;q=0.8,en;q=0.7")
	header.Set("Connection", "keep-alive")
	header.Set("Sec-Fetch-Dest", "empty")
	header.Set("Sec-Fetch-Mode", "cors")
	header.Set("Sec-Fetch-Site", "same-origin")
	if origin != "" {
		header.Set("Origin", origin)
		header.Set("Referer", origin+"/")
	}
}
