package models_test

import (
	"testing"

	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
	"github.com/stretchr/testify/assert"
)

func TestUnitParseQuantity(t *testing.T) {
	tests := map[string]struct {
		raw  string
		want int
	}{
		"empty":            {raw: "", want: 0},
		"whitespace":       {raw: "   ", want: 0},
		"integer":          {raw: "7", want: 7},
		"padded integer":   {raw: " 12 ", want: 12},
		"fraction down":    {raw: "2.4", want: 2},
		"fraction half up": {raw: "2.5", want: 3},
		"comma fraction":   {raw: "3,6", want: 4},
		"negative":         {raw: "-4", want: 0},
		"small negative":   {raw: "-0.4", want: 0},
		"not a number":     {raw: "abc", want: 0},
		"nan":              {raw: "NaN", want: 0},
		"infinity":         {raw: "Inf", want: 0},
		"huge":             {raw: "1e20", want: 2147483647},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, models.ParseQuantity(tt.raw), "should parse quantity correctly")
		})
	}
}
