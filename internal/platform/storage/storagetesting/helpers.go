package storagetesting

import (
	"database/sql"
	"os"
	"testing"

	pgmodels "github.com/MichalMitros/stock-reconciler/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/stock-reconciler/internal/platform/storage/gen/postgres/public/table"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"

	_ "github.com/lib/pq"
)

// Open opens connection to DB. Test is skipped when DATABASE_URL is not set.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("please provide database URL via DATABASE_URL environment variable")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("can't open connection to %q: %s", dbURL, err)
	}

	return db
}

// InsertRuns is a helper test function to insert sync runs. IDs are assigned by database.
func InsertRuns(t *testing.T, exc qrm.Executable, runs ...pgmodels.SyncRun) {
	t.Helper()

	if len(runs) == 0 {
		return
	}

	_, err := table.SyncRun.INSERT(table.SyncRun.AllColumns.Except(table.SyncRun.ID)).MODELS(runs).Exec(exc)
	if err != nil {
		t.Fatal("can't insert runs", err)
	}
}

// InsertProducts is a helper test function to insert products.
func InsertProducts(t *testing.T, exc qrm.Executable, products ...pgmodels.Product) {
	t.Helper()

	if len(products) == 0 {
		return
	}

	_, err := table.Product.INSERT(table.Product.AllColumns.Except(table.Product.ID)).MODELS(products).Exec(exc)
	if err != nil {
		t.Fatal("can't insert products", err)
	}
}

// InsertOverrides is a helper test function to insert matching overrides.
func InsertOverrides(t *testing.T, exc qrm.Executable, overrides ...pgmodels.MatchingOverride) {
	t.Helper()

	if len(overrides) == 0 {
		return
	}

	_, err := table.MatchingOverride.INSERT(table.MatchingOverride.AllColumns).MODELS(overrides).Exec(exc)
	if err != nil {
		t.Fatal("can't insert overrides", err)
	}
}

// GetRuns is a helper test function to get all runs ordered by ID.
func GetRuns(t *testing.T, queryable qrm.Queryable) []pgmodels.SyncRun {
	t.Helper()

	runs := []pgmodels.SyncRun{}
	err := table.SyncRun.SELECT(table.SyncRun.AllColumns).
		WHERE(table.SyncRun.ID.IS_NOT_NULL()).
		ORDER_BY(table.SyncRun.ID.ASC()).
		Query(queryable, &runs)
	if err != nil {
		t.Fatal("can't get runs", err)
	}

	return runs
}

// GetProducts is a helper test function to get all products ordered by code.
func GetProducts(t *testing.T, queryable qrm.Queryable) []pgmodels.Product {
	t.Helper()

	products := []pgmodels.Product{}
	err := table.Product.SELECT(table.Product.AllColumns).
		WHERE(table.Product.ID.IS_NOT_NULL()).
		ORDER_BY(table.Product.Code.ASC()).
		Query(queryable, &products)
	if err != nil {
		t.Fatal("can't get products", err)
	}

	return products
}

// GetDiagnostics is a helper test function to get mismatch diagnostics of code.
func GetDiagnostics(t *testing.T, queryable qrm.Queryable, code string) []pgmodels.MismatchDiagnostic {
	t.Helper()

	diagnostics := []pgmodels.MismatchDiagnostic{}
	err := table.MismatchDiagnostic.SELECT(table.MismatchDiagnostic.AllColumns).
		WHERE(table.MismatchDiagnostic.Code.EQ(pg.String(code))).
		ORDER_BY(table.MismatchDiagnostic.ID.ASC()).
		Query(queryable, &diagnostics)
	if err != nil {
		t.Fatal("can't get diagnostics", err)
	}

	return diagnostics
}

// GetSystemLogs is a helper test function to get all system log entries.
func GetSystemLogs(t *testing.T, queryable qrm.Queryable) []pgmodels.SystemLog {
	t.Helper()

	logs := []pgmodels.SystemLog{}
	err := table.SystemLog.SELECT(table.SystemLog.AllColumns).
		WHERE(table.SystemLog.ID.IS_NOT_NULL()).
		ORDER_BY(table.SystemLog.ID.ASC()).
		Query(queryable, &logs)
	if err != nil {
		t.Fatal("can't get system logs", err)
	}

	return logs
}

// GetOverrides is a helper test function to get all matching overrides.
func GetOverrides(t *testing.T, queryable qrm.Queryable) []pgmodels.MatchingOverride {
	t.Helper()

	overrides := []pgmodels.MatchingOverride{}
	err := table.MatchingOverride.SELECT(table.MatchingOverride.AllColumns).
		WHERE(table.MatchingOverride.Code.IS_NOT_NULL()).
		ORDER_BY(table.MatchingOverride.Code.ASC()).
		Query(queryable, &overrides)
	if err != nil {
		t.Fatal("can't get overrides", err)
	}

	return overrides
}

// CleanupData is a helper test function to delete all stored data.
func CleanupData(t *testing.T, exc qrm.Executable) {
	t.Helper()

	_, err := table.Product.DELETE().WHERE(table.Product.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete products data", err)
	}

	_, err = table.SyncRun.DELETE().WHERE(table.SyncRun.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete runs data", err)
	}

	_, err = table.MismatchDiagnostic.DELETE().WHERE(table.MismatchDiagnostic.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete diagnostics data", err)
	}

	_, err = table.SystemLog.DELETE().WHERE(table.SystemLog.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete system log data", err)
	}

	_, err = table.MatchingOverride.DELETE().WHERE(table.MatchingOverride.Code.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete overrides data", err)
	}
}
