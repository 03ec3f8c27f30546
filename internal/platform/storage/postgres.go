package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MichalMitros/stock-reconciler/internal/platform"
	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
	"github.com/MichalMitros/stock-reconciler/internal/platform/storage/gen/postgres/public/table"
	"github.com/samber/lo"

	pgmodels "github.com/MichalMitros/stock-reconciler/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

const (
	defaultLookupChunk     = 50
	defaultStaleRunTimeout = time.Hour
)

// Postgres is canonical store for products, sync runs, diagnostics, overrides and system log.
type Postgres struct {
	db              *sql.DB
	lookupChunk     int
	staleRunTimeout time.Duration
}

// Option is Postgres option.
type Option func(p *Postgres)

// WithLookupChunk sets max number of codes in single existence lookup query.
func WithLookupChunk(size int) Option {
	return func(p *Postgres) {
		if size > 0 {
			p.lookupChunk = size
		}
	}
}

// WithStaleRunTimeout sets age after which unfinished run no longer blocks new run of the same kind.
func WithStaleRunTimeout(timeout time.Duration) Option {
	return func(p *Postgres) {
		p.staleRunTimeout = timeout
	}
}

// NewPostgres returns new Postgres.
func NewPostgres(db *sql.DB, ops ...Option) Postgres {
	p := Postgres{
		db:              db,
		lookupChunk:     defaultLookupChunk,
		staleRunTimeout: defaultStaleRunTimeout,
	}

	for _, op := range ops {
		op(&p)
	}

	return p
}

// StartRun creates new unfinished sync run of provided kind and returns it.
// It returns platform.ErrAlreadyRunning if previous run of this kind is not finished yet.
func (p Postgres) StartRun(ctx context.Context, kind models.SyncKind) (*models.SyncRun, error) {
	run := &models.SyncRun{
		Kind: kind,
	}

	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		lastRun, err := getLastRun(ctx, tx, kind)
		if err != nil && !errors.Is(err, qrm.ErrNoRows) {
			return fmt.Errorf("can't get last run from database: %w", err)
		}

		if lastRun != nil && lastRun.FinishedAt == nil && lastRun.Success == nil &&
			time.Since(lastRun.CreatedAt) < p.staleRunTimeout {
			return platform.ErrAlreadyRunning
		}

		newRun := pgmodels.SyncRun{
			Kind: string(kind),
		}
		err = table.SyncRun.INSERT(table.SyncRun.Kind).
			MODEL(newRun).
			RETURNING(table.SyncRun.ID, table.SyncRun.CreatedAt).
			QueryContext(ctx, tx, &newRun)
		if err != nil {
			return fmt.Errorf("can't insert run into database: %w", err)
		}

		run.ID = int(newRun.ID)
		run.CreatedAt = newRun.CreatedAt

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("can't start %s run: %w", kind, err)
	}

	return run, nil
}

// FinishRun sets run as finished and updates run's statistics.
func (p Postgres) FinishRun(ctx context.Context, run *models.SyncRun) error {
	columnList := table.SyncRun.AllColumns.Except(table.SyncRun.ID, table.SyncRun.CreatedAt, table.SyncRun.Kind)

	dbRun, err := toDBRun(run)
	if err != nil {
		return fmt.Errorf("can't convert run: %w", err)
	}

	result, err := table.SyncRun.UPDATE(columnList).
		MODEL(dbRun).
		WHERE(table.SyncRun.ID.EQ(pg.Int32(int32(run.ID)))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't update run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't update run: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("can't update run %d: run not found", run.ID)
	}

	return nil
}

// GetProductsByCodes returns stored products keyed by code.
// Codes are looked up in chunks so single query never carries too many keys.
func (p Postgres) GetProductsByCodes(ctx context.Context, codes []string) (map[string]models.ProductAggregate, error) {
	result := make(map[string]models.ProductAggregate, len(codes))

	for _, chunk := range lo.Chunk(lo.Uniq(codes), p.lookupChunk) {
		ids := make([]pg.Expression, 0, len(chunk))
		for ix := range chunk {
			ids = append(ids, pg.String(chunk[ix]))
		}

		products := make([]pgmodels.Product, 0, len(chunk))
		err := table.Product.SELECT(table.Product.AllColumns).
			WHERE(table.Product.Code.IN(ids...)).
			QueryContext(ctx, p.db, &products)
		if err != nil {
			return nil, fmt.Errorf("can't get products by codes: %w", err)
		}

		for ix := range products {
			product, err := toProduct(&products[ix])
			if err != nil {
				return nil, fmt.Errorf("can't convert product %q: %w", products[ix].Code, err)
			}
			result[product.Code] = product
		}
	}

	return result, nil
}

// UpsertProducts inserts products or replaces stored products with the same code.
// Products are expected to be already merged with stored state. Returns number of upserted products.
func (p Postgres) UpsertProducts(ctx context.Context, products []models.ProductAggregate) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	dbProducts := make([]pgmodels.Product, 0, len(products))
	for ix := range products {
		dbProduct, err := ToDBProduct(&products[ix], now)
		if err != nil {
			return 0, fmt.Errorf("can't convert product %q: %w", products[ix].Code, err)
		}
		dbProducts = append(dbProducts, dbProduct)
	}

	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		return upsertProducts(ctx, tx, dbProducts)
	})
	if err != nil {
		return 0, fmt.Errorf("can't upsert products: %w", err)
	}

	return len(dbProducts), nil
}

// ListProducts returns page of products ordered by last update, most recent first,
// together with number of all stored products.
func (p Postgres) ListProducts(ctx context.Context, offset, limit int) (models.ProductPage, error) {
	products := make([]pgmodels.Product, 0, limit)
	err := table.Product.SELECT(table.Product.AllColumns).
		ORDER_BY(table.Product.UpdatedAt.DESC(), table.Product.ID.DESC()).
		LIMIT(int64(limit)).
		OFFSET(int64(offset)).
		QueryContext(ctx, p.db, &products)
	if err != nil {
		return models.ProductPage{}, fmt.Errorf("can't list products: %w", err)
	}

	var count struct {
		Count int64 `alias:"count"`
	}
	err = table.Product.SELECT(pg.COUNT(pg.STAR).AS("count")).
		QueryContext(ctx, p.db, &count)
	if err != nil {
		return models.ProductPage{}, fmt.Errorf("can't count products: %w", err)
	}

	page := models.ProductPage{
		Products: make([]models.ProductAggregate, 0, len(products)),
		Total:    int(count.Count),
	}
	for ix := range products {
		product, err := toProduct(&products[ix])
		if err != nil {
			return models.ProductPage{}, fmt.Errorf("can't convert product %q: %w", products[ix].Code, err)
		}
		page.Products = append(page.Products, product)
	}

	return page, nil
}

// RecordMismatch stores mismatch diagnostic.
func (p Postgres) RecordMismatch(ctx context.Context, diagnostic models.MismatchDiagnostic) error {
	_, err := table.MismatchDiagnostic.INSERT(
		table.MismatchDiagnostic.AllColumns.Except(table.MismatchDiagnostic.ID, table.MismatchDiagnostic.CreatedAt),
	).
		MODEL(toDBDiagnostic(diagnostic)).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't insert mismatch diagnostic: %w", err)
	}

	return nil
}

// LogSystemEvent stores system log entry.
func (p Postgres) LogSystemEvent(ctx context.Context, event models.SystemEvent) error {
	entry, err := toDBSystemLog(event)
	if err != nil {
		return fmt.Errorf("can't convert system event: %w", err)
	}

	_, err = table.SystemLog.INSERT(
		table.SystemLog.AllColumns.Except(table.SystemLog.ID, table.SystemLog.CreatedAt),
	).
		MODEL(entry).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't insert system log entry: %w", err)
	}

	return nil
}

// GetOverride returns matching override for code or nil if there is none.
func (p Postgres) GetOverride(ctx context.Context, code string) (*models.MatchOverride, error) {
	var override pgmodels.MatchingOverride
	err := table.MatchingOverride.SELECT(table.MatchingOverride.AllColumns).
		WHERE(table.MatchingOverride.Code.EQ(pg.String(code))).
		QueryContext(ctx, p.db, &override)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("can't get matching override: %w", err)
	}

	return &models.MatchOverride{
		Code:             override.Code,
		StorefrontHandle: override.StorefrontHandle,
		CreatedAt:        override.CreatedAt,
	}, nil
}

// SaveOverride stores code to storefront handle override, replacing previous one.
func (p Postgres) SaveOverride(ctx context.Context, code, handle string) error {
	override := pgmodels.MatchingOverride{
		Code:             code,
		StorefrontHandle: handle,
		CreatedAt:        time.Now().UTC(),
	}

	_, err := table.MatchingOverride.INSERT(table.MatchingOverride.AllColumns).
		MODEL(override).
		ON_CONFLICT(table.MatchingOverride.Code).
		DO_UPDATE(
			pg.SET(
				table.MatchingOverride.StorefrontHandle.SET(table.MatchingOverride.EXCLUDED.StorefrontHandle),
				table.MatchingOverride.CreatedAt.SET(table.MatchingOverride.EXCLUDED.CreatedAt),
			),
		).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't save matching override: %w", err)
	}

	return nil
}

// DeleteOverride deletes override of code. Deleting missing override is not an error.
func (p Postgres) DeleteOverride(ctx context.Context, code string) error {
	_, err := table.MatchingOverride.DELETE().
		WHERE(table.MatchingOverride.Code.EQ(pg.String(code))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't delete matching override: %w", err)
	}

	return nil
}

func upsertProducts(ctx context.Context, db qrm.DB, products []pgmodels.Product) error {
	columnList := table.Product.AllColumns.Except(table.Product.ID, table.Product.CreatedAt)

	excludedExpressions := make([]pg.Expression, 0, len(columnList)) // converting to expression
	for _, col := range table.Product.EXCLUDED.AllColumns.Except(table.Product.ID, table.Product.CreatedAt) {
		excludedExpressions = append(excludedExpressions, col)
	}

	_, err := table.Product.INSERT(columnList).
		MODELS(products).
		ON_CONFLICT(table.Product.Code).
		DO_UPDATE(
			pg.SET(
				columnList.SET(pg.ROW(excludedExpressions...)),
			),
		).
		ExecContext(ctx, db)
	if err != nil {
		return fmt.Errorf("can't upsert products into database: %w", err)
	}

	return nil
}

func getLastRun(ctx context.Context, db qrm.DB, kind models.SyncKind) (*pgmodels.SyncRun, error) {
	var run pgmodels.SyncRun
	err := table.SyncRun.SELECT(
		table.SyncRun.ID,
		table.SyncRun.CreatedAt,
		table.SyncRun.FinishedAt,
		table.SyncRun.Success,
	).
		WHERE(table.SyncRun.Kind.EQ(pg.String(string(kind)))).
		ORDER_BY(table.SyncRun.CreatedAt.DESC()).
		LIMIT(1).
		QueryContext(ctx, db, &run)
	if err != nil {
		return nil, err
	}

	return &run, nil
}

func runInTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var (
		tx  *sql.Tx
		err error
	)

	if tx, err = db.BeginTx(ctx, nil); err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("can't rollback transaction: %w (rollback reason: %w)", rbErr, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit transaction: %w", err)
	}

	return nil
}
