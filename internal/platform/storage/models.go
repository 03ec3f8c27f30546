package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
	"github.com/samber/lo"

	pgmodels "github.com/MichalMitros/stock-reconciler/internal/platform/storage/gen/postgres/public/model"
)

//go:generate make -C ../../../ generate-db

func toDBRun(run *models.SyncRun) (*pgmodels.SyncRun, error) {
	dbRun := &pgmodels.SyncRun{
		ID:               int32(run.ID),
		Kind:             string(run.Kind),
		CreatedAt:        run.CreatedAt,
		FinishedAt:       run.FinishedAt,
		Success:          run.IsSuccess,
		StatusMessage:    run.StatusMessage,
		FetchedRecords:   run.FetchedRecords,
		UpsertedProducts: run.UpsertedProducts,
	}

	if len(run.ChangedCodes) > 0 {
		changedCodes, err := json.Marshal(run.ChangedCodes)
		if err != nil {
			return nil, fmt.Errorf("can't marshal changed codes: %w", err)
		}
		dbRun.ChangedCodes = lo.ToPtr(string(changedCodes))
	}

	return dbRun, nil
}

// ToRun converts postgres sync run model into models.SyncRun.
func ToRun(dbRun *pgmodels.SyncRun) (*models.SyncRun, error) {
	run := &models.SyncRun{
		ID:               int(dbRun.ID),
		Kind:             models.SyncKind(dbRun.Kind),
		CreatedAt:        dbRun.CreatedAt,
		FinishedAt:       dbRun.FinishedAt,
		IsSuccess:        dbRun.Success,
		StatusMessage:    dbRun.StatusMessage,
		FetchedRecords:   dbRun.FetchedRecords,
		UpsertedProducts: dbRun.UpsertedProducts,
	}

	if dbRun.ChangedCodes != nil {
		if err := json.Unmarshal([]byte(*dbRun.ChangedCodes), &run.ChangedCodes); err != nil {
			return nil, fmt.Errorf("can't unmarshal changed codes: %w", err)
		}
	}

	return run, nil
}

// ToDBProduct converts models.ProductAggregate into postgres product model.
// Zero UpdatedAt is replaced with provided time.
func ToDBProduct(product *models.ProductAggregate, now time.Time) (pgmodels.Product, error) {
	data, err := json.Marshal(product.Data)
	if err != nil {
		return pgmodels.Product{}, fmt.Errorf("can't marshal product data: %w", err)
	}

	updatedAt := product.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	return pgmodels.Product{
		Code:        product.Code,
		Name:        product.Name,
		Barcode:     product.Barcode,
		Brand:       product.Brand,
		Price:       product.Price,
		StockStatus: string(product.StockStatus),
		Category:    product.Category,
		Data:        string(data),
		CreatedAt:   now,
		UpdatedAt:   updatedAt,
	}, nil
}

func toProduct(dbProduct *pgmodels.Product) (models.ProductAggregate, error) {
	product := models.ProductAggregate{
		Code:        dbProduct.Code,
		Name:        dbProduct.Name,
		Barcode:     dbProduct.Barcode,
		Brand:       dbProduct.Brand,
		Price:       dbProduct.Price,
		StockStatus: models.StockStatus(dbProduct.StockStatus),
		Category:    dbProduct.Category,
		UpdatedAt:   dbProduct.UpdatedAt,
	}

	if err := json.Unmarshal([]byte(dbProduct.Data), &product.Data); err != nil {
		return models.ProductAggregate{}, fmt.Errorf("can't unmarshal product data: %w", err)
	}

	return product, nil
}

func toDBDiagnostic(diagnostic models.MismatchDiagnostic) pgmodels.MismatchDiagnostic {
	return pgmodels.MismatchDiagnostic{
		Code:             diagnostic.Code,
		StorefrontHandle: diagnostic.StorefrontHandle,
		Query:            diagnostic.Query,
		Reason:           diagnostic.Reason,
	}
}

func toDBSystemLog(event models.SystemEvent) (pgmodels.SystemLog, error) {
	entry := pgmodels.SystemLog{
		Severity: event.Severity,
		Message:  event.Message,
	}

	if len(event.Context) > 0 {
		eventContext, err := json.Marshal(event.Context)
		if err != nil {
			return pgmodels.SystemLog{}, fmt.Errorf("can't marshal event context: %w", err)
		}
		entry.Context = lo.ToPtr(string(eventContext))
	}

	return entry, nil
}
