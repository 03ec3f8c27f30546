package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
)

const (
	auditSheet    = "Audit"
	variantsSheet = "Variants"
	fileTimestamp = "20060102-150405"
)

var auditHeaders = []string{
	"code", "name", "hamur_stock", "storefront_stock", "difference",
	"status", "match_tier", "storefront_handle", "lookup_failed", "variants",
}

var variantHeaders = []string{
	"code", "size", "color", "erp_barcode", "storefront_barcode", "storefront_sku",
	"erp_stock", "storefront_stock", "status", "match_kind",
}

// WriteCSV writes one line per audit row to w.
func WriteCSV(w io.Writer, rows []models.AuditRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(auditHeaders); err != nil {
		return fmt.Errorf("can't write csv header: %w", err)
	}

	for _, row := range rows {
		if err := writer.Write(auditRecord(row)); err != nil {
			return fmt.Errorf("can't write csv row %s: %w", row.Code, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("can't flush csv: %w", err)
	}

	return nil
}

// WriteXLSX writes audit rows and their variant diffs into separate sheets of workbook at path.
func WriteXLSX(path string, rows []models.AuditRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), auditSheet); err != nil {
		return fmt.Errorf("can't rename sheet: %w", err)
	}

	if _, err := f.NewSheet(variantsSheet); err != nil {
		return fmt.Errorf("can't create variants sheet: %w", err)
	}

	setRow(f, auditSheet, 1, lo.ToAnySlice(auditHeaders))
	for ix, row := range rows {
		setRow(f, auditSheet, ix+2, []any{
			row.Code,
			row.Name,
			row.HamurStock,
			row.StorefrontStock,
			row.StorefrontStock - row.HamurStock,
			string(row.Status),
			string(row.MatchTier),
			row.ProductHandle,
			row.LookupFailed,
			variantsSummary(row.Variants),
		})
	}

	setRow(f, variantsSheet, 1, lo.ToAnySlice(variantHeaders))
	line := 2
	for _, row := range rows {
		for _, variant := range row.Variants {
			setRow(f, variantsSheet, line, []any{
				row.Code,
				variant.Size,
				variant.Color,
				variant.ErpBarcode,
				variant.StorefrontBarcode,
				variant.StorefrontSKU,
				variant.ErpStock,
				variant.StorefrontStock,
				string(variant.Status),
				string(variant.MatchKind),
			})
			line++
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("can't create report directory: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("can't save workbook: %w", err)
	}

	return nil
}

// Save writes audit rows to CSV and XLSX files in dir named after finish time.
// Returns paths of written files.
func Save(dir string, finishedAt time.Time, rows []models.AuditRow) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("can't create report directory: %w", err)
	}

	base := filepath.Join(dir, "audit-"+finishedAt.UTC().Format(fileTimestamp))

	csvFile, err := os.Create(base + ".csv")
	if err != nil {
		return nil, fmt.Errorf("can't create csv report: %w", err)
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, rows); err != nil {
		return nil, err
	}

	if err := WriteXLSX(base+".xlsx", rows); err != nil {
		return nil, err
	}

	return []string{base + ".csv", base + ".xlsx"}, nil
}

func auditRecord(row models.AuditRow) []string {
	return []string{
		row.Code,
		row.Name,
		strconv.Itoa(row.HamurStock),
		strconv.Itoa(row.StorefrontStock),
		strconv.Itoa(row.StorefrontStock - row.HamurStock),
		string(row.Status),
		string(row.MatchTier),
		row.ProductHandle,
		strconv.FormatBool(row.LookupFailed),
		variantsSummary(row.Variants),
	}
}

// variantsSummary returns not matching variants as "size: erp/storefront" list.
func variantsSummary(variants []models.VariantDiff) string {
	parts := make([]string, 0, len(variants))
	for _, variant := range variants {
		if variant.Status == models.VariantStatusMatch {
			continue
		}

		part := fmt.Sprintf("%s: %d/%d", variant.Size, variant.ErpStock, variant.StorefrontStock)
		if variant.MatchKind == models.MatchKindHeuristic {
			part += " (heuristic)"
		}
		parts = append(parts, part)
	}

	return strings.Join(parts, "; ")
}

func setRow(f *excelize.File, sheet string, line int, values []any) {
	for ix, value := range values {
		cell, _ := excelize.CoordinatesToCellName(ix+1, line)
		_ = f.SetCellValue(sheet, cell, value)
	}
}
