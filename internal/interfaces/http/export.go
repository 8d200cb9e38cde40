package http

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/xuri/excelize/v2"

	"pftracker/internal/domain/transaction"
	"pftracker/internal/shared/apperror"
	"pftracker/internal/shared/civil"
)

type exportFormat string

const (
	formatCSV  exportFormat = "csv"
	formatXLSX exportFormat = "xlsx"
)

var exportHeader = []string{"date", "type", "category", "amount", "note"}

func parseExportFormat(s string) (exportFormat, error) {
	switch exportFormat(s) {
	case "", formatCSV:
		return formatCSV, nil
	case formatXLSX:
		return formatXLSX, nil
	}
	return "", apperror.Validation("format must be one of: csv, xlsx")
}

func exportRow(t *transaction.Transaction) []string {
	note := ""
	if t.Note != nil {
		note = *t.Note
	}
	return []string{t.Date.String(), t.Type.String(), t.Category.Name, t.Amount.StringFixed(2), note}
}

// writeExport renders the whole file before touching w so a failure can
// still be reported as a JSON error.
func writeExport(w http.ResponseWriter, format exportFormat, today civil.Date, items []*transaction.Transaction) error {
	var (
		body        []byte
		contentType string
		err         error
	)
	switch format {
	case formatXLSX:
		body, err = renderXLSX(items)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		body, err = renderCSV(items)
		contentType = "text/csv; charset=utf-8"
	}
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"transactions_%s.%s\"", today, format))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(body)
	return err
}

func renderCSV(items []*transaction.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, t := range items {
		if err := cw.Write(exportRow(t)); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

const xlsxSheet = "Transactions"

func renderXLSX(items []*transaction.Transaction) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(xlsxSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheet writer: %w", err)
	}

	header := make([]any, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, fmt.Errorf("failed to write xlsx header: %w", err)
	}

	for i, t := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := exportRow(t)
		// Amount goes in as a number so spreadsheets can sum it.
		amount, _ := t.Amount.Float64()
		values := []any{row[0], row[1], row[2], amount, row[4]}
		if err := sw.SetRow(cell, values); err != nil {
			return nil, fmt.Errorf("failed to write xlsx row: %w", err)
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush xlsx: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
