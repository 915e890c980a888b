// Package export writes article records to CSV or XLSX files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samvad-hq/pubmed-buddy/internal/domain"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Articles"

// Columns are the exported headers: the flat mapping keys plus the abstract.
func Columns() []string {
	cols := make([]string, 0, len(domain.MappingKeys)+1)
	cols = append(cols, domain.MappingKeys...)
	return append(cols, "abstract")
}

func row(a domain.PubmedArticle) []string {
	return append(a.MappingRow(), a.Abstract)
}

// WriteCSV writes a header line followed by one record per article.
func WriteCSV(w io.Writer, articles []domain.PubmedArticle) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, a := range articles {
		if err := cw.Write(row(a)); err != nil {
			return fmt.Errorf("write csv row %s: %w", a.PMID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a workbook with a single "Articles" sheet.
func WriteXLSX(w io.Writer, articles []domain.PubmedArticle) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := setRow(f, 1, Columns()); err != nil {
		return err
	}
	for i, a := range articles {
		if err := setRow(f, i+2, row(a)); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", rowNum, err)
	}
	vals := make([]interface{}, len(values))
	for i, v := range values {
		vals[i] = v
	}
	if err := f.SetSheetRow(sheetName, cell, &vals); err != nil {
		return fmt.Errorf("set row %d: %w", rowNum, err)
	}
	return nil
}

// ToFile picks the format from the file extension (.csv or .xlsx).
func ToFile(path string, articles []domain.PubmedArticle) error {
	var write func(io.Writer, []domain.PubmedArticle) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		write = WriteCSV
	case ".xlsx":
		write = WriteXLSX
	default:
		return fmt.Errorf("unsupported export format %q (expected .csv or .xlsx)", ext)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := write(file, articles); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
