// Package export writes recipe lists to CSV or XLSX files.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cookanything/pantry/internal/recipe"
)

// ErrFormat is returned for output paths that are neither .csv nor .xlsx.
var ErrFormat = errors.New("output must end with .csv or .xlsx")

// SheetName is the worksheet XLSX exports write to.
const SheetName = "Recipes"

// Header lists the exported columns in order.
var Header = []string{"name", "category", "cuisine", "tags", "image", "link", "date"}

func row(r recipe.Recipe) []string {
	return []string{r.Name, r.Category, r.Cuisine, strings.Join(r.Tags, ", "), r.Image, r.Link, r.Date}
}

// File writes list to path, picking the format from the extension.
func File(path string, list []recipe.Recipe) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := CSV(f, list); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case ".xlsx":
		return XLSX(path, list)
	default:
		return fmt.Errorf("%s: %w", path, ErrFormat)
	}
}

// CSV writes list as CSV with a header row.
func CSV(w io.Writer, list []recipe.Recipe) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range list {
		if err := cw.Write(row(r)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// XLSX writes list to a workbook at path using a stream writer.
func XLSX(path string, list []recipe.Recipe) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}

	if err := sw.SetRow("A1", cells(Header)); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}
	for i, r := range list {
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(addr, cells(row(r))); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush xlsx: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func cells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
