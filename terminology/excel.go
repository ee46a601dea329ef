package terminology

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ayushbridge/conceptmapper/service"
)

// columnAliases maps the header spellings seen in NAMASTE exports to
// record fields.
var columnAliases = map[string]string{
	"code":         "code",
	"namaste_code": "code",
	"display":      "display",
	"term":         "display",
	"disorder":     "display",
	"definition":   "definition",
	"description":  "definition",
	"category":     "category",
	"body_system":  "bodySystem",
	"organ_system": "bodySystem",
}

// LoadRecordsXLSX reads terminology records from the first sheet of a
// NAMASTE spreadsheet export. The first row must be a header; column
// names are matched case-insensitively against the known aliases.
// Rows missing a code or display are skipped.
func LoadRecordsXLSX(path, system string) ([]service.TerminologyRecord, error) {
	if system == "" {
		return nil, fmt.Errorf("system URI is required")
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	// Resolve header columns to record fields.
	fields := make(map[int]string, len(rows[0]))
	for i, h := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(h))
		if field, ok := columnAliases[name]; ok {
			fields[i] = field
		}
	}
	if !hasField(fields, "code") || !hasField(fields, "display") {
		return nil, fmt.Errorf("sheet %q is missing a code or display column", sheet)
	}

	var records []service.TerminologyRecord
	for _, row := range rows[1:] {
		rec := service.TerminologyRecord{System: system}
		for i, cell := range row {
			value := strings.TrimSpace(cell)
			if value == "" {
				continue
			}
			switch fields[i] {
			case "code":
				rec.Code = value
			case "display":
				rec.Display = value
			case "definition":
				rec.Definition = value
			case "category":
				rec.Category = value
			case "bodySystem":
				rec.BodySystem = value
			}
		}
		if rec.Code == "" || rec.Display == "" {
			continue
		}
		if rec.Definition == "" {
			rec.Definition = rec.Display
		}
		records = append(records, rec)
	}
	return records, nil
}

// LoadRecordsXLSXFile reads a spreadsheet export directly into the
// store. Returns the number of records added.
func (s *Store) LoadRecordsXLSXFile(path, system string) (int, error) {
	records, err := LoadRecordsXLSX(path, system)
	if err != nil {
		return 0, err
	}
	s.Add(records...)
	return len(records), nil
}

func hasField(fields map[int]string, name string) bool {
	for _, f := range fields {
		if f == name {
			return true
		}
	}
	return false
}
