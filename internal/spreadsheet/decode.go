package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one spreadsheet row keyed by column header.
type Row map[string]string

// Document is a decoded spreadsheet: the first sheet's header row plus all
// data rows. Headers keep their original text (including embedded newlines);
// lookups go through FindColumn so nothing downstream re-parses header names.
type Document struct {
	Headers []string
	Rows    []Row
}

// MissingColumnsError is the structural failure for an upload whose sheet
// lacks required columns. It aborts the whole transformation.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns: [%s]", strings.Join(e.Columns, ", "))
}

// Decode reads the first sheet of an xlsx stream into a Document.
func Decode(r io.Reader) (*Document, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	doc := &Document{Headers: headers}
	for _, raw := range rows[1:] {
		row := make(Row, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(raw) {
				row[h] = raw[i]
			}
		}
		doc.Rows = append(doc.Rows, row)
	}
	return doc, nil
}

// FindColumn returns the first header containing every given substring,
// compared with whitespace collapsed so "Proben\nGesamt" matches
// ("Proben", "Gesamt"). Returns "" when no header matches.
func (d *Document) FindColumn(substrings ...string) string {
	for _, h := range d.Headers {
		flat := flattenHeader(h)
		ok := true
		for _, s := range substrings {
			if !strings.Contains(flat, s) {
				ok = false
				break
			}
		}
		if ok && h != "" {
			return h
		}
	}
	return ""
}

// RequireColumns checks that every named column exists (by substring match
// for multi-word names joined with a space) and returns a
// MissingColumnsError listing all absent ones.
func (d *Document) RequireColumns(names ...string) error {
	var missing []string
	for _, name := range names {
		if d.FindColumn(strings.Fields(name)...) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// Get returns the trimmed cell under the exact header, or "".
func (r Row) Get(header string) string {
	return strings.TrimSpace(r[header])
}

func flattenHeader(h string) string {
	return strings.Join(strings.Fields(h), " ")
}
