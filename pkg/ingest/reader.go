package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/yahsan2/jira-csv/pkg/logging"
)

// RowError describes a record that was dropped during validation.
// Line numbering follows the file: the header is line 1, so the first data
// record is line 2.
type RowError struct {
	Line    int
	Message string
}

func (e RowError) String() string {
	return fmt.Sprintf("row %d: %s", e.Line, e.Message)
}

// Reader reads and validates a CSV source of issue rows.
type Reader struct {
	path string
}

// NewReader creates a reader for the given CSV file path.
func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// Read parses the whole source. The returned error is structural only: an
// unreadable file or a header missing required columns aborts the batch before
// any record is examined. Individual malformed records are dropped into the
// RowError slice and never stop the remaining records from being processed.
func (r *Reader) Read() ([]Row, []RowError, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	if len(records) == 0 {
		return nil, nil, fmt.Errorf("CSV file has no header row")
	}

	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if err := validateHeader(header); err != nil {
		return nil, nil, err
	}
	logging.Infof("CSV structure validated, found columns: %s", strings.Join(header, ", "))

	var rows []Row
	var rowErrs []RowError

	for i, record := range records[1:] {
		line := i + 2

		if len(record) < len(header) {
			rowErrs = append(rowErrs, RowError{
				Line:    line,
				Message: fmt.Sprintf("expected %d fields, got %d", len(header), len(record)),
			})
			logging.Warnf("row %d: expected %d fields, got %d", line, len(header), len(record))
			continue
		}

		raw := make(RawRecord, len(header))
		for j, name := range header {
			raw[name] = record[j]
		}

		row, err := ValidateRecord(raw)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Message: err.Error()})
			logging.Warnf("row %d: %v", line, err)
			continue
		}
		rows = append(rows, row)
	}

	if len(rowErrs) > 0 {
		logging.Warnf("dropped %d invalid rows from %s", len(rowErrs), r.path)
	}
	logging.Infof("read %d valid rows from %s", len(rows), r.path)

	return rows, rowErrs, nil
}

// validateHeader checks the header for required columns. This is the only
// whole-batch validation; it runs once before any record is processed.
func validateHeader(header []string) error {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[strings.TrimSpace(name)] = true
	}

	var missing []string
	for _, name := range RequiredColumns {
		if !present[name] {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
