// Package export serializes a table snapshot to one of the download
// formats the dashboard offers. Encoding is pure: no network, no mutable
// state, deterministic output for a given snapshot and format.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/xuri/excelize/v2"

	"platewatch/internal/registry"
)

// Format selects the export encoding.
type Format int

const (
	FormatCSV Format = iota
	FormatXLSX
	FormatJSON
)

// ErrUnsupportedFormat is returned for format values outside the known set.
var ErrUnsupportedFormat = errors.New("unsupported export format")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Formats lists the supported formats in menu order.
func Formats() []Format {
	return []Format{FormatCSV, FormatXLSX, FormatJSON}
}

// String returns the user-facing format label.
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "CSV"
	case FormatXLSX:
		return "Excel"
	case FormatJSON:
		return "JSON"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Filename returns the download filename for the format.
func (f Format) Filename() string {
	switch f {
	case FormatCSV:
		return "vehicle_data.csv"
	case FormatXLSX:
		return "vehicle_data.xlsx"
	case FormatJSON:
		return "vehicle_data.json"
	default:
		return ""
	}
}

// MIMEType returns the content type a downstream consumer should use.
func (f Format) MIMEType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatJSON:
		return "application/json"
	default:
		return ""
	}
}

// record mirrors one row keyed by display column names. Field order fixes
// the JSON key order.
type record struct {
	PlateNumber string `json:"Plate Number"`
	CallSign    string `json:"Call Sign"`
}

// Encode serializes the full snapshot (all rows, all displayed columns)
// in the given format. CSV and XLSX carry a header row; JSON is a
// record-oriented array.
func Encode(snap registry.Snapshot, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return encodeCSV(snap)
	case FormatXLSX:
		return encodeXLSX(snap)
	case FormatJSON:
		return encodeJSON(snap)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, int(format))
	}
}

func encodeCSV(snap registry.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(registry.DisplayColumns()); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range snap.Rows {
		if err := w.Write([]string{row.PlateNumber, row.CallSign}); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeJSON(snap registry.Snapshot) ([]byte, error) {
	records := make([]record, 0, len(snap.Rows))
	for _, row := range snap.Rows {
		records = append(records, record{PlateNumber: row.PlateNumber, CallSign: row.CallSign})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return data, nil
}

func encodeXLSX(snap registry.Snapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Sheet1"
	header := make([]any, 0, 2)
	for _, col := range registry.DisplayColumns() {
		header = append(header, col)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write xlsx header: %w", err)
	}
	for i, row := range snap.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("xlsx cell name: %w", err)
		}
		values := []any{row.PlateNumber, row.CallSign}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write xlsx row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
