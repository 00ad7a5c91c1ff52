package registry

import (
	"strconv"
	"time"
)

// Display labels for the alpha table columns. The mapping from source
// column identifiers (id, plate_number, call_sign) is fixed at compile
// time rather than driven by a rename table.
const (
	ColumnID       = "ID"
	ColumnPlate    = "Plate Number"
	ColumnCallSign = "Call Sign"
)

// Row is one vehicle record from the alpha table.
type Row struct {
	ID          int64
	PlateNumber string
	CallSign    string
}

// Value returns the string form of the named display column.
func (r Row) Value(column string) string {
	switch column {
	case ColumnID:
		return strconv.FormatInt(r.ID, 10)
	case ColumnPlate:
		return r.PlateNumber
	case ColumnCallSign:
		return r.CallSign
	default:
		return ""
	}
}

// DisplayColumns lists the columns shown in the table and carried by
// exports. The database ID is fetched but hidden, matching the hosted
// dashboard's presentation.
func DisplayColumns() []string {
	return []string{ColumnPlate, ColumnCallSign}
}

// Snapshot is the full copy of the remote table as of one accepted
// refresh. Snapshots are replaced wholesale, never patched.
type Snapshot struct {
	Rows       []Row
	CapturedAt time.Time
}

// Clone returns a Snapshot whose row slice is independent of the receiver.
func (s Snapshot) Clone() Snapshot {
	dup := s
	dup.Rows = cloneRows(s.Rows)
	return dup
}

func cloneRows(rows []Row) []Row {
	if len(rows) == 0 {
		return nil
	}
	dup := make([]Row, len(rows))
	copy(dup, rows)
	return dup
}
