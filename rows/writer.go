// Package rows implements the row writer: it accumulates a
// stream of DataRow messages against a fixed field schema, enforcing
// column-count discipline and providing typed column writers.
package rows

import (
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgproto3"

	"pgwire/protocol"
)

// Writer accumulates a DataRow stream for a query result with a fixed
// number of columns. Grounded on _examples/louis77-mulldb/executor/result.go's
// Result.Rows shape ([][][]byte, nil entry = NULL), generalized into the
// typed, width-enforced writer this core exposes to host handlers.
type Writer struct {
	numFields int
	numRows   int
	buf       []byte

	row    [][]byte // current row under construction
	column int       // number of columns written to the current row
	open   bool      // true between AddRow and the row's last column write
}

// NewWriter creates a row writer for a schema with the given field count.
func NewWriter(numFields int) *Writer {
	return &Writer{numFields: numFields}
}

// NumRows reports how many complete rows have been written so far.
func (w *Writer) NumRows() int {
	return w.numRows
}

// Bytes returns the concatenated DataRow wire frames written so far,
// suitable to pass directly to a socket write.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// ColumnWriteError indicates that add_row()/write_* discipline was
// violated: AddRow was called while the previous row had fewer than
// numFields columns, a column was written past numFields, or a write was
// attempted without a preceding AddRow.
type ColumnWriteError struct {
	Expected int
	Got      int
}

func (e *ColumnWriteError) Error() string {
	return fmt.Sprintf("rows: column count mismatch: expected %d, got %d", e.Expected, e.Got)
}

// AddRow begins a new row. Exactly numFields writes must follow before
// the next AddRow; AddRow itself returns a ColumnWriteError if the
// previous row (if any) wasn't finished. Bytes and NumRows cover completed
// rows only; calling AddRow once more after the last write reports a
// short final row.
func (w *Writer) AddRow() error {
	if w.open && w.column != w.numFields {
		return &ColumnWriteError{Expected: w.numFields, Got: w.column}
	}
	w.row = make([][]byte, 0, w.numFields)
	w.column = 0
	w.open = true
	return nil
}

func (w *Writer) put(value []byte) error {
	if !w.open {
		return &ColumnWriteError{Expected: w.numFields, Got: 0}
	}
	if w.column >= w.numFields {
		return &ColumnWriteError{Expected: w.numFields, Got: w.column + 1}
	}
	w.row = append(w.row, value)
	w.column++
	if w.column == w.numFields {
		buf, err := (&pgproto3.DataRow{Values: w.row}).Encode(w.buf)
		if err != nil {
			return err
		}
		w.buf = buf
		w.numRows++
		w.open = false
	}
	return nil
}

// WriteNull writes a SQL NULL for the current column.
func (w *Writer) WriteNull() error {
	return w.put(nil)
}

// WriteBool writes "true"/"false" for the current column.
func (w *Writer) WriteBool(v bool) error {
	if v {
		return w.put([]byte("true"))
	}
	return w.put([]byte("false"))
}

// WriteInt2 writes a decimal int16 for the current column.
func (w *Writer) WriteInt2(v int16) error {
	return w.put(strconv.AppendInt(nil, int64(v), 10))
}

// WriteInt4 writes a decimal int32 for the current column.
func (w *Writer) WriteInt4(v int32) error {
	return w.put(strconv.AppendInt(nil, int64(v), 10))
}

// WriteInt8 writes a decimal int64 for the current column.
func (w *Writer) WriteInt8(v int64) error {
	return w.put(strconv.AppendInt(nil, v, 10))
}

// WriteFloat4 writes a %g-style float32 for the current column.
func (w *Writer) WriteFloat4(v float32) error {
	return w.put(strconv.AppendFloat(nil, float64(v), 'g', -1, 32))
}

// WriteFloat8 writes a %g-style float64 for the current column.
func (w *Writer) WriteFloat8(v float64) error {
	return w.put(strconv.AppendFloat(nil, v, 'g', -1, 64))
}

// WriteString writes a UTF-8 string verbatim, unescaped, for the current
// column.
func (w *Writer) WriteString(s string) error {
	return w.put([]byte(s))
}

// WriteBytes writes a \x-prefixed hex encoding of b, PostgreSQL's bytea
// text format, for the current column.
func (w *Writer) WriteBytes(b []byte) error {
	out := make([]byte, 2, 2+len(b)*2)
	out[0], out[1] = '\\', 'x'
	const hex = "0123456789abcdef"
	for _, c := range b {
		out = append(out, hex[c>>4], hex[c&0xF])
	}
	return w.put(out)
}

// Fields is a convenience re-export so callers building a schema don't
// need to import protocol directly just for the Field type.
type Fields = []protocol.Field
