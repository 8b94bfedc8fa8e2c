package sheetbuilder

import (
	"encoding/csv"
	"io"
)

// CSVSink flattens the instruction stream into delimited text. Only cell
// content survives: styles, sizing, merges and images have no CSV form.
// Rows are written in the order the interpreter emits them.
type CSVSink struct {
	w      *csv.Writer
	curRow int
	fields []string
}

// NewCSVSink returns a sink writing to w. A zero delimiter means comma.
func NewCSVSink(w io.Writer, delimiter rune) *CSVSink {
	cw := csv.NewWriter(w)
	if delimiter != 0 {
		cw.Comma = delimiter
	}
	return &CSVSink{w: cw, curRow: -1}
}

func (s *CSVSink) NewSheet(name string) error {
	return s.flushRow()
}

func (s *CSVSink) PlaceCell(row, col int, kind CellKind, content Value, style *Style, colspan, rowspan int) error {
	if s.curRow != -1 && row != s.curRow {
		if err := s.flushRow(); err != nil {
			return err
		}
	}
	s.curRow = row
	s.fields = append(s.fields, displayString(content))
	return nil
}

func (s *CSVSink) PlaceImage(row, col int, path string, mode ImageMode, style *Style) error {
	return nil
}

func (s *CSVSink) SetColumnWidth(from, to int, unit SizeUnit, size float64) error {
	return nil
}

func (s *CSVSink) SetRowHeight(idx int, unit SizeUnit, size float64) error {
	return nil
}

func (s *CSVSink) AutofitColumns() error {
	return nil
}

// Close writes any buffered row and flushes the underlying writer. Call it
// after Execute returns.
func (s *CSVSink) Close() error {
	if err := s.flushRow(); err != nil {
		return err
	}
	s.w.Flush()
	return s.w.Error()
}

func (s *CSVSink) flushRow() error {
	if len(s.fields) == 0 {
		s.curRow = -1
		return nil
	}
	err := s.w.Write(s.fields)
	s.fields = nil
	s.curRow = -1
	return err
}

var _ Sink = (*CSVSink)(nil)
