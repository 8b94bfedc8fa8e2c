package sheetbuilder

import "io"

// BuildXLSX compiles source, runs it against data and saves the resulting
// workbook to outPath. One-shot wrapper over Parse, Execute and XLSXSink.
func BuildXLSX(source string, data *Mapping, outPath string) error {
	tpl, err := Parse(source)
	if err != nil {
		return err
	}
	sink := NewXLSXSink()
	if err := tpl.Execute(data, sink); err != nil {
		return err
	}
	return sink.Save(outPath)
}

// BuildCSV compiles source, runs it against data and writes the row content
// to w as delimited text. A zero delimiter means comma.
func BuildCSV(source string, data *Mapping, w io.Writer, delimiter rune) error {
	tpl, err := Parse(source)
	if err != nil {
		return err
	}
	sink := NewCSVSink(w, delimiter)
	if err := tpl.Execute(data, sink); err != nil {
		return err
	}
	return sink.Close()
}
