// Package sheetbuilder implements a small templating language for tabular
// documents. A template describes sheets, reusable named formats, cursor
// movement and rows of typed cells; externally supplied data is injected
// under top-level names and referenced through $name.path expressions.
//
// Compilation is a two-pass affair: Parse turns the template source into a
// statement tree, Execute walks that tree with the injected data and emits a
// fully resolved instruction stream to a Sink. The package ships two sinks,
// one backed by excelize for xlsx output and one for plain CSV, but any
// implementation of the Sink interface can consume the stream.
//
//	tpl, err := sheetbuilder.Parse(source)
//	if err != nil { ... }
//	data, err := sheetbuilder.FromJSON(raw)
//	if err != nil { ... }
//	sink := sheetbuilder.NewXLSXSink()
//	if err := tpl.Execute(data, sink); err != nil { ... }
//	err = sink.Save("report.xlsx")
package sheetbuilder
