package sheetbuilder

// Sink consumes the resolved instruction stream produced by a template run
// and performs the actual document construction. The interpreter hands a
// sink fully resolved content, absolute zero-based coordinates and resolved
// styles; it never reasons about the output file format itself.
//
// A nil style on PlaceCell or PlaceImage means the cell carried no format
// reference and the sink should apply its own defaults.
type Sink interface {
	// NewSheet starts a new sheet. Statements that follow address it until
	// the next NewSheet.
	NewSheet(name string) error

	// SetColumnWidth sizes the inclusive column range [from, to].
	SetColumnWidth(from, to int, unit SizeUnit, size float64) error

	// SetRowHeight sizes a single row.
	SetRowHeight(idx int, unit SizeUnit, size float64) error

	// PlaceCell writes one cell. content is a String, Number or Date value
	// matching kind. colspan and rowspan are at least 1; a span greater
	// than 1 describes the cell's merge region.
	PlaceCell(row, col int, kind CellKind, content Value, style *Style, colspan, rowspan int) error

	// PlaceImage embeds or inserts the image at path into the cell.
	PlaceImage(row, col int, path string, mode ImageMode, style *Style) error

	// AutofitColumns asks the sink to fit the current sheet's columns to
	// their content. Advisory; sinks may apply it imperfectly or not at all.
	AutofitColumns() error
}
