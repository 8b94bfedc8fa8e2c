package sheetbuilder

// cursor is the per-sheet addressing state. Coordinates are zero-based grid
// positions; the sinks translate to their own addressing.
type cursor struct {
	row, col int
	// rowStart is the column recorded when the most recent row emission
	// began; cr returns the cursor there without touching the row.
	rowStart int
	anchors  map[string]gridPos
}

type gridPos struct {
	row, col int
}

func newCursor() *cursor {
	return &cursor{anchors: map[string]gridPos{}}
}

// declareAnchor records the current position under name. Anchors are
// write-once per sheet.
func (c *cursor) declareAnchor(name string) error {
	if _, ok := c.anchors[name]; ok {
		return &DuplicateDeclarationError{Kind: RefAnchor, Name: name}
	}
	c.anchors[name] = gridPos{row: c.row, col: c.col}
	return nil
}

// move offsets the cursor, from the named anchor when one is given or from
// the current position otherwise. Results clamp at the grid origin.
func (c *cursor) move(anchor string, dRow, dCol int) error {
	base := gridPos{row: c.row, col: c.col}
	if anchor != "" {
		pos, ok := c.anchors[anchor]
		if !ok {
			return &UndeclaredReferenceError{Kind: RefAnchor, Name: anchor}
		}
		base = pos
	}
	c.row = clampZero(base.row + dRow)
	c.col = clampZero(base.col + dCol)
	return nil
}

func (c *cursor) carriageReturn() {
	c.col = c.rowStart
}

// beginRow marks the start of a row emission; cr rewinds to this column.
func (c *cursor) beginRow() {
	c.rowStart = c.col
}

// endRow advances to the next row. The column stays where cell placement
// left it; rowspan never changes the advance.
func (c *cursor) endRow() {
	c.row++
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
