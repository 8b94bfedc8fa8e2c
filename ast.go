package sheetbuilder

// The parse tree. Statements are a tagged set discriminated by type switch,
// the same way the interpreter walks them.

type document struct {
	formats []formatDecl
	sheets  []sheetNode
}

type formatDecl struct {
	name      string
	modifiers []styleModifier
	line, col int
}

// styleModifier is a single entry of a format declaration, e.g. bold or
// color("#FF0000"). arg is nil for bare modifiers.
type styleModifier struct {
	name      string
	arg       exprNode
	line, col int
}

type sheetNode struct {
	name string
	body []statement
}

type statement interface{}

// SizeUnit selects how column widths and row heights are measured.
type SizeUnit int

const (
	UnitChars SizeUnit = iota
	UnitPixels
)

func (u SizeUnit) String() string {
	if u == UnitPixels {
		return "pixels"
	}
	return "chars"
}

type colStmt struct {
	from, to int
	unit     SizeUnit
	size     float64
}

type rowStmt struct {
	idx  int
	unit SizeUnit
	size float64
}

type anchorStmt struct {
	name string
}

// moveStmt repositions the cursor. An empty anchor means the offsets apply
// to the current cursor position.
type moveStmt struct {
	anchor     string
	dRow, dCol int
}

type crStmt struct{}

type autofitStmt struct{}

type rowEmit struct {
	cells []cellNode
}

type forStmt struct {
	loopVar string // without the $ sigil
	source  exprNode
	body    []statement
}

// CellKind tags the content type of a placed cell.
type CellKind int

const (
	CellString CellKind = iota
	CellNumber
	CellDate
	CellImage
)

func (k CellKind) String() string {
	switch k {
	case CellNumber:
		return "num"
	case CellDate:
		return "date"
	case CellImage:
		return "img"
	}
	return "str"
}

// ImageMode selects how an image cell is placed into the document.
type ImageMode int

const (
	// ImageEmbed scales the image to fit its cell.
	ImageEmbed ImageMode = iota
	// ImageInsert places the image at its natural size.
	ImageInsert
)

type cellNode struct {
	kind    CellKind
	expr    exprNode
	format  string // "" when the cell carries no format reference
	colspan int
	rowspan int
	mode    ImageMode
}

// Expression nodes.

type exprNode interface{}

type literalExpr struct {
	val Value
}

// varExpr is a $name.seg.seg reference; segs holds the dotted segments with
// the root name first.
type varExpr struct {
	segs []string
	full string
}

type binaryExpr struct {
	op          string // "+", "-", "*", "/"
	left, right exprNode
}

type unaryExpr struct {
	op      string // "-"
	operand exprNode
}
