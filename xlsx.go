package sheetbuilder

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXSink realizes the instruction stream as an xlsx workbook through
// excelize. Coordinates arrive zero-based and are translated to excelize's
// one-based cell names.
type XLSXSink struct {
	file  *excelize.File
	sheet string
	// styleCache maps resolved styles (plus the cell kind, which picks the
	// default number format) to excelize style IDs.
	styleCache map[styleKey]int
	// contentWidth tracks the widest content seen per column, for autofit.
	contentWidth map[int]float64
}

type styleKey struct {
	style *Style
	kind  CellKind
}

// NewXLSXSink returns a sink writing into a fresh workbook.
func NewXLSXSink() *XLSXSink {
	return &XLSXSink{
		file:       excelize.NewFile(),
		styleCache: map[styleKey]int{},
	}
}

// File exposes the underlying workbook, for callers that want to post-process
// before saving.
func (s *XLSXSink) File() *excelize.File {
	return s.file
}

// Save writes the workbook to path.
func (s *XLSXSink) Save(path string) error {
	return s.file.SaveAs(path)
}

func (s *XLSXSink) NewSheet(name string) error {
	if s.sheet == "" {
		// Rename the workbook's default sheet instead of leaving it empty.
		if err := s.file.SetSheetName(s.file.GetSheetName(0), name); err != nil {
			return err
		}
	} else if _, err := s.file.NewSheet(name); err != nil {
		return err
	}
	s.sheet = name
	s.contentWidth = map[int]float64{}
	return nil
}

// Default display formats for cells without a format reference.
const (
	defaultNumFormat  = "0.00"
	defaultDateFormat = "dd/mm/yyyy hh:mm"
)

func (s *XLSXSink) PlaceCell(row, col int, kind CellKind, content Value, style *Style, colspan, rowspan int) error {
	addr, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return err
	}
	styleID, err := s.styleID(style, kind)
	if err != nil {
		return err
	}
	if err := s.file.SetCellStyle(s.sheet, addr, addr, styleID); err != nil {
		return err
	}
	switch kind {
	case CellNumber:
		err = s.file.SetCellValue(s.sheet, addr, float64(content.(Number)))
	case CellDate:
		err = s.file.SetCellValue(s.sheet, addr, float64(content.(Date)))
	default:
		err = s.file.SetCellStr(s.sheet, addr, string(content.(String)))
	}
	if err != nil {
		return err
	}
	if colspan > 1 || rowspan > 1 {
		end, err := excelize.CoordinatesToCellName(col+colspan, row+rowspan)
		if err != nil {
			return err
		}
		if err := s.file.MergeCell(s.sheet, addr, end); err != nil {
			return err
		}
	}
	s.noteWidth(col, float64(len(displayString(content)))/float64(colspan))
	return nil
}

func (s *XLSXSink) PlaceImage(row, col int, path string, mode ImageMode, style *Style) error {
	addr, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return err
	}
	if style != nil {
		styleID, err := s.styleID(style, CellImage)
		if err != nil {
			return err
		}
		if err := s.file.SetCellStyle(s.sheet, addr, addr, styleID); err != nil {
			return err
		}
	}
	opts := &excelize.GraphicOptions{}
	if mode == ImageEmbed {
		opts.AutoFit = true
	}
	return s.file.AddPicture(s.sheet, addr, path, opts)
}

func (s *XLSXSink) SetColumnWidth(from, to int, unit SizeUnit, size float64) error {
	start, err := excelize.ColumnNumberToName(from + 1)
	if err != nil {
		return err
	}
	end, err := excelize.ColumnNumberToName(to + 1)
	if err != nil {
		return err
	}
	return s.file.SetColWidth(s.sheet, start, end, widthChars(unit, size))
}

func (s *XLSXSink) SetRowHeight(idx int, unit SizeUnit, size float64) error {
	height := size
	if unit == UnitPixels {
		height = size * 0.75 // pixels to points at 96 dpi
	}
	return s.file.SetRowHeight(s.sheet, idx+1, height)
}

// AutofitColumns sizes every column touched so far to its widest content.
// Approximate on purpose: character counts stand in for rendered widths.
func (s *XLSXSink) AutofitColumns() error {
	for col, w := range s.contentWidth {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		width := w + 2
		if width > 80 {
			width = 80
		}
		if err := s.file.SetColWidth(s.sheet, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

func (s *XLSXSink) noteWidth(col int, w float64) {
	if w > s.contentWidth[col] {
		s.contentWidth[col] = w
	}
}

// widthChars converts a column size to excelize's character-based width.
func widthChars(unit SizeUnit, size float64) float64 {
	if unit == UnitPixels {
		return (size - 5) / 7
	}
	return size
}

func (s *XLSXSink) styleID(style *Style, kind CellKind) (int, error) {
	key := styleKey{style: style, kind: kind}
	if id, ok := s.styleCache[key]; ok {
		return id, nil
	}
	id, err := s.file.NewStyle(convertStyle(style, kind))
	if err != nil {
		return 0, err
	}
	s.styleCache[key] = id
	return id, nil
}

func convertStyle(style *Style, kind CellKind) *excelize.Style {
	out := &excelize.Style{}
	if style == nil {
		style = &Style{}
	}

	numFmt := style.NumFormat
	if numFmt == "" {
		switch kind {
		case CellNumber:
			numFmt = defaultNumFormat
		case CellDate:
			numFmt = defaultDateFormat
		}
	}
	if numFmt != "" {
		fmtCopy := numFmt
		out.CustomNumFmt = &fmtCopy
	}

	if style.Bold || style.Italic || style.Underline || style.Strikethrough ||
		style.Script != ScriptNone || style.FontName != "" || style.FontSize != 0 || style.FontColor != "" {
		font := &excelize.Font{
			Bold:      style.Bold,
			Italic:    style.Italic,
			Strike:    style.Strikethrough,
			Family:    style.FontName,
			Size:      style.FontSize,
			Color:     hexColor(style.FontColor),
			VertAlign: scriptName(style.Script),
		}
		if style.Underline {
			font.Underline = "single"
		}
		out.Font = font
	}

	if style.Background != "" {
		out.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{hexColor(style.Background)},
		}
	}

	if style.Align != AlignNone || style.Indent != 0 {
		out.Alignment = alignment(style.Align, style.Indent)
	}

	out.Border = borders(style)
	return out
}

func alignment(a Align, indent int) *excelize.Alignment {
	out := &excelize.Alignment{Indent: indent}
	switch a {
	case AlignLeft:
		out.Horizontal = "left"
	case AlignRight:
		out.Horizontal = "right"
	case AlignCenter:
		out.Horizontal = "center"
	case AlignTop:
		out.Vertical = "top"
	case AlignBottom:
		out.Vertical = "bottom"
	case AlignVCenter:
		out.Vertical = "center"
	}
	return out
}

func borders(style *Style) []excelize.Border {
	var out []excelize.Border
	edges := []struct {
		name string
		edge BorderEdge
	}{
		{"top", style.Top},
		{"bottom", style.Bottom},
		{"left", style.Left},
		{"right", style.Right},
	}
	for _, e := range edges {
		if e.edge.Kind == BorderUnset {
			continue
		}
		out = append(out, excelize.Border{
			Type:  e.name,
			Style: borderStyleID(e.edge.Kind),
			Color: hexColor(e.edge.Color),
		})
	}
	return out
}

// borderStyleID maps border kinds to excelize's numeric line styles.
func borderStyleID(k BorderKind) int {
	switch k {
	case BorderThin:
		return 1
	case BorderMedium:
		return 2
	case BorderDashed:
		return 3
	case BorderDotted:
		return 4
	case BorderThick:
		return 5
	case BorderDouble:
		return 6
	case BorderHair:
		return 7
	case BorderMediumDashed:
		return 8
	case BorderDashDot:
		return 9
	case BorderMediumDashDot:
		return 10
	case BorderDashDotDot:
		return 11
	case BorderMediumDashDotDot:
		return 12
	case BorderSlantDashDot:
		return 13
	}
	return 0
}

func scriptName(s Script) string {
	switch s {
	case ScriptSuper:
		return "superscript"
	case ScriptSub:
		return "subscript"
	}
	return ""
}

func hexColor(c string) string {
	return strings.TrimPrefix(c, "#")
}

var _ Sink = (*XLSXSink)(nil)
