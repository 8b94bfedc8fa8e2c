package sheetbuilder

import "fmt"

// The style model is a closed set of attributes with a last-write-wins merge
// rule per declaration. Formats do not compose: resolving a cell's format
// reference is a plain table lookup.

// Script marks super/subscript text.
type Script int

const (
	ScriptNone Script = iota
	ScriptSuper
	ScriptSub
)

// Align is a horizontal or vertical alignment choice.
type Align int

const (
	AlignNone Align = iota
	AlignLeft
	AlignRight
	AlignCenter
	AlignTop
	AlignBottom
	AlignVCenter
)

// BorderKind is a cell border line style. BorderUnset means the attribute
// was never touched by a modifier.
type BorderKind int

const (
	BorderUnset BorderKind = iota
	BorderNone
	BorderThin
	BorderMedium
	BorderDashed
	BorderDotted
	BorderThick
	BorderDouble
	BorderHair
	BorderMediumDashed
	BorderDashDot
	BorderMediumDashDot
	BorderDashDotDot
	BorderMediumDashDotDot
	BorderSlantDashDot
)

// BorderEdge pairs a line style with an optional color for one cell edge.
type BorderEdge struct {
	Kind  BorderKind
	Color string
}

// Style is a resolved format declaration. Zero values mean "not set": the
// sink supplies its own defaults for untouched attributes.
type Style struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Script        Script
	FontName      string
	FontSize      float64
	FontColor     string
	Background    string
	NumFormat     string
	Align         Align
	Indent        int

	Top, Bottom, Left, Right BorderEdge
}

var borderKinds = map[string]BorderKind{
	"none":                BorderNone,
	"thin":                BorderThin,
	"medium":              BorderMedium,
	"dashed":              BorderDashed,
	"dotted":              BorderDotted,
	"thick":               BorderThick,
	"double":              BorderDouble,
	"hair":                BorderHair,
	"medium_dashed":       BorderMediumDashed,
	"dash_dot":            BorderDashDot,
	"medium_dash_dot":     BorderMediumDashDot,
	"dash_dot_dot":        BorderDashDotDot,
	"medium_dash_dot_dot": BorderMediumDashDotDot,
	"slant_dash_dot":      BorderSlantDashDot,
}

var aligns = map[string]Align{
	"left":           AlignLeft,
	"right":          AlignRight,
	"center":         AlignCenter,
	"top":            AlignTop,
	"bottom":         AlignBottom,
	"verticalcenter": AlignVCenter,
}

// styleTable maps format names to resolved styles, built up front before any
// sheet body runs. Modifier arguments are evaluated against the top-level
// environment, so injected data can parameterize formats.
type styleTable map[string]*Style

func buildStyles(formats []formatDecl, env *scopes) (styleTable, error) {
	table := styleTable{}
	for _, decl := range formats {
		style, err := resolveFormat(decl, env)
		if err != nil {
			return nil, err
		}
		table[decl.name] = style
	}
	return table, nil
}

func resolveFormat(decl formatDecl, env *scopes) (*Style, error) {
	s := &Style{}
	for _, mod := range decl.modifiers {
		arg := Value(Null{})
		if mod.arg != nil {
			v, err := evalExpr(mod.arg, env)
			if err != nil {
				return nil, err
			}
			arg = v
		}
		if err := applyModifier(s, mod.name, arg); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func applyModifier(s *Style, name string, arg Value) error {
	switch name {
	case "bold":
		s.Bold = true
	case "italic":
		s.Italic = true
	case "underline":
		s.Underline = true
	case "strikethrough":
		s.Strikethrough = true
	case "super":
		s.Script = ScriptSuper
	case "sub":
		s.Script = ScriptSub
	case "color":
		s.FontColor = displayString(arg)
	case "background_color":
		s.Background = displayString(arg)
	case "font_name":
		s.FontName = displayString(arg)
	case "num":
		s.NumFormat = displayString(arg)
	case "font_size":
		n, ok := arg.(Number)
		if !ok {
			return modifierArgError(name, "a number", arg)
		}
		s.FontSize = float64(n)
	case "indent":
		n, ok := arg.(Number)
		if !ok {
			return modifierArgError(name, "a number", arg)
		}
		s.Indent = int(n)
	case "align":
		a, ok := aligns[displayString(arg)]
		if !ok {
			return modifierArgError(name, "an alignment name", arg)
		}
		s.Align = a
	case "border", "border_top", "border_bottom", "border_left", "border_right":
		kind, ok := borderKinds[displayString(arg)]
		if !ok {
			return modifierArgError(name, "a border kind", arg)
		}
		for _, e := range borderTargets(s, name) {
			e.Kind = kind
		}
	case "border_color", "border_top_color", "border_bottom_color", "border_left_color", "border_right_color":
		color := displayString(arg)
		for _, e := range borderColorTargets(s, name) {
			e.Color = color
		}
	default:
		return &UndeclaredReferenceError{Kind: RefModifier, Name: name}
	}
	return nil
}

func borderTargets(s *Style, name string) []*BorderEdge {
	switch name {
	case "border_top":
		return []*BorderEdge{&s.Top}
	case "border_bottom":
		return []*BorderEdge{&s.Bottom}
	case "border_left":
		return []*BorderEdge{&s.Left}
	case "border_right":
		return []*BorderEdge{&s.Right}
	}
	return []*BorderEdge{&s.Top, &s.Bottom, &s.Left, &s.Right}
}

func borderColorTargets(s *Style, name string) []*BorderEdge {
	switch name {
	case "border_top_color":
		return []*BorderEdge{&s.Top}
	case "border_bottom_color":
		return []*BorderEdge{&s.Bottom}
	case "border_left_color":
		return []*BorderEdge{&s.Left}
	case "border_right_color":
		return []*BorderEdge{&s.Right}
	}
	return []*BorderEdge{&s.Top, &s.Bottom, &s.Left, &s.Right}
}

func modifierArgError(name, want string, got Value) *TypeMismatchError {
	return &TypeMismatchError{Message: fmt.Sprintf("%s expects %s, got %s %q", name, want, got.Kind(), displayString(got))}
}
