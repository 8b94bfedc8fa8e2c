package sheetbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildStyleDecls(t *testing.T, src string, data *Mapping) styleTable {
	t.Helper()
	doc, err := parseDocument(src + ` sheet("S")`)
	require.NoError(t, err)
	table, err := buildStyles(doc.formats, newScopes(data))
	require.NoError(t, err)
	return table
}

func TestStyle_Modifiers(t *testing.T) {
	table := buildStyleDecls(t, `
		:header {
			bold, italic, underline, strikethrough,
			font_name("Arial"), font_size(14), color("#FF0000"),
			background_color("#DDEEFF"), num("#,##0.00"),
			align("center"), indent(2)
		}`, nil)
	s := table["header"]
	require.NotNil(t, s)
	assert.True(t, s.Bold)
	assert.True(t, s.Italic)
	assert.True(t, s.Underline)
	assert.True(t, s.Strikethrough)
	assert.Equal(t, "Arial", s.FontName)
	assert.Equal(t, 14.0, s.FontSize)
	assert.Equal(t, "#FF0000", s.FontColor)
	assert.Equal(t, "#DDEEFF", s.Background)
	assert.Equal(t, "#,##0.00", s.NumFormat)
	assert.Equal(t, AlignCenter, s.Align)
	assert.Equal(t, 2, s.Indent)
}

func TestStyle_LastWriteWins(t *testing.T) {
	table := buildStyleDecls(t, `:x { color("#111111"), color("#222222"), font_size(10), font_size(12) }`, nil)
	assert.Equal(t, "#222222", table["x"].FontColor)
	assert.Equal(t, 12.0, table["x"].FontSize)
}

func TestStyle_Borders(t *testing.T) {
	table := buildStyleDecls(t, `
		:boxed { border("thin"), border_color("#000000"), border_bottom("double") }
		:topped { border_top("medium"), border_top_color("#FF0000") }`, nil)

	boxed := table["boxed"]
	assert.Equal(t, BorderThin, boxed.Top.Kind)
	assert.Equal(t, BorderThin, boxed.Left.Kind)
	assert.Equal(t, BorderThin, boxed.Right.Kind)
	assert.Equal(t, BorderDouble, boxed.Bottom.Kind, "later edge modifier overrides the all-edge one")
	assert.Equal(t, "#000000", boxed.Bottom.Color)

	topped := table["topped"]
	assert.Equal(t, BorderMedium, topped.Top.Kind)
	assert.Equal(t, "#FF0000", topped.Top.Color)
	assert.Equal(t, BorderUnset, topped.Bottom.Kind)
}

func TestStyle_Scripts(t *testing.T) {
	table := buildStyleDecls(t, `:up { super } :down { sub }`, nil)
	assert.Equal(t, ScriptSuper, table["up"].Script)
	assert.Equal(t, ScriptSub, table["down"].Script)
}

func TestStyle_ExpressionArguments(t *testing.T) {
	theme := NewMapping()
	theme.Set("accent", String("#00AA00"))
	theme.Set("base_size", Number(9))
	data := NewMapping()
	data.Set("theme", theme)

	table := buildStyleDecls(t, `:accented { color($theme.accent), font_size($theme.base_size + 2) }`, data)
	assert.Equal(t, "#00AA00", table["accented"].FontColor)
	assert.Equal(t, 11.0, table["accented"].FontSize)
}

func TestStyle_UnknownModifier(t *testing.T) {
	doc, err := parseDocument(`:x { sparkle } sheet("S")`)
	require.NoError(t, err)
	_, err = buildStyles(doc.formats, newScopes(nil))
	var undeclared *UndeclaredReferenceError
	require.ErrorAs(t, err, &undeclared)
	assert.Equal(t, RefModifier, undeclared.Kind)
	assert.Equal(t, "sparkle", undeclared.Name)
}

func TestStyle_ArgumentTypeErrors(t *testing.T) {
	cases := []string{
		`:x { font_size("big") }`,
		`:x { indent("far") }`,
		`:x { align("diagonal") }`,
		`:x { border("wavy") }`,
	}
	for _, src := range cases {
		doc, err := parseDocument(src + ` sheet("S")`)
		require.NoError(t, err, src)
		_, err = buildStyles(doc.formats, newScopes(nil))
		var mismatch *TypeMismatchError
		require.ErrorAs(t, err, &mismatch, src)
	}
}
