package sheetbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) []token {
	t.Helper()
	l := newLexer(src)
	var toks []token
	for {
		tok, err := l.next()
		require.NoError(t, err)
		if tok.kind == tokenEOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestLexer_Sigils(t *testing.T) {
	toks := lexAll(t, `:header @top $data.rows.0`)
	require.Len(t, toks, 3)
	assert.Equal(t, tokenFormat, toks[0].kind)
	assert.Equal(t, "header", toks[0].text)
	assert.Equal(t, tokenAnchor, toks[1].kind)
	assert.Equal(t, "top", toks[1].text)
	assert.Equal(t, tokenVariable, toks[2].kind)
	assert.Equal(t, "data.rows.0", toks[2].text, "dotted path stays one token")
}

func TestLexer_NumbersAndStrings(t *testing.T) {
	toks := lexAll(t, `12 3.5 1e3 2.5e-2 "a\"b\n"`)
	require.Len(t, toks, 5)
	assert.Equal(t, "12", toks[0].text)
	assert.Equal(t, "3.5", toks[1].text)
	assert.Equal(t, "1e3", toks[2].text)
	assert.Equal(t, "2.5e-2", toks[3].text)
	assert.Equal(t, tokenString, toks[4].kind)
	assert.Equal(t, "a\"b\n", toks[4].text)
}

func TestLexer_CommentsAnywhere(t *testing.T) {
	toks := lexAll(t, "cr /* a\ncomment */ autofit")
	require.Len(t, toks, 2)
	assert.Equal(t, "cr", toks[0].text)
	assert.Equal(t, "autofit", toks[1].text)
}

func TestLexer_Positions(t *testing.T) {
	toks := lexAll(t, "cr\n  autofit")
	require.Len(t, toks, 2)
	assert.Equal(t, 1, toks[0].line)
	assert.Equal(t, 1, toks[0].col)
	assert.Equal(t, 2, toks[1].line)
	assert.Equal(t, 3, toks[1].col)
}

func TestLexer_UnterminatedComment(t *testing.T) {
	l := newLexer("cr /* never closed")
	_, err := l.next() // cr
	require.NoError(t, err)
	_, err = l.next()
	var syn *SyntaxError
	require.ErrorAs(t, err, &syn)
	assert.Equal(t, 1, syn.Line)
	assert.Equal(t, 4, syn.Column)
}

func TestLexer_UnterminatedString(t *testing.T) {
	l := newLexer(`"open`)
	_, err := l.next()
	var syn *SyntaxError
	require.ErrorAs(t, err, &syn)
}

func TestLexer_UnexpectedCharacter(t *testing.T) {
	l := newLexer("^")
	_, err := l.next()
	var syn *SyntaxError
	require.ErrorAs(t, err, &syn)
}

func TestLexer_ExponentBacktrack(t *testing.T) {
	// "12e" is the number 12 followed by the identifier e, not a malformed
	// exponent.
	toks := lexAll(t, "12e")
	require.Len(t, toks, 2)
	assert.Equal(t, tokenNumber, toks[0].kind)
	assert.Equal(t, "12", toks[0].text)
	assert.Equal(t, tokenIdent, toks[1].kind)
	assert.Equal(t, "e", toks[1].text)
}
