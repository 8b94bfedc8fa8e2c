package sheetbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseExprString(t *testing.T, src string) exprNode {
	t.Helper()
	p := &parser{lex: newLexer(src)}
	require.NoError(t, p.next())
	e, err := p.parseExpr()
	require.NoError(t, err)
	require.Equal(t, tokenEOF, p.tok.kind, "expression should consume all input")
	return e
}

func evalString(t *testing.T, src string, env *scopes) (Value, error) {
	t.Helper()
	if env == nil {
		env = newScopes(nil)
	}
	return evalExpr(parseExprString(t, src), env)
}

func TestEval_Precedence(t *testing.T) {
	v, err := evalString(t, `1 + 2 * 2 + (1 + 3) * 2`, nil)
	require.NoError(t, err)
	assert.Equal(t, Number(13), v)
}

func TestEval_LeftAssociative(t *testing.T) {
	v, err := evalString(t, `10 - 4 - 3`, nil)
	require.NoError(t, err)
	assert.Equal(t, Number(3), v)

	v, err = evalString(t, `16 / 4 / 2`, nil)
	require.NoError(t, err)
	assert.Equal(t, Number(2), v)
}

func TestEval_UnaryMinus(t *testing.T) {
	v, err := evalString(t, `-3 * 2`, nil)
	require.NoError(t, err)
	assert.Equal(t, Number(-6), v)

	v, err = evalString(t, `-(1 + 2)`, nil)
	require.NoError(t, err)
	assert.Equal(t, Number(-3), v)

	_, err = evalString(t, `-"x"`, nil)
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestEval_StringNumberConcat(t *testing.T) {
	v, err := evalString(t, `1.27 + "%"`, nil)
	require.NoError(t, err)
	assert.Equal(t, String("1.27%"), v)

	v, err = evalString(t, `"row " + 2`, nil)
	require.NoError(t, err)
	assert.Equal(t, String("row 2"), v)

	v, err = evalString(t, `"a" + "b"`, nil)
	require.NoError(t, err)
	assert.Equal(t, String("ab"), v)
}

func TestEval_CoercionIsPlusOnly(t *testing.T) {
	for _, src := range []string{`"a" - 1`, `2 * "a"`, `"a" / 2`} {
		_, err := evalString(t, src, nil)
		var mismatch *TypeMismatchError
		require.ErrorAs(t, err, &mismatch, src)
	}
}

func TestEval_DivisionByZero(t *testing.T) {
	_, err := evalString(t, `10 / 0`, nil)
	var arith *ArithmeticError
	require.ErrorAs(t, err, &arith)

	v, err := evalString(t, `10 / 4`, nil)
	require.NoError(t, err)
	assert.Equal(t, Number(2.5), v)
}

func pathEnv() *scopes {
	inner := NewMapping()
	inner.Set("key", String("deep"))
	dict := NewMapping()
	dict.Set("inner", inner)
	data := NewMapping()
	data.Set("arr", Sequence{Number(10), String("mid"), Number(30)})
	data.Set("dict", dict)
	data.Set("n", Number(7))
	return newScopes(data)
}

func TestEval_PathResolution(t *testing.T) {
	env := pathEnv()

	v, err := evalString(t, `$arr.0`, env)
	require.NoError(t, err)
	assert.Equal(t, Number(10), v)

	v, err = evalString(t, `$arr.1`, env)
	require.NoError(t, err)
	assert.Equal(t, String("mid"), v)

	v, err = evalString(t, `$arr.2 + $n`, env)
	require.NoError(t, err)
	assert.Equal(t, Number(37), v)

	v, err = evalString(t, `$dict.inner.key`, env)
	require.NoError(t, err)
	assert.Equal(t, String("deep"), v)
}

func TestEval_PathErrors(t *testing.T) {
	env := pathEnv()

	var undeclared *UndeclaredReferenceError
	_, err := evalString(t, `$missing`, env)
	require.ErrorAs(t, err, &undeclared)
	assert.Equal(t, RefVariable, undeclared.Kind)
	assert.Equal(t, "missing", undeclared.Name)

	_, err = evalString(t, `$arr.9`, env)
	require.ErrorAs(t, err, &undeclared, "index out of range")

	_, err = evalString(t, `$arr.x`, env)
	require.ErrorAs(t, err, &undeclared, "non-numeric index into a sequence")

	_, err = evalString(t, `$dict.nope`, env)
	require.ErrorAs(t, err, &undeclared, "missing mapping key")

	var mismatch *TypeMismatchError
	_, err = evalString(t, `$n.0`, env)
	require.ErrorAs(t, err, &mismatch, "indexing a scalar")
}

func TestEval_ScopeShadowing(t *testing.T) {
	env := pathEnv()
	env.enter()
	env.define("n", String("shadowed"))

	v, err := evalString(t, `$n`, env)
	require.NoError(t, err)
	assert.Equal(t, String("shadowed"), v)

	env.exit()
	v, err = evalString(t, `$n`, env)
	require.NoError(t, err)
	assert.Equal(t, Number(7), v)
}
