package sheetbuilder

import "fmt"

// SyntaxError indicates template source that does not conform to the grammar.
// Line and Column are 1-based positions into the source text.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// RefKind names the namespace an identifier lives in.
type RefKind string

const (
	RefFormat   RefKind = "format"
	RefAnchor   RefKind = "anchor"
	RefVariable RefKind = "variable"
	RefModifier RefKind = "style modifier"
)

// UndeclaredReferenceError indicates a format, anchor, style modifier or
// variable path that refers to something never declared or not resolvable
// in the injected data.
type UndeclaredReferenceError struct {
	Kind RefKind
	Name string
}

func (e *UndeclaredReferenceError) Error() string {
	switch e.Kind {
	case RefFormat:
		return fmt.Sprintf("undeclared format: :%s", e.Name)
	case RefAnchor:
		return fmt.Sprintf("undeclared anchor: @%s", e.Name)
	case RefVariable:
		return fmt.Sprintf("unresolved path: $%s", e.Name)
	case RefModifier:
		return fmt.Sprintf("unknown style modifier: %s", e.Name)
	}
	return fmt.Sprintf("undeclared %s: %s", e.Kind, e.Name)
}

// DuplicateDeclarationError indicates a repeated format name in the document
// or a repeated anchor name within a sheet.
type DuplicateDeclarationError struct {
	Kind RefKind
	Name string
}

func (e *DuplicateDeclarationError) Error() string {
	if e.Kind == RefAnchor {
		return fmt.Sprintf("anchor redeclared: @%s", e.Name)
	}
	return fmt.Sprintf("duplicate %s declaration: :%s", e.Kind, e.Name)
}

// TypeMismatchError indicates an operator, path segment or directive applied
// to an incompatible value kind.
type TypeMismatchError struct {
	Message string
}

func (e *TypeMismatchError) Error() string {
	return "type mismatch: " + e.Message
}

func binaryOpError(op string, lhs, rhs Value) *TypeMismatchError {
	return &TypeMismatchError{Message: fmt.Sprintf("invalid operation: %s %s %s", lhs.Kind(), op, rhs.Kind())}
}

func unaryOpError(op string, v Value) *TypeMismatchError {
	return &TypeMismatchError{Message: fmt.Sprintf("invalid operation: %s%s", op, v.Kind())}
}

// ArithmeticError indicates an invalid numeric operation such as division
// by zero.
type ArithmeticError struct {
	Message string
}

func (e *ArithmeticError) Error() string {
	return "arithmetic error: " + e.Message
}

// MalformedDateError indicates a date-cell expression that does not evaluate
// to a valid timestamp.
type MalformedDateError struct {
	Input string
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("malformed date: %q", e.Input)
}
