package sheetbuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Recursive-descent parser over the token stream. Syntax only; name
// resolution and typing happen during interpretation. The single exception
// is duplicate format names, which the grammar itself forbids.

type parser struct {
	lex *lexer
	tok token
}

func parseDocument(src string) (*document, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.next(); err != nil {
		return nil, err
	}
	doc := &document{}
	seen := map[string]bool{}

	for p.tok.kind != tokenEOF {
		switch {
		case p.tok.kind == tokenFormat:
			if len(doc.sheets) > 0 {
				return nil, p.errHere("format declarations must precede any sheet body")
			}
			decl, err := p.parseFormatDecl()
			if err != nil {
				return nil, err
			}
			if seen[decl.name] {
				return nil, &DuplicateDeclarationError{Kind: RefFormat, Name: decl.name}
			}
			seen[decl.name] = true
			doc.formats = append(doc.formats, decl)

		case p.tok.kind == tokenIdent && p.tok.text == "sheet":
			sheet, err := p.parseSheetHeader()
			if err != nil {
				return nil, err
			}
			doc.sheets = append(doc.sheets, sheet)

		default:
			if len(doc.sheets) == 0 {
				return nil, p.errHere("statement outside any sheet; open one with sheet(...) first")
			}
			stmt, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			last := &doc.sheets[len(doc.sheets)-1]
			last.body = append(last.body, stmt)
		}
	}
	return doc, nil
}

func (p *parser) next() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) errHere(format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Line: p.tok.line, Column: p.tok.col, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(kind tokenKind) (token, error) {
	if p.tok.kind != kind {
		return token{}, p.errHere("expected %s, got %s", kind, p.describe())
	}
	tok := p.tok
	if err := p.next(); err != nil {
		return token{}, err
	}
	return tok, nil
}

func (p *parser) describe() string {
	if p.tok.kind == tokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", p.tok.kind, p.tok.text)
}

// :name { modifier, modifier(expr), ... }
func (p *parser) parseFormatDecl() (formatDecl, error) {
	decl := formatDecl{name: p.tok.text, line: p.tok.line, col: p.tok.col}
	if err := p.next(); err != nil {
		return decl, err
	}
	if _, err := p.expect(tokenLBrace); err != nil {
		return decl, err
	}
	for p.tok.kind != tokenRBrace {
		name, err := p.expect(tokenIdent)
		if err != nil {
			return decl, err
		}
		mod := styleModifier{name: name.text, line: name.line, col: name.col}
		if p.tok.kind == tokenLParen {
			if err := p.next(); err != nil {
				return decl, err
			}
			arg, err := p.parseExpr()
			if err != nil {
				return decl, err
			}
			mod.arg = arg
			if _, err := p.expect(tokenRParen); err != nil {
				return decl, err
			}
		}
		decl.modifiers = append(decl.modifiers, mod)
		if p.tok.kind == tokenComma {
			if err := p.next(); err != nil {
				return decl, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(tokenRBrace); err != nil {
		return decl, err
	}
	return decl, nil
}

// sheet("name")
func (p *parser) parseSheetHeader() (sheetNode, error) {
	if err := p.next(); err != nil { // consume 'sheet'
		return sheetNode{}, err
	}
	if _, err := p.expect(tokenLParen); err != nil {
		return sheetNode{}, err
	}
	name, err := p.expect(tokenString)
	if err != nil {
		return sheetNode{}, err
	}
	if _, err := p.expect(tokenRParen); err != nil {
		return sheetNode{}, err
	}
	return sheetNode{name: name.text}, nil
}

func (p *parser) parseStatement() (statement, error) {
	if p.tok.kind == tokenLBracket {
		return p.parseRowEmit()
	}
	if p.tok.kind != tokenIdent {
		return nil, p.errHere("expected a statement, got %s", p.describe())
	}
	switch p.tok.text {
	case "col":
		return p.parseColStmt()
	case "row":
		return p.parseRowStmt()
	case "anchor":
		return p.parseAnchorStmt()
	case "move":
		return p.parseMoveStmt()
	case "cr":
		if err := p.next(); err != nil {
			return nil, err
		}
		return crStmt{}, nil
	case "autofit":
		if err := p.next(); err != nil {
			return nil, err
		}
		return autofitStmt{}, nil
	case "for":
		return p.parseForStmt()
	}
	return nil, p.errHere("unknown statement %q", p.tok.text)
}

// col(from, to, unit(size))
func (p *parser) parseColStmt() (statement, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenLParen); err != nil {
		return nil, err
	}
	from, err := p.parseIntArg()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenComma); err != nil {
		return nil, err
	}
	to, err := p.parseIntArg()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenComma); err != nil {
		return nil, err
	}
	unit, size, err := p.parseSizeSpec()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenRParen); err != nil {
		return nil, err
	}
	return colStmt{from: from, to: to, unit: unit, size: size}, nil
}

// row(idx, unit(size))
func (p *parser) parseRowStmt() (statement, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenLParen); err != nil {
		return nil, err
	}
	idx, err := p.parseIntArg()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenComma); err != nil {
		return nil, err
	}
	unit, size, err := p.parseSizeSpec()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenRParen); err != nil {
		return nil, err
	}
	return rowStmt{idx: idx, unit: unit, size: size}, nil
}

// chars(12.5) or pixels(96)
func (p *parser) parseSizeSpec() (SizeUnit, float64, error) {
	name, err := p.expect(tokenIdent)
	if err != nil {
		return 0, 0, err
	}
	var unit SizeUnit
	switch name.text {
	case "chars":
		unit = UnitChars
	case "pixels":
		unit = UnitPixels
	default:
		return 0, 0, &SyntaxError{Line: name.line, Column: name.col,
			Message: fmt.Sprintf("unknown size unit %q, want chars or pixels", name.text)}
	}
	if _, err := p.expect(tokenLParen); err != nil {
		return 0, 0, err
	}
	num, err := p.expect(tokenNumber)
	if err != nil {
		return 0, 0, err
	}
	size, err := strconv.ParseFloat(num.text, 64)
	if err != nil {
		return 0, 0, &SyntaxError{Line: num.line, Column: num.col, Message: "invalid number " + num.text}
	}
	if _, err := p.expect(tokenRParen); err != nil {
		return 0, 0, err
	}
	return unit, size, nil
}

// anchor(@name)
func (p *parser) parseAnchorStmt() (statement, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenLParen); err != nil {
		return nil, err
	}
	name, err := p.expect(tokenAnchor)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenRParen); err != nil {
		return nil, err
	}
	return anchorStmt{name: name.text}, nil
}

// move(@name, dRow, dCol) or move(dRow, dCol)
func (p *parser) parseMoveStmt() (statement, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenLParen); err != nil {
		return nil, err
	}
	var anchor string
	if p.tok.kind == tokenAnchor {
		anchor = p.tok.text
		if err := p.next(); err != nil {
			return nil, err
		}
		if _, err := p.expect(tokenComma); err != nil {
			return nil, err
		}
	}
	dRow, err := p.parseSignedIntArg()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenComma); err != nil {
		return nil, err
	}
	dCol, err := p.parseSignedIntArg()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenRParen); err != nil {
		return nil, err
	}
	return moveStmt{anchor: anchor, dRow: dRow, dCol: dCol}, nil
}

// for $var in expr { body }
func (p *parser) parseForStmt() (statement, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	v, err := p.expect(tokenVariable)
	if err != nil {
		return nil, err
	}
	if strings.Contains(v.text, ".") {
		return nil, &SyntaxError{Line: v.line, Column: v.col, Message: "loop variable must be a plain name, not a path"}
	}
	kw, err := p.expect(tokenIdent)
	if err != nil {
		return nil, err
	}
	if kw.text != "in" {
		return nil, &SyntaxError{Line: kw.line, Column: kw.col, Message: fmt.Sprintf("expected 'in', got %q", kw.text)}
	}
	source, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenLBrace); err != nil {
		return nil, err
	}
	var body []statement
	for p.tok.kind != tokenRBrace {
		if p.tok.kind == tokenEOF {
			return nil, p.errHere("unterminated for loop body")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	if err := p.next(); err != nil { // consume '}'
		return nil, err
	}
	return forStmt{loopVar: v.text, source: source, body: body}, nil
}

// [ cell, cell, ... ]
func (p *parser) parseRowEmit() (statement, error) {
	if err := p.next(); err != nil { // consume '['
		return nil, err
	}
	var cells []cellNode
	for p.tok.kind != tokenRBracket {
		cell, err := p.parseCell()
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell)
		if p.tok.kind == tokenComma {
			if err := p.next(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(tokenRBracket); err != nil {
		return nil, err
	}
	return rowEmit{cells: cells}, nil
}

// str(expr[, :fmt][, colspan(n)][, rowspan(n)]) and friends; img additionally
// accepts an embed or insert placement keyword.
func (p *parser) parseCell() (cellNode, error) {
	name, err := p.expect(tokenIdent)
	if err != nil {
		return cellNode{}, err
	}
	cell := cellNode{colspan: 1, rowspan: 1}
	switch name.text {
	case "str":
		cell.kind = CellString
	case "num":
		cell.kind = CellNumber
	case "date":
		cell.kind = CellDate
	case "img":
		cell.kind = CellImage
	default:
		return cellNode{}, &SyntaxError{Line: name.line, Column: name.col,
			Message: fmt.Sprintf("unknown cell constructor %q, want str, num, date or img", name.text)}
	}
	if _, err := p.expect(tokenLParen); err != nil {
		return cellNode{}, err
	}
	cell.expr, err = p.parseExpr()
	if err != nil {
		return cellNode{}, err
	}
	for p.tok.kind == tokenComma {
		if err := p.next(); err != nil {
			return cellNode{}, err
		}
		if err := p.parseCellOption(&cell); err != nil {
			return cellNode{}, err
		}
	}
	if _, err := p.expect(tokenRParen); err != nil {
		return cellNode{}, err
	}
	return cell, nil
}

func (p *parser) parseCellOption(cell *cellNode) error {
	if p.tok.kind == tokenFormat {
		cell.format = p.tok.text
		return p.next()
	}
	opt, err := p.expect(tokenIdent)
	if err != nil {
		return err
	}
	switch opt.text {
	case "colspan", "rowspan":
		if _, err := p.expect(tokenLParen); err != nil {
			return err
		}
		num, err := p.expect(tokenNumber)
		if err != nil {
			return err
		}
		n, convErr := strconv.Atoi(num.text)
		if convErr != nil || n < 1 {
			return &SyntaxError{Line: num.line, Column: num.col,
				Message: fmt.Sprintf("%s must be an integer >= 1", opt.text)}
		}
		if _, err := p.expect(tokenRParen); err != nil {
			return err
		}
		if opt.text == "colspan" {
			cell.colspan = n
		} else {
			cell.rowspan = n
		}
		return nil
	case "embed", "insert":
		if cell.kind != CellImage {
			return &SyntaxError{Line: opt.line, Column: opt.col,
				Message: fmt.Sprintf("%s placement applies to img cells only", opt.text)}
		}
		if opt.text == "insert" {
			cell.mode = ImageInsert
		} else {
			cell.mode = ImageEmbed
		}
		return nil
	}
	return &SyntaxError{Line: opt.line, Column: opt.col, Message: fmt.Sprintf("unknown cell option %q", opt.text)}
}

func (p *parser) parseIntArg() (int, error) {
	num, err := p.expect(tokenNumber)
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(num.text)
	if convErr != nil {
		return 0, &SyntaxError{Line: num.line, Column: num.col, Message: "expected an integer, got " + num.text}
	}
	return n, nil
}

func (p *parser) parseSignedIntArg() (int, error) {
	neg := false
	if p.tok.kind == tokenMinus {
		neg = true
		if err := p.next(); err != nil {
			return 0, err
		}
	}
	n, err := p.parseIntArg()
	if err != nil {
		return 0, err
	}
	if neg {
		n = -n
	}
	return n, nil
}

// Expression grammar, precedence encoded in the descent:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = "-" unary | primary
//	primary = number | string | variable | "(" expr ")"
func (p *parser) parseExpr() (exprNode, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokenPlus || p.tok.kind == tokenMinus {
		op := p.tok.text
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &binaryExpr{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (exprNode, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokenStar || p.tok.kind == tokenSlash {
		op := p.tok.text
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &binaryExpr{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (exprNode, error) {
	if p.tok.kind == tokenMinus {
		if err := p.next(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unaryExpr{op: "-", operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (exprNode, error) {
	switch p.tok.kind {
	case tokenNumber:
		f, err := strconv.ParseFloat(p.tok.text, 64)
		if err != nil {
			return nil, p.errHere("invalid number %s", p.tok.text)
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		return &literalExpr{val: Number(f)}, nil
	case tokenString:
		s := p.tok.text
		if err := p.next(); err != nil {
			return nil, err
		}
		return &literalExpr{val: String(s)}, nil
	case tokenVariable:
		v := &varExpr{full: p.tok.text, segs: strings.Split(p.tok.text, ".")}
		if err := p.next(); err != nil {
			return nil, err
		}
		return v, nil
	case tokenLParen:
		if err := p.next(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokenRParen); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, p.errHere("expected an expression, got %s", p.describe())
}
