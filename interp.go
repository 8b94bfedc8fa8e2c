package sheetbuilder

// Template is a compiled template, ready to run any number of times against
// independent data trees. A run is single-threaded and single-pass: it
// either drives the sink through the whole instruction stream or stops at
// the first error.

type Template struct {
	doc *document
}

// Parse compiles template source text. Any input not matching the grammar
// fails with a SyntaxError carrying the source position; a repeated format
// name fails with a DuplicateDeclarationError.
func Parse(src string) (*Template, error) {
	doc, err := parseDocument(src)
	if err != nil {
		return nil, err
	}
	return &Template{doc: doc}, nil
}

// Execute runs the template against data, emitting the resolved instruction
// stream to sink. data may be nil for templates that reference no variables.
// The first error aborts the run.
func (t *Template) Execute(data *Mapping, sink Sink) error {
	env := newScopes(data)
	styles, err := buildStyles(t.doc.formats, env)
	if err != nil {
		return err
	}
	run := &interp{env: env, styles: styles, sink: sink}
	for _, sheet := range t.doc.sheets {
		if err := sink.NewSheet(sheet.name); err != nil {
			return err
		}
		run.cur = newCursor()
		if err := run.exec(sheet.body); err != nil {
			return err
		}
	}
	return nil
}

type interp struct {
	env    *scopes
	styles styleTable
	sink   Sink
	cur    *cursor
}

func (r *interp) exec(stmts []statement) error {
	for _, stmt := range stmts {
		var err error
		switch s := stmt.(type) {
		case colStmt:
			err = r.sink.SetColumnWidth(s.from, s.to, s.unit, s.size)
		case rowStmt:
			err = r.sink.SetRowHeight(s.idx, s.unit, s.size)
		case anchorStmt:
			err = r.cur.declareAnchor(s.name)
		case moveStmt:
			err = r.cur.move(s.anchor, s.dRow, s.dCol)
		case crStmt:
			r.cur.carriageReturn()
		case autofitStmt:
			err = r.sink.AutofitColumns()
		case rowEmit:
			err = r.emitRow(s)
		case forStmt:
			err = r.expandLoop(s)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// emitRow places each cell at the cursor, advancing the column by the
// cell's colspan, then advances the row by exactly 1.
func (r *interp) emitRow(row rowEmit) error {
	r.cur.beginRow()
	for _, cell := range row.cells {
		style, err := r.cellStyle(cell)
		if err != nil {
			return err
		}
		v, err := evalExpr(cell.expr, r.env)
		if err != nil {
			return err
		}
		if cell.kind == CellImage {
			path, ok := v.(String)
			if !ok {
				return &TypeMismatchError{Message: "img expects a string path, got " + v.Kind().String()}
			}
			if err := r.sink.PlaceImage(r.cur.row, r.cur.col, string(path), cell.mode, style); err != nil {
				return err
			}
		} else {
			content, err := cellContent(cell.kind, v)
			if err != nil {
				return err
			}
			if err := r.sink.PlaceCell(r.cur.row, r.cur.col, cell.kind, content, style, cell.colspan, cell.rowspan); err != nil {
				return err
			}
		}
		r.cur.col += cell.colspan
	}
	r.cur.endRow()
	return nil
}

func (r *interp) cellStyle(cell cellNode) (*Style, error) {
	if cell.format == "" {
		return nil, nil
	}
	style, ok := r.styles[cell.format]
	if !ok {
		return nil, &UndeclaredReferenceError{Kind: RefFormat, Name: cell.format}
	}
	return style, nil
}

// cellContent checks the evaluated value against the cell constructor and
// normalizes it for the sink.
func cellContent(kind CellKind, v Value) (Value, error) {
	switch kind {
	case CellNumber:
		if n, ok := v.(Number); ok {
			return n, nil
		}
		return nil, &TypeMismatchError{Message: "num expects a number, got " + v.Kind().String()}
	case CellDate:
		switch d := v.(type) {
		case Date:
			return d, nil
		case String:
			parsed, err := parseDate(string(d))
			if err != nil {
				return nil, err
			}
			return parsed, nil
		}
		return nil, &MalformedDateError{Input: displayString(v)}
	default: // CellString
		switch v.Kind() {
		case KindSequence, KindMapping:
			return nil, &TypeMismatchError{Message: "str expects a scalar, got " + v.Kind().String()}
		}
		return String(displayString(v)), nil
	}
}

// expandLoop evaluates the source expression and re-runs the body once per
// element, with the loop variable (and a zero-based $index) bound in a fresh
// scope. Sequences iterate in order, mappings iterate over their values in
// insertion order; anything else is not iterable.
func (r *interp) expandLoop(loop forStmt) error {
	src, err := evalExpr(loop.source, r.env)
	if err != nil {
		return err
	}
	var values []Value
	switch s := src.(type) {
	case Sequence:
		values = s
	case *Mapping:
		values = make([]Value, 0, s.Len())
		for _, k := range s.Keys() {
			v, _ := s.Get(k)
			values = append(values, v)
		}
	default:
		return &TypeMismatchError{Message: "not iterable: " + src.Kind().String()}
	}
	for i, v := range values {
		r.env.enter()
		r.env.define(loop.loopVar, v)
		r.env.define("index", Number(i))
		err := r.exec(loop.body)
		r.env.exit()
		if err != nil {
			return err
		}
	}
	return nil
}
