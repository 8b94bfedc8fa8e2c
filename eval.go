package sheetbuilder

import "strconv"

// Expression evaluation. Operators are left-associative, unary minus binds
// tighter than * and /, which bind tighter than + and -; the parser already
// encoded that shape into the tree, so evaluation is a plain walk.

func evalExpr(e exprNode, env *scopes) (Value, error) {
	switch n := e.(type) {
	case *literalExpr:
		return n.val, nil
	case *varExpr:
		return resolvePath(n, env)
	case *unaryExpr:
		v, err := evalExpr(n.operand, env)
		if err != nil {
			return nil, err
		}
		num, ok := v.(Number)
		if !ok {
			return nil, unaryOpError(n.op, v)
		}
		return Number(-float64(num)), nil
	case *binaryExpr:
		lhs, err := evalExpr(n.left, env)
		if err != nil {
			return nil, err
		}
		rhs, err := evalExpr(n.right, env)
		if err != nil {
			return nil, err
		}
		return applyBinary(n.op, lhs, rhs)
	}
	return nil, &TypeMismatchError{Message: "unknown expression form"}
}

func applyBinary(op string, lhs, rhs Value) (Value, error) {
	if op == "+" {
		// The one deliberate coercion of the language: + between a string
		// and a number concatenates, with the number rendered in canonical
		// decimal form. Everything else stays strictly numeric.
		switch l := lhs.(type) {
		case String:
			switch r := rhs.(type) {
			case String:
				return l + r, nil
			case Number:
				return l + String(formatNumber(float64(r))), nil
			}
			return nil, binaryOpError(op, lhs, rhs)
		case Number:
			if r, ok := rhs.(String); ok {
				return String(formatNumber(float64(l))) + r, nil
			}
		}
	}

	l, ok := lhs.(Number)
	if !ok {
		return nil, binaryOpError(op, lhs, rhs)
	}
	r, ok := rhs.(Number)
	if !ok {
		return nil, binaryOpError(op, lhs, rhs)
	}
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return nil, &ArithmeticError{Message: "division by zero"}
		}
		return l / r, nil
	}
	return nil, &TypeMismatchError{Message: "unknown operator " + op}
}

// resolvePath looks up the root name in the environment and walks the
// remaining segments: an integer segment indexes a sequence, any other
// segment keys a mapping. A missing name or key is an unresolved path; a
// segment applied to a kind that cannot be indexed is a type mismatch.
func resolvePath(v *varExpr, env *scopes) (Value, error) {
	cur, ok := env.lookup(v.segs[0])
	if !ok {
		return nil, &UndeclaredReferenceError{Kind: RefVariable, Name: v.full}
	}
	for _, seg := range v.segs[1:] {
		switch c := cur.(type) {
		case Sequence:
			idx, err := strconv.Atoi(seg)
			if err != nil {
				return nil, &UndeclaredReferenceError{Kind: RefVariable, Name: v.full}
			}
			if idx < 0 || idx >= len(c) {
				return nil, &UndeclaredReferenceError{Kind: RefVariable, Name: v.full}
			}
			cur = c[idx]
		case *Mapping:
			next, ok := c.Get(seg)
			if !ok {
				return nil, &UndeclaredReferenceError{Kind: RefVariable, Name: v.full}
			}
			cur = next
		default:
			return nil, &TypeMismatchError{Message: "cannot index " + cur.Kind().String() + " in $" + v.full}
		}
	}
	return cur, nil
}
