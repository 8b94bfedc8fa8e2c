package sheetbuilder

// scopes is the stack of name bindings visible during a run. The outermost
// scope holds the injected top-level data; each loop iteration pushes a scope
// with its loop variable, so loop variables shadow data of the same name.
type scopes struct {
	stack []map[string]Value
}

func newScopes(data *Mapping) *scopes {
	base := map[string]Value{}
	if data != nil {
		for _, k := range data.Keys() {
			v, _ := data.Get(k)
			base[k] = v
		}
	}
	return &scopes{stack: []map[string]Value{base}}
}

func (s *scopes) enter() {
	s.stack = append(s.stack, map[string]Value{})
}

func (s *scopes) exit() {
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *scopes) define(name string, v Value) {
	s.stack[len(s.stack)-1][name] = v
}

// lookup searches innermost scope first.
func (s *scopes) lookup(name string) (Value, bool) {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if v, ok := s.stack[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}
