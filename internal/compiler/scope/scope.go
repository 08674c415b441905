package scope

import "fmt"

// Scope is one frame of the lexical scope stack: a name-to-Symbol map,
// plus a running count of declarations made directly in this frame. The
// count travels with the frame rather than living on a separate stack,
// since EnterScope/LeaveScope already push and pop frames in lock-step —
// see DESIGN.md's Open Question notes.
type Scope struct {
	Name    string
	Symbols map[string]Symbol
	Count   int
}

func newScope(name string) *Scope {
	return &Scope{Name: name, Symbols: make(map[string]Symbol)}
}

// Table is the LALG symbol table: a stack of Scopes over one flat,
// monotonically increasing address counter. Index 0 of the stack is the
// global scope, created at NewTable and never popped.
type Table struct {
	scopes   []*Scope
	nextAddr int
	Procs    map[string]*ProcDescriptor
}

func NewTable() *Table {
	t := &Table{Procs: make(map[string]*ProcDescriptor)}
	t.scopes = []*Scope{newScope("global")}
	return t
}

// EnterScope pushes a new, empty scope onto the stack.
func (t *Table) EnterScope(name string) {
	t.scopes = append(t.scopes, newScope(name))
}

// LeaveScope pops the innermost scope. It is an error to pop the global
// scope.
func (t *Table) LeaveScope() error {
	if len(t.scopes) == 1 {
		return fmt.Errorf("cannot leave the global scope")
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
	return nil
}

func (t *Table) top() *Scope {
	return t.scopes[len(t.scopes)-1]
}

// InGlobalScope reports whether the scope stack currently holds only the
// global frame.
func (t *Table) InGlobalScope() bool {
	return len(t.scopes) == 1
}

// TopScope exposes the innermost scope, e.g. so a procedure epilogue can
// read how many locals+parameters it accumulated (Scope.Count) to size
// its DESM.
func (t *Table) TopScope() *Scope {
	return t.top()
}

// Declare inserts name into the innermost scope and allocates it the next
// address from the single shared counter. It fails with RedeclaredError
// if name already exists in that scope.
func (t *Table) Declare(name string, typ Type, category Category) (int, error) {
	s := t.top()
	if _, exists := s.Symbols[name]; exists {
		return 0, &RedeclaredError{Name: name}
	}
	addr := t.nextAddr
	t.nextAddr++
	s.Symbols[name] = Symbol{Name: name, Type: typ, Category: category, Address: addr}
	s.Count++
	return addr, nil
}

// Resolve walks the scope stack from innermost to global and returns the
// address of the first match. Fails with UndeclaredError if name is not
// visible in any scope currently on the stack.
func (t *Table) Resolve(name string) (int, error) {
	sym, err := t.lookup(name)
	if err != nil {
		return 0, err
	}
	return sym.Address, nil
}

// TypeOf returns the declared type of name, walking the scope stack the
// same way Resolve does.
func (t *Table) TypeOf(name string) (Type, error) {
	sym, err := t.lookup(name)
	if err != nil {
		return "", err
	}
	return sym.Type, nil
}

func (t *Table) lookup(name string) (Symbol, error) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i].Symbols[name]; ok {
			return sym, nil
		}
	}
	return Symbol{}, &UndeclaredError{Name: name}
}
