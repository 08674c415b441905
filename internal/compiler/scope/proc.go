package scope

import "fmt"

// ArityError reports a procedure call whose argument count does not
// match its declared parameter count.
type ArityError struct {
	Name     string
	Want     int
	Got      int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("procedure %q expects %d argument(s), got %d", e.Name, e.Want, e.Got)
}

// UndeclaredProcError reports a call to a name with no registered
// procedure descriptor.
type UndeclaredProcError struct{ Name string }

func (e *UndeclaredProcError) Error() string {
	return fmt.Sprintf("procedure %q not declared", e.Name)
}

// RedeclaredProcError reports a second declaration of the same
// procedure name.
type RedeclaredProcError struct{ Name string }

func (e *RedeclaredProcError) Error() string {
	return fmt.Sprintf("procedure %q already declared", e.Name)
}

// DeclareProc registers a completed procedure descriptor. Procedure
// names share one global, flat namespace distinct from variable scopes.
func (t *Table) DeclareProc(d *ProcDescriptor) error {
	if _, exists := t.Procs[d.Name]; exists {
		return &RedeclaredProcError{Name: d.Name}
	}
	t.Procs[d.Name] = d
	return nil
}

// ResolveProc looks up a procedure descriptor by name and checks arity.
func (t *Table) ResolveProc(name string, argCount int) (*ProcDescriptor, error) {
	d, ok := t.Procs[name]
	if !ok {
		return nil, &UndeclaredProcError{Name: name}
	}
	if d.ParamCount != argCount {
		return nil, &ArityError{Name: name, Want: d.ParamCount, Got: argCount}
	}
	return d, nil
}
