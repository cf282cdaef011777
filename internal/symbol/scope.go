package symbol

// ClassScope holds a class's static and field symbols for the lifetime of
// one compiled class: created when `class NAME {` is parsed, discarded once
// the class body is fully emitted.
type ClassScope struct {
	Name  string
	table table
}

// NewClassScope starts a fresh scope for a class named name.
func NewClassScope(name string) *ClassScope {
	return &ClassScope{Name: name, table: newTable()}
}

// AddStatic declares a static symbol and assigns it the next static index.
func (c *ClassScope) AddStatic(name, typ string) Symbol {
	return c.table.add(name, Static, typ)
}

// AddField declares a field symbol and assigns it the next field index.
func (c *ClassScope) AddField(name, typ string) Symbol {
	return c.table.add(name, Field, typ)
}

// Get looks up name among this class's static and field symbols.
func (c *ClassScope) Get(name string) (Symbol, bool) {
	return c.table.get(name)
}

// Count returns the number of symbols of kind declared in this class.
func (c *ClassScope) Count(kind Kind) uint16 {
	return c.table.count(kind)
}

// SubroutineScope holds one subroutine's argument and local-variable
// symbols, plus a borrowed reference to the enclosing ClassScope for
// fallback lookups. Created at each subroutine declaration, discarded at
// its closing brace.
type SubroutineScope struct {
	class      *ClassScope
	Name       string
	Kind       SubroutineKind
	ReturnType string
	table      table
}

// SubroutineKind distinguishes a Jack subroutine's calling convention.
type SubroutineKind int

const (
	Constructor SubroutineKind = iota
	Function
	Method
)

func (k SubroutineKind) String() string {
	switch k {
	case Constructor:
		return "constructor"
	case Function:
		return "function"
	case Method:
		return "method"
	default:
		return "invalid"
	}
}

// NewSubroutineScope starts a fresh scope for a subroutine of the given
// kind within class. For a method, argument index 0 is pre-inserted as
// "this" with the enclosing class's type, before any source-declared
// parameters.
func NewSubroutineScope(class *ClassScope, name string, kind SubroutineKind, returnType string) *SubroutineScope {
	s := &SubroutineScope{class: class, Name: name, Kind: kind, ReturnType: returnType, table: newTable()}
	if kind == Method {
		s.table.add("this", Arg, class.Name)
	}
	return s
}

// AddArg declares an argument symbol.
func (s *SubroutineScope) AddArg(name, typ string) Symbol {
	return s.table.add(name, Arg, typ)
}

// AddVar declares a local variable symbol.
func (s *SubroutineScope) AddVar(name, typ string) Symbol {
	return s.table.add(name, Var, typ)
}

// Get resolves name against this subroutine's own arg/var symbols first,
// falling back to the enclosing class's static/field symbols. Subroutine
// symbols therefore shadow class symbols of the same name.
func (s *SubroutineScope) Get(name string) (Symbol, bool) {
	if sym, ok := s.table.get(name); ok {
		return sym, true
	}
	return s.class.Get(name)
}

// ClassName returns the name of the enclosing class.
func (s *SubroutineScope) ClassName() string {
	return s.class.Name
}

// VarCount returns the number of `var` locals declared in this subroutine,
// the value `function C.f n` must report.
func (s *SubroutineScope) VarCount() uint16 {
	return s.table.count(Var)
}

// FieldCount returns the number of `field` symbols in the enclosing class,
// the value a constructor's allocation size must match.
func (s *SubroutineScope) FieldCount() uint16 {
	return s.class.Count(Field)
}
