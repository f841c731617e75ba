package lang

// Program is a sequence of function definitions followed by one main
// expression.
type Program struct {
	Defs []*FunDef
	Main Expr
}

type FunDef struct {
	Name   Identifier
	Params []Identifier
	Body   Expr
}

type Identifier string

type Expr interface {
	exprNode()
}

type (
	Eof struct{}

	IntLit struct {
		Value int64
	}

	BoolLit struct {
		Value bool
	}

	CharLit struct {
		Value rune
	}

	StringLit struct {
		Value string
	}

	EmptyListLit struct{}

	Prim0 struct {
		Op Op0
	}

	Prim1 struct {
		Op  Op1
		Arg Expr
	}

	Prim2 struct {
		Op     Op2
		First  Expr
		Second Expr
	}

	Prim3 struct {
		Op     Op3
		First  Expr
		Second Expr
		Third  Expr
	}

	Begin struct {
		First  Expr
		Second Expr
	}

	If struct {
		Cond Expr
		Then Expr
		Else Expr
	}

	Binding struct {
		Name Identifier
		RHS  Expr
	}

	Let struct {
		Binding Binding
		Body    Expr
	}

	Variable struct {
		Name Identifier
	}

	Match struct {
		Target Expr
		Arms   []Arm
	}

	Arm struct {
		Pattern Pattern
		Body    Expr
	}

	App struct {
		Function Identifier
		Args     []Expr
	}
)

func (*Eof) exprNode()          {}
func (*IntLit) exprNode()       {}
func (*BoolLit) exprNode()      {}
func (*CharLit) exprNode()      {}
func (*StringLit) exprNode()    {}
func (*EmptyListLit) exprNode() {}
func (*Prim0) exprNode()        {}
func (*Prim1) exprNode()        {}
func (*Prim2) exprNode()        {}
func (*Prim3) exprNode()        {}
func (*Begin) exprNode()        {}
func (*If) exprNode()           {}
func (*Let) exprNode()          {}
func (*Variable) exprNode()     {}
func (*Match) exprNode()        {}
func (*App) exprNode()          {}

type Pattern interface {
	patternNode()
}

type (
	PWildcard struct{}

	PVariable struct {
		Name Identifier
	}

	// PLit matches one of the literal expression types.
	PLit struct {
		Lit Expr
	}

	PCons struct {
		Car Pattern
		Cdr Pattern
	}

	PBox struct {
		Sub Pattern
	}

	PAnd struct {
		Left  Pattern
		Right Pattern
	}
)

func (*PWildcard) patternNode() {}
func (*PVariable) patternNode() {}
func (*PLit) patternNode()      {}
func (*PCons) patternNode()     {}
func (*PBox) patternNode()      {}
func (*PAnd) patternNode()      {}

type Op0 int

const (
	OpReadByte Op0 = iota
	OpPeekByte
)

func (op Op0) String() string {
	switch op {
	case OpReadByte:
		return "read-byte"
	case OpPeekByte:
		return "peek-byte"
	}
	return "unknown-op0"
}

type Op1 int

const (
	OpAdd1 Op1 = iota
	OpSub1
	OpIsZero
	OpIsChar
	OpIsEof
	OpIsBox
	OpIsCons
	OpIsVector
	OpIsString
	OpIntToChar
	OpCharToInt
	OpWriteByte
	OpBox
	OpUnbox
	OpCar
	OpCdr
)

func (op Op1) String() string {
	switch op {
	case OpAdd1:
		return "add1"
	case OpSub1:
		return "sub1"
	case OpIsZero:
		return "zero?"
	case OpIsChar:
		return "char?"
	case OpIsEof:
		return "eof-object?"
	case OpIsBox:
		return "box?"
	case OpIsCons:
		return "cons?"
	case OpIsVector:
		return "vector?"
	case OpIsString:
		return "string?"
	case OpIntToChar:
		return "integer->char"
	case OpCharToInt:
		return "char->integer"
	case OpWriteByte:
		return "write-byte"
	case OpBox:
		return "box"
	case OpUnbox:
		return "unbox"
	case OpCar:
		return "car"
	case OpCdr:
		return "cdr"
	}
	return "unknown-op1"
}

type Op2 int

const (
	OpAdd Op2 = iota
	OpSub
	OpLessThan
	OpEqual
	OpCons
	OpMakeVector
	OpMakeString
	OpVectorRef
	OpStringRef
)

func (op Op2) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpLessThan:
		return "<"
	case OpEqual:
		return "="
	case OpCons:
		return "cons"
	case OpMakeVector:
		return "make-vector"
	case OpMakeString:
		return "make-string"
	case OpVectorRef:
		return "vector-ref"
	case OpStringRef:
		return "string-ref"
	}
	return "unknown-op2"
}

type Op3 int

const (
	OpVectorSet Op3 = iota
)

func (op Op3) String() string {
	switch op {
	case OpVectorSet:
		return "vector-set!"
	}
	return "unknown-op3"
}
