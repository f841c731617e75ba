package lang

import "fmt"

// Parse compiles source text into a Program: zero or more function
// definitions followed by exactly one main expression.
func Parse(source string) (*Program, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	exprs, err := Read(tokens)
	if err != nil {
		return nil, err
	}
	return ParseProgram(exprs)
}

func ParseProgram(exprs []SExpr) (*Program, error) {
	if len(exprs) == 0 {
		return nil, parseErr("empty program", Position{Line: 1, Column: 1})
	}
	prog := &Program{}
	for i, expr := range exprs {
		if isDefine(expr) {
			if i == len(exprs)-1 {
				return nil, parseErr("program must end with an expression", expr.Pos())
			}
			def, err := parseDefine(expr.(*List))
			if err != nil {
				return nil, err
			}
			prog.Defs = append(prog.Defs, def)
			continue
		}
		if i != len(exprs)-1 {
			return nil, parseErr("only function definitions may precede the main expression", expr.Pos())
		}
		main, err := parseExpr(expr)
		if err != nil {
			return nil, err
		}
		prog.Main = main
	}
	return prog, nil
}

func isDefine(expr SExpr) bool {
	list, ok := expr.(*List)
	if !ok || len(list.Items) == 0 {
		return false
	}
	atom, ok := list.Items[0].(*Atom)
	if !ok {
		return false
	}
	sym, ok := atom.Symbol()
	return ok && sym == "define"
}

// parseDefine parses `(define (name params...) body)`.
func parseDefine(list *List) (*FunDef, error) {
	if len(list.Items) != 3 {
		return nil, parseErr("`define` should be of the form `(define (name params...) body)`", list.Pos())
	}
	sig, ok := list.Items[1].(*List)
	if !ok || len(sig.Items) == 0 {
		return nil, parseErr("expected a function signature", list.Items[1].Pos())
	}
	name, err := parseIdentifier(sig.Items[0])
	if err != nil {
		return nil, err
	}
	var params []Identifier
	for _, p := range sig.Items[1:] {
		param, err := parseIdentifier(p)
		if err != nil {
			return nil, err
		}
		params = append(params, param)
	}
	body, err := parseExpr(list.Items[2])
	if err != nil {
		return nil, err
	}
	return &FunDef{Name: name, Params: params, Body: body}, nil
}

func parseIdentifier(expr SExpr) (Identifier, error) {
	atom, ok := expr.(*Atom)
	if !ok {
		return "", parseErr("expected an identifier", expr.Pos())
	}
	sym, ok := atom.Symbol()
	if !ok {
		return "", parseErr("expected an identifier", expr.Pos())
	}
	return Identifier(sym), nil
}

func parseExpr(expr SExpr) (Expr, error) {
	switch v := expr.(type) {
	case *Atom:
		return parseAtom(v)
	case *List:
		return parseList(v)
	}
	return nil, parseErr("unexpected expression", expr.Pos())
}

func parseAtom(atom *Atom) (Expr, error) {
	switch atom.Kind {
	case AtomInteger:
		return &IntLit{Value: atom.Value.(int64)}, nil
	case AtomBoolean:
		return &BoolLit{Value: atom.Value.(bool)}, nil
	case AtomCharacter:
		return &CharLit{Value: atom.Value.(rune)}, nil
	case AtomString:
		return &StringLit{Value: atom.Value.(string)}, nil
	case AtomSymbol:
		sym := atom.Value.(string)
		if sym == "eof" {
			return &Eof{}, nil
		}
		return &Variable{Name: Identifier(sym)}, nil
	}
	return nil, parseErr("unexpected atom", atom.Pos())
}

var prim0Ops = map[string]Op0{
	"read-byte": OpReadByte,
	"peek-byte": OpPeekByte,
}

var prim1Ops = map[string]Op1{
	"add1":          OpAdd1,
	"sub1":          OpSub1,
	"zero?":         OpIsZero,
	"char?":         OpIsChar,
	"eof-object?":   OpIsEof,
	"box?":          OpIsBox,
	"cons?":         OpIsCons,
	"vector?":       OpIsVector,
	"string?":       OpIsString,
	"integer->char": OpIntToChar,
	"char->integer": OpCharToInt,
	"write-byte":    OpWriteByte,
	"box":           OpBox,
	"unbox":         OpUnbox,
	"car":           OpCar,
	"cdr":           OpCdr,
}

var prim2Ops = map[string]Op2{
	"+":           OpAdd,
	"-":           OpSub,
	"<":           OpLessThan,
	"=":           OpEqual,
	"cons":        OpCons,
	"make-vector": OpMakeVector,
	"make-string": OpMakeString,
	"vector-ref":  OpVectorRef,
	"string-ref":  OpStringRef,
}

var prim3Ops = map[string]Op3{
	"vector-set!": OpVectorSet,
}

func parseList(list *List) (Expr, error) {
	if len(list.Items) == 0 {
		return &EmptyListLit{}, nil
	}
	head := list.Items[0]
	rest := list.Items[1:]

	atom, ok := head.(*Atom)
	if !ok {
		return nil, parseErr("expected an operator", head.Pos())
	}
	sym, ok := atom.Symbol()
	if !ok {
		return nil, parseErr("expected an operator", head.Pos())
	}
	pos := head.Pos()

	if op, found := prim0Ops[sym]; found {
		return parsePrim0(op, pos, rest)
	}
	if op, found := prim1Ops[sym]; found {
		return parsePrim1(op, pos, rest)
	}
	if op, found := prim2Ops[sym]; found {
		return parsePrim2(op, pos, rest)
	}
	if op, found := prim3Ops[sym]; found {
		return parsePrim3(op, pos, rest)
	}

	switch sym {
	case "begin":
		return parseBegin(pos, rest)
	case "if":
		return parseIf(pos, rest)
	case "let":
		return parseLet(pos, rest)
	case "match":
		return parseMatch(pos, rest)
	case "define":
		return nil, parseErr("`define` is only allowed at the top level", pos)
	}
	return parseApp(Identifier(sym), rest)
}

func parsePrim0(op Op0, pos Position, rest []SExpr) (Expr, error) {
	if len(rest) != 0 {
		return nil, parseErr("expected 0 arguments, got at least 1", rest[0].Pos())
	}
	return &Prim0{Op: op}, nil
}

func parsePrim1(op Op1, pos Position, rest []SExpr) (Expr, error) {
	if len(rest) < 1 {
		return nil, parseErr("missing operand", pos)
	}
	if len(rest) > 1 {
		return nil, parseErr("expected 1 argument, got at least 2", rest[1].Pos())
	}
	operand, err := parseExpr(rest[0])
	if err != nil {
		return nil, err
	}
	return &Prim1{Op: op, Arg: operand}, nil
}

func parsePrim2(op Op2, pos Position, rest []SExpr) (Expr, error) {
	if len(rest) < 2 {
		return nil, parseErr(fmt.Sprintf("operator `%s` takes 2 operands", op), pos)
	}
	if len(rest) > 2 {
		return nil, parseErr("got more than 2 arguments for a binary operator", rest[2].Pos())
	}
	first, err := parseExpr(rest[0])
	if err != nil {
		return nil, err
	}
	second, err := parseExpr(rest[1])
	if err != nil {
		return nil, err
	}
	return &Prim2{Op: op, First: first, Second: second}, nil
}

func parsePrim3(op Op3, pos Position, rest []SExpr) (Expr, error) {
	if len(rest) < 3 {
		return nil, parseErr(fmt.Sprintf("operator `%s` takes 3 operands", op), pos)
	}
	if len(rest) > 3 {
		return nil, parseErr("got more than 3 arguments for a ternary operator", rest[3].Pos())
	}
	first, err := parseExpr(rest[0])
	if err != nil {
		return nil, err
	}
	second, err := parseExpr(rest[1])
	if err != nil {
		return nil, err
	}
	third, err := parseExpr(rest[2])
	if err != nil {
		return nil, err
	}
	return &Prim3{Op: op, First: first, Second: second, Third: third}, nil
}

func parseBegin(pos Position, rest []SExpr) (Expr, error) {
	if len(rest) < 2 {
		return nil, parseErr("`begin` takes 2 expressions", pos)
	}
	if len(rest) > 2 {
		return nil, parseErr("expected 2 arguments, got at least 3", rest[2].Pos())
	}
	first, err := parseExpr(rest[0])
	if err != nil {
		return nil, err
	}
	second, err := parseExpr(rest[1])
	if err != nil {
		return nil, err
	}
	return &Begin{First: first, Second: second}, nil
}

func parseIf(pos Position, rest []SExpr) (Expr, error) {
	if len(rest) < 3 {
		return nil, parseErr("`if` takes a condition, a 'then' and an 'else' expression", pos)
	}
	if len(rest) > 3 {
		return nil, parseErr("expected 3 arguments, got at least 4", rest[3].Pos())
	}
	cond, err := parseExpr(rest[0])
	if err != nil {
		return nil, err
	}
	then, err := parseExpr(rest[1])
	if err != nil {
		return nil, err
	}
	els, err := parseExpr(rest[2])
	if err != nil {
		return nil, err
	}
	return &If{Cond: cond, Then: then, Else: els}, nil
}

// parseLet parses `(let ((x e)) body)` with exactly one binding.
func parseLet(pos Position, rest []SExpr) (Expr, error) {
	if len(rest) < 2 {
		return nil, parseErr("`let` should be of the form `(let <bindings> <body>)`", pos)
	}
	if len(rest) > 2 {
		return nil, parseErr("`let` should be of the form `(let <bindings> <body>)`, but got more than 2 arguments", rest[2].Pos())
	}
	bindingList, ok := rest[0].(*List)
	if !ok {
		return nil, parseErr("expected a list of bindings", rest[0].Pos())
	}
	if len(bindingList.Items) != 1 {
		return nil, parseErr("expected a single variable binding", bindingList.Pos())
	}
	binding, err := parseBinding(bindingList.Items[0])
	if err != nil {
		return nil, err
	}
	body, err := parseExpr(rest[1])
	if err != nil {
		return nil, err
	}
	return &Let{Binding: binding, Body: body}, nil
}

func parseBinding(expr SExpr) (Binding, error) {
	list, ok := expr.(*List)
	if !ok {
		return Binding{}, parseErr("expected a variable binding", expr.Pos())
	}
	if len(list.Items) != 2 {
		return Binding{}, parseErr("a binding should be of the form `(name value)`", list.Pos())
	}
	name, err := parseIdentifier(list.Items[0])
	if err != nil {
		return Binding{}, parseErr("expected a variable name", list.Items[0].Pos())
	}
	rhs, err := parseExpr(list.Items[1])
	if err != nil {
		return Binding{}, err
	}
	return Binding{Name: name, RHS: rhs}, nil
}

// parseMatch parses `(match e (pattern body)...)`.
func parseMatch(pos Position, rest []SExpr) (Expr, error) {
	if len(rest) < 1 {
		return nil, parseErr("`match` takes a target expression", pos)
	}
	target, err := parseExpr(rest[0])
	if err != nil {
		return nil, err
	}
	var arms []Arm
	for _, armExpr := range rest[1:] {
		arm, err := parseArm(armExpr)
		if err != nil {
			return nil, err
		}
		arms = append(arms, arm)
	}
	return &Match{Target: target, Arms: arms}, nil
}

func parseArm(expr SExpr) (Arm, error) {
	list, ok := expr.(*List)
	if !ok || len(list.Items) != 2 {
		return Arm{}, parseErr("a match arm should be of the form `(pattern body)`", expr.Pos())
	}
	pattern, err := parsePattern(list.Items[0])
	if err != nil {
		return Arm{}, err
	}
	body, err := parseExpr(list.Items[1])
	if err != nil {
		return Arm{}, err
	}
	return Arm{Pattern: pattern, Body: body}, nil
}

func parsePattern(expr SExpr) (Pattern, error) {
	switch v := expr.(type) {
	case *Atom:
		switch v.Kind {
		case AtomSymbol:
			sym := v.Value.(string)
			if sym == "_" {
				return &PWildcard{}, nil
			}
			return &PVariable{Name: Identifier(sym)}, nil
		case AtomInteger:
			return &PLit{Lit: &IntLit{Value: v.Value.(int64)}}, nil
		case AtomBoolean:
			return &PLit{Lit: &BoolLit{Value: v.Value.(bool)}}, nil
		case AtomCharacter:
			return &PLit{Lit: &CharLit{Value: v.Value.(rune)}}, nil
		case AtomString:
			return &PLit{Lit: &StringLit{Value: v.Value.(string)}}, nil
		}
	case *List:
		if len(v.Items) == 0 {
			return &PLit{Lit: &EmptyListLit{}}, nil
		}
		atom, ok := v.Items[0].(*Atom)
		if !ok {
			return nil, parseErr("expected a pattern operator", v.Items[0].Pos())
		}
		sym, _ := atom.Symbol()
		switch sym {
		case "cons":
			if len(v.Items) != 3 {
				return nil, parseErr("a `cons` pattern takes 2 sub-patterns", v.Pos())
			}
			car, err := parsePattern(v.Items[1])
			if err != nil {
				return nil, err
			}
			cdr, err := parsePattern(v.Items[2])
			if err != nil {
				return nil, err
			}
			return &PCons{Car: car, Cdr: cdr}, nil
		case "box":
			if len(v.Items) != 2 {
				return nil, parseErr("a `box` pattern takes 1 sub-pattern", v.Pos())
			}
			sub, err := parsePattern(v.Items[1])
			if err != nil {
				return nil, err
			}
			return &PBox{Sub: sub}, nil
		case "and":
			if len(v.Items) != 3 {
				return nil, parseErr("an `and` pattern takes 2 sub-patterns", v.Pos())
			}
			left, err := parsePattern(v.Items[1])
			if err != nil {
				return nil, err
			}
			right, err := parsePattern(v.Items[2])
			if err != nil {
				return nil, err
			}
			return &PAnd{Left: left, Right: right}, nil
		}
		return nil, parseErr(fmt.Sprintf("unknown pattern operator: %s", sym), atom.Pos())
	}
	return nil, parseErr("unexpected pattern", expr.Pos())
}

func parseApp(name Identifier, rest []SExpr) (Expr, error) {
	var args []Expr
	for _, argExpr := range rest {
		arg, err := parseExpr(argExpr)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return &App{Function: name, Args: args}, nil
}
