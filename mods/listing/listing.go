// Package listing renders compiler artifacts (tokens, syntax trees,
// assembly) for human inspection.
package listing

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/lithic-lang/lithic/mods/lang"
)

// Tokens renders the token stream as a table.
func Tokens(w io.Writer, tokens []lang.Token) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"#", "POSITION", "KIND", "VALUE"})
	for i, tok := range tokens {
		tw.AppendRow(table.Row{i, tok.Pos.String(), tok.Kind.String(), fmt.Sprintf("%v", tok.Value)})
	}
	tw.Render()
}

// Tree renders the parsed program as an indented tree.
func Tree(w io.Writer, prog *lang.Program) {
	lw := list.NewWriter()
	lw.SetOutputMirror(w)
	lw.SetStyle(list.StyleConnectedLight)
	for _, def := range prog.Defs {
		params := make([]string, len(def.Params))
		for i, p := range def.Params {
			params[i] = string(p)
		}
		lw.AppendItem(fmt.Sprintf("define %s (%s)", def.Name, strings.Join(params, " ")))
		lw.Indent()
		appendExpr(lw, def.Body)
		lw.UnIndent()
	}
	lw.AppendItem("main")
	lw.Indent()
	appendExpr(lw, prog.Main)
	lw.UnIndent()
	lw.Render()
	fmt.Fprintln(w)
}

func appendExpr(lw list.Writer, e lang.Expr) {
	switch v := e.(type) {
	case *lang.IntLit:
		lw.AppendItem(fmt.Sprintf("int %d", v.Value))
	case *lang.BoolLit:
		lw.AppendItem(fmt.Sprintf("bool %t", v.Value))
	case *lang.CharLit:
		lw.AppendItem(fmt.Sprintf("char %q", v.Value))
	case *lang.StringLit:
		lw.AppendItem(fmt.Sprintf("string %q", v.Value))
	case *lang.EmptyListLit:
		lw.AppendItem("empty list")
	case *lang.Eof:
		lw.AppendItem("eof")
	case *lang.Variable:
		lw.AppendItem(fmt.Sprintf("var %s", v.Name))
	case *lang.Prim0:
		lw.AppendItem(v.Op.String())
	case *lang.Prim1:
		lw.AppendItem(v.Op.String())
		appendChildren(lw, v.Arg)
	case *lang.Prim2:
		lw.AppendItem(v.Op.String())
		appendChildren(lw, v.First, v.Second)
	case *lang.Prim3:
		lw.AppendItem(v.Op.String())
		appendChildren(lw, v.First, v.Second, v.Third)
	case *lang.Begin:
		lw.AppendItem("begin")
		appendChildren(lw, v.First, v.Second)
	case *lang.If:
		lw.AppendItem("if")
		appendChildren(lw, v.Cond, v.Then, v.Else)
	case *lang.Let:
		lw.AppendItem(fmt.Sprintf("let %s", v.Binding.Name))
		appendChildren(lw, v.Binding.RHS, v.Body)
	case *lang.Match:
		lw.AppendItem("match")
		lw.Indent()
		appendExpr(lw, v.Target)
		for _, arm := range v.Arms {
			lw.AppendItem(fmt.Sprintf("arm %s", describePattern(arm.Pattern)))
			appendChildren(lw, arm.Body)
		}
		lw.UnIndent()
	case *lang.App:
		lw.AppendItem(fmt.Sprintf("call %s", v.Function))
		appendChildren(lw, v.Args...)
	default:
		lw.AppendItem(fmt.Sprintf("%T", e))
	}
}

func appendChildren(lw list.Writer, children ...lang.Expr) {
	lw.Indent()
	for _, child := range children {
		appendExpr(lw, child)
	}
	lw.UnIndent()
}

func describePattern(p lang.Pattern) string {
	switch v := p.(type) {
	case *lang.PWildcard:
		return "_"
	case *lang.PVariable:
		return string(v.Name)
	case *lang.PLit:
		switch l := v.Lit.(type) {
		case *lang.IntLit:
			return fmt.Sprintf("%d", l.Value)
		case *lang.BoolLit:
			return fmt.Sprintf("%t", l.Value)
		case *lang.CharLit:
			return fmt.Sprintf("%q", l.Value)
		case *lang.StringLit:
			return fmt.Sprintf("%q", l.Value)
		case *lang.EmptyListLit:
			return "()"
		}
		return "literal"
	case *lang.PCons:
		return fmt.Sprintf("(cons %s %s)", describePattern(v.Car), describePattern(v.Cdr))
	case *lang.PBox:
		return fmt.Sprintf("(box %s)", describePattern(v.Sub))
	case *lang.PAnd:
		return fmt.Sprintf("(and %s %s)", describePattern(v.Left), describePattern(v.Right))
	}
	return "?"
}

// Assembly writes the assembly text, syntax highlighted when colorize
// is set.
func Assembly(w io.Writer, asmText string, colorize bool) error {
	if !colorize {
		_, err := io.WriteString(w, asmText)
		return err
	}
	lexer := lexers.Get("nasm")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	iterator, err := lexer.Tokenise(nil, asmText)
	if err != nil {
		return err
	}
	return formatters.Get("terminal256").Format(w, styles.Get("monokai"), iterator)
}
