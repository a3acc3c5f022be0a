// Package reader turns a parser.Node parse tree into a sexpr.Value by
// tag-substring dispatch. It knows nothing about tokens or grammar —
// only about the four tag families a Node can carry.
package reader

import (
	"strconv"
	"strings"

	"github.com/clisp-lang/clisp/parser"
	"github.com/clisp-lang/clisp/sexpr"
)

// Read converts a parsed Node into a Value. Dispatch is by substring
// match on the tag, not exact equality, because an external parser's
// tags may carry extra classifiers (e.g. "number tok regex").
func Read(node parser.Node) (sexpr.Value, error) {
	switch {
	case strings.Contains(node.Tag, "number"):
		return readNumber(node)
	case strings.Contains(node.Tag, "symbol"):
		return sexpr.Symbol{Name: node.Contents}, nil
	case node.Tag == ">" || strings.Contains(node.Tag, "qexpr"):
		return readChildren(node, isQExprTag(node.Tag))
	case strings.Contains(node.Tag, "sexpr"):
		return readChildren(node, false)
	default:
		return nil, &UnrecognizedTagError{Tag: node.Tag}
	}
}

func isQExprTag(tag string) bool {
	return tag != ">" && strings.Contains(tag, "qexpr")
}

func readNumber(node parser.Node) (sexpr.Value, error) {
	n, err := strconv.ParseInt(node.Contents, 10, 64)
	if err != nil {
		return sexpr.Error{Message: "invalid number"}, nil
	}
	return sexpr.Number{Val: n}, nil
}

// readChildren builds an SExpr or QExpr from every child whose literal
// text isn't a bare delimiter and whose tag isn't a regex/lexer
// artifact — a defensive filter per the reader's documented contract,
// though this package's own parser never emits such children.
func readChildren(node parser.Node, isQExpr bool) (sexpr.Value, error) {
	var cells []sexpr.Value
	for _, child := range node.Children {
		if isDelimiterLiteral(child.Contents) || child.Tag == "regex" {
			continue
		}
		v, err := Read(child)
		if err != nil {
			return nil, err
		}
		cells = append(cells, v)
	}

	if isQExpr {
		return sexpr.QExpr{Cells: cells}, nil
	}
	return sexpr.SExpr{Cells: cells}, nil
}

func isDelimiterLiteral(contents string) bool {
	switch contents {
	case "(", ")", "{", "}":
		return true
	default:
		return false
	}
}

// UnrecognizedTagError reports a Node whose tag matched none of the
// reader's substring rules.
type UnrecognizedTagError struct {
	Tag string
}

func (e *UnrecognizedTagError) Error() string {
	return "reader: unrecognized node tag " + e.Tag
}
