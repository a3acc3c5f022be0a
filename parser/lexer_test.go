package parser

import (
	"reflect"
	"testing"
)

func TestLexerSimple(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{"empty", "", []TokenType{EOF}},
		{"single number", "42", []TokenType{NUMBER, EOF}},
		{"negative number", "-17", []TokenType{NUMBER, EOF}},
		{"single symbol", "hello", []TokenType{SYMBOL, EOF}},
		{"variadic sentinel", "&", []TokenType{SYMBOL, EOF}},
		{"empty list", "()", []TokenType{LPAREN, RPAREN, EOF}},
		{"empty qexpr", "{}", []TokenType{LBRACE, RBRACE, EOF}},
		{
			"simple list",
			"(+ 1 2)",
			[]TokenType{LPAREN, SYMBOL, NUMBER, NUMBER, RPAREN, EOF},
		},
		{
			"nested list",
			"(+ (* 2 3) 4)",
			[]TokenType{LPAREN, SYMBOL, LPAREN, SYMBOL, NUMBER, NUMBER,
				RPAREN, NUMBER, RPAREN, EOF},
		},
		{
			"lambda with braces",
			`(\ {x y} {+ x y})`,
			[]TokenType{LPAREN, SYMBOL, LBRACE, SYMBOL, SYMBOL, RBRACE,
				LBRACE, SYMBOL, SYMBOL, SYMBOL, RBRACE, RPAREN, EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(tokens) != len(tt.expected) {
				t.Fatalf("got %d tokens, want %d", len(tokens), len(tt.expected))
			}

			for i, tok := range tokens {
				if tok.Type != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, tok.Type, tt.expected[i])
				}
			}
		})
	}
}

func TestLexerTokenValues(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			"numbers",
			"42 -17 0",
			[]Token{
				{Type: NUMBER, Value: "42"},
				{Type: NUMBER, Value: "-17"},
				{Type: NUMBER, Value: "0"},
				{Type: EOF, Value: ""},
			},
		},
		{
			"symbols",
			`+ hello-world foo_bar ^ ! &`,
			[]Token{
				{Type: SYMBOL, Value: "+"},
				{Type: SYMBOL, Value: "hello-world"},
				{Type: SYMBOL, Value: "foo_bar"},
				{Type: SYMBOL, Value: "^"},
				{Type: SYMBOL, Value: "!"},
				{Type: SYMBOL, Value: "&"},
				{Type: EOF, Value: ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(tokens) != len(tt.expected) {
				t.Fatalf("got %d tokens, want %d", len(tokens), len(tt.expected))
			}

			for i, tok := range tokens {
				if tok.Type != tt.expected[i].Type {
					t.Errorf("token %d type: got %v, want %v", i, tok.Type, tt.expected[i].Type)
				}
				if tok.Value != tt.expected[i].Value {
					t.Errorf("token %d value: got %q, want %q", i, tok.Value, tt.expected[i].Value)
				}
			}
		})
	}
}

func TestLexerComments(t *testing.T) {
	input := `
; This is a comment
(+ 1 2) ; inline comment
; another comment
42
`
	expected := []TokenType{LPAREN, SYMBOL, NUMBER, NUMBER, RPAREN, NUMBER, EOF}

	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var types []TokenType
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}

	if !reflect.DeepEqual(types, expected) {
		t.Errorf("got %v, want %v", types, expected)
	}
}

func TestLexerIllegalCharacter(t *testing.T) {
	_, err := Tokenize(`@`)
	if err == nil {
		t.Fatalf("expected an error for an illegal character")
	}
}
