package formula

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// SelfToken is the identifier that refers to the entity owning a formula.
const SelfToken = "this"

var (
	// formulaLexer splits binding text into tokens. Every input byte lands in
	// exactly one token, so joining token values reproduces the source.
	// Template literal text is opaque; ${...} sections are lexed as code.
	formulaLexer = lexer.MustStateful(lexer.Rules{
		"Root": {
			{Name: "Comment", Pattern: `//[^\n]*|/\*(?s:.*?)\*/`, Action: nil},
			{Name: "String", Pattern: `"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'`, Action: nil},
			{Name: "TemplateStart", Pattern: "`", Action: lexer.Push("Template")},
			{Name: "Number", Pattern: `\d+(?:\.\d+)?`, Action: nil},
			{Name: "Ident", Pattern: `[a-zA-Z_$][a-zA-Z0-9_$]*`, Action: nil},
			{Name: "Whitespace", Pattern: `\s+`, Action: nil},
			{Name: "Punct", Pattern: "[^\\sa-zA-Z0-9_$\"'`]", Action: nil},
		},
		"Template": {
			{Name: "TemplateEnd", Pattern: "`", Action: lexer.Pop()},
			{Name: "InterpolationStart", Pattern: `\$\{`, Action: lexer.Push("Interpolation")},
			{Name: "TemplateText", Pattern: "(?:\\\\.|[^`$\\\\])+|\\$", Action: nil},
		},
		"Interpolation": {
			{Name: "InterpolationEnd", Pattern: `\}`, Action: lexer.Pop()},
			{Name: "BlockStart", Pattern: `\{`, Action: lexer.Push("Interpolation")},
			lexer.Include("Root"),
		},
	})

	identType      = formulaLexer.Symbols()["Ident"]
	punctType      = formulaLexer.Symbols()["Punct"]
	whitespaceType = formulaLexer.Symbols()["Whitespace"]
	commentType    = formulaLexer.Symbols()["Comment"]
)

// Rewrite replaces every self-reference in formula with entityName.
// Only whole identifiers are replaced; member accesses (x.this), string
// literals and comments are left untouched.
func Rewrite(formula, entityName string) (string, error) {
	tokens, err := tokenize(formula)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(len(formula))
	for i, tok := range tokens {
		if isSelfReference(tokens, i) {
			sb.WriteString(entityName)
			continue
		}
		sb.WriteString(tok.Value)
	}
	return sb.String(), nil
}

// References counts the self-references Rewrite would replace.
func References(formula string) (int, error) {
	tokens, err := tokenize(formula)
	if err != nil {
		return 0, err
	}
	n := 0
	for i := range tokens {
		if isSelfReference(tokens, i) {
			n++
		}
	}
	return n, nil
}

func tokenize(formula string) ([]lexer.Token, error) {
	lex, err := formulaLexer.LexString("", formula)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize formula: %w", err)
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize formula: %w", err)
	}
	// Drop the trailing EOF token.
	if n := len(tokens); n > 0 && tokens[n-1].EOF() {
		tokens = tokens[:n-1]
	}
	return tokens, nil
}

func isSelfReference(tokens []lexer.Token, i int) bool {
	tok := tokens[i]
	if tok.Type != identType || tok.Value != SelfToken {
		return false
	}
	for j := i - 1; j >= 0; j-- {
		prev := tokens[j]
		if prev.Type == whitespaceType || prev.Type == commentType {
			continue
		}
		if !isDot(prev) {
			return true
		}
		// A spread (...this) is a reference; a single dot is member access.
		return j > 0 && isDot(tokens[j-1])
	}
	return true
}

func isDot(tok lexer.Token) bool {
	return tok.Type == punctType && tok.Value == "."
}
