package csstext

import (
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ParseRule parses a single flat rule of the shape "selector { decl; decl; }".
// ok is false for anything else: at-rules, nested blocks, missing braces or
// input the grammar parser rejects. The grammar parser only validates; the
// selector and values are sliced from the rule text so their spacing survives.
func ParseRule(rule string) (selector string, decls []Decl, ok bool) {
	rule = strings.TrimSpace(rule)
	if strings.Count(rule, "{") != 1 || strings.Count(rule, "}") != 1 || !strings.HasSuffix(rule, "}") {
		return "", nil, false
	}
	if strings.HasPrefix(rule, "@") || strings.HasPrefix(rule, "{") {
		return "", nil, false
	}
	if !validRule(rule) {
		return "", nil, false
	}

	items := Split(rule)
	if len(items) != 1 || items[0].Kind != ItemBlock || items[0].Prelude == "" {
		return "", nil, false
	}
	for _, d := range items[0].Decls() {
		if d.Value == "" && !strings.HasPrefix(d.Property, "--") {
			continue
		}
		decls = append(decls, d)
	}
	return items[0].Prelude, decls, true
}

// validRule runs the grammar parser over one ruleset.
func validRule(rule string) bool {
	p := css.NewParser(parse.NewInputString(rule), false)
	sawRuleset := false
	closed := false

	for {
		gt, _, _ := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && err != io.EOF {
				return false
			}
			return sawRuleset && closed

		case css.CommentGrammar:
			continue

		case css.BeginRulesetGrammar:
			if sawRuleset {
				return false
			}
			sawRuleset = true

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			if !sawRuleset || closed {
				return false
			}

		case css.EndRulesetGrammar:
			closed = true

		default:
			return false
		}
	}
}

// Token is a copied lexer token.
type Token struct {
	Type css.TokenType
	Data string
}

// Tokenize runs the CSS lexer over s. Data is copied out of the lexer buffer.
func Tokenize(s string) []Token {
	l := css.NewLexer(parse.NewInputString(s))
	var out []Token
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			return out
		}
		out = append(out, Token{Type: tt, Data: string(data)})
	}
}
