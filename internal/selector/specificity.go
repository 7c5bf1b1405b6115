package selector

import (
	"strings"

	"github.com/tdewolff/parse/v2/css"

	"github.com/yacobolo/silk/internal/csstext"
)

// Specificity is (inline, id, class/attribute/pseudo-class, type/pseudo-element).
// Inline is always zero for selectors.
type Specificity [4]int

// Add sums two specificities.
func (s Specificity) Add(o Specificity) Specificity {
	return Specificity{s[0] + o[0], s[1] + o[1], s[2] + o[2], s[3] + o[3]}
}

// Compare returns -1, 0 or 1.
func (s Specificity) Compare(o Specificity) int {
	for i := range s {
		switch {
		case s[i] < o[i]:
			return -1
		case s[i] > o[i]:
			return 1
		}
	}
	return 0
}

// CompareSpecificity compares two selectors by specificity.
func CompareSpecificity(a, b string) int {
	return CalculateSpecificity(a).Compare(CalculateSpecificity(b))
}

// legacy pseudo-elements that may be written with a single colon
var legacyPseudoElements = map[string]bool{
	"before":       true,
	"after":        true,
	"first-line":   true,
	"first-letter": true,
}

// CalculateSpecificity computes the specificity of a single selector. For a
// selector list the most specific member wins.
func CalculateSpecificity(sel string) Specificity {
	toks := csstext.Tokenize(sel)
	var best Specificity
	for _, part := range splitList(toks) {
		if s := specificity(part); s.Compare(best) > 0 {
			best = s
		}
	}
	return best
}

func specificity(toks []csstext.Token) Specificity {
	var s Specificity
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.Type {
		case css.HashToken:
			s[1]++

		case css.LeftBracketToken:
			s[2]++
			for i < len(toks) && toks[i].Type != css.RightBracketToken {
				i++
			}

		case css.IdentToken:
			// type selector; classes and pseudos consume their ident below
			s[3]++

		case css.DelimToken:
			if t.Data == "." && i+1 < len(toks) && toks[i+1].Type == css.IdentToken {
				s[2]++
				i++
			}

		case css.ColonToken:
			element := false
			if i+1 < len(toks) && toks[i+1].Type == css.ColonToken {
				element = true
				i++
			}
			if i+1 >= len(toks) {
				break
			}
			i++
			next := toks[i]
			switch next.Type {
			case css.IdentToken:
				if element || legacyPseudoElements[strings.ToLower(next.Data)] {
					s[3]++
				} else {
					s[2]++
				}
			case css.FunctionToken:
				name := strings.ToLower(strings.TrimSuffix(next.Data, "("))
				args, end := functionArgs(toks, i)
				i = end
				switch {
				case element:
					s[3]++
				case name == "where":
				case name == "is", name == "not", name == "has", name == "matches":
					var best Specificity
					for _, arg := range splitList(args) {
						if as := specificity(arg); as.Compare(best) > 0 {
							best = as
						}
					}
					s = s.Add(best)
				default:
					s[2]++
				}
			}
		}
	}
	return s
}

// functionArgs returns the tokens between the function token at open and its
// closing parenthesis, plus the index of that parenthesis.
func functionArgs(toks []csstext.Token, open int) ([]csstext.Token, int) {
	depth := 1
	for i := open + 1; i < len(toks); i++ {
		switch toks[i].Type {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth == 0 {
				return toks[open+1 : i], i
			}
		}
	}
	return toks[open+1:], len(toks) - 1
}

// splitList splits tokens on top-level commas.
func splitList(toks []csstext.Token) [][]csstext.Token {
	var out [][]csstext.Token
	depth, start := 0, 0
	for i, t := range toks {
		switch t.Type {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
		case css.CommaToken:
			if depth == 0 {
				out = append(out, toks[start:i])
				start = i + 1
			}
		}
	}
	return append(out, toks[start:])
}
