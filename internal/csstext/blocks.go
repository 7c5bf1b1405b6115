// Package csstext splits and parses generated CSS text. It understands plain
// rules, at-rule blocks, statements and nested rules, which is all the engine
// ever emits.
package csstext

import (
	"strings"
)

// ItemKind tags an Item.
type ItemKind uint8

const (
	// ItemDecl is a "property: value" declaration inside a block.
	ItemDecl ItemKind = iota
	// ItemBlock is "prelude { body }".
	ItemBlock
	// ItemStatement is a body-less at-rule such as "@layer a, b;".
	ItemStatement
)

// Item is a node of the block tree.
type Item struct {
	Kind    ItemKind
	Prelude string // selector or at-rule prelude for blocks, full text for statements
	Body    []Item // children of blocks
	Raw     string // original text of the block body (without braces)

	Property string // for ItemDecl
	Value    string // for ItemDecl
}

// IsAtRule reports whether the block or statement starts with '@'.
func (it Item) IsAtRule() bool {
	return strings.HasPrefix(it.Prelude, "@")
}

// Decls returns the declarations directly inside a block.
func (it Item) Decls() []Decl {
	var out []Decl
	for _, child := range it.Body {
		if child.Kind == ItemDecl {
			out = append(out, Decl{Property: child.Property, Value: child.Value})
		}
	}
	return out
}

// Blocks returns the blocks directly inside a block.
func (it Item) Blocks() []Item {
	var out []Item
	for _, child := range it.Body {
		if child.Kind == ItemBlock {
			out = append(out, child)
		}
	}
	return out
}

// Split parses css into a tree of items. Comments are dropped; strings and
// parentheses are respected when looking for ';', '{' and '}'. Unbalanced
// trailing input is discarded.
func Split(css string) []Item {
	items, _ := splitFrom(stripComments(css), 0, false)
	return items
}

func splitFrom(s string, pos int, nested bool) ([]Item, int) {
	var items []Item
	start := pos
	depth := 0
	var quote byte

	for i := pos; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '\'':
			quote = c
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth == 0 {
				if text := strings.TrimSpace(s[start:i]); text != "" {
					items = append(items, leaf(text))
				}
				start = i + 1
			}
		case '{':
			if depth == 0 {
				prelude := collapse(s[start:i])
				body, end := splitFrom(s, i+1, true)
				if end < 0 {
					return items, -1
				}
				items = append(items, Item{
					Kind:    ItemBlock,
					Prelude: prelude,
					Body:    body,
					Raw:     strings.TrimSpace(s[i+1 : end]),
				})
				i = end
				start = end + 1
			}
		case '}':
			if depth != 0 {
				continue
			}
			if !nested {
				// stray closing brace
				start = i + 1
				continue
			}
			if text := strings.TrimSpace(s[start:i]); text != "" {
				items = append(items, leaf(text))
			}
			return items, i
		}
	}

	if nested {
		// ran out of input inside a block
		return items, -1
	}
	if text := strings.TrimSpace(s[start:]); text != "" {
		items = append(items, leaf(text))
	}
	return items, len(s)
}

// leaf turns a ';'-terminated chunk into a declaration or a statement.
func leaf(text string) Item {
	if strings.HasPrefix(text, "@") {
		return Item{Kind: ItemStatement, Prelude: collapse(text)}
	}
	prop, val, ok := strings.Cut(text, ":")
	if !ok {
		return Item{Kind: ItemStatement, Prelude: collapse(text)}
	}
	return Item{
		Kind:     ItemDecl,
		Property: strings.TrimSpace(prop),
		Value:    collapse(val),
	}
}

func stripComments(s string) string {
	if !strings.Contains(s, "/*") {
		return s
	}
	var b strings.Builder
	for {
		i := strings.Index(s, "/*")
		if i < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:i])
		j := strings.Index(s[i+2:], "*/")
		if j < 0 {
			break
		}
		s = s[i+2+j+2:]
	}
	return b.String()
}

// collapse trims and squeezes runs of whitespace to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Kebab converts camelCase to kebab-case: backgroundColor -> background-color.
// A leading capital marks a vendor prefix: WebkitLineClamp -> -webkit-line-clamp.
func Kebab(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Decl is a property/value pair.
type Decl struct {
	Property string
	Value    string
}

// FormatDecls renders declarations as "a: b; c: d;".
func FormatDecls(decls []Decl) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.Property+": "+d.Value+";")
	}
	return strings.Join(parts, " ")
}

// FormatRule renders "selector { a: b; }".
func FormatRule(selector string, decls []Decl) string {
	return selector + " { " + FormatDecls(decls) + " }"
}

// Render writes items back as readable CSS, one top-level item per line.
func Render(items []Item) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		renderItem(&b, it)
	}
	return b.String()
}

func renderItem(b *strings.Builder, it Item) {
	switch it.Kind {
	case ItemDecl:
		b.WriteString(it.Property + ": " + it.Value + ";")
	case ItemStatement:
		b.WriteString(it.Prelude + ";")
	case ItemBlock:
		b.WriteString(it.Prelude + " {")
		for _, child := range it.Body {
			b.WriteByte(' ')
			renderItem(b, child)
		}
		b.WriteString(" }")
	}
}
