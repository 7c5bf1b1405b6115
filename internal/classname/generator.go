// Package classname derives class names for atomic rules. Names are a pure
// function of the rule content, except in the short production mode where a
// per-generator counter is used.
package classname

import (
	"strconv"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/yacobolo/silk/internal/resolver"
)

// Mode selects the naming scheme.
type Mode uint8

const (
	// Development names are legible: silk_bg_red_1k2x9a.
	Development Mode = iota
	// Hashed names are the bare content hash: gk2x9a. Stable across processes.
	Hashed
	// Short names come from a counter: z0, z1, ... Stable only within one generator.
	Short
)

// DefaultPrefix is used for development names when no prefix is configured.
const DefaultPrefix = "silk"

// shortPrefix is used for short names when no prefix is configured.
const shortPrefix = "z"

const maxFragment = 16

// Options configures a Generator.
type Options struct {
	Mode   Mode
	Prefix string
	Logger *zap.Logger
}

// Generator hands out class names for content keys. It is safe for
// concurrent use.
type Generator struct {
	opts Options
	log  *zap.Logger

	mu      sync.Mutex
	byKey   map[string]string // content key -> name
	byName  map[string]string // name -> content key
	counter int
}

// New creates a Generator.
func New(opts Options) *Generator {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		opts:   opts,
		log:    log.Named("classname"),
		byKey:  make(map[string]string),
		byName: make(map[string]string),
	}
}

// Generate returns the name for an arbitrary content key.
func (g *Generator) Generate(key string) string {
	return g.name(key, func() string {
		return g.devName("", "", key)
	})
}

// Atomic returns the name for one declaration in a selector context. The
// context is empty for top-level declarations.
func (g *Generator) Atomic(property, value, context string) string {
	key := ContentKey(property, value, context)
	return g.name(key, func() string {
		return g.devName(property, value, context)
	})
}

func (g *Generator) name(key string, dev func() string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if name, ok := g.byKey[key]; ok {
		return name
	}

	var name string
	switch g.opts.Mode {
	case Short:
		prefix := g.opts.Prefix
		if prefix == "" {
			prefix = shortPrefix
		}
		name = fixLeadingDigit(prefix + strconv.FormatInt(int64(g.counter), 36))
		g.counter++
	case Hashed:
		name = fixLeadingDigit(g.opts.Prefix + HashString(key))
	default:
		name = fixLeadingDigit(dev() + "_" + HashString(key))
	}

	if other, taken := g.byName[name]; taken {
		g.log.Error("class name collision",
			zap.String("name", name),
			zap.String("key", key),
			zap.String("existing", other))
		base := name
		for i := 2; taken; i++ {
			name = base + "_" + strconv.Itoa(i)
			_, taken = g.byName[name]
		}
	}

	g.byKey[key] = name
	g.byName[name] = key
	return name
}

func (g *Generator) devName(property, value, context string) string {
	prefix := g.opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	parts := []string{prefix}
	if property != "" {
		parts = append(parts, sanitize(resolver.Abbreviate(property)))
	}
	if frag := sanitize(value); frag != "" {
		parts = append(parts, frag)
	}
	if frag := sanitize(context); frag != "" {
		parts = append(parts, frag)
	}
	return strings.Join(parts, "_")
}

// GetAll returns a copy of the registry keyed by class name.
func (g *Generator) GetAll() map[string]string {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make(map[string]string, len(g.byName))
	for name, key := range g.byName {
		out[name] = key
	}
	return out
}

// Len returns the number of registered names.
func (g *Generator) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.byName)
}

// Reset clears the registry and the short-name counter together.
func (g *Generator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.byKey = make(map[string]string)
	g.byName = make(map[string]string)
	g.counter = 0
}

// ContentKey builds the hash input for a declaration:
// "<property>:<JSON value>:<context>".
func ContentKey(property, value, context string) string {
	encoded, err := json.MarshalNoEscape(value)
	if err != nil {
		encoded = []byte(strconv.Quote(value))
	}
	return property + ":" + string(encoded) + ":" + context
}

// Hash is a 32-bit MurmurHash2-style mix over the UTF-16 code units of s.
// Other tools derive the same names from it, so it must not change.
func Hash(s string) uint32 {
	var h uint32
	for _, c := range utf16.Encode([]rune(s)) {
		h = (h ^ uint32(c)) * 0x5bd1e995
		h ^= h >> 13
	}
	return h
}

// HashString renders Hash(s) in base 36.
func HashString(s string) string {
	return strconv.FormatUint(uint64(Hash(s)), 36)
}

// MinifyClassName returns the short production name for a sequence index.
// A negative index means no sequence is available and the name is derived
// from seed, usually a content hash.
func MinifyClassName(index int, seed uint32) string {
	if index >= 0 {
		return shortPrefix + strconv.FormatInt(int64(index), 36)
	}
	return shortPrefix + strconv.FormatUint(uint64(seed), 36)
}

// fixLeadingDigit remaps a leading 0-9 to g-p; identifiers may not start
// with a digit.
func fixLeadingDigit(name string) string {
	if name == "" || name[0] < '0' || name[0] > '9' {
		return name
	}
	return string('g'+(name[0]-'0')) + name[1:]
}

// sanitize reduces s to an identifier fragment: runs of anything outside
// [A-Za-z0-9-] become one underscore, the result is trimmed and capped.
func sanitize(s string) string {
	var b strings.Builder
	under := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' {
			b.WriteByte(c)
			under = false
			continue
		}
		if !under && b.Len() > 0 {
			b.WriteByte('_')
			under = true
		}
	}
	out := strings.TrimRight(b.String(), "_")
	if len(out) > maxFragment {
		out = strings.TrimRight(out[:maxFragment], "_")
	}
	return out
}
