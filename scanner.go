package silk

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// ClassReference is one class name found in a content file.
type ClassReference struct {
	Class    string
	Location FileLocation
}

// FileLocation tracks where a class reference was found.
type FileLocation struct {
	File   string
	Line   int
	Column int // 1-based, start of the class name
}

// ScanStats tracks file scanning statistics.
type ScanStats struct {
	FilesDiscovered int // found by glob patterns
	FilesScanned    int // actually scanned
	FilesSkipped    int // generated or gitignored
}

// Usage is the result of scanning content files for class names.
type Usage struct {
	Refs  []ClassReference
	Stats ScanStats
}

// Classes returns the distinct class names found, sorted.
func (u *Usage) Classes() []string {
	seen := make(map[string]bool, len(u.Refs))
	out := make([]string, 0, len(u.Refs))
	for _, r := range u.Refs {
		if !seen[r.Class] {
			seen[r.Class] = true
			out = append(out, r.Class)
		}
	}
	sort.Strings(out)
	return out
}

// Patterns for class attribute values, most specific first. Each captures the
// full attribute value, which may hold several classes.
var (
	classPatterns = []*regexp.Regexp{
		regexp.MustCompile(`class(?:Name)?="([^"]+)"`),
		regexp.MustCompile(`class(?:Name)?='([^']+)'`),
		regexp.MustCompile(`class(?:Name)?=\{\s*"([^"]+)"`),
		regexp.MustCompile("class(?:Name)?=\\{\\s*`([^`]+)`"),
	}

	templClassesMulti = regexp.MustCompile(`templ\.Classes\(([^)]+)\)`)
	templKVMulti      = regexp.MustCompile(`templ\.KV\(([^)]+)\)`)

	commentPattern = regexp.MustCompile(`^\s*//`)
)

// isTemplGenerated reports whether path is a templ-generated Go file. The
// .templ source is scanned instead.
func isTemplGenerated(path string) bool {
	return strings.HasSuffix(path, "_templ.go") ||
		strings.HasSuffix(path, ".templ.go")
}

// fileFilter skips generated files and files matched by root/.gitignore.
type fileFilter struct {
	root string
	gi   *ignore.GitIgnore
}

// newFileFilter loads root/.gitignore. A missing file is fine.
func newFileFilter(root string) *fileFilter {
	f := &fileFilter{root: root}
	if gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		f.gi = gi
	}
	return f
}

func (f *fileFilter) skip(path string) bool {
	if isTemplGenerated(path) {
		return true
	}
	if f.gi == nil {
		return false
	}
	rel, err := filepath.Rel(f.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	return f.gi.MatchesPath(filepath.ToSlash(rel))
}

// expandGlobs resolves patterns relative to root, dropping directories,
// duplicates and filtered files.
func expandGlobs(root string, patterns []string, filter *fileFilter) ([]string, ScanStats, error) {
	var files []string
	var stats ScanStats
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		full := pattern
		if !filepath.IsAbs(pattern) {
			full = filepath.Join(root, pattern)
		}
		matches, err := doublestar.FilepathGlob(full)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++
			if filter.skip(match) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	sort.Strings(files)
	return files, stats, nil
}

// ScanUsage scans the files matched by patterns (relative to root) for class
// names in class/className attributes and templ.Classes/templ.KV calls.
// Unreadable files are logged and skipped.
func ScanUsage(root string, patterns []string, log *zap.Logger) (*Usage, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("scanner")

	files, stats, err := expandGlobs(root, patterns, newFileFilter(root))
	if err != nil {
		return nil, err
	}
	if stats.FilesSkipped > 0 {
		log.Debug("skipped generated or ignored files", zap.Int("skipped", stats.FilesSkipped))
	}

	usage := &Usage{Stats: stats}
	for _, file := range files {
		refs, err := scanFile(file)
		if err != nil {
			log.Warn("cannot scan file", zap.String("file", file), zap.Error(err))
			continue
		}
		usage.Refs = append(usage.Refs, refs...)
	}
	log.Debug("scanned content files",
		zap.Int("files", stats.FilesScanned),
		zap.Int("references", len(usage.Refs)))
	return usage, nil
}

func scanFile(path string) ([]ClassReference, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var refs []ClassReference
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		refs = append(refs, extractClassesFromLine(scanner.Text(), lineNum, path)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return refs, nil
}

// extractClassesFromLine returns one reference per class token on the line.
func extractClassesFromLine(line string, lineNum int, file string) []ClassReference {
	if commentPattern.MatchString(line) {
		return nil
	}

	var values []string
	hasTemplClasses := strings.Contains(line, "templ.Classes(")
	hasTemplKV := strings.Contains(line, "templ.KV(")

	if hasTemplClasses {
		for _, m := range templClassesMulti.FindAllStringSubmatch(line, -1) {
			values = append(values, stringArgs(splitTemplArgs(m[1]))...)
		}
	}
	if hasTemplKV && !hasTemplClasses {
		for _, m := range templKVMulti.FindAllStringSubmatch(line, -1) {
			if parts := splitTemplArgs(m[1]); len(parts) > 0 {
				values = append(values, stringArgs(parts[:1])...)
			}
		}
	}
	if !hasTemplClasses && !hasTemplKV {
		for _, re := range classPatterns {
			for _, m := range re.FindAllStringSubmatch(line, -1) {
				values = append(values, m[1])
			}
		}
	}

	var refs []ClassReference
	for _, v := range values {
		for _, class := range strings.Fields(v) {
			refs = append(refs, ClassReference{
				Class: class,
				Location: FileLocation{
					File:   file,
					Line:   lineNum,
					Column: findClassColumn(line, class),
				},
			})
		}
	}
	return refs
}

// stringArgs keeps the double-quoted string literals of args.
func stringArgs(args []string) []string {
	var out []string
	for _, a := range args {
		a = strings.TrimSpace(a)
		if len(a) >= 2 && strings.HasPrefix(a, `"`) && strings.HasSuffix(a, `"`) {
			out = append(out, strings.Trim(a, `"`))
		}
	}
	return out
}

// findClassColumn locates the 1-based column where class starts in line, or
// 0 when it cannot be found.
func findClassColumn(line, class string) int {
	// Inside a class attribute first.
	if attr := strings.Index(line, "class"); attr != -1 {
		if q := strings.IndexAny(line[attr:], `"'`); q != -1 {
			start := attr + q + 1
			value := line[start:]
			if end := strings.IndexAny(value, `"'`); end != -1 {
				value = value[:end]
			}
			for _, tok := range tokenOffsets(value) {
				if tok.text == class {
					return start + tok.offset + 1
				}
			}
		}
	}

	if idx := strings.Index(line, `"`+class+`"`); idx != -1 {
		return idx + 2
	}
	if idx := strings.Index(line, class); idx != -1 {
		return idx + 1
	}
	return 0
}

type token struct {
	text   string
	offset int
}

// tokenOffsets splits s on spaces, keeping byte offsets.
func tokenOffsets(s string) []token {
	var out []token
	start := -1
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ' ' || s[i] == '\t' {
			if start >= 0 {
				out = append(out, token{text: s[start:i], offset: start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	return out
}

// splitTemplArgs splits comma-separated arguments outside parentheses.
func splitTemplArgs(s string) []string {
	var parts []string
	var current strings.Builder
	depth := 0

	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, current.String())
				current.Reset()
				continue
			}
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}
