package engine

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gorilla/css/scanner"
	"go.trai.ch/lessbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// statementPattern matches block comments, quoted strings and @import
// statements. Comments and strings are consumed whole so imports inside them
// are never reported.
var statementPattern = regexp.MustCompile(`(?s)/\*.*?\*/|"(?:[^"\\\n]|\\.)*"|'(?:[^'\\\n]|\\.)*'|@import\b[^;{}]*;?`)

var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// Import options that change resolution. Other options such as reference,
// once and multiple are parsed but do not affect which file is used.
const (
	optCSS      = "css"
	optLess     = "less"
	optInline   = "inline"
	optOptional = "optional"
)

// importRef is one @import statement.
type importRef struct {
	target  string
	options map[string]bool
}

func (r importRef) has(opt string) bool {
	return r.options[opt]
}

// importMatch is an @import statement together with its byte range in the
// comment-stripped source.
type importMatch struct {
	ref        importRef
	start, end int
}

// findImports returns every @import statement of src, which must already be
// stripped of line comments.
func findImports(src string) []importMatch {
	var matches []importMatch
	for _, loc := range statementPattern.FindAllStringIndex(src, -1) {
		stmt := src[loc[0]:loc[1]]
		if !strings.HasPrefix(stmt, "@") {
			continue
		}
		ref, ok := parseImport(stmt)
		if !ok {
			continue
		}
		matches = append(matches, importMatch{ref: ref, start: loc[0], end: loc[1]})
	}
	return matches
}

// parseImport reads a single @import statement with the CSS tokenizer.
// It returns false for statements whose target is not a literal path, such
// as variable imports.
func parseImport(stmt string) (importRef, bool) {
	s := scanner.New(stmt)
	ref := importRef{options: map[string]bool{}}

	tok := s.Next()
	if tok.Type != scanner.TokenAtKeyword || !strings.EqualFold(tok.Value, "@import") {
		return ref, false
	}

	inOptions := false
	for {
		tok = s.Next()
		switch tok.Type {
		case scanner.TokenEOF, scanner.TokenError:
			return ref, false
		case scanner.TokenS, scanner.TokenComment:
			continue
		case scanner.TokenChar:
			switch tok.Value {
			case "(":
				inOptions = true
			case ")":
				inOptions = false
			case ",":
			default:
				return ref, false
			}
		case scanner.TokenIdent:
			if !inOptions {
				return ref, false
			}
			ref.options[strings.ToLower(tok.Value)] = true
		case scanner.TokenString:
			ref.target = unquote(tok.Value)
			return ref, validTarget(ref.target)
		case scanner.TokenURI:
			ref.target = unwrapURL(tok.Value)
			return ref, validTarget(ref.target)
		default:
			return ref, false
		}
	}
}

func validTarget(target string) bool {
	return target != "" && !strings.Contains(target, "@{")
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func unwrapURL(s string) string {
	if len(s) >= 4 && strings.EqualFold(s[:4], "url(") {
		s = strings.TrimSuffix(s[4:], ")")
	}
	return unquote(strings.TrimSpace(s))
}

// stripLineComments removes // comments. Strings, block comments and
// protocol-relative URLs such as url(//host/a.css) are left intact.
func stripLineComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))

	var quote byte
	inBlock := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case inBlock:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				inBlock = false
				b.WriteString("*/")
				i++
				continue
			}
		case quote != 0:
			switch c {
			case '\\':
				if i+1 < len(src) {
					b.WriteByte(c)
					i++
					c = src[i]
				}
			case quote, '\n':
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			inBlock = true
			b.WriteString("/*")
			i++
			continue
		case c == '/' && i+1 < len(src) && src[i+1] == '/' && (i == 0 || (src[i-1] != ':' && src[i-1] != '(')):
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				b.WriteByte('\n')
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// resolution is the outcome of resolving one import.
type resolution int

const (
	resolvedFile resolution = iota
	resolvedSkip
	resolvedMissing
)

// resolveImport finds the file an import refers to. The importing file's
// directory is searched first, then dirs in order; the first match wins.
func resolveImport(ref importRef, importingDir string, dirs []string) (string, resolution) {
	target := ref.target
	if strings.HasPrefix(target, "//") || schemePattern.MatchString(target) {
		return "", resolvedSkip
	}
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		target = target[:i]
	}

	switch ext := filepath.Ext(target); {
	case ext == "":
		target += domain.LessExt
	case ref.has(optCSS):
		return "", resolvedSkip
	case strings.EqualFold(ext, domain.CSSExt) && !ref.has(optLess) && !ref.has(optInline):
		return "", resolvedSkip
	}

	candidates := []string{target}
	if !filepath.IsAbs(target) {
		candidates = candidates[:0]
		candidates = append(candidates, filepath.Join(importingDir, target))
		for _, dir := range dirs {
			candidates = append(candidates, filepath.Join(dir, target))
		}
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if abs, err := filepath.Abs(candidate); err == nil {
			return filepath.Clean(abs), resolvedFile
		}
	}

	if ref.has(optOptional) {
		return "", resolvedSkip
	}
	return "", resolvedMissing
}

func importNotFound(target, importer string) error {
	return errors.Join(domain.ErrCompile, domain.ErrImportNotFound,
		zerr.With(zerr.With(zerr.New("cannot resolve @import"), "import", target), "file", importer))
}

// ImportScanner discovers the files a LESS source depends on.
type ImportScanner struct {
	dirs   []string
	strict bool
}

// NewImportScanner creates a scanner searching dirs. A strict scanner fails
// on imports it cannot resolve; a lenient one ignores them.
func NewImportScanner(dirs []string, strict bool) *ImportScanner {
	return &ImportScanner{dirs: append([]string(nil), dirs...), strict: strict}
}

// Dependencies returns main followed by every file it imports transitively,
// each once, in the order they are first imported.
func (s *ImportScanner) Dependencies(main string) ([]string, error) {
	var imports []string
	visited := map[string]bool{main: true}

	var visit func(file string) error
	visit = func(file string) error {
		src, err := os.ReadFile(file) //nolint:gosec // Path comes from import resolution
		if err != nil {
			if s.strict {
				return errors.Join(domain.ErrCompile, zerr.With(zerr.Wrap(err, "failed to read source"), "file", file))
			}
			return nil
		}

		for _, m := range findImports(stripLineComments(string(src))) {
			path, res := resolveImport(m.ref, filepath.Dir(file), s.dirs)
			switch res {
			case resolvedSkip:
				continue
			case resolvedMissing:
				if s.strict {
					return importNotFound(m.ref.target, file)
				}
				continue
			}

			if visited[path] {
				continue
			}
			visited[path] = true
			imports = append(imports, path)

			if m.ref.has(optInline) {
				continue
			}
			if err := visit(path); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit(main); err != nil {
		return nil, err
	}
	return domain.NewDependencySet(main, imports...), nil
}
