package engine

// StripLineComments exposes stripLineComments for tests.
var StripLineComments = stripLineComments

// ParseImport exposes parseImport for tests. It returns the target, the
// parsed options and whether the statement is a literal import.
func ParseImport(stmt string) (string, map[string]bool, bool) {
	ref, ok := parseImport(stmt)
	return ref.target, ref.options, ok
}
