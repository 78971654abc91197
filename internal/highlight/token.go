// Package highlight marks up source lines and event descriptions for the
// presentation layer. Markers are presentation-neutral: renderers replace
// them with whatever styling they want.
package highlight

// Marker pair wrapped around highlighted tokens and addresses.
const (
	MarkOpen  = "«" // «
	MarkClose = "»" // »
)

// isTokenByte reports membership in the identifier-token alphabet. The
// alphabet deliberately over-approximates: ':' '.' '-' '>' are included so
// qualified names like ns::Type::member and accesses like obj->field come
// out as one token. This is a heuristic, not a tokenizer.
func isTokenByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '_' || b == ':' || b == '.' || b == '-' || b == '>':
		return true
	}
	return false
}

// SplitToken splits line at the maximal token starting at the 0-based
// column. Concatenating the three parts always reproduces line exactly.
// If column is out of range the whole line is returned as prefix.
func SplitToken(line string, column int) (prefix, token, rest string) {
	if column < 0 || column >= len(line) {
		return line, "", ""
	}
	end := column
	for end < len(line) && isTokenByte(line[end]) {
		end++
	}
	return line[:column], line[column:end], line[end:]
}

// Mark returns line with the token at the 0-based column wrapped in the
// markers. Past end-of-line the line is returned unchanged. A zero-length
// token still gets an (empty) marker pair; callers treat that as an
// effectively unmarked line.
func Mark(line string, column int) string {
	if column < 0 || column >= len(line) {
		return line
	}
	prefix, token, rest := SplitToken(line, column)
	return prefix + MarkOpen + token + MarkClose + rest
}
