package highlight

import (
	"regexp"
	"strings"
)

// Matches either an already-marked address or a bare one, so that
// re-annotating marked text is a no-op.
var addrPattern = regexp.MustCompile(MarkOpen + `0x[0-9a-f]*` + MarkClose + `|0x[0-9a-f]*`)

// AnnotateAddresses wraps every address literal (a 0x prefix followed by
// zero or more lowercase hex digits) in the marker pair, leaving all other
// text untouched. Renderers use the markers to style repeated occurrences
// of the same address consistently. Idempotent.
func AnnotateAddresses(description string) string {
	return addrPattern.ReplaceAllStringFunc(description, func(match string) string {
		if strings.HasPrefix(match, MarkOpen) {
			return match
		}
		return MarkOpen + match + MarkClose
	})
}
