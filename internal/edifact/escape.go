// =============================================================================
// EDIFACT PRICAT Generator - Text Escaping
// =============================================================================

package edifact

import "strings"

// Service characters declared by the UNA segment this encoder emits.
const (
	componentSeparator = ":"
	elementSeparator   = "+"
	releaseCharacter   = "?"
	segmentTerminator  = "'"
)

// Escape protects free text against premature segment termination by
// replacing every literal terminator with the release character followed by
// the terminator ("'" -> "?'").
//
// KNOWN LIMITATION: the element separator (+), the component separator (:)
// and the release character (?) itself are passed through unescaped. Free
// text containing them will shift element positions in the segment. This
// matches the behavior the existing downstream fixtures were built against;
// widening the escape set is a breaking change for those fixtures.
func Escape(text string) string {
	return strings.ReplaceAll(text, segmentTerminator, releaseCharacter+segmentTerminator)
}
