package analytics

import (
	"regexp"
	"strings"
)

// placeholderSegment replaces any path segment that looks like an
// identifier. The placeholder itself matches none of the identifier
// patterns, so AnonymizePath is idempotent.
const placeholderSegment = ":id"

var (
	uuidSegment    = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	numericSegment = regexp.MustCompile(`^[0-9]{6,}$`)
	opaqueSegment  = regexp.MustCompile(`^[0-9A-Za-z]{20,}$`)
)

// AnonymizePath strips the query and fragment from rawPath and replaces
// every segment that looks like an identifier (UUID, 6+ digit run, 20+
// character alphanumeric token) with a fixed placeholder. The result
// contains no per-user or per-order identifiers and is safe to retain
// and to expose in the admin UI.
//
// The function is pure and total: it never fails, and any input yields
// a usable path.
func AnonymizePath(rawPath string) string {
	if i := strings.IndexAny(rawPath, "?#"); i >= 0 {
		rawPath = rawPath[:i]
	}
	if rawPath == "" {
		return "/"
	}

	segments := strings.Split(rawPath, "/")
	for i, segment := range segments {
		if isIdentifierSegment(segment) {
			segments[i] = placeholderSegment
		}
	}
	return strings.Join(segments, "/")
}

func isIdentifierSegment(segment string) bool {
	return uuidSegment.MatchString(segment) ||
		numericSegment.MatchString(segment) ||
		opaqueSegment.MatchString(segment)
}
