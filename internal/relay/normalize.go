package relay

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizePath prepares a filesystem path for matching: lowercase,
// accent-folded, with backslashes collapsed to forward slashes so paths
// reported by Windows-hosted tools compare against POSIX watch folders.
func NormalizePath(p string) string {
	s := strings.ToLower(p)
	s = removeAccents(s)
	return strings.ReplaceAll(s, "\\", "/")
}

// WatchSegment extracts the final folder segment of a watch path,
// normalized the same way as NormalizePath. Empty watch paths yield "".
func WatchSegment(watchPath string) string {
	s := strings.TrimRight(NormalizePath(watchPath), "/")
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// segmentInPath reports whether segment appears as a complete path
// segment (surrounded by separators) within the normalized path.
func segmentInPath(segment, normalizedPath string) bool {
	if segment == "" {
		return false
	}
	return strings.Contains("/"+normalizedPath+"/", "/"+segment+"/")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
