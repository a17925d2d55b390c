package upload

import (
	"net/url"
	"runtime"
	"strings"
	"unicode"
)

// literalBackslash is set where backslash is the path separator
var literalBackslash = runtime.GOOS == "windows"

// ParseDropPayload splits the text a terminal pastes when files are
// dragged onto it. Terminals differ: some quote each path, some escape
// spaces with backslashes, some send file:// URLs. On Windows a
// backslash is always part of the path.
func ParseDropPayload(payload string) []string {
	return parseDropPayload(payload, literalBackslash)
}

// HasDropSyntax reports whether typed input needs ParseDropPayload
// rather than being taken as one literal path
func HasDropSyntax(input string) bool {
	if strings.ContainsAny(input, `'"`) || strings.HasPrefix(input, "file://") {
		return true
	}
	return !literalBackslash && strings.ContainsRune(input, '\\')
}

// parseDropPayload follows POSIX shell quoting: a backslash outside
// quotes escapes the next rune, single quotes are fully literal and
// inside double quotes a backslash only escapes '"' and '\'. With
// windows set a backslash is never an escape.
func parseDropPayload(payload string, windows bool) []string {
	var (
		paths   []string
		current strings.Builder
		quote   rune
		started bool
	)

	flush := func() {
		if started {
			if p := normalizeDropPath(current.String(), windows); p != "" {
				paths = append(paths, p)
			}
		}
		current.Reset()
		started = false
	}

	runes := []rune(strings.TrimSpace(payload))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\' && !windows && quote == 0:
			started = true
			if i+1 < len(runes) {
				i++
				current.WriteRune(runes[i])
			}
		case r == '\\' && !windows && quote == '"':
			if i+1 < len(runes) && (runes[i+1] == '"' || runes[i+1] == '\\') {
				i++
			}
			current.WriteRune(runes[i])
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			started = true
		case unicode.IsSpace(r):
			flush()
		default:
			current.WriteRune(r)
			started = true
		}
	}
	flush()

	return paths
}

// normalizeDropPath turns a file:// URL into a local path
func normalizeDropPath(p string, windows bool) string {
	if !strings.HasPrefix(p, "file://") {
		return p
	}
	u, err := url.Parse(p)
	if err != nil {
		return strings.TrimPrefix(p, "file://")
	}
	if !windows {
		return u.Path
	}
	// file:///C:/Users/me/spec.pdf
	path := u.Path
	if len(path) > 2 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return strings.ReplaceAll(path, "/", `\`)
}
