package upload

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yildizm/PRDCheck/internal/compliance"
)

// DefaultMaxSize is the advertised (not enforced) size limit
const DefaultMaxSize int64 = 10 * 1024 * 1024

// DefaultExtensions are the advertised document formats
var DefaultExtensions = []string{".pdf", ".doc", ".docx"}

// Rules describe what the upload screen advertises. Nothing is enforced.
type Rules struct {
	Extensions []string
	MaxSize    int64
}

// DefaultRules returns the advertised formats and size
func DefaultRules() Rules {
	return Rules{Extensions: append([]string(nil), DefaultExtensions...), MaxSize: DefaultMaxSize}
}

// Hint returns the line shown under the drop zone
func (r Rules) Hint() string {
	names := make([]string, 0, len(r.Extensions))
	for _, ext := range r.Extensions {
		names = append(names, strings.ToUpper(strings.TrimPrefix(ext, ".")))
	}
	return fmt.Sprintf("Supported formats: %s (Max size: %s)", strings.Join(names, ", "), formatLimit(r.MaxSize))
}

// Advisories lists soft warnings for file. The file is accepted either way.
func Advisories(file compliance.UploadedFile, rules Rules) []string {
	var notes []string

	if len(rules.Extensions) > 0 {
		ext := strings.ToLower(filepath.Ext(file.Name))
		known := false
		for _, allowed := range rules.Extensions {
			if ext == strings.ToLower(allowed) {
				known = true
				break
			}
		}
		if !known {
			notes = append(notes, fmt.Sprintf("%s is not a listed format (%s)", displayExt(ext), strings.Join(rules.Extensions, ", ")))
		}
	}

	if rules.MaxSize > 0 && file.Size > rules.MaxSize {
		notes = append(notes, fmt.Sprintf("%s is above the suggested %s limit", FormatSize(file.Size), formatLimit(rules.MaxSize)))
	}

	return notes
}

// FormatSize renders a byte count in megabytes with two decimals
func FormatSize(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/1024/1024)
}

func formatLimit(bytes int64) string {
	mb := float64(bytes) / 1024 / 1024
	if mb == float64(int64(mb)) {
		return fmt.Sprintf("%dMB", int64(mb))
	}
	return fmt.Sprintf("%.1fMB", mb)
}

func displayExt(ext string) string {
	if ext == "" {
		return "A file without extension"
	}
	return ext
}
