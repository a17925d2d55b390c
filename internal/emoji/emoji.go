package emoji

// EmojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"error":           {"❌", "[ERR]"},
	"warning":         {"⚠️", "[WRN]"},
	"info":            {"ℹ️", "[INF]"},
	"success":         {"✅", "[OK]"},
	"insight":         {"💡", "[INS]"},
	"statistics":      {"📊", "[STATS]"},
	"recommendations": {"📋", "[REC]"},
	"help":            {"❓", "[?]"},
	"target":          {"🎯", "[>]"},
	"door":            {"🚪", "[EXIT]"},

	// workflow
	"upload":   {"📤", "[UP]"},
	"document": {"📄", "[DOC]"},
	"search":   {"🔍", "[MAP]"},
	"shield":   {"🛡️", "[CHK]"},
	"report":   {"📑", "[RPT]"},
	"remove":   {"✖", "[X]"},
	"folder":   {"📁", "[DIR]"},
	"pending":  {"○", "[ ]"},
	"current":  {"◐", "[~]"},

	// report
	"score":      {"🏅", "[SCORE]"},
	"risk":       {"🚩", "[RISK]"},
	"references": {"📚", "[REF]"},
	"signoff":    {"🖋️", "[SIGN]"},
	"download":   {"⬇️", "[DL]"},
	"share":      {"🔗", "[SHR]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1] // fallback
		}
		return mapping[0] // emoji
	}
	return "[?]" // unknown key
}

// Known reports whether key has a mapping
func Known(key string) bool {
	_, ok := emojiMap[key]
	return ok
}
