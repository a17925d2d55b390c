package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/PRDCheck/internal/ui/components"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	// Primary colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor

	// Semantic colors
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor

	// UI colors
	Border     lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	DropActive lipgloss.AdaptiveColor

	// Special colors
	Progress lipgloss.AdaptiveColor
	Selected lipgloss.AdaptiveColor
}

// buildTheme creates a theme with the given colors
func buildTheme(name string, primary, secondary, success, warning, errorColor, info, border, foreground, muted, dropActive, progress, selected [2]string) Theme {
	return Theme{
		Name:       name,
		Primary:    lipgloss.AdaptiveColor{Light: primary[0], Dark: primary[1]},
		Secondary:  lipgloss.AdaptiveColor{Light: secondary[0], Dark: secondary[1]},
		Success:    lipgloss.AdaptiveColor{Light: success[0], Dark: success[1]},
		Warning:    lipgloss.AdaptiveColor{Light: warning[0], Dark: warning[1]},
		Error:      lipgloss.AdaptiveColor{Light: errorColor[0], Dark: errorColor[1]},
		Info:       lipgloss.AdaptiveColor{Light: info[0], Dark: info[1]},
		Border:     lipgloss.AdaptiveColor{Light: border[0], Dark: border[1]},
		Foreground: lipgloss.AdaptiveColor{Light: foreground[0], Dark: foreground[1]},
		Muted:      lipgloss.AdaptiveColor{Light: muted[0], Dark: muted[1]},
		DropActive: lipgloss.AdaptiveColor{Light: dropActive[0], Dark: dropActive[1]},
		Progress:   lipgloss.AdaptiveColor{Light: progress[0], Dark: progress[1]},
		Selected:   lipgloss.AdaptiveColor{Light: selected[0], Dark: selected[1]},
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#1D4ED8", "#3B82F6"}, [2]string{"#4B5563", "#9CA3AF"},
		[2]string{"#16A34A", "#22C55E"}, [2]string{"#CA8A04", "#FACC15"}, [2]string{"#DC2626", "#EF4444"},
		[2]string{"#2563EB", "#60A5FA"}, [2]string{"#D1D5DB", "#374151"},
		[2]string{"#111827", "#F9FAFB"}, [2]string{"#6B7280", "#9CA3AF"}, [2]string{"#3B82F6", "#60A5FA"},
		[2]string{"#2563EB", "#3B82F6"}, [2]string{"#DBEAFE", "#1E3A8A"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CC6600", "#FFAA00"}, [2]string{"#CC0000", "#FF4444"},
		[2]string{"#0066CC", "#4499FF"}, [2]string{"#000000", "#FFFFFF"},
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"}, [2]string{"#000080", "#8080FF"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CCCCCC", "#333333"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"},
		[2]string{"#2F855A", "#68D391"}, [2]string{"#C05621", "#F6AD55"}, [2]string{"#C53030", "#FC8181"},
		[2]string{"#2B6CB0", "#63B3ED"}, [2]string{"#E2E8F0", "#2D3748"},
		[2]string{"#2D3748", "#F7FAFC"}, [2]string{"#A0AEC0", "#718096"}, [2]string{"#4A5568", "#CBD5E0"},
		[2]string{"#2F855A", "#68D391"}, [2]string{"#EDF2F7", "#2D3748"})
)

// Current active theme
var currentTheme = DefaultTheme

// GetTheme returns the current active theme
func GetTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme
func SetTheme(theme *Theme) {
	currentTheme = *theme
}

// SetThemeByName sets the theme by name
func SetThemeByName(name string) bool {
	switch name {
	case "", "default":
		SetTheme(&DefaultTheme)
		return true
	case "high-contrast":
		SetTheme(&HighContrastTheme)
		return true
	case "minimal":
		SetTheme(&MinimalTheme)
		return true
	default:
		return false
	}
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	Active   lipgloss.Style
	Progress lipgloss.Style
	Key      lipgloss.Style

	Box      lipgloss.Style
	DropZone lipgloss.Style
	DropFile lipgloss.Style
}

// GetStyles builds styles from the current theme
func GetStyles() *Styles {
	theme := GetTheme()

	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(theme.Info),

		Active: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Progress: lipgloss.NewStyle().
			Foreground(theme.Progress).
			Bold(true),

		Key: lipgloss.NewStyle().
			Background(theme.Selected).
			Foreground(theme.Primary).
			Padding(0, 1),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),

		DropZone: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Muted).
			Padding(1, 4).
			Align(lipgloss.Center),

		DropFile: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Success).
			Padding(0, 2),
	}
}

// Palette adapts the styles for the components package
func (s *Styles) Palette() components.Palette {
	return components.Palette{
		Title:    s.Title,
		Body:     s.Body,
		Muted:    s.Muted,
		Active:   s.Active,
		Success:  s.Success,
		Warning:  s.Warning,
		Error:    s.Error,
		Info:     s.Info,
		Progress: s.Progress,
		Box:      s.Box,
	}
}
