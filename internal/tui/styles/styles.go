package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/beatlib/internal/domain"
)

// Color palette
var (
	SaberRed   = lipgloss.Color(domain.DefaultRed)
	SaberBlue  = lipgloss.Color(domain.DefaultBlue)
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Amber      = lipgloss.Color("#E5A00D")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(SaberBlue)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(SaberRed)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)
)

// OpenChar marks the song open in the editor
const OpenChar = "●"

// Panel styles
var (
	DetailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SaberRed).
			Padding(1, 2).
			Background(SlateDark)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(SaberBlue)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// BadgeStyle marks the selected difficulty
var BadgeStyle = lipgloss.NewStyle().
	Foreground(White).
	Background(SaberBlue).
	Padding(0, 1)

// Filter styles
var (
	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(Amber).
				Bold(true)

	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(Amber).
				Bold(true)
)

// difficultyColors follows the in-game difficulty palette
var difficultyColors = map[domain.DifficultyID]lipgloss.Color{
	domain.DifficultyEasy:       lipgloss.Color("#3CB371"),
	domain.DifficultyNormal:     lipgloss.Color("#59B0F4"),
	domain.DifficultyHard:       lipgloss.Color("#FF6347"),
	domain.DifficultyExpert:     lipgloss.Color("#BF2A42"),
	domain.DifficultyExpertPlus: lipgloss.Color("#8F48DB"),
}

// Helper functions

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 3 {
		return string(runes[:min(width, len(runes))])
	}
	return string(runes[:min(width-3, len(runes))]) + "..."
}

// RenderDifficulty renders a difficulty tag. The selected difficulty is
// rendered as a filled badge.
func RenderDifficulty(d domain.Difficulty, selected bool) string {
	if selected {
		badge := BadgeStyle
		if c, ok := difficultyColors[d.ID]; ok {
			badge = badge.Background(c)
		}
		return badge.Render(d.DisplayName())
	}
	style := DimStyle
	if c, ok := difficultyColors[d.ID]; ok {
		style = lipgloss.NewStyle().Foreground(c)
	}
	return style.Render(d.DisplayName())
}

// RenderSwatch renders a small block in the given hex color
func RenderSwatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■")
}

// RenderHighlighted renders s with the runes at matched byte offsets
// emphasized, as reported by fuzzy matchers.
func RenderHighlighted(s string, matched []int) string {
	if len(matched) == 0 {
		return s
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}
	var b strings.Builder
	for i, r := range s {
		if hit[i] {
			b.WriteString(MatchHighlightStyle.Render(string(r)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RenderListRow renders a complete list row with uniform background when selected.
// parts is a slice of {text, fgColor} pairs. Use nil for default foreground.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	bg := SlateLight

	var result string
	visibleLen := 0

	for _, part := range parts {
		style := lipgloss.NewStyle()
		switch {
		case part.Foreground != nil:
			style = style.Foreground(*part.Foreground)
		case selected:
			style = style.Foreground(White)
		default:
			style = style.Foreground(LightGray)
		}
		if selected {
			style = style.Background(bg)
		}
		result += style.Render(part.Text)
		visibleLen += lipgloss.Width(part.Text)
	}

	// Pad to width, minus the left/right margin
	if pad := width - visibleLen - 2; pad > 0 {
		padStyle := lipgloss.NewStyle()
		if selected {
			padStyle = padStyle.Background(bg)
		}
		result += padStyle.Render(strings.Repeat(" ", pad))
	}

	marginStyle := lipgloss.NewStyle()
	if selected {
		marginStyle = marginStyle.Background(bg)
	}
	margin := marginStyle.Render(" ")

	return margin + result + margin
}

// RowPart represents a part of a row with optional foreground color
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
}
