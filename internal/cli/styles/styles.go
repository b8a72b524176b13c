package styles

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/corkboard/internal/models"
)

// Palette used by every human-readable view
const (
	colorAccent  = "#7D56F4"
	colorTitle   = "#FAFAFA"
	colorSubtle  = "#6B7280"
	colorNormal  = "#D1D5DB"
	colorSuccess = "#22C55E"
	colorError   = "#EF4444"
	colorWarning = "#EAB308"
)

var (
	// Card styles
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorAccent)).
			Padding(1, 2).
			Width(CardWidth)
	CardWidth = 72

	// Text styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorTitle))
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSubtle))
	// For field labels like "Column:", "Order:"
	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorAccent))
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorNormal))
	// For section headers like "Description"
	SectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorAccent)).
			Bold(true).
			MarginTop(1)

	// Status styles
	ArchivedStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color(colorSubtle))
	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorSuccess))
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorError))
	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorWarning))
)

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// Check renders the success mark printed before confirmations
func Check() string {
	return SuccessStyle.Render("✓")
}

// Field renders "Label: value" on one line
func Field(label, value string) string {
	return LabelStyle.Render(label+":") + " " + ValueStyle.Render(value)
}

// FormatOrder prints integral keys without a fraction
func FormatOrder(order float64) string {
	return fmt.Sprintf("%g", order)
}

// RenderCardLine renders a card as "• Title (order)" for column listings
func RenderCardLine(card *models.Card) string {
	line := fmt.Sprintf("• %s %s", card.Title, SubtitleStyle.Render("("+FormatOrder(card.Order)+")"))
	if card.Archived {
		return ArchivedStyle.Render(line + " [archived]")
	}
	return line
}

// RenderColumnHeader renders a column name with its card count
func RenderColumnHeader(column *models.Column, count int) string {
	return SectionStyle.Render(fmt.Sprintf("%s (%d)", column.Name, count))
}

// RenderCardDetail renders the full card view inside a bordered box
func RenderCardDetail(card *models.Card, columnName string) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(card.Title))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(card.ID))
	b.WriteString("\n\n")
	b.WriteString(Field("Column", columnName))
	b.WriteString("\n")
	b.WriteString(Field("Order", FormatOrder(card.Order)))
	b.WriteString("\n")
	if card.Archived {
		b.WriteString(ArchivedStyle.Render("archived"))
		b.WriteString("\n")
	}
	b.WriteString(Field("Created", card.CreatedAt.Local().Format("2006-01-02 15:04")))
	b.WriteString("\n")
	b.WriteString(Field("Updated", card.UpdatedAt.Local().Format("2006-01-02 15:04")))
	if card.Description != nil && *card.Description != "" {
		b.WriteString("\n")
		b.WriteString(SectionStyle.Render("Description"))
		b.WriteString("\n")
		b.WriteString(RenderDescription(*card.Description, DescriptionWidth))
	}
	return RenderCard(b.String())
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
