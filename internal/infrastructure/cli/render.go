package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/proposer/internal/domain/proposal"
)

// Styles
var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	PaddingLeft(1).
	PaddingRight(1)

var sectionStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("212"))

var labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
var warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
var okStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

func printWarnings(warnings proposal.Warnings) {
	if len(warnings) == 0 {
		return
	}
	fmt.Println(warnStyle.Render(fmt.Sprintf("%d validation warnings (advisory, nothing was dropped):", len(warnings))))
	for _, w := range warnings {
		fmt.Printf("  - [%s] %s: %s\n", w.Code, w.Field, w.Message)
	}
}
