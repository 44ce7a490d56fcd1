package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

func StartScreen(title string, subtitle string) {
	ClearScreen()
	fmt.Println(Header(title))
	if subtitle != "" {
		fmt.Println(Current().Tagline.Render(subtitle))
	}
	if !CurrentPreferences().Dense {
		fmt.Println()
	}
}

func ClearScreen() {
	if !IsInteractiveTerminal() {
		return
	}
	fmt.Print("\033[2J\033[H")
}

func IsInteractiveTerminal() bool {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return false
	}
	if os.Getenv("TERM") == "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// Frame renders a full-screen TUI layout.
func Frame(title string, subtitle string, body string, footer string) string {
	s := Current()
	dense := CurrentPreferences().Dense

	parts := make([]string, 0, 7)
	parts = append(parts, s.Header.Render(title))
	if subtitle != "" {
		parts = append(parts, s.Tagline.Render(subtitle))
	}
	if !dense {
		parts = append(parts, "")
	}
	parts = append(parts, body)
	if footer != "" {
		if !dense {
			parts = append(parts, "")
		}
		parts = append(parts, footer)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
