package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// plainBanner precedes results written to standard output
const plainBanner = "\nresults:\n\n"

var bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

// resultBanner returns the banner for w: styled on a terminal, plain
// otherwise, and empty when disabled.
func resultBanner(w io.Writer, disabled bool) string {
	if disabled {
		return ""
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) { //nolint:gosec // fd fits in int
		return "\n" + bannerStyle.Render("results:") + "\n\n"
	}
	return plainBanner
}
