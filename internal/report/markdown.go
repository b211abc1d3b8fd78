package report

import (
	"fmt"
	"strings"

	"github.com/Simplici0/roicalc/internal/roi"
)

// Markdown renders the calculation as a markdown report.
func Markdown(title string, p roi.FirmProfile, r roi.Result) string {
	display := NewDisplay(r)
	if title == "" {
		title = "Compliance ROI analysis"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	fmt.Fprintf(&b, "## Firm profile\n\n")
	for _, l := range profileLines {
		fmt.Fprintf(&b, "- %s: %s\n", l.label, l.value(p))
	}

	for _, sec := range sections {
		writeMarkdownTable(&b, sec.heading, sec.lines, display)
	}

	fmt.Fprintf(&b, "\n## Model assumptions\n\n")
	for _, a := range roi.Assumptions() {
		fmt.Fprintf(&b, "- %s\n", a)
	}
	return b.String()
}

func writeMarkdownTable(b *strings.Builder, heading string, lines []line, display Display) {
	fmt.Fprintf(b, "\n## %s\n\n", heading)
	fmt.Fprintf(b, "| Item | Value |\n")
	fmt.Fprintf(b, "| --- | --- |\n")
	for _, l := range lines {
		fmt.Fprintf(b, "| %s | %s |\n", l.label, display[l.key])
	}
}
