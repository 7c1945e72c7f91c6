// Package pdf renders the journal into a printable document.
package pdf

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"

	"github.com/hollyoak/arcanum/internal/journal"
)

// WriteJournal renders the given entries as a PDF at pdfPath.
func WriteJournal(entries []journal.Entry, pdfPath string) (string, error) {
	if !strings.HasSuffix(pdfPath, ".pdf") {
		return "", fmt.Errorf("output file must have .pdf extension: %s", pdfPath)
	}

	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process([]byte(renderMarkdown(entries))); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}

func renderMarkdown(entries []journal.Entry) string {
	var sb strings.Builder
	sb.WriteString("# Tarot Journal\n\n")

	for _, entry := range entries {
		fmt.Fprintf(&sb, "## %s - %s\n\n", entry.DateISO, entry.Spread.Name)
		if entry.Question != "" {
			fmt.Fprintf(&sb, "*Question: %s*\n\n", entry.Question)
		}

		for i, drawn := range entry.DrawnCards {
			position := ""
			if i < len(entry.Spread.Positions) {
				position = entry.Spread.Positions[i].Title
			}
			fmt.Fprintf(&sb, "**%s: %s (%s)**\n\n", position, drawn.Card.Name, drawn.Orientation())
			for _, card := range entry.Interpretation.Cards {
				if card.CardName == drawn.Card.Name {
					fmt.Fprintf(&sb, "%s\n\n", card.Meaning)
					break
				}
			}
		}

		fmt.Fprintf(&sb, "**Overall**\n\n%s\n\n", entry.Interpretation.Overall)
		if entry.Impression != "" {
			fmt.Fprintf(&sb, "**Impression**\n\n%s\n\n", entry.Impression)
		}
		if len(entry.Tags) > 0 {
			fmt.Fprintf(&sb, "Tags: %s\n\n", strings.Join(entry.Tags, ", "))
		}
	}
	return sb.String()
}
