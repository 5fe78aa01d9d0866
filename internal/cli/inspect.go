package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/annotext/spanviz/pkg/annotation"
	"github.com/annotext/spanviz/pkg/layout"
	"github.com/annotext/spanviz/pkg/pipeline"
)

// inspectCommand creates the inspect command for examining documents.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		showLayout bool
		width      float64
	)

	cmd := &cobra.Command{
		Use:   "inspect [document.json|directory]",
		Short: "Show a document's text, entities, and relations",
		Long: `Show a document's text, entities, and relations as tables.

Given a directory, an interactive picker lists the annotation documents
inside it and inspects the selected one.

With --layout the computed line packing is shown as well: how the text
wraps at the given width, and how many entity layers and relation lanes
each line carries.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0], showLayout, width)
		},
	}

	cmd.Flags().BoolVar(&showLayout, "layout", false, "also show the computed line packing")
	cmd.Flags().Float64Var(&width, "width", pipeline.DefaultWidth, "drawing width for --layout")

	return cmd
}

// runInspect resolves the input path (via the picker for directories)
// and prints the document tables.
func (c *CLI) runInspect(input string, showLayout bool, width float64) error {
	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}

	path := input
	if info.IsDir() {
		path, err = pickDocument(input)
		if err != nil {
			return err
		}
		if path == "" {
			return nil // picker dismissed
		}
	}

	doc, err := annotation.ReadDocumentFile(path)
	if err != nil {
		return fmt.Errorf("load document %s: %w", path, err)
	}

	printDocument(path, doc)

	if showLayout {
		res, err := layout.Build(doc, width)
		if err != nil {
			return fmt.Errorf("compute layout: %w", err)
		}
		printLayout(res)
	}
	return nil
}

// printDocument renders the inspect summary and tables.
func printDocument(path string, doc annotation.Document) {
	fmt.Println(StyleTitle.Render(path))
	printKeyValue("Text", truncateText(doc.Text, 72))
	printKeyValue("Length", fmt.Sprintf("%d chars", doc.TextLen()))
	printKeyValue("Entities", fmt.Sprintf("%d", doc.EntityCount()))
	printKeyValue("Relations", fmt.Sprintf("%d", doc.RelationCount()))

	if len(doc.Entities) > 0 {
		rows := make([][]string, 0, len(doc.Entities))
		for _, e := range doc.Entities {
			rows = append(rows, []string{
				e.ID,
				e.Type,
				fmt.Sprintf("[%d,%d)", e.Start, e.End),
				truncateText(doc.EntityText(e), 40),
			})
		}
		printNewline()
		fmt.Println(renderTable([]string{"ID", "Type", "Span", "Text"}, rows))
	}

	if len(doc.Relations) > 0 {
		rows := make([][]string, 0, len(doc.Relations))
		for _, r := range doc.Relations {
			rows = append(rows, []string{
				r.ID,
				r.Type,
				r.Source + " " + iconArrow + " " + r.Target,
			})
		}
		printNewline()
		fmt.Println(renderTable([]string{"ID", "Type", "Connects"}, rows))
	}

	if problems := doc.Validate(); len(problems) > 0 {
		printNewline()
		for _, p := range problems {
			printWarning("%s %s: %s", p.Kind, p.ID, p.Reason)
		}
	}
}

// printLayout renders the line packing table for a computed layout.
func printLayout(res *layout.Result) {
	printNewline()
	fmt.Println(StyleTitle.Render("Layout"))
	printKeyValue("Drawing", fmt.Sprintf("%.0f × %.0f px", res.Width, res.Height))
	printKeyValue("Lines", fmt.Sprintf("%d", len(res.Lines)))

	rows := make([][]string, 0, len(res.Lines))
	for _, line := range res.Lines {
		var text strings.Builder
		for i, chunk := range line.Chunks {
			if i > 0 {
				text.WriteString(" ")
			}
			text.WriteString(chunk.Text)
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", line.Index),
			truncateText(text.String(), 36),
			fmt.Sprintf("%d", len(line.Chunks)),
			fmt.Sprintf("%d", line.LayerCount),
			fmt.Sprintf("%d", line.RelationCount),
			fmt.Sprintf("%.0f", line.Spacing),
		})
	}

	printNewline()
	fmt.Println(renderTable([]string{"Line", "Text", "Chunks", "Layers", "Relations", "Spacing"}, rows))
}

// renderTable builds a table with the shared border style.
func renderTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

// truncateText shortens s for single-line display.
func truncateText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
