package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/annotext/spanviz/pkg/annotation"
)

// validateCommand creates the validate command for checking annotations.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [document.json]",
		Short: "Check a document's annotations for problems",
		Long: `Check a document's annotations for problems.

Every entity and relation is checked against the rules the layout engine
applies: spans must fit the text, ranges must be non-empty, and relations
must reference entities that exist. Each problem is reported with the
reason the annotation would be excluded from layout.

The command exits non-zero when any annotation has a problem.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0])
		},
	}
}

// runValidate loads the document and reports annotation problems.
func (c *CLI) runValidate(input string) error {
	doc, err := annotation.ReadDocumentFile(input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	problems := doc.Validate()
	for _, p := range problems {
		printWarning("%s %s: %s", p.Kind, p.ID, p.Reason)
	}

	total := doc.EntityCount() + doc.RelationCount()
	if len(problems) > 0 {
		printNewline()
		return fmt.Errorf("%d of %d annotations have problems", len(problems), total)
	}

	printSuccess("%d entities and %d relations are valid", doc.EntityCount(), doc.RelationCount())
	return nil
}
