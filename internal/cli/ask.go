package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/raphaelgruber/crisis-assistant/internal/assistant"
	"github.com/raphaelgruber/crisis-assistant/internal/render"
	"github.com/spf13/cobra"
)

var askQuiet bool

var askCmd = &cobra.Command{
	Use:   "ask <description...>",
	Short: "Look up the procedure for an emergency description",
	Long: `Classify an emergency description and print the matching first-aid procedure.

When no procedure matches with enough confidence, general emergency guidance
is printed instead. Quoting the description is optional.

Examples:
  crisis ask "Someone is bleeding heavily from their arm"
  crisis ask person collapsed and not breathing
  crisis ask "burn on hand" --verbose
  crisis ask cpr --threshold 0.2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVarP(&askQuiet, "quiet", "q", false, "print only the procedure or guidance")
}

func runAsk(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	out, err := asst.Process(query)
	if err != nil {
		return fmt.Errorf("process query: %w", err)
	}

	writeOutcome(cmd.OutOrStdout(), rend, out, askQuiet, verbose)
	return nil
}

// writeOutcome prints the analysis summary followed by the answer.
func writeOutcome(w io.Writer, r *render.Renderer, out assistant.Outcome, quiet, scores bool) {
	if !quiet {
		fmt.Fprintf(w, "\nProcessing query: '%s'\n", out.Query)
		fmt.Fprintln(w, r.Summary(out))
		if scores {
			fmt.Fprint(w, r.Scores(out.Scores))
		}
	}
	fmt.Fprint(w, r.Outcome(out))
}
