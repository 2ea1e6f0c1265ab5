package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/raphaelgruber/crisis-assistant/internal/assistant"
	"github.com/spf13/cobra"
)

var demoNoWait bool

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through a set of sample emergency queries",
	Long: `Show the system status, then process five sample emergency queries,
waiting for Enter between them.

With --no-wait, or when output is not a terminal, all queries are printed
in one go.

Examples:
  crisis demo
  crisis demo --no-wait > demo.txt`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().BoolVar(&demoNoWait, "no-wait", false, "do not pause between queries")
}

func runDemo(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	fmt.Fprint(w, rend.Status(asst.Catalog(), asst.Threshold(), asst.Stats()))
	fmt.Fprintln(w, "\nDEMO: Processing Sample Emergency Queries")
	fmt.Fprintln(w, strings.Repeat("=", 60))

	if demoNoWait || !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return writeDemo(w, assistant.DemoQueries)
	}

	finalModel, err := tea.NewProgram(newDemoModel(assistant.DemoQueries)).Run()
	if err != nil {
		return fmt.Errorf("demo UI error: %w", err)
	}
	if m, ok := finalModel.(demoModel); ok && m.err != nil {
		return m.err
	}
	return nil
}

// writeDemo processes every query and writes the results in order.
func writeDemo(w io.Writer, queries []string) error {
	for i := range queries {
		text, err := demoStep(i, queries)
		if err != nil {
			return err
		}
		fmt.Fprint(w, text)
	}
	return nil
}

// demoStep renders the i-th demo query and its answer.
func demoStep(i int, queries []string) (string, error) {
	out, err := asst.Process(queries[i])
	if err != nil {
		return "", fmt.Errorf("process demo query %d: %w", i+1, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nDEMO QUERY %d:\nUser: %s\n", i+1, queries[i])
	writeOutcome(&b, rend, out, false, verbose)
	return b.String(), nil
}

var demoHintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C")).Italic(true)

// demoModel is the bubbletea model that pages through demo queries.
// Each answer is printed above the program; the frame only holds the hint.
type demoModel struct {
	queries []string
	index   int
	pending string
	done    bool
	err     error
}

func newDemoModel(queries []string) demoModel {
	return demoModel{queries: queries, index: -1}
}

// Init shows the first query right away.
func (m demoModel) Init() tea.Cmd {
	return func() tea.Msg { return advanceMsg{} }
}

// advanceMsg moves the demo to the next query.
type advanceMsg struct{}

// Update handles messages and returns the updated model.
func (m demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case advanceMsg:
		m = m.advance()
		return m, printAbove(m.pending, m.done)
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.done = true
			return m, tea.Quit
		case "enter", "space", "n":
			return m, func() tea.Msg { return advanceMsg{} }
		}
	}
	return m, nil
}

// advance processes the next query, or finishes after the last one.
func (m demoModel) advance() demoModel {
	m.pending = ""
	if m.index+1 >= len(m.queries) {
		m.done = true
		return m
	}
	m.index++

	text, err := demoStep(m.index, m.queries)
	if err != nil {
		m.err = err
		m.done = true
		return m
	}
	m.pending = text
	return m
}

// frame is the live part of the screen: the hint for the next step.
func (m demoModel) frame() string {
	if m.done {
		return ""
	}
	hint := fmt.Sprintf("Press Enter for next demo query (%d/%d), q to stop", m.index+1, len(m.queries))
	if m.index+1 >= len(m.queries) {
		hint = "Press Enter to finish the demo"
	}
	return demoHintStyle.Render(hint) + "\n"
}

// View renders the hint line.
func (m demoModel) View() tea.View {
	return tea.NewView(m.frame())
}
