package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
)

var (
	interactivePlain bool
	interactiveWatch bool
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i"},
	Short:   "Answer emergency queries in a loop",
	Long: `Start an interactive session. Each line is treated as an emergency description.

Commands inside the session:
  help    show general emergency guidance
  status  show system status and session statistics
  quit    leave the session (also 'exit' or 'q')

When stdin is not a terminal, or with --plain, lines are read without the
full-screen prompt so the session can be scripted.

With --watch, a catalog loaded from a file is reloaded whenever the file
changes. A broken edit is logged and the previous catalog stays in use.

Examples:
  crisis interactive
  printf 'cpr\nquit\n' | crisis interactive
  crisis interactive --catalog ./procedures.yaml --watch`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func init() {
	interactiveCmd.Flags().BoolVar(&interactivePlain, "plain", false, "read plain lines instead of the terminal UI")
	interactiveCmd.Flags().BoolVar(&interactiveWatch, "watch", false, "reload the catalog file when it changes")
}

func runInteractive(cmd *cobra.Command, args []string) error {
	if interactiveWatch {
		stop, err := watchCatalog(cmd.Context(), cfg.CatalogFile)
		if err != nil {
			return err
		}
		defer stop()
	}

	s := &session{asst: asst, rend: rend, verbose: verbose}
	w := cmd.OutOrStdout()

	fmt.Fprint(w, rend.Status(asst.Catalog(), asst.Threshold(), asst.Stats()))

	if interactivePlain || !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return runLineSession(s, cmd.InOrStdin(), w)
	}
	return runPromptSession(s)
}

// runLineSession reads queries line by line until quit or end of input.
func runLineSession(s *session, r io.Reader, w io.Writer) error {
	fmt.Fprintf(w, "\nINTERACTIVE MODE - %s\n", promptHint)

	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, "\nEmergency Query: ")
		if !scanner.Scan() {
			fmt.Fprintln(w)
			fmt.Fprintln(w, farewell)
			return scanner.Err()
		}

		text, quit, err := s.handle(scanner.Text())
		if err != nil {
			return err
		}
		fmt.Fprint(w, text)
		if quit {
			return nil
		}
	}
}

// promptModel is the bubbletea model for the interactive prompt.
// Answers are printed above the program so the frame stays one prompt tall.
type promptModel struct {
	session *session
	input   textinput.Model
	pending string
	done    bool
	err     error
}

func newPromptModel(s *session) promptModel {
	ti := textinput.New()
	ti.Prompt = "Emergency Query: "
	ti.Placeholder = "describe the emergency"
	ti.CharLimit = 500
	ti.Focus()

	return promptModel{
		session: s,
		input:   ti,
	}
}

// Init prints the session banner.
func (m promptModel) Init() tea.Cmd {
	return tea.Println("\nINTERACTIVE MODE - " + promptHint)
}

// Update handles messages and returns the updated model.
func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.pending = farewell + "\n"
			m.done = true
			return m, printAbove(m.pending, true)
		case "enter":
			m = m.submit(m.input.Value())
			return m, printAbove(m.pending, m.done)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit handles one line of input and queues its answer for printing.
func (m promptModel) submit(line string) promptModel {
	text, quit, err := m.session.handle(line)
	m.input.Reset()
	if err != nil {
		m.err = err
		m.pending = ""
		m.done = true
		return m
	}
	m.pending = text
	m.done = quit
	return m
}

// frame is the live part of the screen: just the prompt.
func (m promptModel) frame() string {
	if m.done {
		return ""
	}
	return m.input.View() + "\n"
}

// View renders the prompt.
func (m promptModel) View() tea.View {
	return tea.NewView(m.frame())
}

// printAbove prints text into the scrollback above the program, then quits if asked.
func printAbove(text string, quit bool) tea.Cmd {
	var cmds []tea.Cmd
	if text = strings.TrimRight(text, "\n"); text != "" {
		cmds = append(cmds, tea.Println(text))
	}
	if quit {
		cmds = append(cmds, tea.Quit)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Sequence(cmds...)
}

// runPromptSession runs the terminal UI until the user quits.
func runPromptSession(s *session) error {
	finalModel, err := tea.NewProgram(newPromptModel(s)).Run()
	if err != nil {
		return fmt.Errorf("interactive UI error: %w", err)
	}

	if m, ok := finalModel.(promptModel); ok && m.err != nil {
		return m.err
	}
	return nil
}
