package cli

import (
	"fmt"
	"strings"

	"github.com/raphaelgruber/crisis-assistant/internal/assistant"
	"github.com/raphaelgruber/crisis-assistant/internal/render"
)

const (
	farewell   = "Crisis Assistant shutting down. Stay safe!"
	emptyHint  = "Please enter an emergency query, 'help', 'status', or 'quit'."
	promptHint = "Type 'quit' to exit, 'help' for guidance, 'status' for system status"
)

// session interprets one line of interactive input at a time.
type session struct {
	asst    *assistant.Assistant
	rend    *render.Renderer
	verbose bool
}

// handle returns the text to show for line and whether the session should end.
// An error is a catalog integrity fault and ends the session.
func (s *session) handle(line string) (string, bool, error) {
	query := strings.TrimSpace(line)

	switch strings.ToLower(query) {
	case "quit", "exit", "q":
		return farewell + "\n", true, nil
	case "help":
		return s.rend.Guidance(), false, nil
	case "status":
		return s.rend.Status(s.asst.Catalog(), s.asst.Threshold(), s.asst.Stats()), false, nil
	case "":
		return emptyHint + "\n", false, nil
	}

	out, err := s.asst.Process(query)
	if err != nil {
		return "", true, fmt.Errorf("process query: %w", err)
	}

	var b strings.Builder
	writeOutcome(&b, s.rend, out, false, s.verbose)
	return b.String(), false, nil
}
