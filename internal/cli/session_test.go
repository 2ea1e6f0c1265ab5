package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/raphaelgruber/crisis-assistant/internal/assistant"
	"github.com/raphaelgruber/crisis-assistant/internal/catalog"
	"github.com/raphaelgruber/crisis-assistant/internal/classifier"
	"github.com/raphaelgruber/crisis-assistant/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *session {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	asst = assistant.New(cat, classifier.DefaultThreshold, nil, nil)
	rend = render.New(true)
	verbose = false
	return &session{asst: asst, rend: rend}
}

func TestSession_Handle(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantQuit bool
		contains string
	}{
		{name: "quit", line: "quit", wantQuit: true, contains: farewell},
		{name: "exit uppercase", line: "  EXIT ", wantQuit: true, contains: farewell},
		{name: "q", line: "q", wantQuit: true, contains: farewell},
		{name: "help", line: "help", contains: "GENERAL EMERGENCY GUIDANCE"},
		{name: "status", line: "Status", contains: "OFFLINE CRISIS ASSISTANT - SYSTEM STATUS"},
		{name: "blank", line: "   ", contains: emptyHint},
		{name: "query", line: "Child is choking on food", contains: "EMERGENCY RESPONSE: AIRWAY OBSTRUCTION (CHOKING)"},
		{name: "vague query", line: "burnish", contains: "GENERAL EMERGENCY GUIDANCE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)

			text, quit, err := s.handle(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuit, quit)
			assert.Contains(t, text, tt.contains)
		})
	}
}

func TestSession_CommandsAreNotQueries(t *testing.T) {
	s := newTestSession(t)

	for _, line := range []string{"help", "status", ""} {
		_, _, err := s.handle(line)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(0), s.asst.Stats().Queries)

	_, _, err := s.handle("cpr")
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.asst.Stats().Queries)
}

func TestSession_VerboseShowsScores(t *testing.T) {
	s := newTestSession(t)
	s.verbose = true

	text, _, err := s.handle("Got burned by hot water on my hand")
	require.NoError(t, err)
	assert.Contains(t, text, "Category scores:")
	assert.Contains(t, text, "burns (16.7% confidence)")
}

func TestRunLineSession(t *testing.T) {
	s := newTestSession(t)
	var out bytes.Buffer

	err := runLineSession(s, strings.NewReader("fracture\nexit\n"), &out)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "Emergency Query: ")
	assert.Contains(t, got, "EMERGENCY RESPONSE: BONE FRACTURES AND SPRAINS")
	assert.Equal(t, 1, strings.Count(got, farewell))
}

func TestWriteDemo(t *testing.T) {
	newTestSession(t)
	var out bytes.Buffer

	require.NoError(t, writeDemo(&out, assistant.DemoQueries))

	got := out.String()
	for i, q := range assistant.DemoQueries {
		assert.Contains(t, got, "User: "+q, "demo query %d", i+1)
	}
	assert.Equal(t, len(assistant.DemoQueries), strings.Count(got, "EMERGENCY RESPONSE:"))
	assert.Equal(t, int64(len(assistant.DemoQueries)), asst.Stats().Queries)
}

func TestDemoModel_Advance(t *testing.T) {
	newTestSession(t)
	queries := []string{"cpr", "xyz unrelated"}

	m := newDemoModel(queries)
	assert.Equal(t, -1, m.index)

	m = m.advance()
	require.False(t, m.done)
	assert.Equal(t, 0, m.index)
	assert.Contains(t, m.pending, "DEMO QUERY 1:\nUser: cpr")

	m = m.advance()
	require.False(t, m.done)
	assert.Contains(t, m.pending, "GENERAL EMERGENCY GUIDANCE")

	m = m.advance()
	assert.True(t, m.done)
	assert.Empty(t, m.pending)
	assert.NoError(t, m.err)
}

func TestPromptModel_Submit(t *testing.T) {
	s := newTestSession(t)
	m := newPromptModel(s)
	m.input.SetValue("shock")

	m = m.submit(m.input.Value())
	assert.False(t, m.done)
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.pending, "MEDICAL SHOCK TREATMENT")

	m = m.submit("quit")
	assert.True(t, m.done)
	assert.Equal(t, farewell+"\n", m.pending)
}

// Answers go to the scrollback; a full procedure in the frame would be
// clipped at the top on a normal-sized terminal.
func TestFramesStayShort(t *testing.T) {
	const maxLines = 2

	t.Run("prompt", func(t *testing.T) {
		s := newTestSession(t)
		for _, q := range []string{"cpr", "Child is choking on food", "status", "help"} {
			m := newPromptModel(s).submit(q)
			require.NotEmpty(t, m.pending, q)
			assert.LessOrEqual(t, strings.Count(m.frame(), "\n"), maxLines, q)
			assert.NotContains(t, m.frame(), "EMERGENCY RESPONSE", q)
		}
	})

	t.Run("demo", func(t *testing.T) {
		newTestSession(t)
		m := newDemoModel(assistant.DemoQueries)
		for range assistant.DemoQueries {
			m = m.advance()
			require.Contains(t, m.pending, "EMERGENCY RESPONSE")
			assert.LessOrEqual(t, strings.Count(m.frame(), "\n"), maxLines)
			assert.Contains(t, m.frame(), "Press Enter")
		}
	})

	t.Run("finished", func(t *testing.T) {
		s := newTestSession(t)
		m := newPromptModel(s).submit("quit")
		assert.Empty(t, m.frame())
	})
}

func TestPrintAbove(t *testing.T) {
	assert.Nil(t, printAbove("", false))
	assert.NotNil(t, printAbove("answer\n", false))
	assert.NotNil(t, printAbove("", true))
}
