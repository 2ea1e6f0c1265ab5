package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphaelgruber/crisis-assistant/internal/catalog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so runs do not leak into each other.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs the root command with args and stdin, returning its output.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CRISIS_LOG_FILE", filepath.Join(t.TempDir(), "crisis.log"))
	t.Setenv("CRISIS_CATALOG_FILE", "")
	t.Setenv("CRISIS_THRESHOLD", "")
	t.Setenv("CRISIS_LOG_LEVEL", "ERROR")

	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestAsk(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		contains    []string
		notContains []string
	}{
		{
			name: "bleeding",
			args: []string{"ask", "Someone is bleeding heavily from their arm"},
			contains: []string{
				"Processing query: 'Someone is bleeding heavily from their arm'",
				"Emergency type identified: bleeding (6.7% confidence)",
				"EMERGENCY RESPONSE: SEVERE BLEEDING CONTROL",
			},
		},
		{
			name:     "unquoted words are joined",
			args:     []string{"ask", "person", "collapsed", "and", "not", "breathing"},
			contains: []string{"Emergency type identified: cpr (22.2% confidence)", "CARDIOPULMONARY RESUSCITATION"},
		},
		{
			name:        "unrelated text falls back",
			args:        []string{"ask", "xyz completely unrelated text"},
			contains:    []string{"unknown (0.0% confidence)", "GENERAL EMERGENCY GUIDANCE"},
			notContains: []string{"EMERGENCY RESPONSE:"},
		},
		{
			name:        "quiet",
			args:        []string{"ask", "--quiet", "cpr"},
			contains:    []string{"CARDIOPULMONARY RESUSCITATION"},
			notContains: []string{"Processing query", "Emergency type identified"},
		},
		{
			name:     "verbose shows scores",
			args:     []string{"ask", "-v", "burnish"},
			contains: []string{"Category scores:", "burns         1 / 30", "GENERAL EMERGENCY GUIDANCE"},
		},
		{
			name:        "threshold flag",
			args:        []string{"ask", "--threshold", "0.5", "cpr"},
			contains:    []string{"cpr (11.1% confidence)", "GENERAL EMERGENCY GUIDANCE"},
			notContains: []string{"CARDIOPULMONARY RESUSCITATION"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, "", tt.args...)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestAsk_Errors(t *testing.T) {
	t.Run("missing description", func(t *testing.T) {
		_, err := executeCommand(t, "", "ask")
		assert.Error(t, err)
	})

	t.Run("threshold out of range", func(t *testing.T) {
		_, err := executeCommand(t, "", "ask", "--threshold", "2", "cpr")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "threshold must be between 0 and 1")
	})
}

func TestThresholdFromEnv(t *testing.T) {
	t.Setenv("CRISIS_THRESHOLD", "0.5")

	// executeCommand clears the variable, so run the command directly.
	resetFlags(rootCmd)
	t.Setenv("CRISIS_LOG_FILE", filepath.Join(t.TempDir(), "crisis.log"))
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"ask", "cpr"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "GENERAL EMERGENCY GUIDANCE")
}

func TestCatalogFlag(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte(`
keywords:
  - {category: drowning, phrases: [drowning, water, pool]}
procedures:
  - id: drowning
    title: Drowning Response
    source: Lifeguard Manual
    urgency: CRITICAL
    time_critical: true
    steps: [Call for help, Reach or throw do not go]
`), 0o600))

	out, err := executeCommand(t, "", "--catalog", good, "ask", "kid drowning in the pool")
	require.NoError(t, err)
	assert.Contains(t, out, "EMERGENCY RESPONSE: DROWNING RESPONSE")
	assert.Contains(t, out, "   2. Reach or throw do not go")

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte(`
keywords:
  - {category: drowning, phrases: [drowning]}
procedures: []
`), 0o600))

	_, err = executeCommand(t, "", "--catalog", broken, "status")
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrIntegrity)
}

func TestStatusAndGuide(t *testing.T) {
	out, err := executeCommand(t, "", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "OFFLINE CRISIS ASSISTANT - SYSTEM STATUS")
	assert.Contains(t, out, "Emergency Procedures: 6 PROCEDURES READY")
	assert.Contains(t, out, "Catalog Load Time:")
	assert.Contains(t, out, "(1 loads,")

	out, err = executeCommand(t, "", "guide")
	require.NoError(t, err)
	assert.Contains(t, out, "GENERAL EMERGENCY GUIDANCE")
}

func TestListShowKeywords(t *testing.T) {
	out, err := executeCommand(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Airway Obstruction (Choking) - CRITICAL PRIORITY")
	assert.NotContains(t, out, "bleeding: blood")

	out, err = executeCommand(t, "", "list", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "bleeding: blood, bleeding, cut, wound")

	out, err = executeCommand(t, "", "show", "Choking")
	require.NoError(t, err)
	assert.Contains(t, out, "EMERGENCY RESPONSE: AIRWAY OBSTRUCTION (CHOKING)")
	assert.NotContains(t, out, "CONFIDENCE:")

	_, err = executeCommand(t, "", "show", "drowning")
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrUnknownCategory)

	out, err = executeCommand(t, "", "keywords", "blood")
	require.NoError(t, err)
	assert.Contains(t, out, "Categories (2):")
	assert.Contains(t, out, "- bleeding\n- shock\n")

	out, err = executeCommand(t, "", "keywords", "zebra")
	require.NoError(t, err)
	assert.Contains(t, out, `No categories have a phrase containing "zebra".`)
}

func TestDemo_NoWait(t *testing.T) {
	out, err := executeCommand(t, "", "demo", "--no-wait")
	require.NoError(t, err)

	assert.Contains(t, out, "DEMO: Processing Sample Emergency Queries")
	for _, want := range []string{
		"DEMO QUERY 1:\nUser: Someone is bleeding heavily from their arm",
		"DEMO QUERY 5:\nUser: I think my leg is broken after falling",
		"EMERGENCY RESPONSE: BONE FRACTURES AND SPRAINS",
	} {
		assert.Contains(t, out, want)
	}
}

func TestInteractive_LineMode(t *testing.T) {
	input := "help\n\ncpr\nstatus\nquit\nbleeding\n"

	out, err := executeCommand(t, input, "interactive")
	require.NoError(t, err)

	assert.Contains(t, out, "INTERACTIVE MODE")
	assert.Contains(t, out, "GENERAL EMERGENCY GUIDANCE")
	assert.Contains(t, out, emptyHint)
	assert.Contains(t, out, "CARDIOPULMONARY RESUSCITATION (CPR)")
	assert.Contains(t, out, "Queries: 1 (generic guidance: 0)")
	assert.Contains(t, out, farewell)
	// Input after quit is ignored.
	assert.NotContains(t, out, "SEVERE BLEEDING CONTROL")
}

func TestInteractive_EndOfInput(t *testing.T) {
	out, err := executeCommand(t, "choking\n", "i")
	require.NoError(t, err)

	assert.Contains(t, out, "AIRWAY OBSTRUCTION (CHOKING)")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), farewell))
}

func TestRootStartsInteractive(t *testing.T) {
	out, err := executeCommand(t, "q\n", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "INTERACTIVE MODE")
	assert.Contains(t, out, farewell)
}

func TestInteractive_Watch(t *testing.T) {
	t.Run("built-in catalog cannot be watched", func(t *testing.T) {
		_, err := executeCommand(t, "quit\n", "interactive", "--watch")
		require.Error(t, err)
		assert.ErrorIs(t, err, catalog.ErrWatchEmbedded)
	})

	t.Run("file catalog", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		data, err := os.ReadFile(filepath.Join("..", "catalog", "data", "procedures.yaml"))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, data, 0o600))

		out, err := executeCommand(t, "cpr\nquit\n", "--catalog", path, "interactive", "--watch")
		require.NoError(t, err)
		assert.Contains(t, out, "CARDIOPULMONARY RESUSCITATION (CPR)")
		assert.Contains(t, out, farewell)
	})
}
