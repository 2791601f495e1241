package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pulsenet/internal/analysis"
	fixtures "github.com/roach88/pulsenet/internal/testutil"
)

func TestFirstLow_Text(t *testing.T) {
	path := writeFile(t, "counter.txt", fixtures.CounterWiring(3, 5, 7))

	out, _, err := execute(t, "first-low", path)
	require.NoError(t, err)

	assert.Contains(t, out, "g3inv: every 3 presses\n")
	assert.Contains(t, out, "g5inv: every 5 presses\n")
	assert.Contains(t, out, "g7inv: every 7 presses\n")
	assert.Contains(t, out, "answer: 105 (3,5,7->105)\n")
}

func TestFirstLow_JSON(t *testing.T) {
	path := writeFile(t, "counter.txt", fixtures.CounterWiring(3, 5))

	out, _, err := execute(t, "first-low", path, "--format", "json", "--samples", "4")
	require.NoError(t, err)

	var data FirstLowOutput
	resp := decodeResponse(t, out, &data)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "rx", data.Sink)
	assert.Equal(t, uint64(15), data.Answer)
	assert.Equal(t, []analysis.Period{
		{Node: "g3inv", Period: 3},
		{Node: "g5inv", Period: 5},
	}, data.Periods)
	assert.Equal(t, int64(20), data.Simulated)
}

func TestFirstLow_CustomSink(t *testing.T) {
	wiring := "broadcaster -> g3b0\n" +
		"%g3b0 -> g3b1, g3c\n" +
		"%g3b1 -> g3c\n" +
		"&g3c -> g3b0, g3inv\n" +
		"&g3inv -> hub\n" +
		"&hub -> lamp\n"
	path := writeFile(t, "lamp.txt", wiring)

	out, _, err := execute(t, "first-low", path, "--sink", "lamp")
	require.NoError(t, err)
	assert.Contains(t, out, "answer: 3 (3->3)\n")
}

func TestFirstLow_RecordsRun(t *testing.T) {
	path := writeFile(t, "counter.txt", fixtures.CounterWiring(3, 5))
	db := filepath.Join(t.TempDir(), "runs.db")

	_, _, err := execute(t, "first-low", path, "--db", db)
	require.NoError(t, err)

	out, _, err := execute(t, "history", "--db", db, "--format", "json")
	require.NoError(t, err)

	var history HistoryOutput
	decodeResponse(t, out, &history)
	require.Len(t, history.Runs, 1)
	run := history.Runs[0]
	assert.Equal(t, "first_low", string(run.Mode))
	assert.Equal(t, "rx", run.Sink)
	assert.Equal(t, uint64(15), run.Answer)
	assert.Len(t, run.Periods, 2)
}

func TestFirstLow_Failures(t *testing.T) {
	tests := []struct {
		name     string
		wiring   string
		args     []string
		wantCode string
		wantNode string
	}{
		{
			name:     "non-periodic feeder",
			wiring:   fixtures.FreeRunningWiring,
			wantCode: "NON_PERIODIC_FEEDER",
			wantNode: "inv",
		},
		{
			name:     "unknown sink",
			wiring:   fixtures.RingWiring,
			wantCode: "UNREACHABLE_TARGET",
			wantNode: "rx",
		},
		{
			name:     "press limit",
			wiring:   fixtures.CounterWiring(3, 5),
			args:     []string{"--max-presses", "10"},
			wantCode: "PRESS_LIMIT_EXCEEDED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "circuit.txt", tt.wiring)

			args := append([]string{"first-low", path, "--format", "json"}, tt.args...)
			out, _, err := execute(t, args...)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))

			resp := decodeResponse(t, out, nil)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			if tt.wantNode != "" {
				details, ok := resp.Error.Details.(map[string]any)
				require.True(t, ok)
				assert.Equal(t, tt.wantNode, details["node"])
			}
		})
	}
}
