package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fixtures "github.com/roach88/pulsenet/internal/testutil"
)

func TestAggregate_Text(t *testing.T) {
	tests := []struct {
		name   string
		wiring string
		args   []string
		want   []string
	}{
		{
			name:   "ring default presses",
			wiring: fixtures.RingWiring,
			want:   []string{"low:     8000", "high:    4000", "product: 32000000"},
		},
		{
			name:   "chain default presses",
			wiring: fixtures.ChainWiring,
			want:   []string{"low:     4250", "high:    2750", "product: 11687500"},
		},
		{
			name:   "single press",
			wiring: fixtures.RingWiring,
			args:   []string{"--presses", "1"},
			want:   []string{"low:     8", "high:    4", "product: 32"},
		},
		{
			name:   "zero presses",
			wiring: fixtures.ChainWiring,
			args:   []string{"--presses", "0"},
			want:   []string{"low:     0", "high:    0", "product: 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "circuit.txt", tt.wiring)

			out, _, err := execute(t, append([]string{"aggregate", path}, tt.args...)...)
			require.NoError(t, err)
			for _, line := range tt.want {
				assert.Contains(t, out, line+"\n")
			}
			assert.NotContains(t, out, "run:")
		})
	}
}

func TestAggregate_JSON(t *testing.T) {
	path := writeFile(t, "ring.txt", fixtures.RingWiring)

	out, _, err := execute(t, "aggregate", path, "--presses", "10", "--format", "json")
	require.NoError(t, err)

	var data AggregateOutput
	resp := decodeResponse(t, out, &data)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 10, data.Presses)
	assert.Equal(t, int64(80), data.Low)
	assert.Equal(t, int64(40), data.High)
	assert.Equal(t, int64(3200), data.Product)
	assert.Len(t, data.Fingerprint, 64)
	assert.Empty(t, data.RunID)
}

func TestAggregate_CUE(t *testing.T) {
	path := filepath.Join("..", "harness", "testdata", "circuits", "chain.cue")

	out, _, err := execute(t, "aggregate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "product: 11687500\n")
}

func TestAggregate_RecordsRun(t *testing.T) {
	path := writeFile(t, "ring.txt", fixtures.RingWiring)
	db := filepath.Join(t.TempDir(), "runs.db")

	out, _, err := execute(t, "aggregate", path, "--db", db, "--format", "json")
	require.NoError(t, err)

	var data AggregateOutput
	decodeResponse(t, out, &data)
	assert.NotEmpty(t, data.RunID)

	out, _, err = execute(t, "aggregate", path, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "run:     ")

	out, _, err = execute(t, "history", "--db", db, "--format", "json")
	require.NoError(t, err)

	var history HistoryOutput
	decodeResponse(t, out, &history)
	require.Len(t, history.Runs, 2)
	assert.Equal(t, data.RunID, history.Runs[0].ID)
	assert.Equal(t, uint64(32000000), history.Runs[0].Answer)
	assert.Equal(t, int64(2), history.Runs[1].Seq)
}

func TestAggregate_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		out, _, err := execute(t, "aggregate", filepath.Join(t.TempDir(), "absent.txt"))
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, out, "Error [E005]")
	})

	t.Run("malformed wiring", func(t *testing.T) {
		path := writeFile(t, "bad.txt", "broadcaster -> a\n%a b\n")

		out, _, err := execute(t, "aggregate", path, "--format", "json")
		require.Error(t, err)
		assert.Equal(t, ExitFailure, GetExitCode(err))

		resp := decodeResponse(t, out, nil)
		assert.Equal(t, "error", resp.Status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "MALFORMED_WIRING", resp.Error.Code)
		assert.Equal(t, map[string]any{"line": "2", "text": "%a b"}, resp.Error.Details)
	})

	t.Run("negative presses", func(t *testing.T) {
		path := writeFile(t, "ring.txt", fixtures.RingWiring)

		_, _, err := execute(t, "aggregate", path, "--presses", "-1")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})
}
