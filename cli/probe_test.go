package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sugawarayuuta/sonnet"

	"stdatomic/ledger"
)

var quick = []string{"--contenders", "4", "--iterations", "500", "--rounds", "20", "--ring-size", "16"}

func probeArgs(extra ...string) []string {
	return append(append([]string{"probe"}, quick...), extra...)
}

func TestProbeText(t *testing.T) {
	out, err := execute(t, probeArgs("--scenario", "exchange", "--scenario", "wrap-around")...)
	require.NoError(t, err)
	assert.Contains(t, out, "2 passed, 0 failed")
	assert.Contains(t, out, "exchange")
	assert.Contains(t, out, "wrap-around")
	assert.NotContains(t, out, "ring-handoff")
}

func TestProbeUnknownBackend(t *testing.T) {
	_, err := execute(t, probeArgs("--backend", "llvm")...)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestProbeUnknownScenario(t *testing.T) {
	_, err := execute(t, probeArgs("--scenario", "nope")...)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestProbeRingSizeMustBePowerOfTwo(t *testing.T) {
	_, err := execute(t, "probe", "--ring-size", "12")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestProbeRecordRunsCompare(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	var ids []string
	for _, backend := range []string{"native", "emulated"} {
		out, err := execute(t, append([]string{"--format", "json"}, probeArgs("--backend", backend, "--record", "--db", db)...)...)
		require.NoError(t, err, backend)

		var run ledger.Run
		require.NoError(t, sonnet.Unmarshal([]byte(out), &run))
		assert.Equal(t, backend, run.Backend)
		assert.Zero(t, run.Failed)
		ids = append(ids, run.ID)
	}

	out, err := execute(t, "runs", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, ids[0][:8])
	assert.Contains(t, out, ids[1][:8])

	out, err = execute(t, "compare", "--db", db, ids[0][:8], ids[1][:8])
	require.NoError(t, err)
	assert.Contains(t, out, "identical")
}

func TestCompareDivergentConfig(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	var ids []string
	for _, iters := range []string{"500", "600"} {
		out, err := execute(t, "--format", "json", "probe", "--record", "--db", db,
			"--scenario", "exchange", "--iterations", iters)
		require.NoError(t, err)
		var run ledger.Run
		require.NoError(t, sonnet.Unmarshal([]byte(out), &run))
		ids = append(ids, run.ID)
	}

	out, err := execute(t, "compare", "--db", db, ids[0], ids[1])
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "config")
}

func TestRunsMissingLedger(t *testing.T) {
	_, err := execute(t, "runs", "--db", filepath.Join(t.TempDir(), "absent.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "ledger not found")
}

func TestCompareUnknownRun(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")
	_, err := execute(t, probeArgs("--scenario", "exchange", "--record", "--db", db)...)
	require.NoError(t, err)

	_, err = execute(t, "compare", "--db", db, "deadbeef", "cafebabe")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestRunsDelete(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	out, err := execute(t, "--format", "json", "probe", "--record", "--db", db, "--scenario", "exchange")
	require.NoError(t, err)
	var run ledger.Run
	require.NoError(t, sonnet.Unmarshal([]byte(out), &run))

	out, err = execute(t, "runs", "delete", "--db", db, run.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, "deleted "+run.ID+"\n", out)

	out, err = execute(t, "runs", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "no runs recorded")

	_, err = execute(t, "runs", "delete", "--db", db, run.ID)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}
