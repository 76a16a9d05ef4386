package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cranekit/rimeup/internal/check"
	"github.com/cranekit/rimeup/internal/config"
	"github.com/cranekit/rimeup/internal/execx"
)

func stubCheckRun(t *testing.T, results []check.Result) {
	t.Helper()
	orig := checkRunFn
	t.Cleanup(func() { checkRunFn = orig })
	checkRunFn = func(cfg *config.Config, runner execx.Runner, binDir string) []check.Result {
		require.NotNil(t, cfg)
		require.NotNil(t, runner)
		return results
	}
}

func TestCheckAllPassing(t *testing.T) {
	stubCheckRun(t, []check.Result{
		{Status: check.StatusOK, CheckName: "dependency", Message: "7z found at /usr/bin/7z"},
		{Status: check.StatusOK, CheckName: "archive", Message: "./pkg.zip (1024 bytes)"},
	})

	var out bytes.Buffer
	err := execute([]string{"rimeup", "check"}, &out, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "environment check")
	assert.Contains(t, out.String(), "7z found at /usr/bin/7z")
	assert.Contains(t, out.String(), "All checks passed.")
}

func TestCheckWarningsDoNotFail(t *testing.T) {
	stubCheckRun(t, []check.Result{
		{Status: check.StatusWarn, CheckName: "package manager", Message: "none detected"},
	})

	var out bytes.Buffer
	err := execute([]string{"rimeup", "check"}, &out, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[WARN]")
	assert.Contains(t, out.String(), "All checks passed.")
}

func TestCheckFailureExitsNonZero(t *testing.T) {
	stubCheckRun(t, []check.Result{
		{Status: check.StatusOK, CheckName: "dependency", Message: "rsync found at /usr/bin/rsync"},
		{
			Status:         check.StatusFail,
			CheckName:      "archive",
			Message:        "./pkg.zip does not exist",
			Recommendation: "place the schema archive next to rimeup",
		},
	})

	var out bytes.Buffer
	err := execute([]string{"rimeup", "check"}, &out, &out)
	require.EqualError(t, err, "environment check failed")

	assert.Contains(t, out.String(), "[FAIL]")
	assert.Contains(t, out.String(), "→ place the schema archive next to rimeup")
	assert.Contains(t, out.String(), "Some checks failed.")
}

func TestCheckRendersStatusLabels(t *testing.T) {
	var out bytes.Buffer
	printResult(&out, check.Result{Status: check.StatusOK, CheckName: "target dir", Message: "absent"})
	printResult(&out, check.Result{Status: check.StatusWarn, CheckName: "log dir", Message: "tight"})
	printResult(&out, check.Result{Status: check.StatusFail, CheckName: "elevation", Message: "no sudo"})

	assert.Contains(t, out.String(), "[OK]")
	assert.Contains(t, out.String(), "[WARN]")
	assert.Contains(t, out.String(), "[FAIL]")
	assert.Contains(t, out.String(), "target dir")
	assert.Contains(t, out.String(), "no sudo")
}
