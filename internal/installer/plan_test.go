package installer

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cranekit/rimeup/internal/testutil"
)

func TestBuildPlanFreshTarget(t *testing.T) {
	source := filepath.Join(t.TempDir(), "pkg")
	testutil.WriteTree(t, source, map[string]string{
		"default.yaml":   "schema",
		"dicts/core.bin": "blob",
	})
	target := filepath.Join(t.TempDir(), "rime-data")

	plan, err := BuildPlan(source, target)
	require.NoError(t, err)

	assert.Contains(t, plan, "Install plan")
	assert.Contains(t, plan, "+default.yaml  6 bytes")
	assert.Contains(t, plan, "+dicts/")
	assert.Contains(t, plan, "+dicts/core.bin  4 bytes")
}

func TestBuildPlanNoChanges(t *testing.T) {
	source := filepath.Join(t.TempDir(), "pkg")
	testutil.WriteTree(t, source, map[string]string{"default.yaml": "schema"})
	target := filepath.Join(t.TempDir(), "rime-data")
	testutil.WriteTree(t, target, map[string]string{"default.yaml": "schema"})

	plan, err := BuildPlan(source, target)
	require.NoError(t, err)
	assert.Equal(t, "Target already matches the package; the mirror will make no changes.\n", plan)
}

func TestBuildPlanShowsRemovalsAndChanges(t *testing.T) {
	source := filepath.Join(t.TempDir(), "pkg")
	testutil.WriteTree(t, source, map[string]string{"default.yaml": "longer content"})
	target := filepath.Join(t.TempDir(), "rime-data")
	testutil.WriteTree(t, target, map[string]string{
		"default.yaml": "schema",
		"stale.yaml":   "old",
	})

	plan, err := BuildPlan(source, target)
	require.NoError(t, err)

	assert.Contains(t, plan, "-default.yaml  6 bytes")
	assert.Contains(t, plan, "+default.yaml  14 bytes")
	assert.Contains(t, plan, "-stale.yaml  3 bytes")
}

func TestBuildPlanMissingSource(t *testing.T) {
	source := filepath.Join(t.TempDir(), "pkg")
	target := filepath.Join(t.TempDir(), "rime-data")
	testutil.WriteTree(t, target, map[string]string{"default.yaml": "schema"})

	plan, err := BuildPlan(source, target)
	require.NoError(t, err, "a missing source reads as an empty manifest")
	assert.Contains(t, plan, "-default.yaml")
}

func TestTruncatePlanCapsOutput(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&b, "+file-%02d  1 bytes\n", i)
	}

	out := truncatePlan(b.String())

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, planMaxLines+1)
	assert.Equal(t, "... (20 more lines)", lines[planMaxLines])
}

func TestTruncatePlanShortDiffUntouched(t *testing.T) {
	diff := "+a\n+b\n"
	assert.Equal(t, diff, truncatePlan(diff))
}
