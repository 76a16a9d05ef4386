package installer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/cranekit/rimeup/internal/messages"
)

// planMaxLines caps the preview so large schema packages stay readable.
const planMaxLines = 40

// BuildPlan renders what the mirror will change as a unified diff between
// the target directory's manifest and the extracted package's manifest.
func BuildPlan(sourceDir, targetDir string) (string, error) {
	sourceManifest, err := manifest(sourceDir)
	if err != nil {
		return "", fmt.Errorf(messages.InstallerPlanSourceFmt, err)
	}
	targetManifest, err := manifest(targetDir)
	if err != nil {
		return "", fmt.Errorf(messages.InstallerPlanTargetFmt, err)
	}
	diff := udiff.Unified(targetDir, sourceDir, targetManifest, sourceManifest)
	if strings.TrimSpace(diff) == "" {
		return messages.InstallerPlanNoChanges + "\n", nil
	}
	return messages.InstallerPlanHeader + "\n" + truncatePlan(diff), nil
}

// manifest lists dir recursively as one entry per line, directories with a
// trailing slash and files with their size, so additions, deletions, and
// size changes all surface without reading file contents. A missing dir
// yields an empty manifest: everything on the other side shows as added.
func manifest(dir string) (string, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	var b strings.Builder
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if info.IsDir() {
			fmt.Fprintf(&b, "%s/\n", rel)
			return nil
		}
		fmt.Fprintf(&b, "%s  %d bytes\n", rel, info.Size())
		return nil
	})
	return b.String(), err
}

func truncatePlan(diff string) string {
	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	if len(lines) <= planMaxLines {
		return strings.Join(lines, "\n") + "\n"
	}
	remaining := len(lines) - planMaxLines
	truncated := append(lines[:planMaxLines], fmt.Sprintf(messages.InstallerPlanTruncatedFmt, remaining))
	return strings.Join(truncated, "\n") + "\n"
}
