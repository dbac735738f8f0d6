package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/roach88/previewkit/internal/scan"
	"github.com/roach88/previewkit/internal/shape"
)

// collectDeclFiles resolves the declaration inputs: each argument is either
// a .cue file or a directory scanned (non-recursively) for .cue files.
// Results are sorted so registry order is stable across filesystems.
func collectDeclFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("cannot read %s", arg), err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("cannot read directory %s", arg), err)
		}
		var found bool
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".cue") {
				continue
			}
			files = append(files, filepath.Join(arg, e.Name()))
			found = true
		}
		if !found {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("no .cue declaration files in %s", arg))
		}
	}
	sort.Strings(files)
	return files, nil
}

// loadRegistry scans every declaration file into one registry.
func loadRegistry(files []string) (*shape.Registry, error) {
	reg := shape.NewRegistry()
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("read %s", path), err)
		}
		if err := scan.ScanInto(reg, path, src); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
