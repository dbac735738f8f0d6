package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoldenScenarios(t *testing.T) {
	for _, name := range []string{"basic", "indexed"} {
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(filepath.Join("testdata", name+".yaml"))
			require.NoError(t, err)
			require.NoError(t, RunWithGolden(t, scenario))
		})
	}
}
