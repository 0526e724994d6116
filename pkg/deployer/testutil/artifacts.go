package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RockX-SG/iotex-staking/pkg/deployer/artifacts"
)

var artifactNames = []string{
	"stIOTX",
	"IOTEXStaking",
	"IotexRedeem",
	"TransparentUpgradeableProxy",
}

// LocalArtifacts writes a throwaway artifacts directory containing a stub
// artifact per contract and returns a loader over it. The creation code is a
// lone STOP opcode; the fake backend never executes it.
func LocalArtifacts(t *testing.T) (*artifacts.Locator, *artifacts.Loader) {
	dir := t.TempDir()
	for _, name := range artifactNames {
		artifact := []byte(`{"contractName":"` + name + `","bytecode":{"object":"0x00"}}`)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), artifact, 0o644))
	}

	loc := artifacts.NewFileLocator(dir)
	loader, err := artifacts.NewLoader(loc)
	require.NoError(t, err)
	return loc, loader
}
