package deployer

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ethereum-optimism/optimism/op-chain-ops/devkeys"
)

func TestDevSigners(t *testing.T) {
	t.Parallel()

	chainID := big.NewInt(1337)
	owner, dep, err := DevSigners(devkeys.TestMnemonic, chainID)
	require.NoError(t, err)
	require.NotEqual(t, owner.From, dep.From)

	// Derivation is deterministic per mnemonic and chain.
	owner2, dep2, err := DevSigners(devkeys.TestMnemonic, chainID)
	require.NoError(t, err)
	require.Equal(t, owner.From, owner2.From)
	require.Equal(t, dep.From, dep2.From)

	ownerAddr, depAddr, err := DevAddresses(devkeys.TestMnemonic, chainID)
	require.NoError(t, err)
	require.Equal(t, owner.From, ownerAddr)
	require.Equal(t, dep.From, depAddr)
}

func TestSignerFromPrivateKey(t *testing.T) {
	t.Parallel()

	opts, err := SignerFromPrivateKey("0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d", big.NewInt(1337))
	require.NoError(t, err)
	require.NotNil(t, opts.Signer)
	require.NotEqual(t, opts.From.Hex(), "0x0000000000000000000000000000000000000000")

	_, err = SignerFromPrivateKey("not-a-key", big.NewInt(1337))
	require.Error(t, err)
}
