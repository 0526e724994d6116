package state

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/RockX-SG/iotex-staking/pkg/deployer/artifacts"
)

func validIntent() *Intent {
	intent := &Intent{
		ChainID: 4690,
		Roles: Roles{
			Owner:    common.Address{0x01},
			Deployer: common.Address{0x02},
		},
		ContractArtifactsLocator: artifacts.NewFileLocator("/tmp/artifacts"),
		ValidatorPubkeys:         []hexutil.Bytes{{0x31, 0x32, 0x33, 0x34}},
	}
	return intent.WithDefaults()
}

func TestIntentCheck(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, validIntent().Check())
	})

	t.Run("missing chain ID", func(t *testing.T) {
		intent := validIntent()
		intent.ChainID = 0
		require.ErrorIs(t, intent.Check(), ErrChainIDUndefined)
	})

	t.Run("zero owner", func(t *testing.T) {
		intent := validIntent()
		intent.Roles.Owner = common.Address{}
		require.ErrorIs(t, intent.Check(), ErrRoleZeroAddress)
	})

	t.Run("zero deployer", func(t *testing.T) {
		intent := validIntent()
		intent.Roles.Deployer = common.Address{}
		require.ErrorIs(t, intent.Check(), ErrRoleZeroAddress)
	})

	t.Run("missing artifacts", func(t *testing.T) {
		intent := validIntent()
		intent.ContractArtifactsLocator = nil
		require.ErrorIs(t, intent.Check(), ErrArtifactsUndefined)
	})

	t.Run("no validators", func(t *testing.T) {
		// Mirrors the testnet deployments, which wire all three
		// contracts without ever registering a validator.
		intent := validIntent()
		intent.DeployRedemption = true
		intent.ValidatorPubkeys = nil
		require.NoError(t, intent.Check())
	})

	t.Run("empty validator pubkey", func(t *testing.T) {
		intent := validIntent()
		intent.ValidatorPubkeys = []hexutil.Bytes{{}}
		require.Error(t, intent.Check())
	})
}

func TestIntentDefaults(t *testing.T) {
	t.Parallel()

	intent := (&Intent{}).WithDefaults()
	require.EqualValues(t, DefaultGasLimit, intent.GasLimit)
	require.NotNil(t, intent.ExerciseParams)

	ether := big.NewInt(1e18)
	require.Equal(t, ether, (*uint256.Int)(intent.ExerciseParams.MintValue).ToBig())
	require.Equal(t, big.NewInt(11e17), (*uint256.Int)(intent.ExerciseParams.FirstPushValue).ToBig())
	require.Equal(t, big.NewInt(5e17), (*uint256.Int)(intent.ExerciseParams.RedeemUnderlyingValue).ToBig())
	require.Equal(t, big.NewInt(55e16), (*uint256.Int)(intent.ExerciseParams.PayDebtsValue).ToBig())
	require.Equal(t, big.NewInt(56e16), (*uint256.Int)(intent.ExerciseParams.SecondPushValue).ToBig())
	require.Equal(t, new(big.Int).Mul(big.NewInt(1_000_000), ether),
		(*uint256.Int)(intent.ExerciseParams.ApproveValue).ToBig())
}

func TestIntentRoundTrip(t *testing.T) {
	t.Parallel()

	intent := validIntent()
	intent.DeployRedemption = true
	intent.TxDelaySeconds = 3

	var buf bytes.Buffer
	require.NoError(t, toml.NewEncoder(&buf).Encode(intent))

	var read Intent
	_, err := toml.Decode(buf.String(), &read)
	require.NoError(t, err)

	require.Equal(t, intent, read.WithDefaults())
}
