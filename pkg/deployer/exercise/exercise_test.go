package exercise_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/ethereum-optimism/optimism/op-service/testlog"

	"github.com/RockX-SG/iotex-staking/pkg/contracts"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/exercise"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/state"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/testutil"
)

func appliedState(t *testing.T, withRedemption bool) (*state.Intent, *state.State) {
	t.Helper()

	intent := (&state.Intent{
		ChainID: 1337,
		Roles: state.Roles{
			Owner:    common.Address{0x01},
			Deployer: common.Address{0x02},
		},
		DeployRedemption: withRedemption,
		ValidatorPubkeys: []hexutil.Bytes{{0x31, 0x32, 0x33, 0x34}},
	}).WithDefaults()

	st := &state.State{
		Version:              1,
		AppliedIntent:        intent,
		StIOTXImplAddress:    common.Address{0x0a},
		StIOTXProxyAddress:   common.Address{0x0b},
		StakingImplAddress:   common.Address{0x0c},
		StakingProxyAddress:  common.Address{0x0d},
		Initialized:          true,
		Wired:                true,
		ValidatorsRegistered: 1,
	}
	if withRedemption {
		st.RedeemImplAddress = common.Address{0x0e}
		st.RedeemProxyAddress = common.Address{0x0f}
	}
	return intent, st
}

// methodNames decodes the selector of every sent transaction against the
// bound contract ABIs.
func methodNames(t *testing.T, backend *testutil.FakeBackend) []string {
	t.Helper()

	selectors := make(map[string]string)
	for _, md := range []*bind.MetaData{
		contracts.StIOTXMetaData,
		contracts.IOTEXStakingMetaData,
		contracts.IotexRedeemMetaData,
	} {
		parsed, err := md.GetAbi()
		require.NoError(t, err)
		for name, method := range parsed.Methods {
			selectors[string(method.ID)] = name
		}
	}

	var names []string
	for _, tx := range backend.Sent() {
		data := tx.Data()
		require.GreaterOrEqual(t, len(data), 4)
		name, ok := selectors[string(data[:4])]
		require.Truef(t, ok, "unknown selector %x", data[:4])
		names = append(names, name)
	}
	return names
}

func runExercise(t *testing.T, withRedemption bool) (*testutil.FakeBackend, *state.Intent) {
	t.Helper()

	chainID := big.NewInt(1337)
	backend := testutil.NewFakeBackend(chainID)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	user, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	require.NoError(t, err)

	intent, st := appliedState(t, withRedemption)
	env := &exercise.Env{
		Logger:   testlog.Logger(t, log.LevelInfo),
		Backend:  backend,
		User:     user,
		GasLimit: intent.GasLimit,
	}
	require.NoError(t, exercise.Run(context.Background(), env, intent, st))
	return backend, intent
}

func TestExerciseSequence(t *testing.T) {
	t.Parallel()

	backend, _ := runExercise(t, false)
	require.Equal(t, []string{
		"mint",
		"pullPending",
		"pushBalance",
		"approve",
		"redeemUnderlying",
		"payDebts",
		"pushBalance",
	}, methodNames(t, backend))
}

func TestExerciseSequenceWithRedemption(t *testing.T) {
	t.Parallel()

	backend, _ := runExercise(t, true)
	require.Equal(t, []string{
		"mint",
		"pullPending",
		"pushBalance",
		"approve",
		"redeemUnderlying",
		"payDebts",
		"pushBalance",
		"redeem",
		"claim",
	}, methodNames(t, backend))
}

func TestExerciseValues(t *testing.T) {
	t.Parallel()

	backend, intent := runExercise(t, false)
	sent := backend.Sent()

	// mint carries the staked value, payDebts the repayment.
	require.Equal(t, (*uint256.Int)(intent.ExerciseParams.MintValue).ToBig(), sent[0].Value())
	require.Equal(t, (*uint256.Int)(intent.ExerciseParams.PayDebtsValue).ToBig(), sent[5].Value())
	require.Equal(t, big.NewInt(1e18), sent[0].Value())
}

func TestExerciseRequiresAppliedDeployment(t *testing.T) {
	t.Parallel()

	chainID := big.NewInt(1337)
	backend := testutil.NewFakeBackend(chainID)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	user, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	require.NoError(t, err)

	intent, _ := appliedState(t, false)
	env := &exercise.Env{
		Logger:  testlog.Logger(t, log.LevelInfo),
		Backend: backend,
		User:    user,
	}
	err = exercise.Run(context.Background(), env, intent, &state.State{Version: 1})
	require.Error(t, err)
	require.Empty(t, backend.Sent())
}
