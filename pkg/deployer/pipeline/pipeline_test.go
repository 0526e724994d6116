package pipeline_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/require"

	"github.com/ethereum-optimism/optimism/op-service/testlog"

	"github.com/RockX-SG/iotex-staking/pkg/deployer/broadcaster"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/pipeline"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/state"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/testutil"
)

type memStateWriter struct {
	writes int
}

func (m *memStateWriter) WriteState(st *state.State) error {
	m.writes++
	return nil
}

func signer(t *testing.T, chainID *big.Int) *bind.TransactOpts {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	require.NoError(t, err)
	return opts
}

func testEnv(t *testing.T, withRedemption bool) (*pipeline.Env, *state.Intent, *state.State, *testutil.FakeBackend) {
	t.Helper()

	chainID := big.NewInt(1337)
	loc, loader := testutil.LocalArtifacts(t)
	backend := testutil.NewFakeBackend(chainID)
	lgr := testlog.Logger(t, log.LevelInfo)

	env := &pipeline.Env{
		StateWriter: &memStateWriter{},
		Logger:      lgr,
		Backend:     backend,
		Broadcaster: broadcaster.NewKeyedBroadcaster(lgr, backend),
		Artifacts:   loader,
		Deployer:    signer(t, chainID),
		Owner:       signer(t, chainID),
	}
	intent := (&state.Intent{
		ChainID: chainID.Uint64(),
		Roles: state.Roles{
			Owner:    env.Owner.From,
			Deployer: env.Deployer.From,
		},
		DeployRedemption:         withRedemption,
		ContractArtifactsLocator: loc,
		ValidatorPubkeys:         []hexutil.Bytes{{0x31, 0x32, 0x33, 0x34}},
	}).WithDefaults()
	require.NoError(t, intent.Check())

	return env, intent, &state.State{Version: 1}, backend
}

func runStages(t *testing.T, env *pipeline.Env, intent *state.Intent, st *state.State) {
	t.Helper()
	for _, stage := range pipeline.Stages() {
		require.NoErrorf(t, stage.Apply(context.Background(), env, intent, st), "stage %s", stage.Name)
	}
}

func TestPipelineFullRun(t *testing.T) {
	t.Parallel()

	env, intent, st, backend := testEnv(t, true)
	runStages(t, env, intent, st)

	require.NotEqual(t, common.Address{}, st.StIOTXImplAddress)
	require.NotEqual(t, common.Address{}, st.StakingImplAddress)
	require.NotEqual(t, common.Address{}, st.RedeemImplAddress)
	require.NotEqual(t, common.Address{}, st.StIOTXProxyAddress)
	require.NotEqual(t, common.Address{}, st.StakingProxyAddress)
	require.NotEqual(t, common.Address{}, st.RedeemProxyAddress)
	require.True(t, st.Initialized)
	require.True(t, st.Wired)
	require.Equal(t, 1, st.ValidatorsRegistered)

	// Implementations come from the deployer's first nonces.
	require.Equal(t, crypto.CreateAddress(env.Deployer.From, 0), st.StIOTXImplAddress)
	require.Equal(t, crypto.CreateAddress(env.Deployer.From, 1), st.StakingImplAddress)
	require.Equal(t, crypto.CreateAddress(env.Deployer.From, 2), st.RedeemImplAddress)

	// 3 impls + 3 proxies from the deployer, 2 initializes + 3 wires +
	// 1 registration from the owner.
	require.Len(t, backend.Sent(), 12)
}

func TestPipelineWithoutRedemption(t *testing.T) {
	t.Parallel()

	env, intent, st, backend := testEnv(t, false)
	runStages(t, env, intent, st)

	require.Equal(t, common.Address{}, st.RedeemImplAddress)
	require.Equal(t, common.Address{}, st.RedeemProxyAddress)
	require.True(t, st.Wired)

	// 2 impls + 2 proxies, 2 initializes + 2 wires + 1 registration.
	require.Len(t, backend.Sent(), 9)
}

func TestPipelineWithoutValidators(t *testing.T) {
	t.Parallel()

	env, intent, st, backend := testEnv(t, true)
	intent.ValidatorPubkeys = nil
	require.NoError(t, intent.Check())

	runStages(t, env, intent, st)

	require.True(t, st.Wired)
	require.Zero(t, st.ValidatorsRegistered)

	// 3 impls + 3 proxies, 2 initializes + 3 wires, no registration.
	require.Len(t, backend.Sent(), 11)
}

func TestPipelineRerunSkipsCompletedStages(t *testing.T) {
	t.Parallel()

	env, intent, st, backend := testEnv(t, true)
	runStages(t, env, intent, st)
	first := *st
	sent := len(backend.Sent())

	runStages(t, env, intent, st)
	require.Equal(t, first, *st)
	require.Len(t, backend.Sent(), sent, "re-run must not send transactions")
}

func TestPipelineStageOrderEnforced(t *testing.T) {
	t.Parallel()

	env, intent, st, _ := testEnv(t, false)

	err := pipeline.DeployProxies(context.Background(), env, intent, st)
	require.Error(t, err)

	err = pipeline.InitializeContracts(context.Background(), env, intent, st)
	require.Error(t, err)

	err = pipeline.WireContracts(context.Background(), env, intent, st)
	require.Error(t, err)

	err = pipeline.RegisterValidators(context.Background(), env, intent, st)
	require.Error(t, err)
}

func TestInitLiveStrategyChainIDMismatch(t *testing.T) {
	t.Parallel()

	env, intent, st, _ := testEnv(t, false)
	intent.ChainID = 4689

	err := pipeline.InitLiveStrategy(context.Background(), env, intent, st)
	require.ErrorContains(t, err, "chain ID mismatch")
}
