package pipeline

import (
	"context"
	"fmt"

	"github.com/RockX-SG/iotex-staking/pkg/contracts"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/broadcaster"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/state"
)

// InitializeContracts calls initialize on the token and staking proxies from
// the owner account, making the owner the contracts' administrator.
func InitializeContracts(ctx context.Context, env *Env, intent *state.Intent, st *state.State) error {
	lgr := env.Logger.New("stage", "initialize")

	if st.Initialized {
		lgr.Info("contracts already initialized, skipping")
		return nil
	}
	if !st.ProxiesDeployed() {
		return fmt.Errorf("proxies must be deployed before initialization")
	}

	token, err := contracts.NewStIOTX(st.StIOTXProxyAddress, env.Backend)
	if err != nil {
		return fmt.Errorf("failed to bind token proxy: %w", err)
	}
	staking, err := contracts.NewIOTEXStaking(st.StakingProxyAddress, env.Backend)
	if err != nil {
		return fmt.Errorf("failed to bind staking proxy: %w", err)
	}

	plan, err := newTxPlan(ctx, env, env.Owner, intent.GasLimit)
	if err != nil {
		return err
	}

	tx, err := token.Initialize(plan.next(ctx))
	if err != nil {
		return fmt.Errorf("failed to create stIOTX initialize tx: %w", err)
	}
	env.Broadcaster.Hook(broadcaster.Broadcast{Name: "initialize-stIOTX", Tx: tx})

	tx, err = staking.Initialize(plan.next(ctx))
	if err != nil {
		return fmt.Errorf("failed to create staking initialize tx: %w", err)
	}
	env.Broadcaster.Hook(broadcaster.Broadcast{Name: "initialize-IOTEXStaking", Tx: tx})

	if _, err := env.Broadcaster.Broadcast(ctx); err != nil {
		return fmt.Errorf("failed to initialize contracts: %w", err)
	}

	lgr.Info("contracts initialized", "owner", env.Owner.From)
	st.Initialized = true
	if err := env.StateWriter.WriteState(st); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}
