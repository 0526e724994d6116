package pipeline

import (
	"context"
	"fmt"

	"github.com/RockX-SG/iotex-staking/pkg/contracts"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/broadcaster"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/state"
)

// WireContracts cross-references the deployed proxies: the staking contract
// becomes the token's minter, the staking contract learns the token address,
// and, when deployed, the redemption contract is attached to the staking
// contract. All calls run from the owner.
func WireContracts(ctx context.Context, env *Env, intent *state.Intent, st *state.State) error {
	lgr := env.Logger.New("stage", "wire")

	if st.Wired {
		lgr.Info("contracts already wired, skipping")
		return nil
	}
	if !st.Initialized {
		return fmt.Errorf("contracts must be initialized before wiring")
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

	tx, err := token.SetMintable(plan.next(ctx), st.StakingProxyAddress, true)
	if err != nil {
		return fmt.Errorf("failed to create setMintable tx: %w", err)
	}
	env.Broadcaster.Hook(broadcaster.Broadcast{Name: "setMintable", Tx: tx})
	lgr.Info("granting mint rights", "minter", st.StakingProxyAddress)

	tx, err = staking.SetStIOTXContractAddress(plan.next(ctx), st.StIOTXProxyAddress)
	if err != nil {
		return fmt.Errorf("failed to create setStIOTXContractAddress tx: %w", err)
	}
	env.Broadcaster.Hook(broadcaster.Broadcast{Name: "setStIOTXContractAddress", Tx: tx})
	lgr.Info("setting token address on staking contract", "token", st.StIOTXProxyAddress)

	if intent.DeployRedemption {
		tx, err = staking.SetRedeemContract(plan.next(ctx), st.RedeemProxyAddress)
		if err != nil {
			return fmt.Errorf("failed to create setRedeemContract tx: %w", err)
		}
		env.Broadcaster.Hook(broadcaster.Broadcast{Name: "setRedeemContract", Tx: tx})
		lgr.Info("setting redemption contract", "redeem", st.RedeemProxyAddress)
	}

	if _, err := env.Broadcaster.Broadcast(ctx); err != nil {
		return fmt.Errorf("failed to wire contracts: %w", err)
	}

	st.Wired = true
	if err := env.StateWriter.WriteState(st); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}
