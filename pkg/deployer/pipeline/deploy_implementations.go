package pipeline

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/RockX-SG/iotex-staking/pkg/contracts"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/broadcaster"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/state"
)

// Artifact names as emitted by the contracts build.
const (
	StIOTXContractName       = "stIOTX"
	IOTEXStakingContractName = "IOTEXStaking"
	IotexRedeemContractName  = "IotexRedeem"
	ProxyContractName        = "TransparentUpgradeableProxy"
)

// DeployImplementations deploys the implementation contracts from the
// deployer account. Implementations carry no state of their own; everything
// user-facing goes through the proxies deployed in the next stage.
func DeployImplementations(ctx context.Context, env *Env, intent *state.Intent, st *state.State) error {
	lgr := env.Logger.New("stage", "deploy-implementations")

	needRedeem := intent.DeployRedemption && st.RedeemImplAddress == (common.Address{})
	if st.ImplementationsDeployed() && !needRedeem {
		lgr.Info("implementations already deployed, skipping")
		return nil
	}

	plan, err := newTxPlan(ctx, env, env.Deployer, intent.GasLimit)
	if err != nil {
		return err
	}

	if !st.ImplementationsDeployed() {
		tokenArt, err := env.Artifacts.Artifact(StIOTXContractName)
		if err != nil {
			return fmt.Errorf("failed to load token artifact: %w", err)
		}
		tokenImpl, tx, _, err := contracts.DeployStIOTX(plan.next(ctx), env.Backend, tokenArt.CreationCode())
		if err != nil {
			return fmt.Errorf("failed to create stIOTX deployment tx: %w", err)
		}
		env.Broadcaster.Hook(broadcaster.Broadcast{Name: "deploy-stIOTX-impl", Tx: tx})
		lgr.Info("deploying stIOTX implementation", "address", tokenImpl)

		stakingArt, err := env.Artifacts.Artifact(IOTEXStakingContractName)
		if err != nil {
			return fmt.Errorf("failed to load staking artifact: %w", err)
		}
		stakingImpl, tx, _, err := contracts.DeployIOTEXStaking(plan.next(ctx), env.Backend, stakingArt.CreationCode())
		if err != nil {
			return fmt.Errorf("failed to create IOTEXStaking deployment tx: %w", err)
		}
		env.Broadcaster.Hook(broadcaster.Broadcast{Name: "deploy-IOTEXStaking-impl", Tx: tx})
		lgr.Info("deploying IOTEXStaking implementation", "address", stakingImpl)
		st.StIOTXImplAddress = tokenImpl
		st.StakingImplAddress = stakingImpl
	}

	if needRedeem {
		redeemArt, err := env.Artifacts.Artifact(IotexRedeemContractName)
		if err != nil {
			return fmt.Errorf("failed to load redeem artifact: %w", err)
		}
		redeemImpl, tx, _, err := contracts.DeployIotexRedeem(plan.next(ctx), env.Backend, redeemArt.CreationCode())
		if err != nil {
			return fmt.Errorf("failed to create IotexRedeem deployment tx: %w", err)
		}
		env.Broadcaster.Hook(broadcaster.Broadcast{Name: "deploy-IotexRedeem-impl", Tx: tx})
		lgr.Info("deploying IotexRedeem implementation", "address", redeemImpl)
		st.RedeemImplAddress = redeemImpl
	}

	if _, err := env.Broadcaster.Broadcast(ctx); err != nil {
		return fmt.Errorf("failed to deploy implementations: %w", err)
	}

	if err := env.StateWriter.WriteState(st); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}
