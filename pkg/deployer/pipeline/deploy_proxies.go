package pipeline

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/RockX-SG/iotex-staking/pkg/contracts"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/broadcaster"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/state"
)

// DeployProxies wraps every implementation in a transparent upgradeable proxy.
// Constructor arguments are always (implementation, admin = deployer, empty
// initializer bytes); initialization happens explicitly in the next stage so
// it runs from the owner account, not the proxy admin.
func DeployProxies(ctx context.Context, env *Env, intent *state.Intent, st *state.State) error {
	lgr := env.Logger.New("stage", "deploy-proxies")

	needRedeem := intent.DeployRedemption && st.RedeemProxyAddress == (common.Address{})
	if st.ProxiesDeployed() && !needRedeem {
		lgr.Info("proxies already deployed, skipping")
		return nil
	}
	if !st.ImplementationsDeployed() {
		return fmt.Errorf("implementations must be deployed before proxies")
	}

	proxyArt, err := env.Artifacts.Artifact(ProxyContractName)
	if err != nil {
		return fmt.Errorf("failed to load proxy artifact: %w", err)
	}

	plan, err := newTxPlan(ctx, env, env.Deployer, intent.GasLimit)
	if err != nil {
		return err
	}

	admin := env.Deployer.From
	deployOne := func(name string, impl common.Address) (common.Address, error) {
		addr, tx, err := contracts.DeployTransparentUpgradeableProxy(
			plan.next(ctx), env.Backend, proxyArt.CreationCode(), impl, admin, nil)
		if err != nil {
			return common.Address{}, fmt.Errorf("failed to create %s proxy tx: %w", name, err)
		}
		env.Broadcaster.Hook(broadcaster.Broadcast{Name: "deploy-" + name + "-proxy", Tx: tx})
		lgr.Info("deploying proxy", "contract", name, "implementation", impl, "address", addr)
		return addr, nil
	}

	if !st.ProxiesDeployed() {
		tokenProxy, err := deployOne(StIOTXContractName, st.StIOTXImplAddress)
		if err != nil {
			return err
		}
		stakingProxy, err := deployOne(IOTEXStakingContractName, st.StakingImplAddress)
		if err != nil {
			return err
		}
		st.StIOTXProxyAddress = tokenProxy
		st.StakingProxyAddress = stakingProxy
	}
	if needRedeem {
		redeemProxy, err := deployOne(IotexRedeemContractName, st.RedeemImplAddress)
		if err != nil {
			return err
		}
		st.RedeemProxyAddress = redeemProxy
	}

	if _, err := env.Broadcaster.Broadcast(ctx); err != nil {
		return fmt.Errorf("failed to deploy proxies: %w", err)
	}

	if err := env.StateWriter.WriteState(st); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}
