package pipeline

import (
	"context"
	"fmt"

	"github.com/RockX-SG/iotex-staking/pkg/deployer/state"
)

// InitLiveStrategy sanity-checks the chain before anything is signed: the RPC
// must serve the intent's chain ID and the deployer account must be funded.
func InitLiveStrategy(ctx context.Context, env *Env, intent *state.Intent, st *state.State) error {
	lgr := env.Logger.New("stage", "init")
	lgr.Info("performing initialization")

	chainID, err := env.Backend.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain ID: %w", err)
	}
	if chainID.Cmp(intent.ChainIDBig()) != 0 {
		return fmt.Errorf("chain ID mismatch: intent has %d, RPC serves %s", intent.ChainID, chainID)
	}

	deployerBalance, err := env.Backend.BalanceAt(ctx, env.Deployer.From, nil)
	if err != nil {
		return fmt.Errorf("failed to get deployer balance: %w", err)
	}
	if deployerBalance.Sign() == 0 {
		return fmt.Errorf("deployer account %s has no funds", env.Deployer.From)
	}

	lgr.Info("initialization complete",
		"chainID", intent.ChainID,
		"owner", env.Owner.From,
		"deployer", env.Deployer.From,
		"deployerBalance", deployerBalance)

	if st.Version == 0 {
		st.Version = 1
	}
	if err := env.StateWriter.WriteState(st); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}
