package pipeline

import (
	"context"
	"fmt"

	"github.com/RockX-SG/iotex-staking/pkg/contracts"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/broadcaster"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/state"
)

// RegisterValidators registers the intent's validator pubkeys with the
// staking contract. Already-registered pubkeys from a previous run are not
// re-submitted.
func RegisterValidators(ctx context.Context, env *Env, intent *state.Intent, st *state.State) error {
	lgr := env.Logger.New("stage", "register-validators")

	if st.ValidatorsRegistered >= len(intent.ValidatorPubkeys) {
		lgr.Info("no pending validator registrations, skipping")
		return nil
	}
	if !st.Wired {
		return fmt.Errorf("contracts must be wired before validator registration")
	}

	staking, err := contracts.NewIOTEXStaking(st.StakingProxyAddress, env.Backend)
	if err != nil {
		return fmt.Errorf("failed to bind staking proxy: %w", err)
	}

	plan, err := newTxPlan(ctx, env, env.Owner, intent.GasLimit)
	if err != nil {
		return err
	}

	pending := intent.ValidatorPubkeys[st.ValidatorsRegistered:]
	for i, pubkey := range pending {
		tx, err := staking.RegisterValidator(plan.next(ctx), pubkey)
		if err != nil {
			return fmt.Errorf("failed to create registerValidator tx: %w", err)
		}
		env.Broadcaster.Hook(broadcaster.Broadcast{
			Name: fmt.Sprintf("registerValidator-%d", st.ValidatorsRegistered+i),
			Tx:   tx,
		})
		lgr.Info("registering validator", "pubkey", pubkey)
	}

	if _, err := env.Broadcaster.Broadcast(ctx); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	st.ValidatorsRegistered = len(intent.ValidatorPubkeys)
	if err := env.StateWriter.WriteState(st); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}
