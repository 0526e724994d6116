// Package exercise runs the scripted staking/redemption sequence against an
// applied deployment. Nothing here asserts economic correctness: the point is
// to drive every user-facing operation once and log the observed exchange
// ratio, balances and debts for manual inspection.
package exercise

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"

	"github.com/RockX-SG/iotex-staking/pkg/contracts"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/state"
)

// Backend is the slice of an ethclient the sequence needs: transaction
// submission plus receipt lookups for confirmation.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

type Env struct {
	Logger   log.Logger
	Backend  Backend
	User     *bind.TransactOpts
	GasLimit uint64
}

// Run executes the fixed call sequence the contracts have always been
// smoke-tested with. Amounts come from the intent; the order never changes.
func Run(ctx context.Context, env *Env, intent *state.Intent, st *state.State) error {
	if err := st.CheckApplied(); err != nil {
		return err
	}
	params := intent.ExerciseParams
	if params == nil {
		params = state.DefaultExerciseParams()
	}

	token, err := contracts.NewStIOTX(st.StIOTXProxyAddress, env.Backend)
	if err != nil {
		return fmt.Errorf("failed to bind token proxy: %w", err)
	}
	staking, err := contracts.NewIOTEXStaking(st.StakingProxyAddress, env.Backend)
	if err != nil {
		return fmt.Errorf("failed to bind staking proxy: %w", err)
	}

	lgr := env.Logger.New("user", env.User.From)
	obs := &observer{lgr: lgr, token: token, staking: staking, user: env.User.From}

	if err := obs.ratioAndBalance(ctx, "before mint"); err != nil {
		return err
	}

	if err := env.send(ctx, "mint", toBig(params.MintValue), func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return staking.Mint(opts, new(big.Int))
	}); err != nil {
		return err
	}
	if err := obs.ratioAndBalance(ctx, "after mint"); err != nil {
		return err
	}

	if err := env.send(ctx, "pullPending", nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return staking.PullPending(opts, env.User.From)
	}); err != nil {
		return err
	}
	if err := obs.ratio(ctx, "after pullPending"); err != nil {
		return err
	}

	if err := env.send(ctx, "pushBalance", nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return staking.PushBalance(opts, toBig(params.FirstPushValue))
	}); err != nil {
		return err
	}
	if err := obs.ratio(ctx, "after first pushBalance"); err != nil {
		return err
	}

	if err := env.send(ctx, "approve", nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return token.Approve(opts, st.StakingProxyAddress, toBig(params.ApproveValue))
	}); err != nil {
		return err
	}

	if err := env.send(ctx, "redeemUnderlying", nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return staking.RedeemUnderlying(opts, toBig(params.RedeemUnderlyingValue))
	}); err != nil {
		return err
	}
	if err := obs.ratioAndDebt(ctx, "after redeemUnderlying"); err != nil {
		return err
	}

	if err := env.send(ctx, "payDebts", toBig(params.PayDebtsValue), func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return staking.PayDebts(opts)
	}); err != nil {
		return err
	}
	if err := obs.ratioAndDebt(ctx, "after payDebts"); err != nil {
		return err
	}

	if err := env.send(ctx, "pushBalance", nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return staking.PushBalance(opts, toBig(params.SecondPushValue))
	}); err != nil {
		return err
	}
	if err := obs.ratio(ctx, "after second pushBalance"); err != nil {
		return err
	}

	if intent.DeployRedemption {
		if err := runRedemption(ctx, env, st, params, staking, token, obs); err != nil {
			return err
		}
	}

	lgr.Info("exercise sequence complete")
	return nil
}

// runRedemption drives the redemption queue path: burn stIOTX through the
// staking contract, then claim the matured principal from the redemption
// contract.
func runRedemption(ctx context.Context, env *Env, st *state.State, params *state.ExerciseParams, staking *contracts.IOTEXStaking, token *contracts.StIOTX, obs *observer) error {
	redeem, err := contracts.NewIotexRedeem(st.RedeemProxyAddress, env.Backend)
	if err != nil {
		return fmt.Errorf("failed to bind redeem proxy: %w", err)
	}

	allowance, err := token.Allowance(&bind.CallOpts{Context: ctx}, env.User.From, st.StakingProxyAddress)
	if err != nil {
		return fmt.Errorf("failed to get allowance: %w", err)
	}
	obs.lgr.Info("observed allowance", "spender", st.StakingProxyAddress, "allowance", allowance)

	if err := env.send(ctx, "redeem", nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return staking.Redeem(opts, toBig(params.RedeemUnderlyingValue))
	}); err != nil {
		return err
	}
	if err := obs.ratio(ctx, "after redeem"); err != nil {
		return err
	}

	pending, err := redeem.BalanceOf(&bind.CallOpts{Context: ctx}, env.User.From)
	if err != nil {
		return fmt.Errorf("failed to get redeemable balance: %w", err)
	}
	obs.lgr.Info("observed redeemable balance", "pending", pending)

	if err := env.send(ctx, "claim", nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return redeem.Claim(opts)
	}); err != nil {
		return err
	}
	return obs.ratio(ctx, "after claim")
}

// send submits one transaction and blocks until it is mined, matching the
// strictly sequential execution model of the original scripts.
func (e *Env) send(ctx context.Context, name string, value *big.Int, fn func(*bind.TransactOpts) (*types.Transaction, error)) error {
	opts := *e.User
	opts.Context = ctx
	opts.GasLimit = e.GasLimit
	opts.Value = value

	tx, err := fn(&opts)
	if err != nil {
		return fmt.Errorf("failed to send %s: %w", name, err)
	}
	e.Logger.Info("sent transaction", "name", name, "txHash", tx.Hash(), "value", value)

	receipt, err := bind.WaitMined(ctx, e.Backend, tx)
	if err != nil {
		return fmt.Errorf("failed to wait for %s: %w", name, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("%s reverted, tx %s", name, tx.Hash())
	}
	return nil
}

type observer struct {
	lgr     log.Logger
	token   *contracts.StIOTX
	staking *contracts.IOTEXStaking
	user    common.Address
}

func (o *observer) ratio(ctx context.Context, when string) error {
	ratio, err := o.staking.ExchangeRatio(&bind.CallOpts{Context: ctx})
	if err != nil {
		return fmt.Errorf("failed to get exchange ratio: %w", err)
	}
	o.lgr.Info("observed state", "when", when, "exchangeRatio", ratio)
	return nil
}

func (o *observer) ratioAndBalance(ctx context.Context, when string) error {
	ratio, err := o.staking.ExchangeRatio(&bind.CallOpts{Context: ctx})
	if err != nil {
		return fmt.Errorf("failed to get exchange ratio: %w", err)
	}
	balance, err := o.token.BalanceOf(&bind.CallOpts{Context: ctx}, o.user)
	if err != nil {
		return fmt.Errorf("failed to get balance: %w", err)
	}
	o.lgr.Info("observed state", "when", when, "exchangeRatio", ratio, "balance", balance)
	return nil
}

func (o *observer) ratioAndDebt(ctx context.Context, when string) error {
	ratio, err := o.staking.ExchangeRatio(&bind.CallOpts{Context: ctx})
	if err != nil {
		return fmt.Errorf("failed to get exchange ratio: %w", err)
	}
	debt, err := o.staking.DebtOf(&bind.CallOpts{Context: ctx}, o.user)
	if err != nil {
		return fmt.Errorf("failed to get debt: %w", err)
	}
	o.lgr.Info("observed state", "when", when, "exchangeRatio", ratio, "debt", debt)
	return nil
}

func toBig(v *hexutil.U256) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return (*uint256.Int)(v).ToBig()
}
