package pipeline

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/RockX-SG/iotex-staking/pkg/deployer/artifacts"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/broadcaster"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/state"
)

// Backend is the slice of an ethclient the pipeline stages touch. Kept as an
// interface so stages run against a fake in tests.
type Backend interface {
	bind.ContractBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

type StateWriter interface {
	WriteState(st *state.State) error
}

type Env struct {
	StateWriter StateWriter
	Logger      log.Logger
	Backend     Backend
	Broadcaster broadcaster.Broadcaster
	Artifacts   *artifacts.Loader

	// Deployer creates contracts and administers the proxies, Owner
	// initializes and configures them. Mirrors the two accounts every
	// deployment of these contracts has used.
	Deployer *bind.TransactOpts
	Owner    *bind.TransactOpts
}

// Stage is one step of the deployment sequence. Stages are ordered, blocking,
// and skip themselves when the state already records their outputs.
type Stage struct {
	Name  string
	Apply func(ctx context.Context, env *Env, intent *state.Intent, st *state.State) error
}

// Stages returns the full deployment sequence in execution order.
func Stages() []Stage {
	return []Stage{
		{"init", InitLiveStrategy},
		{"deploy-implementations", DeployImplementations},
		{"deploy-proxies", DeployProxies},
		{"initialize", InitializeContracts},
		{"wire", WireContracts},
		{"register-validators", RegisterValidators},
	}
}

// txPlan hands out transact opts with pre-assigned consecutive nonces so a
// stage can sign several transactions before any of them is sent.
type txPlan struct {
	opts     bind.TransactOpts
	gasLimit uint64
	nonce    uint64
}

func newTxPlan(ctx context.Context, env *Env, signer *bind.TransactOpts, gasLimit uint64) (*txPlan, error) {
	nonce, err := env.Backend.PendingNonceAt(ctx, signer.From)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce for %s: %w", signer.From, err)
	}
	return &txPlan{
		opts:     *signer,
		gasLimit: gasLimit,
		nonce:    nonce,
	}, nil
}

func (p *txPlan) next(ctx context.Context) *bind.TransactOpts {
	opts := p.opts
	opts.Context = ctx
	opts.NoSend = true
	opts.GasLimit = p.gasLimit
	opts.Nonce = new(big.Int).SetUint64(p.nonce)
	p.nonce++
	return &opts
}
