package deployer

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/ethereum-optimism/optimism/op-service/ctxinterrupt"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"

	"github.com/RockX-SG/iotex-staking/pkg/deployer/exercise"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/pipeline"
)

type ExerciseConfig struct {
	Workdir    string
	RPCURL     string
	PrivateKey string
	Mnemonic   string
	Logger     log.Logger
}

func (e *ExerciseConfig) Check() error {
	if e.Workdir == "" {
		return errors.New("workdir must be specified")
	}
	if e.RPCURL == "" {
		return errors.New("rpc-url must be specified")
	}
	if e.PrivateKey == "" && e.Mnemonic == "" {
		return errors.New("either a private key or a mnemonic must be specified")
	}
	if e.Logger == nil {
		return errors.New("logger must be specified")
	}
	return nil
}

func ExerciseCLI() func(cliCtx *cli.Context) error {
	return func(cliCtx *cli.Context) error {
		logCfg := oplog.ReadCLIConfig(cliCtx)
		l := oplog.NewLogger(oplog.AppOut(cliCtx), logCfg)
		oplog.SetGlobalLogHandler(l.Handler())

		ctx := ctxinterrupt.WithCancelOnInterrupt(cliCtx.Context)

		return Exercise(ctx, ExerciseConfig{
			Workdir:    cliCtx.String(WorkdirFlagName),
			RPCURL:     cliCtx.String(RPCURLFlagName),
			PrivateKey: cliCtx.String(PrivateKeyFlagName),
			Mnemonic:   cliCtx.String(MnemonicFlagName),
			Logger:     l,
		})
	}
}

// Exercise runs the scripted staking/redemption sequence against the applied
// deployment in the workdir. The dev default signs as the owner account, the
// same account the original smoke run used.
func Exercise(ctx context.Context, cfg ExerciseConfig) error {
	if err := cfg.Check(); err != nil {
		return fmt.Errorf("invalid exercise config: %w", err)
	}

	st, err := pipeline.ReadState(cfg.Workdir)
	if err != nil {
		return err
	}
	if err := st.CheckApplied(); err != nil {
		return err
	}
	intent := st.AppliedIntent

	var user *bind.TransactOpts
	if cfg.PrivateKey != "" {
		user, err = SignerFromPrivateKey(cfg.PrivateKey, intent.ChainIDBig())
	} else {
		user, _, err = DevSigners(cfg.Mnemonic, intent.ChainIDBig())
	}
	if err != nil {
		return err
	}

	client, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("failed to dial RPC %s: %w", cfg.RPCURL, err)
	}
	defer client.Close()

	env := &exercise.Env{
		Logger:   cfg.Logger,
		Backend:  client,
		User:     user,
		GasLimit: intent.GasLimit,
	}
	return exercise.Run(ctx, env, intent, st)
}
