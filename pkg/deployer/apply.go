package deployer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/ethereum-optimism/optimism/op-service/ctxinterrupt"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"

	"github.com/RockX-SG/iotex-staking/pkg/deployer/artifacts"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/broadcaster"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/pipeline"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/state"
)

type ApplyConfig struct {
	Workdir            string
	RPCURL             string
	OwnerPrivateKey    string
	DeployerPrivateKey string
	Mnemonic           string
	Logger             log.Logger
}

func (a *ApplyConfig) Check() error {
	if a.Workdir == "" {
		return errors.New("workdir must be specified")
	}
	if a.RPCURL == "" {
		return errors.New("rpc-url must be specified")
	}
	if a.Mnemonic == "" && (a.OwnerPrivateKey == "" || a.DeployerPrivateKey == "") {
		return errors.New("either a mnemonic or both owner and deployer private keys must be specified")
	}
	if a.Logger == nil {
		return errors.New("logger must be specified")
	}
	return nil
}

func ApplyCLI() func(cliCtx *cli.Context) error {
	return func(cliCtx *cli.Context) error {
		logCfg := oplog.ReadCLIConfig(cliCtx)
		l := oplog.NewLogger(oplog.AppOut(cliCtx), logCfg)
		oplog.SetGlobalLogHandler(l.Handler())

		ctx := ctxinterrupt.WithCancelOnInterrupt(cliCtx.Context)

		return Apply(ctx, ApplyConfig{
			Workdir:            cliCtx.String(WorkdirFlagName),
			RPCURL:             cliCtx.String(RPCURLFlagName),
			OwnerPrivateKey:    cliCtx.String(OwnerPrivateKeyFlagName),
			DeployerPrivateKey: cliCtx.String(DeployerPrivateKeyFlagName),
			Mnemonic:           cliCtx.String(MnemonicFlagName),
			Logger:             l,
		})
	}
}

// Apply runs the deployment pipeline described by the workdir's intent
// against the chain behind RPCURL, persisting progress after every stage.
func Apply(ctx context.Context, cfg ApplyConfig) error {
	if err := cfg.Check(); err != nil {
		return fmt.Errorf("invalid apply config: %w", err)
	}

	intent, err := pipeline.ReadIntent(cfg.Workdir)
	if err != nil {
		return err
	}
	if err := intent.Check(); err != nil {
		return fmt.Errorf("invalid intent: %w", err)
	}
	st, err := pipeline.ReadState(cfg.Workdir)
	if err != nil {
		return err
	}

	owner, dep, err := signersFor(&cfg, intent)
	if err != nil {
		return err
	}

	client, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("failed to dial RPC %s: %w", cfg.RPCURL, err)
	}
	defer client.Close()

	loader, err := artifacts.NewLoader(intent.ContractArtifactsLocator)
	if err != nil {
		return fmt.Errorf("failed to open artifacts: %w", err)
	}

	env := &pipeline.Env{
		StateWriter: pipeline.NewWorkdirStateWriter(cfg.Workdir),
		Logger:      cfg.Logger,
		Backend:     client,
		Broadcaster: broadcaster.NewKeyedBroadcaster(cfg.Logger, client),
		Artifacts:   loader,
		Deployer:    dep,
		Owner:       owner,
	}

	if err := ApplyPipeline(ctx, env, intent, st); err != nil {
		return err
	}

	st.AppliedIntent = intent
	if err := env.StateWriter.WriteState(st); err != nil {
		return fmt.Errorf("failed to write final state: %w", err)
	}
	cfg.Logger.Info("deployment complete",
		"stIOTXProxy", st.StIOTXProxyAddress,
		"stakingProxy", st.StakingProxyAddress,
		"redeemProxy", st.RedeemProxyAddress)
	return nil
}

// ApplyPipeline runs every stage in order. Stages that find their outputs
// already recorded in the state skip themselves, so re-running after a
// failure continues instead of redeploying.
func ApplyPipeline(ctx context.Context, env *pipeline.Env, intent *state.Intent, st *state.State) error {
	delay := time.Duration(intent.TxDelaySeconds) * time.Second
	for i, stage := range pipeline.Stages() {
		if i > 0 && delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		env.Logger.Info("running stage", "stage", stage.Name)
		if err := stage.Apply(ctx, env, intent, st); err != nil {
			return fmt.Errorf("stage %s failed: %w", stage.Name, err)
		}
	}
	return nil
}

func signersFor(cfg *ApplyConfig, intent *state.Intent) (owner *bind.TransactOpts, dep *bind.TransactOpts, err error) {
	chainID := intent.ChainIDBig()
	if cfg.Mnemonic != "" {
		owner, dep, err = DevSigners(cfg.Mnemonic, chainID)
	} else {
		owner, err = SignerFromPrivateKey(cfg.OwnerPrivateKey, chainID)
		if err == nil {
			dep, err = SignerFromPrivateKey(cfg.DeployerPrivateKey, chainID)
		}
	}
	if err != nil {
		return nil, nil, err
	}
	if owner.From != intent.Roles.Owner {
		return nil, nil, fmt.Errorf("owner key yields %s, intent expects %s", owner.From, intent.Roles.Owner)
	}
	if dep.From != intent.Roles.Deployer {
		return nil, nil, fmt.Errorf("deployer key yields %s, intent expects %s", dep.From, intent.Roles.Deployer)
	}
	return owner, dep, nil
}
