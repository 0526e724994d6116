package deployer

import (
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"

	"github.com/ethereum-optimism/optimism/op-chain-ops/devkeys"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"

	"github.com/RockX-SG/iotex-staking/pkg/deployer/artifacts"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/pipeline"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/state"
)

// devValidatorPubkey is the placeholder pubkey dev deployments register,
// the literal "1234" the contracts were always smoke-tested with.
var devValidatorPubkey = hexutil.Bytes{0x31, 0x32, 0x33, 0x34}

type InitConfig struct {
	Workdir          string
	ChainID          uint64
	ArtifactsLocator *artifacts.Locator
	OwnerAddress     common.Address
	DeployerAddress  common.Address
	Dev              bool
	WithRedemption   bool
}

func (c *InitConfig) Check() error {
	if c.Workdir == "" {
		return errors.New("workdir must be specified")
	}
	if c.ChainID == 0 {
		return state.ErrChainIDUndefined
	}
	if c.ArtifactsLocator == nil || c.ArtifactsLocator.Empty() {
		return state.ErrArtifactsUndefined
	}
	if !c.Dev && (c.OwnerAddress == (common.Address{}) || c.DeployerAddress == (common.Address{})) {
		return errors.New("owner and deployer addresses must be specified unless --dev is set")
	}
	return nil
}

func InitCLI() func(ctx *cli.Context) error {
	return func(cliCtx *cli.Context) error {
		logCfg := oplog.ReadCLIConfig(cliCtx)
		l := oplog.NewLogger(oplog.AppOut(cliCtx), logCfg)
		oplog.SetGlobalLogHandler(l.Handler())

		var loc *artifacts.Locator
		if locStr := cliCtx.String(ArtifactsLocatorFlagName); locStr != "" {
			var err error
			loc, err = artifacts.NewLocatorFromURL(locStr)
			if err != nil {
				return fmt.Errorf("invalid artifacts locator: %w", err)
			}
		}

		cfg := InitConfig{
			Workdir:          cliCtx.String(WorkdirFlagName),
			ChainID:          cliCtx.Uint64(ChainIDFlagName),
			ArtifactsLocator: loc,
			OwnerAddress:     common.HexToAddress(cliCtx.String(OwnerAddressFlagName)),
			DeployerAddress:  common.HexToAddress(cliCtx.String(DeployerAddressFlagName)),
			Dev:              cliCtx.Bool(DevFlagName),
			WithRedemption:   cliCtx.Bool(WithRedemptionFlagName),
		}
		if err := Init(cfg); err != nil {
			return err
		}
		l.Info("initialized workdir", "workdir", cfg.Workdir)
		return nil
	}
}

func Init(cfg InitConfig) error {
	if err := cfg.Check(); err != nil {
		return fmt.Errorf("invalid init config: %w", err)
	}

	intent := &state.Intent{
		ChainID:                  cfg.ChainID,
		DeployRedemption:         cfg.WithRedemption,
		ContractArtifactsLocator: cfg.ArtifactsLocator,
		Roles: state.Roles{
			Owner:    cfg.OwnerAddress,
			Deployer: cfg.DeployerAddress,
		},
	}

	if cfg.Dev {
		owner, dep, err := DevAddresses(devkeys.TestMnemonic, intent.ChainIDBig())
		if err != nil {
			return err
		}
		intent.Roles = state.Roles{Owner: owner, Deployer: dep}
		intent.FundDevAccounts = true
		// Production deployments register validators through an edited
		// intent; only dev gets the placeholder pubkey.
		intent.ValidatorPubkeys = []hexutil.Bytes{devValidatorPubkey}
	}
	intent.WithDefaults()

	if err := os.MkdirAll(cfg.Workdir, 0o755); err != nil {
		return fmt.Errorf("failed to create workdir: %w", err)
	}
	if err := pipeline.WriteIntent(cfg.Workdir, intent); err != nil {
		return err
	}
	return pipeline.WriteState(cfg.Workdir, &state.State{Version: 1})
}
