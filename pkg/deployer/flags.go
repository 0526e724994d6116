package deployer

import (
	"github.com/urfave/cli/v2"

	op_service "github.com/ethereum-optimism/optimism/op-service"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"
)

const (
	EnvVarPrefix = "STIOTX_DEPLOYER"

	WorkdirFlagName            = "workdir"
	RPCURLFlagName             = "rpc-url"
	ChainIDFlagName            = "chain-id"
	ArtifactsLocatorFlagName   = "artifacts-locator"
	OwnerAddressFlagName       = "owner-address"
	DeployerAddressFlagName    = "deployer-address"
	OwnerPrivateKeyFlagName    = "owner-private-key"
	DeployerPrivateKeyFlagName = "deployer-private-key"
	PrivateKeyFlagName         = "private-key"
	MnemonicFlagName           = "mnemonic"
	DevFlagName                = "dev"
	WithRedemptionFlagName     = "with-redemption"
	OutfileFlagName            = "outfile"
)

func prefixEnvVars(name string) []string {
	return op_service.PrefixEnvVar(EnvVarPrefix, name)
}

var (
	WorkdirFlag = &cli.StringFlag{
		Name:    WorkdirFlagName,
		Usage:   "Directory holding the intent and state files.",
		EnvVars: prefixEnvVars("WORKDIR"),
		Value:   ".deployer",
	}
	RPCURLFlag = &cli.StringFlag{
		Name:    RPCURLFlagName,
		Usage:   "JSON-RPC URL of the chain to deploy to.",
		EnvVars: prefixEnvVars("RPC_URL"),
	}
	ChainIDFlag = &cli.Uint64Flag{
		Name:    ChainIDFlagName,
		Usage:   "Chain ID of the target chain.",
		EnvVars: prefixEnvVars("CHAIN_ID"),
	}
	ArtifactsLocatorFlag = &cli.StringFlag{
		Name:    ArtifactsLocatorFlagName,
		Usage:   "file: URL of the compiled contract artifacts directory.",
		EnvVars: prefixEnvVars("ARTIFACTS_LOCATOR"),
	}
	OwnerAddressFlag = &cli.StringFlag{
		Name:    OwnerAddressFlagName,
		Usage:   "Address of the contract owner account.",
		EnvVars: prefixEnvVars("OWNER_ADDRESS"),
	}
	DeployerAddressFlag = &cli.StringFlag{
		Name:    DeployerAddressFlagName,
		Usage:   "Address of the deployer (proxy admin) account.",
		EnvVars: prefixEnvVars("DEPLOYER_ADDRESS"),
	}
	OwnerPrivateKeyFlag = &cli.StringFlag{
		Name:    OwnerPrivateKeyFlagName,
		Usage:   "Private key of the owner account.",
		EnvVars: prefixEnvVars("OWNER_PRIVATE_KEY"),
	}
	DeployerPrivateKeyFlag = &cli.StringFlag{
		Name:    DeployerPrivateKeyFlagName,
		Usage:   "Private key of the deployer account.",
		EnvVars: prefixEnvVars("DEPLOYER_PRIVATE_KEY"),
	}
	PrivateKeyFlag = &cli.StringFlag{
		Name:    PrivateKeyFlagName,
		Usage:   "Private key of the account running the exercise sequence.",
		EnvVars: prefixEnvVars("PRIVATE_KEY"),
	}
	MnemonicFlag = &cli.StringFlag{
		Name:    MnemonicFlagName,
		Usage:   "Mnemonic to derive dev accounts from instead of explicit private keys.",
		EnvVars: prefixEnvVars("MNEMONIC"),
	}
	DevFlag = &cli.BoolFlag{
		Name:    DevFlagName,
		Usage:   "Produce a dev intent with roles derived from the well-known test mnemonic.",
		EnvVars: prefixEnvVars("DEV"),
	}
	WithRedemptionFlag = &cli.BoolFlag{
		Name:    WithRedemptionFlagName,
		Usage:   "Deploy and wire the redemption contract.",
		EnvVars: prefixEnvVars("WITH_REDEMPTION"),
	}
	OutfileFlag = &cli.StringFlag{
		Name:    OutfileFlagName,
		Usage:   "Write output to this file. Defaults to stdout.",
		EnvVars: prefixEnvVars("OUTFILE"),
		Value:   "-",
	}
)

var GlobalFlags = append([]cli.Flag{}, oplog.CLIFlags(EnvVarPrefix)...)

var InitFlags = []cli.Flag{
	WorkdirFlag,
	ChainIDFlag,
	ArtifactsLocatorFlag,
	OwnerAddressFlag,
	DeployerAddressFlag,
	DevFlag,
	WithRedemptionFlag,
}

var ApplyFlags = []cli.Flag{
	WorkdirFlag,
	RPCURLFlag,
	OwnerPrivateKeyFlag,
	DeployerPrivateKeyFlag,
	MnemonicFlag,
}

var ExerciseFlags = []cli.Flag{
	WorkdirFlag,
	RPCURLFlag,
	PrivateKeyFlag,
	MnemonicFlag,
}
