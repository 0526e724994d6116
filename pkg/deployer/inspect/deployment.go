package inspect

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ethereum-optimism/optimism/op-service/cliapp"
	"github.com/ethereum-optimism/optimism/op-service/ioutil"
	"github.com/ethereum-optimism/optimism/op-service/jsonutil"

	"github.com/RockX-SG/iotex-staking/pkg/deployer"
	"github.com/RockX-SG/iotex-staking/pkg/deployer/pipeline"
)

var Commands = []*cli.Command{
	{
		Name:   "deployment",
		Usage:  "outputs the deployed contract addresses",
		Flags:  cliapp.ProtectFlags([]cli.Flag{deployer.WorkdirFlag, deployer.OutfileFlag}),
		Action: DeploymentCLI,
	},
}

func DeploymentCLI(cliCtx *cli.Context) error {
	workdir := cliCtx.String(deployer.WorkdirFlagName)
	outfile := cliCtx.String(deployer.OutfileFlagName)

	st, err := pipeline.ReadState(workdir)
	if err != nil {
		return fmt.Errorf("failed to read state: %w", err)
	}
	if err := st.CheckApplied(); err != nil {
		return err
	}

	if err := jsonutil.WriteJSON(st, ioutil.ToStdOutOrFileOrNoop(outfile, 0o666)); err != nil {
		return fmt.Errorf("failed to write deployment: %w", err)
	}
	return nil
}
