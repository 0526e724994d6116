package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ethereum-optimism/optimism/op-service/ioutil"
	"github.com/ethereum-optimism/optimism/op-service/jsonutil"

	"github.com/RockX-SG/iotex-staking/pkg/deployer/state"
)

const (
	IntentFileName = "intent.toml"
	StateFileName  = "state.json"
)

func ReadIntent(workdir string) (*state.Intent, error) {
	var intent state.Intent
	if _, err := toml.DecodeFile(filepath.Join(workdir, IntentFileName), &intent); err != nil {
		return nil, fmt.Errorf("failed to read intent file: %w", err)
	}
	return intent.WithDefaults(), nil
}

func WriteIntent(workdir string, intent *state.Intent) error {
	f, err := os.Create(filepath.Join(workdir, IntentFileName))
	if err != nil {
		return fmt.Errorf("failed to create intent file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(intent); err != nil {
		return fmt.Errorf("failed to write intent file: %w", err)
	}
	return nil
}

func ReadState(workdir string) (*state.State, error) {
	st, err := jsonutil.LoadJSON[state.State](filepath.Join(workdir, StateFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	return st, nil
}

func WriteState(workdir string, st *state.State) error {
	if err := jsonutil.WriteJSON(st, ioutil.ToStdOutOrFileOrNoop(filepath.Join(workdir, StateFileName), 0o644)); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// WorkdirStateWriter persists state into the workdir after every stage.
type WorkdirStateWriter struct {
	workdir string
}

func NewWorkdirStateWriter(workdir string) *WorkdirStateWriter {
	return &WorkdirStateWriter{workdir: workdir}
}

func (w *WorkdirStateWriter) WriteState(st *state.State) error {
	return WriteState(w.workdir, st)
}
