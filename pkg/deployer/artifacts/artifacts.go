package artifacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

var ErrArtifactNotFound = errors.New("artifact not found")

// Bytecode unmarshals both artifact layouts in the wild: forge nests the
// creation code under an object key, brownie emits it as a bare hex string.
type Bytecode struct {
	Object hexutil.Bytes `json:"object"`
}

func (b *Bytecode) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &b.Object)
	}
	type rawBytecode Bytecode
	return json.Unmarshal(data, (*rawBytecode)(b))
}

// Artifact is the slice of a compiler artifact the deployer needs: the
// creation code. ABIs ship with the contract bindings instead.
type Artifact struct {
	ContractName string   `json:"contractName"`
	Bytecode     Bytecode `json:"bytecode"`
}

func (a *Artifact) CreationCode() []byte {
	return a.Bytecode.Object
}

// Loader resolves named contract artifacts out of a build directory.
type Loader struct {
	dir string
}

func NewLoader(loc *Locator) (*Loader, error) {
	if loc == nil || loc.Empty() {
		return nil, errors.New("artifacts locator is empty")
	}
	dir := loc.Dir()
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat artifacts dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("artifacts path is not a directory: %s", dir)
	}
	return &Loader{dir: dir}, nil
}

// Artifact reads the artifact for the named contract. Both the flat
// <name>.json layout and forge's <name>.sol/<name>.json layout are probed.
func (l *Loader) Artifact(name string) (*Artifact, error) {
	candidates := []string{
		filepath.Join(l.dir, name+".json"),
		filepath.Join(l.dir, name+".sol", name+".json"),
	}
	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read artifact %s: %w", p, err)
		}
		var art Artifact
		if err := json.Unmarshal(data, &art); err != nil {
			return nil, fmt.Errorf("failed to decode artifact %s: %w", p, err)
		}
		if len(art.CreationCode()) == 0 {
			return nil, fmt.Errorf("artifact %s contains no creation code", p)
		}
		return &art, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, name)
}
