package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// State tracks everything a deployment run has produced so far. It is
// persisted after every pipeline stage so that a re-run picks up where the
// previous one stopped.
type State struct {
	Version int `json:"version"`

	// AppliedIntent contains the chain intent that was last
	// successfully applied. It is diffed against new intents on
	// subsequent applies.
	AppliedIntent *Intent `json:"appliedIntent"`

	StIOTXImplAddress  common.Address `json:"stIOTXImplAddress"`
	StIOTXProxyAddress common.Address `json:"stIOTXProxyAddress"`

	StakingImplAddress  common.Address `json:"stakingImplAddress"`
	StakingProxyAddress common.Address `json:"stakingProxyAddress"`

	RedeemImplAddress  common.Address `json:"redeemImplAddress"`
	RedeemProxyAddress common.Address `json:"redeemProxyAddress"`

	Initialized          bool `json:"initialized"`
	Wired                bool `json:"wired"`
	ValidatorsRegistered int  `json:"validatorsRegistered"`
}

func (s *State) ImplementationsDeployed() bool {
	return s.StIOTXImplAddress != (common.Address{}) && s.StakingImplAddress != (common.Address{})
}

func (s *State) ProxiesDeployed() bool {
	return s.StIOTXProxyAddress != (common.Address{}) && s.StakingProxyAddress != (common.Address{})
}

// CheckApplied returns an error unless the state describes a fully wired
// deployment, i.e. one the exercise sequence can run against.
func (s *State) CheckApplied() error {
	if s.AppliedIntent == nil {
		return fmt.Errorf("intent was never applied")
	}
	if !s.ProxiesDeployed() || !s.Initialized || !s.Wired {
		return fmt.Errorf("deployment is incomplete")
	}
	return nil
}
