package state

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"

	"github.com/RockX-SG/iotex-staking/pkg/deployer/artifacts"
)

// Default gas limit passed with every deployment and configuration
// transaction. Matches the limit the contracts were originally deployed with.
const DefaultGasLimit = 6721975

var (
	ErrRoleZeroAddress    = errors.New("role is set to zero address")
	ErrChainIDUndefined   = errors.New("chain ID undefined")
	ErrArtifactsUndefined = errors.New("contract artifacts locator undefined")
)

// Roles holds the two signing identities every deployment uses. The owner
// initializes and configures the contracts, the deployer creates them and
// becomes the proxy admin.
type Roles struct {
	Owner    common.Address `json:"owner" toml:"owner"`
	Deployer common.Address `json:"deployer" toml:"deployer"`
}

func (r *Roles) CheckNoZeroAddresses() error {
	val := reflect.ValueOf(*r)
	typ := reflect.TypeOf(*r)
	for i := 0; i < val.NumField(); i++ {
		if val.Field(i).Interface() == (common.Address{}) {
			return fmt.Errorf("%w: %s", ErrRoleZeroAddress, typ.Field(i).Name)
		}
	}
	return nil
}

// ExerciseParams are the amounts used by the scripted post-deploy sequence.
// They only change the magnitude of the observed values, never the call order.
type ExerciseParams struct {
	MintValue             *hexutil.U256 `json:"mintValue" toml:"mintValue"`
	FirstPushValue        *hexutil.U256 `json:"firstPushValue" toml:"firstPushValue"`
	ApproveValue          *hexutil.U256 `json:"approveValue" toml:"approveValue"`
	RedeemUnderlyingValue *hexutil.U256 `json:"redeemUnderlyingValue" toml:"redeemUnderlyingValue"`
	PayDebtsValue         *hexutil.U256 `json:"payDebtsValue" toml:"payDebtsValue"`
	SecondPushValue       *hexutil.U256 `json:"secondPushValue" toml:"secondPushValue"`
}

func u256Ether(milliEther int64) *hexutil.U256 {
	wei := new(big.Int).Mul(big.NewInt(milliEther), big.NewInt(params.Ether/1000))
	out, _ := uint256.FromBig(wei)
	return (*hexutil.U256)(out)
}

// DefaultExerciseParams mirrors the amounts the contracts were originally
// smoke-tested with: mint 1 IOTX, push 1.1 then 0.56, redeem 0.5 against a
// 0.55 debt payment, with an effectively unlimited approval.
func DefaultExerciseParams() *ExerciseParams {
	return &ExerciseParams{
		MintValue:             u256Ether(1000),
		FirstPushValue:        u256Ether(1100),
		ApproveValue:          u256Ether(1_000_000_000),
		RedeemUnderlyingValue: u256Ether(500),
		PayDebtsValue:         u256Ether(550),
		SecondPushValue:       u256Ether(560),
	}
}

type Intent struct {
	ChainID uint64 `json:"chainID" toml:"chainID"`

	Roles Roles `json:"roles" toml:"roles"`

	// DeployRedemption controls whether the redemption contract is deployed
	// and wired into the staking contract. Dev deployments leave it off.
	DeployRedemption bool `json:"deployRedemption" toml:"deployRedemption"`

	// FundDevAccounts marks intents produced for a throwaway dev chain whose
	// accounts are derived from the well-known test mnemonic.
	FundDevAccounts bool `json:"fundDevAccounts" toml:"fundDevAccounts"`

	ContractArtifactsLocator *artifacts.Locator `json:"contractArtifactsLocator" toml:"contractArtifactsLocator"`

	// GasLimit is attached to every transaction instead of estimating,
	// the way the original deployments pinned a fixed limit.
	GasLimit uint64 `json:"gasLimit" toml:"gasLimit"`

	// TxDelaySeconds is slept between pipeline stages. Public testnet RPC
	// gateways lag behind their own receipts without it.
	TxDelaySeconds uint64 `json:"txDelaySeconds" toml:"txDelaySeconds"`

	// ValidatorPubkeys are registered with the staking contract after wiring.
	ValidatorPubkeys []hexutil.Bytes `json:"validatorPubkeys" toml:"validatorPubkeys"`

	ExerciseParams *ExerciseParams `json:"exerciseParams" toml:"exerciseParams"`
}

func (c *Intent) ChainIDBig() *big.Int {
	return new(big.Int).SetUint64(c.ChainID)
}

func (c *Intent) Check() error {
	if c.ChainID == 0 {
		return ErrChainIDUndefined
	}
	if err := c.Roles.CheckNoZeroAddresses(); err != nil {
		return err
	}
	if c.ContractArtifactsLocator == nil || c.ContractArtifactsLocator.Empty() {
		return ErrArtifactsUndefined
	}
	// An empty list is valid: validator registration is a separate concern
	// from deployment and some chains never register through this tool.
	for i, pk := range c.ValidatorPubkeys {
		if len(pk) == 0 {
			return fmt.Errorf("validator pubkey %d is empty", i)
		}
	}
	return nil
}

// WithDefaults fills in everything Check does not require to be explicit.
func (c *Intent) WithDefaults() *Intent {
	if c.GasLimit == 0 {
		c.GasLimit = DefaultGasLimit
	}
	if c.ExerciseParams == nil {
		c.ExerciseParams = DefaultExerciseParams()
	}
	return c
}
