package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var IOTEXStakingMetaData = &bind.MetaData{
	ABI: `[
{"type":"function","name":"initialize","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
{"type":"function","name":"setStIOTXContractAddress","inputs":[{"name":"stIOTXAddress","type":"address"}],"outputs":[],"stateMutability":"nonpayable"},
{"type":"function","name":"setRedeemContract","inputs":[{"name":"redeemContract","type":"address"}],"outputs":[],"stateMutability":"nonpayable"},
{"type":"function","name":"registerValidator","inputs":[{"name":"pubkey","type":"bytes"}],"outputs":[],"stateMutability":"nonpayable"},
{"type":"function","name":"mint","inputs":[{"name":"minToMint","type":"uint256"}],"outputs":[],"stateMutability":"payable"},
{"type":"function","name":"pullPending","inputs":[{"name":"recipient","type":"address"}],"outputs":[],"stateMutability":"nonpayable"},
{"type":"function","name":"pushBalance","inputs":[{"name":"amount","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
{"type":"function","name":"redeem","inputs":[{"name":"stIOTXToBurn","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
{"type":"function","name":"redeemUnderlying","inputs":[{"name":"iotxToRedeem","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
{"type":"function","name":"payDebts","inputs":[],"outputs":[],"stateMutability":"payable"},
{"type":"function","name":"exchangeRatio","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
{"type":"function","name":"debtOf","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"}
]`,
}

type IOTEXStaking struct {
	address  common.Address
	contract *bind.BoundContract
}

func NewIOTEXStaking(address common.Address, backend bind.ContractBackend) (*IOTEXStaking, error) {
	parsed, err := IOTEXStakingMetaData.GetAbi()
	if err != nil {
		return nil, err
	}
	return &IOTEXStaking{
		address:  address,
		contract: bind.NewBoundContract(address, *parsed, backend, backend, backend),
	}, nil
}

func DeployIOTEXStaking(opts *bind.TransactOpts, backend bind.ContractBackend, bytecode []byte) (common.Address, *types.Transaction, *IOTEXStaking, error) {
	parsed, err := IOTEXStakingMetaData.GetAbi()
	if err != nil {
		return common.Address{}, nil, nil, err
	}
	address, tx, _, err := bind.DeployContract(opts, *parsed, bytecode, backend)
	if err != nil {
		return common.Address{}, nil, nil, err
	}
	staking, err := NewIOTEXStaking(address, backend)
	if err != nil {
		return common.Address{}, nil, nil, err
	}
	return address, tx, staking, nil
}

func (s *IOTEXStaking) Address() common.Address {
	return s.address
}

func (s *IOTEXStaking) Initialize(opts *bind.TransactOpts) (*types.Transaction, error) {
	return s.contract.Transact(opts, "initialize")
}

func (s *IOTEXStaking) SetStIOTXContractAddress(opts *bind.TransactOpts, stIOTXAddress common.Address) (*types.Transaction, error) {
	return s.contract.Transact(opts, "setStIOTXContractAddress", stIOTXAddress)
}

func (s *IOTEXStaking) SetRedeemContract(opts *bind.TransactOpts, redeemContract common.Address) (*types.Transaction, error) {
	return s.contract.Transact(opts, "setRedeemContract", redeemContract)
}

func (s *IOTEXStaking) RegisterValidator(opts *bind.TransactOpts, pubkey []byte) (*types.Transaction, error) {
	return s.contract.Transact(opts, "registerValidator", pubkey)
}

// Mint stakes the attached value. minToMint bounds the stIOTX minted against
// ratio movement between submission and inclusion.
func (s *IOTEXStaking) Mint(opts *bind.TransactOpts, minToMint *big.Int) (*types.Transaction, error) {
	return s.contract.Transact(opts, "mint", minToMint)
}

func (s *IOTEXStaking) PullPending(opts *bind.TransactOpts, recipient common.Address) (*types.Transaction, error) {
	return s.contract.Transact(opts, "pullPending", recipient)
}

func (s *IOTEXStaking) PushBalance(opts *bind.TransactOpts, amount *big.Int) (*types.Transaction, error) {
	return s.contract.Transact(opts, "pushBalance", amount)
}

func (s *IOTEXStaking) Redeem(opts *bind.TransactOpts, stIOTXToBurn *big.Int) (*types.Transaction, error) {
	return s.contract.Transact(opts, "redeem", stIOTXToBurn)
}

func (s *IOTEXStaking) RedeemUnderlying(opts *bind.TransactOpts, iotxToRedeem *big.Int) (*types.Transaction, error) {
	return s.contract.Transact(opts, "redeemUnderlying", iotxToRedeem)
}

func (s *IOTEXStaking) PayDebts(opts *bind.TransactOpts) (*types.Transaction, error) {
	return s.contract.Transact(opts, "payDebts")
}

func (s *IOTEXStaking) ExchangeRatio(opts *bind.CallOpts) (*big.Int, error) {
	var out []interface{}
	if err := s.contract.Call(opts, &out, "exchangeRatio"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (s *IOTEXStaking) DebtOf(opts *bind.CallOpts, account common.Address) (*big.Int, error) {
	var out []interface{}
	if err := s.contract.Call(opts, &out, "debtOf", account); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}
