// Package contracts holds thin typed wrappers over the externally maintained
// staking contract ABIs. The contract sources live in their own repository;
// only the call surface the deployer touches is bound here.
package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// StIOTXMetaData binds the ERC-20 slice of the stIOTX token the deployer
// touches, plus initialize and the owner-only setMintable. Standard selectors
// apply for the ERC-20 subset (balanceOf 0x70a08231, approve 0x095ea7b3,
// allowance 0xdd62ed3e).
var StIOTXMetaData = &bind.MetaData{
	ABI: `[
{"type":"function","name":"initialize","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
{"type":"function","name":"setMintable","inputs":[{"name":"minter","type":"address"},{"name":"allowed","type":"bool"}],"outputs":[],"stateMutability":"nonpayable"},
{"type":"function","name":"approve","inputs":[{"name":"spender","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable"},
{"type":"function","name":"balanceOf","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
{"type":"function","name":"allowance","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"}
]`,
}

type StIOTX struct {
	address  common.Address
	contract *bind.BoundContract
}

func NewStIOTX(address common.Address, backend bind.ContractBackend) (*StIOTX, error) {
	parsed, err := StIOTXMetaData.GetAbi()
	if err != nil {
		return nil, err
	}
	return &StIOTX{
		address:  address,
		contract: bind.NewBoundContract(address, *parsed, backend, backend, backend),
	}, nil
}

func DeployStIOTX(opts *bind.TransactOpts, backend bind.ContractBackend, bytecode []byte) (common.Address, *types.Transaction, *StIOTX, error) {
	parsed, err := StIOTXMetaData.GetAbi()
	if err != nil {
		return common.Address{}, nil, nil, err
	}
	address, tx, _, err := bind.DeployContract(opts, *parsed, bytecode, backend)
	if err != nil {
		return common.Address{}, nil, nil, err
	}
	token, err := NewStIOTX(address, backend)
	if err != nil {
		return common.Address{}, nil, nil, err
	}
	return address, tx, token, nil
}

func (s *StIOTX) Address() common.Address {
	return s.address
}

func (s *StIOTX) Initialize(opts *bind.TransactOpts) (*types.Transaction, error) {
	return s.contract.Transact(opts, "initialize")
}

func (s *StIOTX) SetMintable(opts *bind.TransactOpts, minter common.Address, allowed bool) (*types.Transaction, error) {
	return s.contract.Transact(opts, "setMintable", minter, allowed)
}

func (s *StIOTX) Approve(opts *bind.TransactOpts, spender common.Address, value *big.Int) (*types.Transaction, error) {
	return s.contract.Transact(opts, "approve", spender, value)
}

func (s *StIOTX) BalanceOf(opts *bind.CallOpts, account common.Address) (*big.Int, error) {
	var out []interface{}
	if err := s.contract.Call(opts, &out, "balanceOf", account); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (s *StIOTX) Allowance(opts *bind.CallOpts, owner common.Address, spender common.Address) (*big.Int, error) {
	var out []interface{}
	if err := s.contract.Call(opts, &out, "allowance", owner, spender); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}
