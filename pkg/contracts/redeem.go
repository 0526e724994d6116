package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var IotexRedeemMetaData = &bind.MetaData{
	ABI: `[
{"type":"function","name":"claim","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
{"type":"function","name":"balanceOf","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"}
]`,
}

// IotexRedeem fronts the redemption queue. Redeemed principal accumulates
// here until the holder claims it.
type IotexRedeem struct {
	address  common.Address
	contract *bind.BoundContract
}

func NewIotexRedeem(address common.Address, backend bind.ContractBackend) (*IotexRedeem, error) {
	parsed, err := IotexRedeemMetaData.GetAbi()
	if err != nil {
		return nil, err
	}
	return &IotexRedeem{
		address:  address,
		contract: bind.NewBoundContract(address, *parsed, backend, backend, backend),
	}, nil
}

func DeployIotexRedeem(opts *bind.TransactOpts, backend bind.ContractBackend, bytecode []byte) (common.Address, *types.Transaction, *IotexRedeem, error) {
	parsed, err := IotexRedeemMetaData.GetAbi()
	if err != nil {
		return common.Address{}, nil, nil, err
	}
	address, tx, _, err := bind.DeployContract(opts, *parsed, bytecode, backend)
	if err != nil {
		return common.Address{}, nil, nil, err
	}
	redeem, err := NewIotexRedeem(address, backend)
	if err != nil {
		return common.Address{}, nil, nil, err
	}
	return address, tx, redeem, nil
}

func (r *IotexRedeem) Address() common.Address {
	return r.address
}

func (r *IotexRedeem) Claim(opts *bind.TransactOpts) (*types.Transaction, error) {
	return r.contract.Transact(opts, "claim")
}

func (r *IotexRedeem) BalanceOf(opts *bind.CallOpts, account common.Address) (*big.Int, error) {
	var out []interface{}
	if err := r.contract.Call(opts, &out, "balanceOf", account); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}
