package contracts

import (
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TransparentUpgradeableProxyMetaData carries only the constructor: every
// other call on a proxy address is dispatched through the implementation ABI.
var TransparentUpgradeableProxyMetaData = &bind.MetaData{
	ABI: `[
{"type":"constructor","inputs":[{"name":"_logic","type":"address"},{"name":"admin_","type":"address"},{"name":"_data","type":"bytes"}],"stateMutability":"payable"}
]`,
}

// DeployTransparentUpgradeableProxy deploys a proxy delegating to logic,
// administered by admin. data is forwarded to the implementation as an
// initializer call; the deployment pipeline always passes it empty and
// initializes explicitly afterwards.
func DeployTransparentUpgradeableProxy(opts *bind.TransactOpts, backend bind.ContractBackend, bytecode []byte, logic common.Address, admin common.Address, data []byte) (common.Address, *types.Transaction, error) {
	parsed, err := TransparentUpgradeableProxyMetaData.GetAbi()
	if err != nil {
		return common.Address{}, nil, err
	}
	address, tx, _, err := bind.DeployContract(opts, *parsed, bytecode, backend, logic, admin, data)
	if err != nil {
		return common.Address{}, nil, err
	}
	return address, tx, nil
}
