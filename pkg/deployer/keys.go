package deployer

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/ethereum-optimism/optimism/op-chain-ops/devkeys"
	opcrypto "github.com/ethereum-optimism/optimism/op-service/crypto"
)

// Dev account indices, matching the original account ordering: owner is
// account 0, deployer account 1.
const (
	devOwnerIndex    = 0
	devDeployerIndex = 1
)

func SignerFromPrivateKey(hexKey string, chainID *big.Int) (*bind.TransactOpts, error) {
	pk, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return &bind.TransactOpts{
		From:   crypto.PubkeyToAddress(pk.PublicKey),
		Signer: opcrypto.PrivateKeySignerFn(pk, chainID),
	}, nil
}

func devSigner(hd *devkeys.MnemonicDevKeys, chainID *big.Int, index uint64) (*bind.TransactOpts, error) {
	key := devkeys.ChainUserKeys(chainID)(index)
	sec, err := hd.Secret(key)
	if err != nil {
		return nil, fmt.Errorf("failed to derive dev key %d: %w", index, err)
	}
	return &bind.TransactOpts{
		From:   crypto.PubkeyToAddress(sec.PublicKey),
		Signer: opcrypto.PrivateKeySignerFn(sec, chainID),
	}, nil
}

// DevSigners derives the owner and deployer signers from a mnemonic.
func DevSigners(mnemonic string, chainID *big.Int) (owner *bind.TransactOpts, dep *bind.TransactOpts, err error) {
	hd, err := devkeys.NewMnemonicDevKeys(mnemonic)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create dev keys: %w", err)
	}
	owner, err = devSigner(hd, chainID, devOwnerIndex)
	if err != nil {
		return nil, nil, err
	}
	dep, err = devSigner(hd, chainID, devDeployerIndex)
	if err != nil {
		return nil, nil, err
	}
	return owner, dep, nil
}

// DevAddresses returns the owner and deployer addresses a mnemonic derives,
// for prefilling dev intents without keeping key material around.
func DevAddresses(mnemonic string, chainID *big.Int) (owner common.Address, dep common.Address, err error) {
	ownerOpts, depOpts, err := DevSigners(mnemonic, chainID)
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	return ownerOpts.From, depOpts.From, nil
}
