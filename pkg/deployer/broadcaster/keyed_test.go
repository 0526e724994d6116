package broadcaster

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/require"

	"github.com/ethereum-optimism/optimism/op-service/testlog"
)

type stubSender struct {
	mu       sync.Mutex
	sent     []*types.Transaction
	status   uint64
	sendErrs int
}

func (s *stubSender) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sendErrs > 0 {
		s.sendErrs--
		return errors.New("connection reset")
	}
	s.sent = append(s.sent, tx)
	return nil
}

func (s *stubSender) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	return &types.Receipt{
		Status:      s.status,
		TxHash:      txHash,
		BlockNumber: big.NewInt(1),
		GasUsed:     21_000,
	}, nil
}

func signedTx(t *testing.T, key *ecdsa.PrivateKey, nonce uint64) *types.Transaction {
	t.Helper()
	to := common.Address{0x01}
	tx, err := types.SignNewTx(key, types.LatestSignerForChainID(big.NewInt(1337)), &types.DynamicFeeTx{
		ChainID:   big.NewInt(1337),
		Nonce:     nonce,
		GasTipCap: big.NewInt(1e9),
		GasFeeCap: big.NewInt(2e9),
		Gas:       21_000,
		To:        &to,
	})
	require.NoError(t, err)
	return tx
}

func TestKeyedBroadcaster(t *testing.T) {
	t.Parallel()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	lgr := testlog.Logger(t, log.LevelInfo)

	t.Run("sends in order and clears the queue", func(t *testing.T) {
		sender := &stubSender{status: types.ReceiptStatusSuccessful}
		b := NewKeyedBroadcaster(lgr, sender)
		b.Hook(Broadcast{Name: "first", Tx: signedTx(t, key, 0)})
		b.Hook(Broadcast{Name: "second", Tx: signedTx(t, key, 1)})

		results, err := b.Broadcast(context.Background())
		require.NoError(t, err)
		require.Len(t, results, 2)
		require.Equal(t, "first", results[0].Broadcast.Name)
		require.Equal(t, "second", results[1].Broadcast.Name)
		require.EqualValues(t, 0, sender.sent[0].Nonce())
		require.EqualValues(t, 1, sender.sent[1].Nonce())

		results, err = b.Broadcast(context.Background())
		require.NoError(t, err)
		require.Empty(t, results)
	})

	t.Run("reverted transaction aborts the broadcast", func(t *testing.T) {
		sender := &stubSender{status: types.ReceiptStatusFailed}
		b := NewKeyedBroadcaster(lgr, sender)
		b.Hook(Broadcast{Name: "doomed", Tx: signedTx(t, key, 0)})
		b.Hook(Broadcast{Name: "never-sent", Tx: signedTx(t, key, 1)})

		results, err := b.Broadcast(context.Background())
		require.ErrorIs(t, err, ErrReverted)
		require.Len(t, results, 1)
		require.Len(t, sender.sent, 1)
	})

	t.Run("transient send errors are retried", func(t *testing.T) {
		sender := &stubSender{status: types.ReceiptStatusSuccessful, sendErrs: 2}
		b := NewKeyedBroadcaster(lgr, sender)
		b.Hook(Broadcast{Name: "flaky", Tx: signedTx(t, key, 0)})

		results, err := b.Broadcast(context.Background())
		require.NoError(t, err)
		require.Len(t, results, 1)
		require.Len(t, sender.sent, 1)
	})
}
