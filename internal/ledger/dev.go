package ledger

import (
	"context"
	"math/big"
	"strings"
	"sync"
)

// DevLedger is an in-process Ledger. Seeded transactions are returned as
// stored; unknown ids are reported confirmed and Unverified when trustUnknown
// is set, or ErrTxNotFound otherwise.
type DevLedger struct {
	mu           sync.RWMutex
	txs          map[string]Transaction
	trustUnknown bool
}

type DevOption func(*DevLedger)

// WithTrustUnknown makes unseeded transactions look confirmed.
func WithTrustUnknown() DevOption {
	return func(l *DevLedger) { l.trustUnknown = true }
}

func NewDevLedger(opts ...DevOption) *DevLedger {
	l := &DevLedger{txs: make(map[string]Transaction)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Put seeds or replaces a transaction.
func (l *DevLedger) Put(tx Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	tx.Hash = strings.ToLower(tx.Hash)
	if tx.Value != nil {
		tx.Value = new(big.Int).Set(tx.Value)
	}
	l.txs[tx.Hash] = tx
}

// SetStatus changes the status of a seeded transaction.
func (l *DevLedger) SetStatus(txID string, status TxStatus) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := strings.ToLower(txID)
	if tx, ok := l.txs[key]; ok {
		tx.Status = status
		l.txs[key] = tx
	}
}

func (l *DevLedger) LookupTransaction(ctx context.Context, txID string) (*Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	tx, ok := l.txs[strings.ToLower(txID)]
	if !ok {
		if l.trustUnknown {
			return &Transaction{Hash: strings.ToLower(txID), Status: TxConfirmed, Unverified: true}, nil
		}
		return nil, ErrTxNotFound
	}
	if tx.Value != nil {
		tx.Value = new(big.Int).Set(tx.Value)
	}
	return &tx, nil
}
