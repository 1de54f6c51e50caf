// Package ethereum implements ledger.Ledger against an Ethereum JSON-RPC node.
package ethereum

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"landtitle/internal/ledger"
	dErrors "landtitle/pkg/domain-errors"
	"landtitle/pkg/platform/circuit"
)

const defaultTimeout = 10 * time.Second

// ChainReader is the subset of ethclient.Client the adapter needs.
type ChainReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

// Client looks up transactions with a per-call timeout behind a circuit breaker.
type Client struct {
	chain            ChainReader
	chainID          *big.Int
	signer           types.Signer
	timeout          time.Duration
	minConfirmations uint64
	breaker          *circuit.Breaker
	logger           *slog.Logger
	lookups          *prometheus.HistogramVec
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithMinConfirmations(n uint64) Option {
	return func(c *Client) { c.minConfirmations = n }
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) { c.breaker = b }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics registers the lookup latency histogram on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) {
		c.lookups = promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "landtitle_ledger_lookup_duration_seconds",
			Help:    "Latency of ledger transaction lookups by outcome",
			Buckets: prometheus.DefBuckets,
		}, []string{"outcome"})
	}
}

// Dial connects to rpcURL and refuses to start when the node serves a
// different chain than expectedChainID.
func Dial(ctx context.Context, rpcURL string, expectedChainID int64, opts ...Option) (*Client, error) {
	rpc, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial ledger rpc: %w", err)
	}
	c, err := New(ctx, rpc, expectedChainID, opts...)
	if err != nil {
		rpc.Close()
		return nil, err
	}
	return c, nil
}

// New wraps an existing chain reader. It checks the chain id once.
func New(ctx context.Context, chain ChainReader, expectedChainID int64, opts ...Option) (*Client, error) {
	c := &Client{
		chain:            chain,
		timeout:          defaultTimeout,
		minConfirmations: 1,
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breaker == nil {
		c.breaker = circuit.New("ledger")
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	chainID, err := chain.ChainID(callCtx)
	if err != nil {
		return nil, fmt.Errorf("read chain id: %w", err)
	}
	if chainID.Cmp(big.NewInt(expectedChainID)) != 0 {
		return nil, fmt.Errorf("ledger network mismatch: node serves chain %s, expected %d", chainID, expectedChainID)
	}
	c.chainID = chainID
	c.signer = types.LatestSignerForChainID(chainID)
	return c, nil
}

func (c *Client) LookupTransaction(ctx context.Context, txID string) (*ledger.Transaction, error) {
	if !c.breaker.Allow() {
		c.observe("breaker_open", time.Now())
		return nil, dErrors.New(dErrors.CodeLedgerFailure, "ledger temporarily unavailable")
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tx, err := c.lookup(ctx, common.HexToHash(txID))
	switch {
	case errors.Is(err, ledger.ErrTxNotFound):
		c.recordSuccess()
		c.observe("not_found", start)
		return nil, err
	case err != nil:
		if _, change := c.breaker.RecordFailure(); change.Opened {
			c.logger.WarnContext(ctx, "ledger circuit opened", "breaker", c.breaker.Name(), "error", err)
		}
		c.observe("error", start)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, dErrors.Wrap(err, dErrors.CodeLedgerFailure, "ledger lookup timed out")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeLedgerFailure, "ledger lookup failed")
	}
	c.recordSuccess()
	c.observe(string(tx.Status), start)
	return tx, nil
}

func (c *Client) lookup(ctx context.Context, hash common.Hash) (*ledger.Transaction, error) {
	raw, isPending, err := c.chain.TransactionByHash(ctx, hash)
	if errors.Is(err, goethereum.NotFound) {
		return nil, ledger.ErrTxNotFound
	}
	if err != nil {
		return nil, err
	}

	out := &ledger.Transaction{
		Hash:   hash.Hex(),
		Status: ledger.TxPending,
		Value:  raw.Value(),
	}
	if to := raw.To(); to != nil {
		out.To = to.Hex()
	}
	if from, err := types.Sender(c.signer, raw); err == nil {
		out.From = from.Hex()
	}
	if isPending {
		return out, nil
	}

	receipt, err := c.chain.TransactionReceipt(ctx, hash)
	if errors.Is(err, goethereum.NotFound) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		out.Status = ledger.TxFailed
		return out, nil
	}

	head, err := c.chain.BlockNumber(ctx)
	if err != nil {
		return nil, err
	}
	if receipt.BlockNumber != nil && head >= receipt.BlockNumber.Uint64() {
		out.Confirmations = head - receipt.BlockNumber.Uint64() + 1
	}
	if out.Confirmations >= c.minConfirmations {
		out.Status = ledger.TxConfirmed
	}
	return out, nil
}

func (c *Client) recordSuccess() {
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.Info("ledger circuit closed", "breaker", c.breaker.Name())
	}
}

func (c *Client) observe(outcome string, start time.Time) {
	if c.lookups == nil {
		return
	}
	c.lookups.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}
