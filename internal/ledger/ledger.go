// Package ledger is the boundary to the distributed ledger that carries
// payments. The registry reads transactions through Ledger and never writes.
package ledger

import (
	"context"
	"errors"
	"math/big"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	dErrors "landtitle/pkg/domain-errors"
)

// ErrTxNotFound is returned when the ledger has no record of a transaction.
var ErrTxNotFound = errors.New("ledger: transaction not found")

type TxStatus string

const (
	TxPending   TxStatus = "pending"
	TxConfirmed TxStatus = "confirmed"
	TxFailed    TxStatus = "failed"
)

// Transaction is the registry's view of one ledger transfer.
type Transaction struct {
	Hash          string
	Status        TxStatus
	From          string
	To            string
	Value         *big.Int
	Confirmations uint64
	// Unverified is set by ledgers that cannot observe the chain. Callers
	// skip recipient and value checks for such transactions.
	Unverified bool
}

// Ledger looks up transactions by id.
type Ledger interface {
	LookupTransaction(ctx context.Context, txID string) (*Transaction, error)
}

var txIDPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// NormalizeTxID validates a transaction id and returns it lower-cased.
func NormalizeTxID(txID string) (string, error) {
	txID = strings.TrimSpace(txID)
	if !txIDPattern.MatchString(txID) {
		return "", dErrors.New(dErrors.CodeValidation, "transaction id must be 0x followed by 64 hex characters")
	}
	return strings.ToLower(txID), nil
}

// ValidateAddress accepts 0x-prefixed 20-byte hex addresses. Mixed-case input
// must carry a valid EIP-55 checksum.
func ValidateAddress(addr string) error {
	if !strings.HasPrefix(addr, "0x") || !common.IsHexAddress(addr) {
		return dErrors.New(dErrors.CodeInvalidAddress, "address must be 0x followed by 40 hex characters")
	}
	body := addr[2:]
	if body != strings.ToLower(body) && body != strings.ToUpper(body) {
		if common.HexToAddress(addr).Hex() != addr {
			return dErrors.New(dErrors.CodeInvalidAddress, "address checksum mismatch")
		}
	}
	return nil
}

// SameAddress compares two addresses ignoring case.
func SameAddress(a, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}

const weiPerEther = 18

// Converter turns INR amounts into ledger base units at a fixed rate.
type Converter struct {
	inrPerEther decimal.Decimal
}

func NewConverter(inrPerEther string) (*Converter, error) {
	rate, err := decimal.NewFromString(inrPerEther)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid INR per ether rate")
	}
	if !rate.IsPositive() {
		return nil, dErrors.New(dErrors.CodeValidation, "INR per ether rate must be positive")
	}
	return &Converter{inrPerEther: rate}, nil
}

// ToWei converts an INR amount to wei, rounding the ether value to 8 places.
func (c *Converter) ToWei(amountINR decimal.Decimal) *big.Int {
	return amountINR.DivRound(c.inrPerEther, 8).Shift(weiPerEther).BigInt()
}

// ToEther returns the ether amount as a display string.
func (c *Converter) ToEther(amountINR decimal.Decimal) string {
	return amountINR.DivRound(c.inrPerEther, 8).String()
}
