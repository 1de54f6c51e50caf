// Package certificate binds an issued ownership certificate to the transfer it
// describes.
//
// A Fingerprint is the SHA-256 of a canonical encoding of six transfer facts.
// Embed renders a PDF certificate carrying the fingerprint out of sight;
// Extract recovers it; Verify recomputes the fingerprint from stored facts and
// compares. Every function here is pure and safe for concurrent use.
package certificate

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
)

// Facts are the essential facts of one ownership transfer.
type Facts struct {
	SurveyNumber string
	Location     string
	Area         string
	// Seller and Buyer are stable party identities (user IDs).
	Seller string
	Buyer  string
	TxID   string
}

// Fingerprint is a 64-character lowercase hex SHA-256 digest.
type Fingerprint string

func (f Fingerprint) String() string { return string(f) }

// Equal compares case-insensitively.
func (f Fingerprint) Equal(other Fingerprint) bool {
	return strings.EqualFold(string(f), string(other))
}

// key order is part of the wire format; changing it invalidates every
// certificate already issued.
var factKeys = [...]string{"survey_number", "location", "area", "seller", "buyer", "tx_id"}

const factSeparator = "|"

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	// Longest alternatives first so "sq. ft." wins over "ft".
	areaUnitSuffix = regexp.MustCompile(`(?i)\s*(square\s+feet|square\s+foot|square\s+meters?|square\s+metres?|sq\.?\s*ft\.?|sq\.?\s*m\.?|sqft|sqm|ft2|m2|acres?|hectares?|ha)\s*$`)
)

// normalizeText lower-cases, trims, and collapses internal whitespace runs.
func normalizeText(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// normalizeArea strips a trailing unit, thousands separators, and all whitespace:
// "5,000 sq ft" and " 5000SQFT" both become "5000".
func normalizeArea(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = areaUnitSuffix.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, ",", "")
	return whitespaceRun.ReplaceAllString(s, "")
}

// Canonical returns the normalized encoding that Compute hashes. Each value is
// length-prefixed, so no value can pass for the separator and a later key.
func (f Facts) Canonical() string {
	values := [...]string{
		normalizeText(f.SurveyNumber),
		normalizeText(f.Location),
		normalizeArea(f.Area),
		normalizeText(f.Seller),
		normalizeText(f.Buyer),
		normalizeText(f.TxID),
	}
	parts := make([]string, len(factKeys))
	for i, k := range factKeys {
		parts[i] = k + "=" + strconv.Itoa(len(values[i])) + ":" + values[i]
	}
	return strings.Join(parts, factSeparator)
}

// Compute derives the fingerprint of f. Facts that differ only in case,
// surrounding whitespace, or area units yield the same fingerprint.
func Compute(f Facts) Fingerprint {
	sum := sha256.Sum256([]byte(f.Canonical()))
	return Fingerprint(hex.EncodeToString(sum[:]))
}
