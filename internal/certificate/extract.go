package certificate

import (
	"bytes"
	"compress/zlib"
	"io"
	"regexp"

	dErrors "landtitle/pkg/domain-errors"
)

// maxInflatedStream caps decompression of a single content stream.
const maxInflatedStream = 8 << 20

var (
	hexDigest = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)

	// Info dictionary entry written by StyleMetadata.
	keywordsDigest = regexp.MustCompile(`/Keywords\s*\(` + regexp.QuoteMeta(keywordPrefix) + `([0-9a-fA-F]{64})\)`)

	// A text-show operator whose whole string operand is a bare digest. A
	// printed transaction id carries a label and "0x" so it never matches.
	hiddenTextDigest = regexp.MustCompile(`\(([0-9a-fA-F]{64})\)\s*Tj`)

	streamBody = regexp.MustCompile(`(?s)stream\r?\n(.*?)\r?\nendstream`)
)

// Extract recovers the embedded fingerprint from a certificate produced in
// either embed style, including hidden text inside Flate-compressed streams.
func Extract(document []byte) (Fingerprint, error) {
	if len(document) == 0 || !bytes.HasPrefix(bytes.TrimLeft(document, "\x00\t\r\n "), []byte("%PDF-")) {
		return "", dErrors.New(dErrors.CodeDocumentUnreadable, "document is not a PDF")
	}

	if m := keywordsDigest.FindSubmatch(document); m != nil {
		return Fingerprint(bytes.ToLower(m[1])), nil
	}
	if m := hiddenTextDigest.FindSubmatch(document); m != nil {
		return Fingerprint(bytes.ToLower(m[1])), nil
	}

	for _, s := range streamBody.FindAllSubmatch(document, -1) {
		inflated, ok := inflate(s[1])
		if !ok {
			continue
		}
		if m := hiddenTextDigest.FindSubmatch(inflated); m != nil {
			return Fingerprint(bytes.ToLower(m[1])), nil
		}
	}

	return "", dErrors.New(dErrors.CodeDocumentUnreadable, "no fingerprint found in document")
}

func inflate(data []byte) ([]byte, bool) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	defer r.Close()
	out, err := io.ReadAll(io.LimitReader(r, maxInflatedStream))
	if err != nil && len(out) == 0 {
		return nil, false
	}
	return out, true
}

// Verify succeeds only when the document's embedded fingerprint equals the
// fingerprint of expected.
func Verify(document []byte, expected Facts) error {
	embedded, err := Extract(document)
	if err != nil {
		return err
	}
	if !embedded.Equal(Compute(expected)) {
		return dErrors.New(dErrors.CodeFingerprintMismatch, "certificate does not match the recorded transfer")
	}
	return nil
}
