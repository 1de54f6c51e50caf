package certificate

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	dErrors "landtitle/pkg/domain-errors"
)

// EmbedStyle selects where Embed hides the fingerprint.
type EmbedStyle string

const (
	// StyleMetadata stores the fingerprint in the PDF Info Keywords entry.
	StyleMetadata EmbedStyle = "metadata"
	// StyleHiddenText draws the fingerprint as white 1pt text at the page
	// foot. Kept so older certificates remain issuable in the same form.
	StyleHiddenText EmbedStyle = "hidden-text"
)

const keywordPrefix = "land-fingerprint:"

// Party is the identity block printed for a seller or buyer.
type Party struct {
	Name     string
	Email    string
	Phone    string
	GovID    string
	WalletID string
}

// Document is the human-readable content of a certificate.
type Document struct {
	DocumentID  string
	Facts       Facts
	Seller      Party
	Buyer       Party
	AmountINR   decimal.Decimal
	PaymentType string
	CompletedAt time.Time
	// Capture times of the identity photos taken during verification.
	SellerVerifiedAt time.Time
	BuyerVerifiedAt  time.Time
}

// Codec renders certificates in one embed style.
type Codec struct {
	style  EmbedStyle
	issuer string
}

type Option func(*Codec)

func WithStyle(style EmbedStyle) Option {
	return func(c *Codec) {
		if style == StyleMetadata || style == StyleHiddenText {
			c.style = style
		}
	}
}

func WithIssuer(issuer string) Option {
	return func(c *Codec) {
		if issuer != "" {
			c.issuer = issuer
		}
	}
}

func NewCodec(opts ...Option) *Codec {
	c := &Codec{style: StyleMetadata, issuer: "Land Registry Office"}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Codec) Style() EmbedStyle {
	return c.style
}

// Embed renders doc as a PDF with fp hidden according to the codec's style.
// Output is deterministic for identical inputs.
func (c *Codec) Embed(doc Document, fp Fingerprint) ([]byte, error) {
	if len(fp) != 64 || !hexDigest.MatchString(string(fp)) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "fingerprint must be 64 hex characters")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(doc.CompletedAt)
	pdf.SetModificationDate(doc.CompletedAt)
	pdf.SetTitle("Land Ownership Transfer Certificate", false)
	pdf.SetAuthor(c.issuer, false)
	pdf.SetSubject("Certificate "+doc.DocumentID, false)
	pdf.SetCreator("landtitle", false)
	if c.style == StyleMetadata {
		pdf.SetKeywords(keywordPrefix+string(fp), false)
	}
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(false, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Land Ownership Transfer Certificate", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Issued by "+c.issuer, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Document ID: "+doc.DocumentID, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.Ln(1)
	}
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(45, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
	}
	party := func(title string, p Party) {
		section(title)
		row("Name:", p.Name)
		row("Email:", p.Email)
		row("Phone:", p.Phone)
		row("Government ID:", p.GovID)
		if p.WalletID != "" {
			row("Wallet:", p.WalletID)
		}
		pdf.Ln(3)
	}

	party("Seller", doc.Seller)
	party("Buyer", doc.Buyer)

	section("Land")
	row("Location:", doc.Facts.Location)
	row("Survey Number:", doc.Facts.SurveyNumber)
	row("Area:", doc.Facts.Area)
	pdf.Ln(3)

	section("Transaction")
	row("Transaction ID:", doc.Facts.TxID)
	row("Amount:", "INR "+doc.AmountINR.StringFixed(2))
	row("Payment Type:", doc.PaymentType)
	row("Date of Transfer:", doc.CompletedAt.UTC().Format("02 Jan 2006 15:04 MST"))
	if !doc.SellerVerifiedAt.IsZero() {
		row("Seller Verified:", doc.SellerVerifiedAt.UTC().Format(time.RFC3339))
	}
	if !doc.BuyerVerifiedAt.IsZero() {
		row("Buyer Verified:", doc.BuyerVerifiedAt.UTC().Format(time.RFC3339))
	}

	if c.style == StyleHiddenText {
		_, pageHeight := pdf.GetPageSize()
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "", 1)
		pdf.Text(20, pageHeight-5, string(fp))
		pdf.SetTextColor(0, 0, 0)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render certificate: %w", err)
	}
	return buf.Bytes(), nil
}
