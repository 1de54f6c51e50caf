package registry

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string) error
	Upload(path, field, filename string, data []byte, fields map[string]string) error
	GetResponseField(field string) (any, error)
	GetLastResponseBody() []byte
	ExpectStatus(status int) error
	GetRunID() string
	RandomTxID() string
	Save(key, value string)
	Saved(key string) (string, error)
	SaveFile(key string, data []byte)
	File(key string) ([]byte, error)
}

const photo = "data:image/jpeg;base64,/9j/4AAQSkZJRgABAQ=="

// RegisterSteps registers land, purchase, escrow and transfer step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &registrySteps{tc: tc}

	// Land steps
	ctx.Step(`^I register land in "([^"]*)" with survey number "([^"]*)" and area "([^"]*)" priced at "([^"]*)"$`, steps.registerLand)
	ctx.Step(`^I (approve|reject) the land verification$`, steps.verifyLand)
	ctx.Step(`^the land status should be "([^"]*)"$`, steps.landStatusShouldBe)

	// Purchase and escrow steps
	ctx.Step(`^I request to buy the land$`, steps.requestToBuy)
	ctx.Step(`^I (approve|reject) the buy request$`, steps.reviewBuyRequest)
	ctx.Step(`^I pay "([^"]*)" INR by (escrow|direct) transfer$`, steps.pay)
	ctx.Step(`^I release the escrow to "([^"]*)"$`, steps.releaseEscrow)
	ctx.Step(`^I release the escrow to "([^"]*)" without confirming$`, steps.releaseEscrowUnconfirmed)

	// Transfer steps
	ctx.Step(`^I request the transfer$`, steps.requestTransfer)
	ctx.Step(`^I capture the (seller|buyer) photo$`, steps.capturePhoto)
	ctx.Step(`^I (approve|reject) the transfer$`, steps.decideTransfer)
	ctx.Step(`^I download the certificate$`, steps.downloadCertificate)
	ctx.Step(`^I list the land for sale at "([^"]*)" with the certificate$`, steps.listWithCertificate)
	ctx.Step(`^I list the land for sale at "([^"]*)" with a tampered certificate$`, steps.listWithTamperedCertificate)
}

type registrySteps struct {
	tc TestContext
}

func (s *registrySteps) saveField(field, key string) error {
	v, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	s.tc.Save(key, fmt.Sprint(v))
	return nil
}

func (s *registrySteps) registerLand(ctx context.Context, location, surveyNumber, area, price string) error {
	err := s.tc.POST("/lands", map[string]any{
		"location":      location,
		"survey_number": surveyNumber + "-" + s.tc.GetRunID(),
		"area":          area,
		"price":         price,
	})
	if err != nil {
		return err
	}
	if err := s.tc.ExpectStatus(201); err != nil {
		return err
	}
	return s.saveField("id", "land")
}

func (s *registrySteps) verifyLand(ctx context.Context, verdict string) error {
	verdict = map[string]string{"approve": "approved", "reject": "rejected"}[verdict]
	return s.tc.POST("/lands/{land}/verify", map[string]any{"verdict": verdict})
}

func (s *registrySteps) landStatusShouldBe(ctx context.Context, status string) error {
	if err := s.tc.GET("/lands/{land}"); err != nil {
		return err
	}
	got, err := s.tc.GetResponseField("status")
	if err != nil {
		return err
	}
	if got != status {
		return fmt.Errorf("expected land status %q, got %q", status, got)
	}
	return nil
}

func (s *registrySteps) requestToBuy(ctx context.Context) error {
	if err := s.tc.POST("/lands/{land}/buy-requests", nil); err != nil {
		return err
	}
	if err := s.tc.ExpectStatus(201); err != nil {
		return err
	}
	return s.saveField("id", "buy_request")
}

func (s *registrySteps) reviewBuyRequest(ctx context.Context, decision string) error {
	decision = map[string]string{"approve": "approved", "reject": "rejected"}[decision]
	return s.tc.POST("/buy-requests/{buy_request}/review", map[string]any{"decision": decision})
}

func (s *registrySteps) pay(ctx context.Context, amount, paymentType string) error {
	buyRequest, err := s.tc.Saved("buy_request")
	if err != nil {
		return err
	}
	err = s.tc.POST("/payments", map[string]any{
		"buy_request_id": buyRequest,
		"tx_id":          s.tc.RandomTxID(),
		"amount":         amount,
		"type":           paymentType,
	})
	if err != nil {
		return err
	}
	if err := s.tc.ExpectStatus(201); err != nil {
		return err
	}
	return s.saveField("id", "payment")
}

func (s *registrySteps) release(destination string, confirmed bool) error {
	return s.tc.POST("/escrow/payments/{payment}/release", map[string]any{
		"destination":   destination,
		"confirmed":     confirmed,
		"release_tx_id": s.tc.RandomTxID(),
	})
}

func (s *registrySteps) releaseEscrow(ctx context.Context, destination string) error {
	return s.release(destination, true)
}

func (s *registrySteps) releaseEscrowUnconfirmed(ctx context.Context, destination string) error {
	return s.release(destination, false)
}

func (s *registrySteps) requestTransfer(ctx context.Context) error {
	land, err := s.tc.Saved("land")
	if err != nil {
		return err
	}
	payment, err := s.tc.Saved("payment")
	if err != nil {
		return err
	}
	if err := s.tc.POST("/transfers", map[string]any{"land_id": land, "payment_id": payment}); err != nil {
		return err
	}
	if err := s.tc.ExpectStatus(201); err != nil {
		return err
	}
	return s.saveField("id", "workflow")
}

func (s *registrySteps) capturePhoto(ctx context.Context, role string) error {
	return s.tc.POST("/transfers/{workflow}/photos", map[string]any{
		"role":        role,
		"image":       photo,
		"captured_at": time.Now().UTC(),
	})
}

func (s *registrySteps) decideTransfer(ctx context.Context, decision string) error {
	decision = map[string]string{"approve": "approved", "reject": "rejected"}[decision]
	if err := s.tc.POST("/transfers/{workflow}/decision", map[string]any{"decision": decision}); err != nil {
		return err
	}
	if decision != "approved" {
		return nil
	}
	if err := s.tc.ExpectStatus(200); err != nil {
		return err
	}
	if err := s.saveField("transfer_record.id", "transfer_record"); err != nil {
		return err
	}
	return s.saveField("transfer_record.fingerprint", "fingerprint")
}

func (s *registrySteps) downloadCertificate(ctx context.Context) error {
	if err := s.tc.GET("/transfer-records/{transfer_record}/certificate"); err != nil {
		return err
	}
	if err := s.tc.ExpectStatus(200); err != nil {
		return err
	}
	body := s.tc.GetLastResponseBody()
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		return fmt.Errorf("certificate is not a PDF")
	}
	s.tc.SaveFile("certificate", body)
	return nil
}

func (s *registrySteps) listWithCertificate(ctx context.Context, price string) error {
	doc, err := s.tc.File("certificate")
	if err != nil {
		return err
	}
	return s.tc.Upload("/lands/{land}/list-for-sale", "document", "certificate.pdf", doc, map[string]string{"price": price})
}

func (s *registrySteps) listWithTamperedCertificate(ctx context.Context, price string) error {
	doc, err := s.tc.File("certificate")
	if err != nil {
		return err
	}
	fp, err := s.tc.Saved("fingerprint")
	if err != nil {
		return err
	}
	forged := bytes.ReplaceAll(doc, []byte(fp), []byte(strings.Repeat("0", len(fp))))
	return s.tc.Upload("/lands/{land}/list-for-sale", "document", "certificate.pdf", forged, map[string]string{"price": price})
}
