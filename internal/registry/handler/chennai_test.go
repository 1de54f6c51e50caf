package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authmodels "landtitle/internal/auth/models"
	"landtitle/internal/auth/store/user"
	"landtitle/internal/certificate"
	"landtitle/internal/ledger"
	"landtitle/internal/registry/handler"
	"landtitle/internal/registry/service"
	"landtitle/internal/registry/store"
	id "landtitle/pkg/domain"
	"landtitle/pkg/requestcontext"
	"landtitle/pkg/testutil"
)

const (
	custodian  = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	sellerAddr = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
	buyerAddr  = "0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB"
	payoutAddr = "0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb"
	paymentTx  = "0x00000000000000000000000000000000000000000000000000000000000000a1"
	releaseTx  = "0x00000000000000000000000000000000000000000000000000000000000000a2"
	photo      = "data:image/jpeg;base64,/9j/4AAQSkZJRgABAQ=="
)

type api struct {
	t      *testing.T
	router http.Handler
	tokens map[string]id.Principal
}

func (a *api) call(token, method, path string, body any, out any) int {
	a.t.Helper()
	req := testutil.NewJSONRequest(a.t, method, path, body)
	if token != "" {
		req = testutil.WithBearer(req, token)
	}
	return a.send(req, out)
}

func (a *api) send(req *http.Request, out any) int {
	a.t.Helper()
	rr := testutil.DoRequest(a.router, req)
	if out != nil && rr.Code < 300 {
		if b, ok := out.(*[]byte); ok {
			*b = testutil.ReadBody(a.t, rr)
		} else {
			require.NoError(a.t, json.Unmarshal(testutil.ReadBody(a.t, rr), out))
		}
	}
	return rr.Code
}

func (a *api) listForSale(token, landID string, document []byte, price string) int {
	a.t.Helper()
	req := testutil.NewUploadRequest(a.t, "/lands/"+landID+"/list-for-sale", "document", "certificate.pdf", document,
		map[string]string{"price": price})
	return a.send(testutil.WithBearer(req, token), nil)
}

// TestChennaiScenarioOverHTTP registers a parcel in Chennai, sells it through
// escrow, approves the transfer and re-lists it with the issued certificate.
func TestChennaiScenarioOverHTTP(t *testing.T) {
	ctx := context.Background()
	users := user.New()
	dev := ledger.NewDevLedger()
	conv, err := ledger.NewConverter("250000")
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc, err := service.New(store.NewInMemory(), users, dev, certificate.NewCodec(), service.Config{
		CustodianAddress: custodian,
		Converter:        conv,
		LedgerTimeout:    time.Second,
	}, service.WithLogger(logger))
	require.NoError(t, err)

	a := &api{t: t, tokens: map[string]id.Principal{}}
	addUser := func(token, name string, role id.Role, wallet string) {
		u := &authmodels.User{
			ID: id.NewUserID(), Name: name, Email: token + "@example.com", PasswordHash: "hash",
			Role: role, WalletAddress: wallet, GovID: "ABCDE1234F", Phone: "+91 98400 00001",
		}
		require.NoError(t, users.Create(ctx, u))
		a.tokens[token] = id.Principal{UserID: u.ID, SessionID: id.NewSessionID(), Role: role}
	}
	addUser("seller", "Asha Raman", id.RoleUser, sellerAddr)
	addUser("buyer", "Vikram Iyer", id.RoleUser, buyerAddr)
	addUser("inspector", "Meena Pillai", id.RoleInspector, "")

	bearer := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := a.tokens[strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")]
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(requestcontext.WithPrincipal(r.Context(), p)))
		})
	}
	router := chi.NewRouter()
	handler.New(svc, logger, bearer).Register(router)
	a.router = router

	var land handler.LandResponse
	require.Equal(t, http.StatusCreated, a.call("seller", http.MethodPost, "/lands", map[string]any{
		"location": "Chennai", "survey_number": "SN100", "area": "5000 sq ft", "price": "5000000",
	}, &land))
	landPath := "/lands/" + land.ID.String()
	require.Equal(t, http.StatusOK, a.call("inspector", http.MethodPost, landPath+"/verify", map[string]any{"verdict": "approved"}, nil))

	var br handler.BuyRequestResponse
	require.Equal(t, http.StatusCreated, a.call("buyer", http.MethodPost, landPath+"/buy-requests", nil, &br))
	require.Equal(t, http.StatusOK, a.call("inspector", http.MethodPost, "/buy-requests/"+br.ID.String()+"/review", map[string]any{"decision": "approved"}, nil))

	dev.Put(ledger.Transaction{Hash: paymentTx, Status: ledger.TxConfirmed, From: buyerAddr, To: custodian, Value: new(big.Int).Mul(big.NewInt(20), big.NewInt(1e18))})
	var payment handler.PaymentResponse
	require.Equal(t, http.StatusCreated, a.call("buyer", http.MethodPost, "/payments", map[string]any{
		"buy_request_id": br.ID, "tx_id": paymentTx, "amount": "5000000", "type": "escrow",
	}, &payment))
	assert.Equal(t, "inEscrow", payment.Status)

	var review handler.EscrowReviewResponse
	require.Equal(t, http.StatusOK, a.call("inspector", http.MethodGet, "/escrow/payments/"+payment.ID.String()+"/review", nil, &review))
	assert.Equal(t, "20", review.AmountEther)
	assert.Equal(t, sellerAddr, review.Seller.WalletAddress)

	var workflow handler.WorkflowResponse
	require.Equal(t, http.StatusCreated, a.call("seller", http.MethodPost, "/transfers", map[string]any{
		"land_id": land.ID, "payment_id": payment.ID,
	}, &workflow))
	wfPath := "/transfers/" + workflow.ID.String()
	for i, role := range []string{"seller", "buyer"} {
		require.Equal(t, http.StatusOK, a.call("inspector", http.MethodPost, wfPath+"/photos", map[string]any{
			"role": role, "image": photo, "captured_at": time.Date(2026, 3, 14, 10, i, 0, 0, time.UTC),
		}, &workflow))
	}
	assert.Equal(t, "awaitingDecision", workflow.State)

	assert.Equal(t, http.StatusConflict, a.call("inspector", http.MethodPost, wfPath+"/decision", map[string]any{"decision": "approved"}, nil),
		"approval before release")

	assert.Equal(t, http.StatusBadRequest, a.call("inspector", http.MethodPost, "/escrow/payments/"+payment.ID.String()+"/release", map[string]any{
		"destination": strings.ToLower(payoutAddr[:41]) + "B", "confirmed": true, "release_tx_id": releaseTx,
	}, nil), "bad checksum")
	assert.Equal(t, http.StatusBadGateway, a.call("inspector", http.MethodPost, "/escrow/payments/"+payment.ID.String()+"/release", map[string]any{
		"destination": payoutAddr, "confirmed": true, "release_tx_id": releaseTx,
	}, nil), "release tx not yet on the ledger")
	dev.Put(ledger.Transaction{Hash: releaseTx, Status: ledger.TxPending, From: custodian, To: payoutAddr})
	require.Equal(t, http.StatusOK, a.call("inspector", http.MethodPost, "/escrow/payments/"+payment.ID.String()+"/release", map[string]any{
		"destination": payoutAddr, "confirmed": true, "release_tx_id": releaseTx,
	}, &payment))
	assert.Equal(t, "releasedToSeller", payment.Status)

	var decision handler.DecisionResponse
	require.Equal(t, http.StatusOK, a.call("inspector", http.MethodPost, wfPath+"/decision", map[string]any{"decision": "approved"}, &decision))
	require.NotNil(t, decision.TransferRecord)

	var owned []handler.LandResponse
	require.Equal(t, http.StatusOK, a.call("buyer", http.MethodGet, "/lands/mine", nil, &owned))
	require.Len(t, owned, 1)
	assert.Equal(t, "transferred", owned[0].Status)

	var pdf []byte
	require.Equal(t, http.StatusOK, a.call("buyer", http.MethodGet, "/transfer-records/"+decision.TransferRecord.ID.String()+"/certificate", nil, &pdf))
	require.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	forged := bytes.ReplaceAll(pdf, []byte(decision.TransferRecord.Fingerprint), []byte(strings.Repeat("0", 64)))
	require.NotEqual(t, pdf, forged)
	assert.Equal(t, http.StatusUnprocessableEntity, a.listForSale("buyer", land.ID.String(), forged, "6000000"))
	assert.Equal(t, http.StatusUnprocessableEntity, a.listForSale("buyer", land.ID.String(), []byte("scanned photo"), "6000000"))
	assert.Equal(t, http.StatusForbidden, a.listForSale("seller", land.ID.String(), pdf, "6000000"))
	require.Equal(t, http.StatusOK, a.listForSale("buyer", land.ID.String(), pdf, "6000000"))

	var available []handler.LandResponse
	require.Equal(t, http.StatusOK, a.call("", http.MethodGet, "/lands", nil, &available))
	require.Len(t, available, 1)
	assert.Equal(t, "6000000", available[0].Price.String())

	var history []handler.TransferRecordResponse
	require.Equal(t, http.StatusOK, a.call("buyer", http.MethodGet, landPath+"/transfers", nil, &history))
	require.Len(t, history, 1)
	assert.Equal(t, fmt.Sprint(decision.TransferRecord.ID), fmt.Sprint(history[0].ID))
}
