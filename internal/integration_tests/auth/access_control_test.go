package auth

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authhandler "landtitle/internal/auth/handler"
	authservice "landtitle/internal/auth/service"
	"landtitle/internal/auth/store/session"
	"landtitle/internal/auth/store/user"
	"landtitle/internal/certificate"
	jwttoken "landtitle/internal/jwt_token"
	"landtitle/internal/ledger"
	registryhandler "landtitle/internal/registry/handler"
	registryservice "landtitle/internal/registry/service"
	"landtitle/internal/registry/store"
	authmw "landtitle/pkg/platform/middleware/auth"
	"landtitle/pkg/platform/middleware/request"
	"landtitle/pkg/platform/middleware/requesttime"
	"landtitle/pkg/testutil"
)

const inviteCode = "field-office-7"

// newRouter wires the real auth stack in front of the registry routes.
func newRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := user.New()
	jwt := jwttoken.NewJWTService("integration-signing-key", "landtitle", "landtitle-api")
	auth := authservice.New(users, session.New(), jwt, authservice.Config{
		InspectorInviteCode: inviteCode,
		BcryptCost:          4,
	}, authservice.WithLogger(logger))
	registry, err := registryservice.New(store.NewInMemory(), users, ledger.NewDevLedger(ledger.WithTrustUnknown()),
		certificate.NewCodec(), registryservice.Config{}, registryservice.WithLogger(logger))
	require.NoError(t, err)

	requireAuth := authmw.RequireAuth(jwttoken.NewJWTServiceAdapter(jwt), auth, logger)
	r := chi.NewRouter()
	r.Use(request.RequestID, requesttime.Middleware)
	authhandler.New(auth, logger, requireAuth).Register(r)
	registryhandler.New(registry, logger, requireAuth).Register(r)
	return r
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

func signUp(t *testing.T, router http.Handler, body map[string]any) string {
	t.Helper()
	body["password"] = "correct-horse-battery"
	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/register", body))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return testutil.UnmarshalResponse[tokenResponse](t, rr).AccessToken
}

func TestRegistryAccessControl(t *testing.T) {
	router := newRouter(t)
	var sellerToken, inspectorToken, landID string

	testutil.Given(t, "a seller and an inspector with sessions", func(t *testing.T) {
		sellerToken = signUp(t, router, map[string]any{
			"name": "Asha Raman", "email": "asha@example.com",
			"wallet_address": "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		})
		inspectorToken = signUp(t, router, map[string]any{
			"name": "Meena Pillai", "email": "meena@example.com",
			"role": "inspector", "invite_code": inviteCode,
		})
	})

	testutil.When(t, "the seller registers a parcel", func(t *testing.T) {
		req := testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPost, "/lands", map[string]any{
			"location": "Chennai", "survey_number": "SN100", "area": "5000 sq ft", "price": "5000000",
		}), sellerToken)
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rr, http.StatusCreated)
		resp := testutil.UnmarshalResponse[map[string]any](t, rr)
		landID, _ = (*resp)["id"].(string)
		require.NotEmpty(t, landID)
	})

	testutil.Then(t, "only the inspector can verify it", func(t *testing.T) {
		body := map[string]any{"verdict": "approved"}

		rr := testutil.DoRequest(router, testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPost, "/lands/"+landID+"/verify", body), sellerToken))
		testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "forbidden")

		rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/lands/"+landID+"/verify", body))
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")

		rr = testutil.DoRequest(router, testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPost, "/lands/"+landID+"/verify", body), inspectorToken))
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "verification_status", "approved")
	})

	testutil.And(t, "anyone can browse the listing", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/lands/"+landID))
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "status", "listed")
	})

	testutil.When(t, "the seller logs out", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.WithBearer(testutil.NewRequest(t, http.MethodPost, "/auth/logout"), sellerToken))
		testutil.AssertStatus(t, rr, http.StatusNoContent)
	})

	testutil.Then(t, "the old token no longer opens protected routes", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, "/lands/mine"), sellerToken))
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})
}

func TestInspectorSignUpRequiresInviteCode(t *testing.T) {
	router := newRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/register", map[string]any{
		"name": "Mallory", "email": "mallory@example.com", "password": "correct-horse-battery",
		"role": "inspector", "invite_code": "guess",
	}))
	testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "forbidden")

	token := signUp(t, router, map[string]any{"name": "Vikram Iyer", "email": "vikram@example.com"})
	rr = testutil.DoRequest(router, testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, "/escrow/payments"), token))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
