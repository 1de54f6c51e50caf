package auth

import (
	"context"
	"fmt"
	"os"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string) error
	GetResponseField(field string) (any, error)
	ExpectStatus(status int) error
	GetRunID() string
	SetToken(alias, token string)
	ActAs(alias string) error
	Save(key, value string)
}

const password = "correct-horse-battery"

// RegisterSteps registers account and session step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &authSteps{tc: tc}

	// Account steps
	ctx.Step(`^a registered user "([^"]*)" with wallet "([^"]*)"$`, steps.registeredUserWithWallet)
	ctx.Step(`^a registered inspector "([^"]*)"$`, steps.registeredInspector)
	ctx.Step(`^I register as an inspector "([^"]*)" with invite code "([^"]*)"$`, steps.registerInspectorWithCode)

	// Session steps
	ctx.Step(`^I am "([^"]*)"$`, steps.actAs)
	ctx.Step(`^I log in as "([^"]*)"$`, steps.logIn)
	ctx.Step(`^I log out$`, steps.logOut)
}

type authSteps struct {
	tc TestContext
}

func (s *authSteps) email(alias string) string {
	return fmt.Sprintf("%s+%s@landtitle.test", alias, s.tc.GetRunID())
}

func (s *authSteps) register(alias string, body map[string]any) error {
	body["name"] = alias
	body["email"] = s.email(alias)
	body["password"] = password
	if err := s.tc.POST("/auth/register", body); err != nil {
		return err
	}
	if err := s.tc.ExpectStatus(201); err != nil {
		return err
	}
	return s.rememberSession(alias)
}

func (s *authSteps) rememberSession(alias string) error {
	token, err := s.tc.GetResponseField("access_token")
	if err != nil {
		return err
	}
	userID, err := s.tc.GetResponseField("user.id")
	if err != nil {
		return err
	}
	s.tc.SetToken(alias, fmt.Sprint(token))
	s.tc.Save(alias+"_id", fmt.Sprint(userID))
	return s.tc.ActAs(alias)
}

func (s *authSteps) registeredUserWithWallet(ctx context.Context, alias, wallet string) error {
	return s.register(alias, map[string]any{
		"wallet_address": wallet,
		"gov_id":         "ABCDE1234F",
		"phone":          "+91 98400 00000",
	})
}

func (s *authSteps) registeredInspector(ctx context.Context, alias string) error {
	code := os.Getenv("E2E_INSPECTOR_INVITE_CODE")
	if code == "" {
		return godog.ErrSkip
	}
	return s.register(alias, map[string]any{"role": "inspector", "invite_code": code})
}

func (s *authSteps) registerInspectorWithCode(ctx context.Context, alias, code string) error {
	return s.tc.POST("/auth/register", map[string]any{
		"name":        alias,
		"email":       s.email(alias),
		"password":    password,
		"role":        "inspector",
		"invite_code": code,
	})
}

func (s *authSteps) actAs(ctx context.Context, alias string) error {
	return s.tc.ActAs(alias)
}

func (s *authSteps) logIn(ctx context.Context, alias string) error {
	if err := s.tc.POST("/auth/login", map[string]any{"email": s.email(alias), "password": password}); err != nil {
		return err
	}
	if err := s.tc.ExpectStatus(200); err != nil {
		return err
	}
	return s.rememberSession(alias)
}

func (s *authSteps) logOut(ctx context.Context) error {
	return s.tc.POST("/auth/logout", nil)
}
