package common

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string) error
	GetResponseField(field string) (any, error)
	GetLastStatusCode() int
	ExpectStatus(status int) error
	Save(key, value string)
}

// RegisterSteps registers generic request and assertion steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^the registry is running$`, steps.registryIsRunning)
	ctx.Step(`^I GET "([^"]*)"$`, steps.get)
	ctx.Step(`^I POST to "([^"]*)" with an empty body$`, steps.postEmpty)

	ctx.Step(`^the response status should be (\d+)$`, steps.responseStatusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should equal "([^"]*)"$`, steps.responseFieldShouldEqual)
	ctx.Step(`^the error code should be "([^"]*)"$`, steps.errorCodeShouldBe)
	ctx.Step(`^I save the response field "([^"]*)" as "([^"]*)"$`, steps.saveResponseField)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) registryIsRunning(ctx context.Context) error {
	if err := s.tc.GET("/healthz"); err != nil {
		return err
	}
	return s.tc.ExpectStatus(200)
}

func (s *commonSteps) get(ctx context.Context, path string) error {
	return s.tc.GET(path)
}

func (s *commonSteps) postEmpty(ctx context.Context, path string) error {
	return s.tc.POST(path, map[string]any{})
}

func (s *commonSteps) responseStatusShouldBe(ctx context.Context, status int) error {
	return s.tc.ExpectStatus(status)
}

func (s *commonSteps) responseFieldShouldEqual(ctx context.Context, field, expected string) error {
	value, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if got := fmt.Sprint(value); got != expected {
		return fmt.Errorf("expected %s to be %q, got %q", field, expected, got)
	}
	return nil
}

func (s *commonSteps) errorCodeShouldBe(ctx context.Context, code string) error {
	return s.responseFieldShouldEqual(ctx, "error", code)
}

func (s *commonSteps) saveResponseField(ctx context.Context, field, key string) error {
	value, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	s.tc.Save(key, fmt.Sprint(value))
	return nil
}
