package e2e

import (
	"github.com/cucumber/godog"

	"landtitle/e2e/steps/auth"
	"landtitle/e2e/steps/common"
	"landtitle/e2e/steps/registry"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (health, generic requests, assertions)
	common.RegisterSteps(ctx, tc)

	// Register account and session steps
	auth.RegisterSteps(ctx, tc)

	// Register land, purchase, escrow and transfer steps
	registry.RegisterSteps(ctx, tc)
}
