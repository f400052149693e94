package e2e

import (
	"github.com/cucumber/godog"

	"greentax/e2e/steps/common"
	"greentax/e2e/steps/compliance"
	"greentax/e2e/steps/proof"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (authentication, status and field assertions)
	common.RegisterSteps(ctx, tc)

	// Register society and proof submission steps
	proof.RegisterSteps(ctx, tc)

	// Register compliance evaluation and rebate steps
	compliance.RegisterSteps(ctx, tc)
}
