package compliance

import (
	"context"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string) error
	Saved(name string) string
}

// RegisterSteps registers compliance evaluation and rebate steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &complianceSteps{tc: tc}

	ctx.Step(`^I evaluate compliance for the society$`, steps.evaluate)
	ctx.Step(`^I request the rebate for the society$`, steps.rebate)
}

type complianceSteps struct {
	tc TestContext
}

func (s *complianceSteps) evaluate(_ context.Context) error {
	return s.tc.POST("/compliance/evaluate", map[string]string{"society_id": s.tc.Saved("society_id")})
}

func (s *complianceSteps) rebate(_ context.Context) error {
	return s.tc.GET("/rebate/" + s.tc.Saved("society_id"))
}
