package common

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	AuthenticateAs(role string) error
	Status() int
	Body() string
	Field(path string) (any, error)
}

// RegisterSteps registers authentication and generic assertion steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^I am authenticated as "([^"]*)"$`, steps.authenticateAs)
	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, steps.fieldShouldBeString)
	ctx.Step(`^the response field "([^"]*)" should be (-?\d+)$`, steps.fieldShouldBeNumber)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) authenticateAs(_ context.Context, role string) error {
	return s.tc.AuthenticateAs(role)
}

func (s *commonSteps) statusShouldBe(_ context.Context, want int) error {
	if got := s.tc.Status(); got != want {
		return fmt.Errorf("expected status %d, got %d: %s", want, got, s.tc.Body())
	}
	return nil
}

func (s *commonSteps) fieldShouldBeString(_ context.Context, path, want string) error {
	v, err := s.tc.Field(path)
	if err != nil {
		return err
	}
	if got, ok := v.(string); !ok || got != want {
		return fmt.Errorf("expected %s = %q, got %v", path, want, v)
	}
	return nil
}

func (s *commonSteps) fieldShouldBeNumber(_ context.Context, path, want string) error {
	v, err := s.tc.Field(path)
	if err != nil {
		return err
	}
	wantNum, err := strconv.ParseFloat(want, 64)
	if err != nil {
		return err
	}
	if got, ok := v.(float64); !ok || got != wantNum {
		return fmt.Errorf("expected %s = %s, got %v", path, want, v)
	}
	return nil
}
