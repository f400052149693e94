package proof

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	Upload(path string, fields map[string]string, fileName string, content []byte) error
	Status() int
	Body() string
	Field(path string) (any, error)
	Save(name, value string)
	Saved(name string) string
}

// RegisterSteps registers society setup and proof submission steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &proofSteps{tc: tc}

	ctx.Step(`^a registered society in ward "([^"]*)" at (-?[\d.]+), (-?[\d.]+)$`, steps.registerSociety)
	ctx.Step(`^I submit a proof at (-?[\d.]+), (-?[\d.]+)$`, steps.submitProof)
	ctx.Step(`^I submit the same photo again$`, steps.submitSamePhoto)
	ctx.Step(`^I approve the last proof$`, steps.approveLastProof)
	ctx.Step(`^the response field "([^"]*)" should be the first proof$`, steps.fieldShouldBeFirstProof)
}

type proofSteps struct {
	tc TestContext

	photo []byte
	lat   string
	lng   string
}

func (s *proofSteps) registerSociety(_ context.Context, ward, lat, lng string) error {
	latF, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return err
	}
	lngF, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return err
	}
	if err := s.tc.POST("/societies", map[string]any{
		"name":        "E2E Society " + uuid.NewString()[:8],
		"ward":        ward,
		"location":    map[string]float64{"lat": latF, "lng": lngF},
		"tax_number":  "E2E-" + uuid.NewString(),
		"total_units": 24,
	}); err != nil {
		return err
	}
	if s.tc.Status() != 201 {
		return fmt.Errorf("register society: status %d: %s", s.tc.Status(), s.tc.Body())
	}
	id, err := s.tc.Field("id")
	if err != nil {
		return err
	}
	s.tc.Save("society_id", fmt.Sprint(id))
	return nil
}

func (s *proofSteps) submitProof(_ context.Context, lat, lng string) error {
	// unique bytes per submission so only deliberate repeats are duplicates
	s.photo = []byte("\xff\xd8\xff\xe0e2e-photo-" + uuid.NewString())
	s.lat, s.lng = lat, lng
	return s.upload()
}

func (s *proofSteps) submitSamePhoto(_ context.Context) error {
	if s.photo == nil {
		return fmt.Errorf("no photo submitted yet")
	}
	return s.upload()
}

func (s *proofSteps) upload() error {
	err := s.tc.Upload("/proofs", map[string]string{
		"society_id": s.tc.Saved("society_id"),
		"lat":        s.lat,
		"lng":        s.lng,
	}, "proof.jpg", s.photo)
	if err != nil {
		return err
	}
	if s.tc.Status() != 201 {
		return nil
	}
	id, err := s.tc.Field("proof.id")
	if err != nil {
		return err
	}
	if s.tc.Saved("first_proof_id") == "" {
		s.tc.Save("first_proof_id", fmt.Sprint(id))
	}
	s.tc.Save("last_proof_id", fmt.Sprint(id))
	return nil
}

func (s *proofSteps) approveLastProof(_ context.Context) error {
	return s.tc.POST("/admin/proofs/"+s.tc.Saved("last_proof_id")+"/approve", nil)
}

func (s *proofSteps) fieldShouldBeFirstProof(_ context.Context, path string) error {
	v, err := s.tc.Field(path)
	if err != nil {
		return err
	}
	if got := fmt.Sprint(v); got != s.tc.Saved("first_proof_id") {
		return fmt.Errorf("expected %s = %s, got %s", path, s.tc.Saved("first_proof_id"), got)
	}
	return nil
}
