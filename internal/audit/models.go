package audit

import (
	"time"

	"greentax/pkg/domain"
)

// EventType names the domain action an audit event records.
type EventType string

const (
	EventProofSubmitted      EventType = "proof_submitted"
	EventProofReviewed       EventType = "proof_reviewed"
	EventComplianceEvaluated EventType = "compliance_evaluated"
	EventSocietyRegistered   EventType = "society_registered"
	EventSocietyDeactivated  EventType = "society_deactivated"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Type      EventType        `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	SocietyID domain.SocietyID `json:"society_id"`
	ProofID   *domain.ProofID  `json:"proof_id,omitempty"`
	ActorID   *domain.UserID   `json:"actor_id,omitempty"`
	// Status carries the proof status or compliance tier the action produced.
	Status    string `json:"status,omitempty"`
	Reason    string `json:"reason,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
