package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"greentax/internal/platform/middleware"
	"greentax/internal/proof/imagestore"
	"greentax/internal/proof/models"
	"greentax/internal/proof/service"
	"greentax/pkg/domain"
	dErrors "greentax/pkg/domain-errors"
	"greentax/pkg/platform/httputil"
	"greentax/pkg/requestcontext"
)

// multipart framing on top of the image itself
const maxUploadBytes = imagestore.MaxImageBytes + 64<<10

// Service defines the proof operations the handler needs.
type Service interface {
	Submit(ctx context.Context, req service.SubmitRequest) (*service.SubmitResult, error)
	Get(ctx context.Context, id domain.ProofID) (*models.Proof, error)
	ListPending(ctx context.Context) ([]*models.Proof, error)
	Approve(ctx context.Context, id domain.ProofID, reviewer domain.UserID) (*models.Proof, error)
	Reject(ctx context.Context, id domain.ProofID, reviewer domain.UserID, reason string) (*models.Proof, error)
}

// Handler wires proof endpoints to the proof service.
type Handler struct {
	service Service
	logger  *slog.Logger
	guard   middleware.RoleGuard
}

func New(service Service, logger *slog.Logger, guard middleware.RoleGuard) *Handler {
	return &Handler{service: service, logger: logger, guard: guard}
}

// Register mounts proof endpoints on an authenticated router.
func (h *Handler) Register(r chi.Router) {
	r.With(h.guard(domain.RoleSecretary)).Post("/proofs", h.HandleSubmit)
	r.Get("/proofs/{proofID}", h.HandleGet)

	r.Route("/admin/proofs", func(r chi.Router) {
		r.Use(h.guard(domain.RoleAdmin))
		r.Get("/pending", h.HandlePending)
		r.Post("/{proofID}/approve", h.HandleApprove)
		r.Post("/{proofID}/reject", h.HandleReject)
	})
}

// HandleSubmit handles POST /proofs (multipart/form-data).
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "image exceeds the 5 MiB limit"))
			return
		}
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "expected a multipart/form-data body"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	societyID, coord, err := SubmitForm{
		SocietyID:   r.FormValue("society_id"),
		GeoLocation: r.FormValue("geo_location"),
		Lat:         r.FormValue("lat"),
		Lng:         r.FormValue("lng"),
	}.Parse()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "image file is required"))
		return
	}
	defer file.Close()
	image, err := io.ReadAll(file)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "failed to read image"))
		return
	}

	req := service.SubmitRequest{
		SocietyID:  societyID,
		Coordinate: coord,
		Image:      image,
		FileName:   header.Filename,
	}
	if actor := requestcontext.UserID(ctx); !actor.IsNil() {
		req.SubmittedBy = &actor
	}

	result, err := h.service.Submit(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "proof submission failed",
			"request_id", requestID,
			"society_id", societyID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, SubmitResponse{
		Proof:      FromProof(result.Proof),
		Validation: FromVerdict(result.Verdict),
	})
}

// HandleGet handles GET /proofs/{proofID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	proofID, err := domain.ParseProofID(chi.URLParam(r, "proofID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	proof, err := h.service.Get(r.Context(), proofID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromProof(proof))
}

// HandlePending handles GET /admin/proofs/pending.
func (h *Handler) HandlePending(w http.ResponseWriter, r *http.Request) {
	proofs, err := h.service.ListPending(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, PendingResponse{Proofs: FromProofs(proofs), Count: len(proofs)})
}

// HandleApprove handles POST /admin/proofs/{proofID}/approve.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	proofID, err := domain.ParseProofID(chi.URLParam(r, "proofID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	proof, err := h.service.Approve(ctx, proofID, requestcontext.UserID(ctx))
	if err != nil {
		h.logReviewFailure(ctx, proofID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromProof(proof))
}

// HandleReject handles POST /admin/proofs/{proofID}/reject.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	proofID, err := domain.ParseProofID(chi.URLParam(r, "proofID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[RejectRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	proof, err := h.service.Reject(ctx, proofID, requestcontext.UserID(ctx), req.Reason)
	if err != nil {
		h.logReviewFailure(ctx, proofID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromProof(proof))
}

func (h *Handler) logReviewFailure(ctx context.Context, proofID domain.ProofID, err error) {
	h.logger.WarnContext(ctx, "proof review failed",
		"request_id", requestcontext.RequestID(ctx),
		"proof_id", proofID,
		"error", err,
	)
}
