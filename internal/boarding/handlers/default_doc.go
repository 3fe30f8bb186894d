package handlers

// default_doc.go implements the POST /default-doc endpoint

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eliteair/pass-signing-service/internal/boarding"
	"github.com/eliteair/pass-signing-service/internal/documents"
)

// DefaultDocHandler handles POST /default-doc requests
type DefaultDocHandler struct {
	gate *documents.Gate
}

// NewDefaultDocHandler creates a new handler for default-document downloads
func NewDefaultDocHandler(gate *documents.Gate) *DefaultDocHandler {
	return &DefaultDocHandler{
		gate: gate,
	}
}

// HandleDefaultDoc godoc
//
//	@Summary		Get a default-document download URL
//	@Description	Validates the shared access code and returns a signed,
//	@Description	read-scoped download URL for the requested default document.
//	@Description	The URL expires 15 minutes after issuance; possession of the
//	@Description	URL is the only access control after that point.
//	@Tags			Documents
//	@Accept			json
//	@Produce		json
//	@Param			request	body		boarding.DefaultDocRequest	true	"Access code and document kind"
//	@Success		200		{object}	boarding.DefaultDocResponse	"Signed download URL"
//	@Failure		400		{object}	boarding.ErrorResponse		"Missing input or unknown document kind"
//	@Failure		403		{object}	boarding.ErrorResponse		"Invalid access code"
//	@Failure		404		{object}	boarding.ErrorResponse		"Document not found"
//	@Failure		500		{object}	boarding.ErrorResponse		"Internal error"
//	@Router			/default-doc [post]
func (h *DefaultDocHandler) HandleDefaultDoc(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req boarding.DefaultDocRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		boarding.RespondWithError(w, r, boarding.WrapBadRequestError(err, "Missing code or doc."))
		return
	}
	defer r.Body.Close()

	url, err := h.gate.SignedDownloadURL(ctx, req.Code, req.Doc)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrMissingInput):
			boarding.RespondWithError(w, r, boarding.NewBadRequestError("Missing code or doc."))
		case errors.Is(err, documents.ErrInvalidCode):
			boarding.RespondWithError(w, r, boarding.NewUnauthorizedError("Invalid access code."))
		case errors.Is(err, documents.ErrUnknownDocument):
			boarding.RespondWithError(w, r, boarding.NewBadRequestError("Unknown document."))
		case errors.Is(err, documents.ErrDocumentNotFound):
			boarding.RespondWithError(w, r, boarding.NewNotFoundError("Document not found."))
		default:
			// store outage, malformed configuration - never leak internals
			boarding.RespondWithError(w, r, boarding.WrapInternalError(err, "Failed to fetch document."))
		}
		return
	}

	boarding.RespondWithJSONPayload(w, http.StatusOK, boarding.DefaultDocResponse{URL: url})
}
