package handlers

// sign_pass.go implements the POST /sign endpoint

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/eliteair/pass-signing-service/internal/boarding"
	"github.com/eliteair/pass-signing-service/internal/wallet"
)

// SignPassHandler handles POST /sign requests
type SignPassHandler struct {
	issuer *wallet.Issuer
}

// NewSignPassHandler creates a new handler for pass signing
func NewSignPassHandler(issuer *wallet.Issuer) *SignPassHandler {
	return &SignPassHandler{
		issuer: issuer,
	}
}

// HandleSignPass godoc
//
//	@Summary		Sign a boarding pass
//	@Description	Builds a wallet pass from the submitted flight details,
//	@Description	signs it with the configured certificate material and
//	@Description	returns the bundle as a binary attachment. All fields are
//	@Description	optional free text; blank values render as placeholders.
//	@Description	Signing either fully succeeds or fully fails - there is no
//	@Description	partial response.
//	@Tags			Passes
//	@Accept			json
//	@Produce		application/vnd.apple.pkpass
//	@Param			request	body		wallet.FlightDetails	true	"Flight and passenger details"
//	@Success		200		{file}		file					"Signed pass bundle"
//	@Failure		500		{object}	boarding.ErrorResponse	"Signing failed"
//	@Router			/sign [post]
func (h *SignPassHandler) HandleSignPass(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// An empty body is a valid request: every field is optional, so it signs
	// a pass rendered entirely from placeholders. Anything else that fails to
	// decode is treated as a signing failure.
	var details wallet.FlightDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil && !errors.Is(err, io.EOF) {
		boarding.RespondWithError(w, r, boarding.WrapInternalError(err, "Failed to sign pass"))
		return
	}
	defer r.Body.Close()

	bundle, err := h.issuer.Issue(ctx, details)
	if err != nil {
		boarding.RespondWithError(w, r, boarding.WrapInternalError(err, "Failed to sign pass"))
		return
	}

	boarding.RespondWithPassBundle(w, bundle)
}
