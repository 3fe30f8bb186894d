package boarding

// api_types.go defines the request and response envelopes for the
// pass-signing API. The sign endpoint's request body is
// wallet.FlightDetails, decoded directly by its handler.

// DefaultDocRequest is the body of POST /default-doc.
type DefaultDocRequest struct {
	// Code is the shared access code for default-document downloads.
	Code string `json:"code" example:"M600-CREW"`

	// Doc is the logical document kind: "poh" or "g3000"
	// (case-insensitive).
	Doc string `json:"doc" example:"poh"`
}

// DefaultDocResponse is the success body of POST /default-doc.
type DefaultDocResponse struct {
	// URL is a signed, read-scoped download URL valid for 15 minutes from
	// issuance.
	URL string `json:"url"`
}

// ErrorResponse is the JSON error envelope returned on any non-2xx response.
type ErrorResponse struct {
	Error string `json:"error" example:"Invalid access code."`
}
