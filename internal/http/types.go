package http

import (
	"encoding/json"

	"zonewarden/internal/types"
)

// ValidateRequest is the request body for POST /validate: a document sent
// for pre-submission checking, with the name it would be registered under.
type ValidateRequest struct {
	Name     string          `json:"name" binding:"required"`
	Document json.RawMessage `json:"document" binding:"required"`
}

// DocumentResult is one document's validation outcome. Error is set when
// the document could not be parsed at all; Violations carry policy problems
// of a parseable document. Conformant means neither is present.
type DocumentResult struct {
	Name       string            `json:"name"`
	Conformant bool              `json:"conformant"`
	Violations []types.Violation `json:"violations,omitempty"`
	Error      string            `json:"error,omitempty"`
}
