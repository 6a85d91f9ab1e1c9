package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"zonewarden/internal/corpus"
	"zonewarden/internal/rules"
	"zonewarden/internal/types"
)

// ValidationHandler handles validation endpoints.
type ValidationHandler struct {
	runner *corpus.Runner
}

// NewValidationHandler creates a ValidationHandler over the given corpus
// runner.
func NewValidationHandler(runner *corpus.Runner) *ValidationHandler {
	return &ValidationHandler{runner: runner}
}

// ValidateDocument handles POST /validate: checks an ad-hoc document that
// is not (yet) part of the corpus. Parse failures and violations are data,
// not transport errors, so registrants get the same report the merge check
// would produce.
func (h *ValidationHandler) ValidateDocument(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, 400, err.Error())
		return
	}

	result := DocumentResult{Name: req.Name}
	doc, err := types.ParseDocument(req.Name, req.Document)
	if err != nil {
		result.Error = err.Error()
		OK(c, result)
		return
	}

	result.Violations = rules.Validate(doc)
	result.Conformant = len(result.Violations) == 0
	OK(c, result)
}

// ListDocuments handles GET /documents.
func (h *ValidationHandler) ListDocuments(c *gin.Context) {
	names, err := h.runner.Loader().List()
	if err != nil {
		Fail(c, 500, err.Error())
		return
	}
	OK(c, gin.H{"documents": names, "count": len(names)})
}

// GetDocument handles GET /documents/:name and returns the validation
// outcome for one corpus document.
func (h *ValidationHandler) GetDocument(c *gin.Context) {
	name := c.Param("name")

	result := DocumentResult{Name: name}
	violations, err := h.runner.Validate(name)
	if err != nil {
		if errors.Is(err, types.ErrDocumentNotFound) {
			Fail(c, 404, "document not found")
			return
		}
		result.Error = err.Error()
		OK(c, result)
		return
	}

	result.Violations = violations
	result.Conformant = len(violations) == 0
	OK(c, result)
}

// CheckCorpus handles POST /corpus/check: a full validation run over the
// corpus directory. The parse cache is reset first so file edits since the
// previous run are picked up.
func (h *ValidationHandler) CheckCorpus(c *gin.Context) {
	h.runner.Cache().Reset()
	report, err := h.runner.Run(c.Request.Context())
	if err != nil {
		Fail(c, 500, err.Error())
		return
	}
	OK(c, report)
}
