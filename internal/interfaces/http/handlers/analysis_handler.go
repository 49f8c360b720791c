package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/bgc-scaffold/internal/application/analysis"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/bgc-scaffold/pkg/errors"
	dto "github.com/turtacn/bgc-scaffold/pkg/types/analysis"
	"github.com/turtacn/bgc-scaffold/pkg/types/ledger"
)

// AnalyzeRequest is the body of POST /api/v1/analyses.
type AnalyzeRequest struct {
	Ledger   *ledger.Ledger `json:"ledger"`
	Limits   dto.Limits     `json:"limits"`
	Outcomes bool           `json:"outcomes"`
	Refresh  bool           `json:"refresh"`
}

// AnalysisHandler exposes the assembly engine.
type AnalysisHandler struct {
	svc    analysis.Service
	logger logging.Logger
}

// NewAnalysisHandler creates an AnalysisHandler.
func NewAnalysisHandler(svc analysis.Service, logger logging.Logger) *AnalysisHandler {
	return &AnalysisHandler{svc: svc, logger: logging.OrNop(logger).Named("handler")}
}

// Analyze handles POST /api/v1/analyses.  Unknown fields anywhere in the
// body are rejected, as they are for ledger files.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.logger.Debug("analysis request rejected", logging.Err(err))
		var mbe *http.MaxBytesError
		switch {
		case stderrors.As(err, &mbe):
			writeAppError(c, err)
		case stderrors.Is(err, io.EOF):
			writeAppError(c, errors.New(errors.ErrCodeBadRequest, "request body is empty"))
		default:
			writeAppError(c, errors.Wrap(err, errors.ErrCodeLedgerInvalid, "malformed request body"))
		}
		return
	}

	res, err := h.svc.Analyze(c.Request.Context(), &analysis.AnalyzeInput{
		Ledger:   req.Ledger,
		Limits:   req.Limits,
		Outcomes: req.Outcomes,
		Refresh:  req.Refresh,
	})
	if err != nil {
		writeAppError(c, err)
		return
	}
	writeData(c, http.StatusOK, res)
}

// Registry handles GET /api/v1/registry.
func (h *AnalysisHandler) Registry(c *gin.Context) {
	writeData(c, http.StatusOK, h.svc.Registry())
}

// Substrates handles GET /api/v1/substrates.
func (h *AnalysisHandler) Substrates(c *gin.Context) {
	writeData(c, http.StatusOK, h.svc.Substrates())
}

// LimitsResponse is the body of GET /api/v1/limits.
type LimitsResponse struct {
	Window          int `json:"window"`
	MaxPermutations int `json:"max_permutations"`
	MaxCyclizations int `json:"max_cyclizations"`
	MaxPlans        int `json:"max_plans"`
	MaxScaffolds    int `json:"max_scaffolds"`
}

// Limits handles GET /api/v1/limits and reports the caps currently in
// effect, which change on config reload.
func (h *AnalysisHandler) Limits(c *gin.Context) {
	l := h.svc.Limits()
	writeData(c, http.StatusOK, LimitsResponse{
		Window:          l.Window,
		MaxPermutations: l.MaxPermutations,
		MaxCyclizations: l.MaxCyclizations,
		MaxPlans:        l.MaxPlans,
		MaxScaffolds:    l.MaxScaffolds,
	})
}

//Personal.AI order the ending
