package routes

import (
	"context"
	"errors"
	"net/http"

	"corretor/middlewares"
	"corretor/models"
	"corretor/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Analyzer scores an essay. *services.AnalysisService implements it.
type Analyzer interface {
	Analyze(ctx context.Context, essay string) (services.Analysis, error)
}

// AnalyzeHandler serves the essay analysis endpoint.
type AnalyzeHandler struct {
	analyzer     Analyzer
	maxBodyBytes int64
	logger       *zap.Logger
}

// NewAnalyzeHandler creates an AnalyzeHandler.
func NewAnalyzeHandler(analyzer Analyzer, maxBodyBytes int64, logger *zap.Logger) *AnalyzeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyzeHandler{analyzer: analyzer, maxBodyBytes: maxBodyBytes, logger: logger}
}

// setCORSHeaders marks every answer of the endpoint as callable from any origin,
// whether or not the request carried an Origin header.
func setCORSHeaders(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
}

// Preflight answers OPTIONS with 200 and an empty body.
func (h *AnalyzeHandler) Preflight(c *gin.Context) {
	setCORSHeaders(c)
	c.Status(http.StatusOK)
}

// Analyze scores the essay in the request body
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	setCORSHeaders(c)

	if h.maxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}

	// A body that is missing or not JSON carries no usable essay;
	// validation below rejects it as too short.
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: models.MsgEssayTooLong})
			return
		}
		h.logger.Debug("invalid request payload", zap.Error(err))
		req = models.AnalyzeRequest{}
	}

	analysis, err := h.analyzer.Analyze(c.Request.Context(), req.Redacao)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AnalyzeResponse{Success: true, Data: analysis.Raw})
}

func (h *AnalyzeHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEssayTooShort):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: models.MsgEssayTooShort})
	case errors.Is(err, services.ErrProviderAuth):
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   models.MsgAuthError,
			Message: models.MsgAuthErrorDetail,
		})
	case errors.Is(err, services.ErrProviderRateLimited):
		c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
			Error:   models.MsgRateLimited,
			Message: models.MsgRateLimitedDetail,
		})
	default:
		h.logger.Error("analysis failed", zap.Error(err), zap.String("request_id", c.GetString(middlewares.RequestIDKey)))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   models.MsgInternalError,
			Message: models.MsgInternalErrorDetail,
		})
	}
}

// MethodNotAllowed answers any method a route does not register.
func MethodNotAllowed(c *gin.Context) {
	setCORSHeaders(c)
	c.JSON(http.StatusMethodNotAllowed, models.ErrorResponse{Error: models.MsgMethodNotAllowed})
}
