package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerlens/careerlens/internal/services"
	"github.com/careerlens/careerlens/internal/utils"
)

type AnalysisHandler struct {
	store       services.AnalysisStore
	submissions services.SubmissionService
}

func NewAnalysisHandler(store services.AnalysisStore, submissions services.SubmissionService) *AnalysisHandler {
	return &AnalysisHandler{store: store, submissions: submissions}
}

func (h *AnalysisHandler) Latest(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	row, err := h.store.GetLatest(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

type RetryAnalysisRequest struct {
	ProfileID string `json:"profile_id"`
}

// Retry re-runs only the analysis stage for a saved profile, using the retry
// token handed out by a partial submission result.
func (h *AnalysisHandler) Retry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req RetryAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AnalysisHandler.Retry", "invalid request body", err))
		return
	}

	row, err := h.submissions.RetryAnalysis(c.Request.Context(), userID, req.ProfileID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}
