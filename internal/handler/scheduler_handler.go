package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/edu-sched/bwm-ilp-api/internal/dto"
	"github.com/edu-sched/bwm-ilp-api/internal/scheduler"
	appErrors "github.com/edu-sched/bwm-ilp-api/pkg/errors"
	"github.com/edu-sched/bwm-ilp-api/pkg/response"
)

var overridesValidator = validator.New()

type bwmIlpRunner interface {
	Run(ctx context.Context, datasetID int64, overrides scheduler.Overrides) (dto.BwmIlpResult, error)
}

// SchedulerHandler exposes the run_bwm_ilp entry point over HTTP.
type SchedulerHandler struct {
	service bwmIlpRunner
}

// NewSchedulerHandler constructs the handler.
func NewSchedulerHandler(svc bwmIlpRunner) *SchedulerHandler {
	return &SchedulerHandler{service: svc}
}

// Solve godoc
// @Summary Solve a dataset's timetable with the BWM-weighted ILP
// @Description Loads the dataset, builds and solves the weighted 0/1 ILP, persists the result, and returns it.
// @Tags Scheduler
// @Produce json
// @Param id path int true "Dataset ID"
// @Param time_limit_seconds query int false "Narrow the solver's configured time budget, in seconds"
// @Param max_nodes query int false "Narrow the solver's configured branch-and-bound node budget"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /api/v1/datasets/{id}/schedule [post]
func (h *SchedulerHandler) Solve(c *gin.Context) {
	datasetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "dataset id must be an integer"))
		return
	}

	var overrideReq dto.SolveOverrides
	if err := c.ShouldBindQuery(&overrideReq); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid solve overrides"))
		return
	}
	if err := overridesValidator.Struct(overrideReq); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "solve overrides out of range"))
		return
	}

	overrides := scheduler.Overrides{}
	if overrideReq.TimeLimitSeconds != nil {
		overrides.TimeLimit = time.Duration(*overrideReq.TimeLimitSeconds) * time.Second
	}
	if overrideReq.MaxNodes != nil {
		overrides.MaxNodes = *overrideReq.MaxNodes
	}

	result, err := h.service.Run(c.Request.Context(), datasetID, overrides)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result, nil)
}
