package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/navneetha-rajan/mindmate/internal/http/response"
	"github.com/navneetha-rajan/mindmate/internal/services"
)

type PlanHandler struct {
	plans services.PlanService
}

func NewPlanHandler(plans services.PlanService) *PlanHandler {
	return &PlanHandler{plans: plans}
}

// POST /api/plans
func (h *PlanHandler) Create(c *gin.Context) {
	res, err := h.plans.Create(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// GET /api/plans
func (h *PlanHandler) List(c *gin.Context) {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	plans, err := h.plans.List(c.Request.Context(), limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, plans)
}

// GET /api/plans/current
func (h *PlanHandler) Current(c *gin.Context) {
	plan, err := h.plans.Current(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, plan)
}

// POST /api/plans/:id/adjust
func (h *PlanHandler) Adjust(c *gin.Context) {
	id, err := parseID(c, "plan")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	plan, err := h.plans.Adjust(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, plan)
}

// PATCH /api/plans/:id/status
func (h *PlanHandler) UpdateStatus(c *gin.Context) {
	id, err := parseID(c, "plan")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	plan, err := h.plans.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, plan)
}
