package controllers

import (
	"net/http"

	"fittrack/services"

	"github.com/gin-gonic/gin"
)

type DailyGoalController struct {
	Svc *services.GoalService
}

func NewDailyGoalController(svc *services.GoalService) *DailyGoalController {
	return &DailyGoalController{Svc: svc}
}

func (h *DailyGoalController) Get(c *gin.Context) {
	g, err := h.Svc.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// Replace (POST) sets every target; omitted ones fall back to the defaults.
func (h *DailyGoalController) Replace(c *gin.Context) {
	var req services.GoalsInput
	if !bindJSON(c, &req) {
		return
	}
	g, err := h.Svc.Replace(c.Request.Context(), c.Param("userId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (h *DailyGoalController) Patch(c *gin.Context) {
	var req services.GoalsInput
	if !bindJSON(c, &req) {
		return
	}
	g, err := h.Svc.Patch(c.Request.Context(), c.Param("userId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}
