package controllers

import (
	"net/http"

	"fittrack/services"

	"github.com/gin-gonic/gin"
)

type MetricsController struct {
	Svc *services.MetricsService
}

func NewMetricsController(svc *services.MetricsService) *MetricsController {
	return &MetricsController{Svc: svc}
}

func (h *MetricsController) List(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *MetricsController) Latest(c *gin.Context) {
	m, err := h.Svc.Latest(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MetricsController) Create(c *gin.Context) {
	var req services.MetricsInput
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.Svc.Create(c.Request.Context(), c.Param("userId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}
