package controllers

import (
	"net/http"
	"time"

	"fittrack/services"
	"fittrack/utils"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	Svc         *services.MealService
	Recognition *services.RecognitionService
	// Loc is the zone ?date= is read in.
	Loc *time.Location
}

func NewMealController(svc *services.MealService, rec *services.RecognitionService, loc *time.Location) *MealController {
	return &MealController{Svc: svc, Recognition: rec, Loc: loc}
}

func (h *MealController) ListOptions(c *gin.Context) {
	out, err := h.Svc.ListOptions(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *MealController) CreateOption(c *gin.Context) {
	var req services.MealOptionInput
	if !bindJSON(c, &req) {
		return
	}
	o, err := h.Svc.CreateOption(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// Recognize takes {"image": "<data URI>"} and suggests catalog options.
func (h *MealController) Recognize(c *gin.Context) {
	var req struct {
		Image string `json:"image"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.Recognition.Recognize(c.Request.Context(), req.Image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *MealController) List(c *gin.Context) {
	var day *time.Time
	if v := c.Query("date"); v != "" {
		d, err := utils.ParseDay(v, h.Loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD", "field": "date"})
			return
		}
		day = &d
	}
	out, err := h.Svc.List(c.Request.Context(), c.Param("userId"), day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *MealController) Today(c *gin.Context) {
	out, err := h.Svc.Today(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *MealController) Log(c *gin.Context) {
	var req services.LogMealInput
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.Svc.Log(c.Request.Context(), c.Param("userId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}
