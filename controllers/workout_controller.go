package controllers

import (
	"net/http"
	"strconv"

	"fittrack/middlewares"
	"fittrack/models"
	"fittrack/services"

	"github.com/gin-gonic/gin"
)

type WorkoutController struct {
	Svc *services.WorkoutService
}

func NewWorkoutController(svc *services.WorkoutService) *WorkoutController {
	return &WorkoutController{Svc: svc}
}

func (h *WorkoutController) ListExercises(c *gin.Context) {
	out, err := h.Svc.ListExercises(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *WorkoutController) CreateExercise(c *gin.Context) {
	var req models.Exercise
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.Svc.CreateExercise(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// List answers ?limit=N with the N newest workouts.
func (h *WorkoutController) List(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer", "field": "limit"})
			return
		}
		limit = n
	}
	out, err := h.Svc.List(c.Request.Context(), c.Param("userId"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *WorkoutController) Create(c *gin.Context) {
	var req services.WorkoutInput
	if !bindJSON(c, &req) {
		return
	}
	w, err := h.Svc.Create(c.Request.Context(), c.Param("userId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (h *WorkoutController) ListSets(c *gin.Context) {
	out, err := h.Svc.ListSets(c.Request.Context(), c.GetString(middlewares.ContextUserID), c.Param("workoutId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *WorkoutController) AddSet(c *gin.Context) {
	var req services.SetInput
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.Svc.AddSet(c.Request.Context(), c.GetString(middlewares.ContextUserID), c.Param("workoutId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *WorkoutController) Records(c *gin.Context) {
	out, err := h.Svc.Records(c.Request.Context(), c.Param("userId"), c.Query("exerciseId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *WorkoutController) SetRecord(c *gin.Context) {
	var req services.RecordInput
	if !bindJSON(c, &req) {
		return
	}
	pr, err := h.Svc.SetRecord(c.Request.Context(), c.Param("userId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pr)
}
