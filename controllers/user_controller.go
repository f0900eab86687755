package controllers

import (
	"net/http"
	"time"

	"fittrack/services"
	"fittrack/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Svc *services.UserService
	// JWTSecret, when set, makes registration return a token.
	JWTSecret []byte
	TokenTTL  time.Duration
}

func NewUserController(svc *services.UserService, secret []byte, ttl time.Duration) *UserController {
	return &UserController{Svc: svc, JWTSecret: secret, TokenTTL: ttl}
}

func (h *UserController) Create(c *gin.Context) {
	var req services.CreateUserInput
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(h.JWTSecret) == 0 {
		c.JSON(http.StatusCreated, u)
		return
	}

	token, err := utils.GenerateJWT(h.JWTSecret, u.ID, h.TokenTTL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u, "token": token})
}

func (h *UserController) Get(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserController) UpdateStreak(c *gin.Context) {
	var req struct {
		Streak *int `json:"streak"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if req.Streak == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "streak is required", "field": "streak"})
		return
	}
	u, err := h.Svc.UpdateStreak(c.Request.Context(), c.Param("userId"), *req.Streak)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// SetProfilePicture takes {"image": "data:image/...;base64,..."}.
func (h *UserController) SetProfilePicture(c *gin.Context) {
	var req struct {
		Image string `json:"image"`
	}
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.SetProfilePicture(c.Request.Context(), c.Param("userId"), req.Image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
