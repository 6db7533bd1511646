package controller

import (
	"net/http"

	"github.com/Moorthy04/Chat-bot/logic"

	"github.com/gin-gonic/gin"
)

// UserController handles HTTP requests
type UserController struct {
	userLogic *logic.UserLogic
}

func NewUserController(userLogic *logic.UserLogic) *UserController {
	return &UserController{userLogic: userLogic}
}

// Register handles POST /auth/register
func (c *UserController) Register(ctx *gin.Context) {
	type Request struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := c.userLogic.Register(req.Username, req.Password)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

// Login handles POST /auth/login
func (c *UserController) Login(ctx *gin.Context) {
	type Request struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, expireAt, err := c.userLogic.Login(req.Username, req.Password)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":      user,
		"token":     token,
		"expire_at": expireAt,
	})
}
