package handlers

import (
	"ost-panel/internal/api/middleware"
	"ost-panel/internal/config"
	"ost-panel/internal/models"
	"ost-panel/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(cfg *config.Config) *UserHandler {
	return &UserHandler{
		userService: services.NewUserService(cfg),
	}
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type UpdateRoleRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

type UpdatePasswordRequest struct {
	UserID   uint   `json:"user_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ToggleStatusRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

type OwnPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// GetUsers returns all users
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.GetUsers()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get users"})
		return
	}

	c.JSON(200, gin.H{"users": users})
}

// CreateUser creates a new user
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, err := h.userService.CreateUser(req.Username, req.Email, req.Password, models.Role(req.Role))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(201, user)
}

// UpdateRole changes a user's role
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, err := h.userService.UpdateRole(req.UserID, models.Role(req.Role))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(200, user)
}

// UpdatePassword resets a user's password (admin action, no verification)
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := h.userService.UpdatePassword(req.UserID, req.Password); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Contraseña actualizada"})
}

// ToggleStatus activates or deactivates a user
func (h *UserHandler) ToggleStatus(c *gin.Context) {
	var req ToggleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, err := h.userService.ToggleStatus(req.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(200, user)
}

// UpdateOwnPassword changes the caller's password after verifying the
// current one.
func (h *UserHandler) UpdateOwnPassword(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(401, gin.H{"error": "Not authenticated"})
		return
	}

	var req OwnPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := h.userService.UpdateOwnPassword(user, req.CurrentPassword, req.NewPassword); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Contraseña actualizada"})
}
