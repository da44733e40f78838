package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/milassets/backend/auth"
	"github.com/milassets/backend/errs"
	"github.com/milassets/backend/middleware"
	"github.com/milassets/backend/models"
	"github.com/milassets/backend/repository"
)

// Auth handles registration, login and user management.
type Auth struct {
	users  *repository.Users
	tokens *auth.TokenService
	log    *zap.Logger
}

// NewAuth creates the auth handler group.
func NewAuth(users *repository.Users, tokens *auth.TokenService, log *zap.Logger) *Auth {
	return &Auth{users: users, tokens: tokens, log: log}
}

type RegisterRequest struct {
	Username string      `json:"username" binding:"required"`
	Password string      `json:"password" binding:"required,min=6"`
	Name     string      `json:"name" binding:"required"`
	Base     string      `json:"base" binding:"required"`
	Role     models.Role `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is the login/registration payload.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register handles POST /api/auth/register. Public registration always
// creates an officer; a request carrying a valid admin token may create any
// role. Admin-created users are not logged in as part of the response.
func (h *Auth) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Role != "" && !req.Role.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	role := req.Role
	adminRequest := false

	if token := middleware.ExtractToken(c); token != "" {
		claims, err := h.tokens.Verify(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is not valid"})
			return
		}
		requester, err := h.users.GetByID(claims.UserID)
		if err != nil || requester.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to create users"})
			return
		}
		adminRequest = true
	} else if role != "" && role != models.RoleOfficer {
		// Public registration may only create officers.
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to create this role"})
		return
	}

	if role == "" {
		role = models.RoleOfficer
	}

	user, err := h.users.Create(req.Username, req.Password, req.Name, req.Base, role)
	if err != nil {
		if errors.Is(err, errs.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		h.log.Error("create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if adminRequest {
		c.JSON(http.StatusOK, gin.H{
			"message": "User created successfully",
			"user":    user,
		})
		return
	}

	tokenString, err := h.tokens.Issue(user)
	if err != nil {
		h.log.Error("issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: tokenString, User: *user})
}

// Login handles POST /api/auth/login. Unknown username and wrong password
// return the same response.
func (h *Auth) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.users.Verify(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
			return
		}
		h.log.Error("verify credentials", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	tokenString, err := h.tokens.Issue(user)
	if err != nil {
		h.log.Error("issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: tokenString, User: *user})
}

// CurrentUser handles GET /api/auth/user.
func (h *Auth) CurrentUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"name":      user.Name,
		"role":      user.Role,
		"base":      user.Base,
		"createdAt": user.CreatedAt,
	})
}

// ListUsers handles GET /api/auth/users (admin).
func (h *Auth) ListUsers(c *gin.Context) {
	users, err := h.users.List()
	if err != nil {
		h.log.Error("list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// DeleteUser handles DELETE /api/auth/users/:id (admin).
func (h *Auth) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	requester := middleware.CurrentUser(c)
	if err := h.users.Delete(requester.ID, uint(id)); err != nil {
		switch {
		case errors.Is(err, errs.ErrSelfDeletion):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		case errors.Is(err, errs.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			h.log.Error("delete user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
