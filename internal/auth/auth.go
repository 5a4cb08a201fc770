package auth

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ommangate/order-up-scholars/internal/latency"
	"github.com/ommangate/order-up-scholars/internal/logging"
	"github.com/ommangate/order-up-scholars/internal/models"
)

const (
	SessionName = "canteensess"

	keyUserID = "user_id"
	keyCartID = "cart_id"
)

// Handler owns login/logout against the campus user directory.
type Handler struct {
	db    *gorm.DB
	delay latency.Simulator

	// DropCart, when set, discards the session's cart on logout.
	DropCart func(key string)
}

func NewHandler(gdb *gorm.DB, delay latency.Simulator) *Handler {
	return &Handler{db: gdb, delay: delay}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.delay.Read(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	sess := sessions.Default(c)
	sess.Set(keyUserID, user.ID)
	if err := sess.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
		return
	}

	logging.From(c).Info("login", "user_id", user.ID, "role", user.Role)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// POST /auth/logout
func (h *Handler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	if h.DropCart != nil {
		if id, ok := sess.Get(keyCartID).(string); ok && id != "" {
			h.DropCart(id)
		}
	}
	sess.Clear()
	_ = sess.Save()
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// GET /auth/me
func (h *Handler) Me(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// RequireAuth ensures a logged-in user and injects *models.User into the
// gin context for handlers downstream.
func RequireAuth(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		userID, ok := sess.Get(keyUserID).(uint)
		if !ok || userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var user models.User
		if err := gdb.First(&user, userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		c.Set("user", &user)
		c.Next()
	}
}

// RequireAdmin gates admin-only routes. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user placed on the context by RequireAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("user")
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// CartKey returns a stable per-session cart key, minting one on first use.
// The key lives in the session cookie, so anonymous browsing gets a cart
// before login, matching how the storefront behaves.
func CartKey(c *gin.Context, newID func() string) string {
	sess := sessions.Default(c)
	if id, ok := sess.Get(keyCartID).(string); ok && id != "" {
		return id
	}
	id := newID()
	sess.Set(keyCartID, id)
	_ = sess.Save()
	return id
}
