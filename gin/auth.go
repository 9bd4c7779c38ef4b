package gin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	papertrack "github.com/jackzhenguo/updatest-paper-in-arxiv"
	"github.com/jackzhenguo/updatest-paper-in-arxiv/auth"
	"github.com/jackzhenguo/updatest-paper-in-arxiv/errors"
)

type AuthHandler struct {
	Users    papertrack.UserStore
	Sessions *auth.SessionService
}

func (h *AuthHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/auth/register", JSONFormatter(h.Register))
	router.POST("/api/auth/login", JSONFormatter(h.Login))
	router.POST("/api/auth/logout", JSONFormatter(h.Logout))
	router.POST("/api/auth/status", JSONFormatter(h.Status))
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) (interface{}, error) {
	var body credentials
	c.ShouldBindJSON(&body)

	if body.Email == "" || body.Password == "" {
		return nil, errors.New("Email and password are required.", errors.BadRequest())
	}

	if !auth.IsValidPassword(body.Password) {
		return nil, errors.New(
			"Password must be at least 8 characters long, contain at least one uppercase letter and one number.",
			errors.BadRequest(),
		)
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))
	existing, err := h.Users.UserByEmail(email)
	if err != nil {
		return nil, errors.New("Failed to register user.", errors.WithCause(err))
	}
	if existing != nil {
		return nil, errors.New("Email already registered.", errors.BadRequest())
	}

	hash, err := auth.HashPassword(body.Password)
	if err != nil {
		return nil, errors.New("Failed to register user.", errors.WithCause(err))
	}

	user := papertrack.User{Email: email, Password: hash}
	if err := h.Users.CreateUser(&user); err != nil {
		if errors.IsConstraint(err) {
			return nil, errors.New("Email already registered.", errors.BadRequest())
		}
		return nil, errors.New("Failed to register user.", errors.WithCause(err))
	}

	return map[string]interface{}{
		"message": "Registration successful! Please log in.",
	}, nil
}

func (h *AuthHandler) Login(c *gin.Context) (interface{}, error) {
	var body credentials
	c.ShouldBindJSON(&body)

	token, _ := c.Cookie(auth.SessionCookie)

	if body.Email == "" || body.Password == "" {
		if userID, ok := h.Sessions.UserID(token); ok {
			return map[string]interface{}{
				"message": "Already logged in.",
				"userId":  userID,
			}, nil
		}
		return nil, errors.New("Email and password are required.", errors.BadRequest())
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))
	user, err := h.Users.UserByEmail(email)
	if err != nil {
		return nil, errors.New("Failed to log in.", errors.WithCause(err))
	}
	if user == nil || !auth.CheckPassword(user.Password, body.Password) {
		return nil, errors.New("Invalid credentials, please try again.", errors.Unauthorized())
	}

	// Any session presented along with the credentials is replaced by
	// a fresh one.
	h.Sessions.Delete(token)

	sessionToken, err := h.Sessions.Create(user.ID)
	if err != nil {
		return nil, errors.New("Failed to log in.", errors.WithCause(err))
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, sessionToken, auth.SessionMaxAge, "/", "", false, true)

	return map[string]interface{}{
		"message": "Login successful.",
		"userId":  user.ID,
	}, nil
}

func (h *AuthHandler) Logout(c *gin.Context) (interface{}, error) {
	token, _ := c.Cookie(auth.SessionCookie)
	h.Sessions.Delete(token)

	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)

	return map[string]interface{}{
		"message": "Logged out successfully.",
	}, nil
}

func (h *AuthHandler) Status(c *gin.Context) (interface{}, error) {
	token, _ := c.Cookie(auth.SessionCookie)
	userID, ok := h.Sessions.UserID(token)
	if !ok {
		return map[string]interface{}{
			"message": "Not logged in.",
		}, nil
	}

	return map[string]interface{}{
		"message": "Already logged in.",
		"userId":  userID,
	}, nil
}
