package httpserver

import (
	"net/http"
	"strings"

	"online-bookstore/internal/domain"
	usersvc "online-bookstore/internal/service/user"

	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// authMiddleware resolves the Bearer token to a user and stores the caller
// identity for handlers. Every identity-dependent call downstream takes the
// caller explicitly; nothing reads ambient security state.
func authMiddleware(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			writeError(c, usersvc.ErrInvalidToken)
			return
		}
		u, err := users.LookupByToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			writeError(c, usersvc.ErrInvalidToken)
			return
		}
		c.Set(callerKey, domain.Caller{UserID: u.ID, Role: u.Role})
		c.Next()
	}
}

func adminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !callerFrom(c).IsAdmin() {
			writeError(c, domain.ErrUnauthorized)
			return
		}
		c.Next()
	}
}

func callerFrom(c *gin.Context) domain.Caller {
	v, _ := c.Get(callerKey)
	caller, _ := v.(domain.Caller)
	return caller
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int         `json:"expiresIn"`
	User      domain.User `json:"user"`
}

func signupHandler(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in usersvc.SignupInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid signup payload")
			return
		}
		u, err := users.Signup(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}

func loginHandler(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in loginRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid login payload")
			return
		}
		u, token, err := users.Login(c.Request.Context(), in.Email, in.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, loginResponse{
			Token:     token,
			ExpiresIn: users.AccessTTLSeconds(),
			User:      *u,
		})
	}
}
