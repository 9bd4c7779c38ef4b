package gin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jackzhenguo/updatest-paper-in-arxiv/auth"
	"github.com/jackzhenguo/updatest-paper-in-arxiv/errors"
)

type HandlerFunc func(*gin.Context) (interface{}, error)

// JSONFormatter renders the handler result, mapping error codes from
// the errors package onto HTTP statuses.
func JSONFormatter(next HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := next(c)
		if err != nil {
			code := http.StatusInternalServerError
			if err, ok := err.(errors.Error); ok {
				code = err.Code()
			}

			c.JSON(code, map[string]interface{}{
				"message": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, res)
	}
}

// Authenticator resolves the session cookie into a user ID.
type Authenticator struct {
	Sessions *auth.SessionService
}

// Authenticate rejects requests whose cookie does not resolve to a
// session, and stores the session's user ID in the gin context.
func (a *Authenticator) Authenticate(next HandlerFunc) HandlerFunc {
	return func(c *gin.Context) (interface{}, error) {
		token, _ := c.Cookie(auth.SessionCookie)
		userID, ok := a.Sessions.UserID(token)
		if !ok {
			return nil, errors.New("Authentication required.", errors.Unauthorized())
		}

		c.Set("userID", userID)
		return next(c)
	}
}

func sessionUserID(c *gin.Context) int {
	return c.GetInt("userID")
}
