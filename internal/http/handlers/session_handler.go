// Session HTTP handlers.
//
// Credential verification and session issuance live in the hosted auth
// provider; this service only consumes its sessions. The endpoints here cover
// the two operations the provider delegates back to the API:
//   - GET    /session   (current-user lookup for an authenticated caller)
//   - DELETE /session   (sign-out: expire the session cookie)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionWriter is the slice of the session service the handlers need: the
// ability to clear a session cookie on sign-out.
type SessionWriter interface {
	ClearCookie() *http.Cookie
}

// SessionResponse reports the identity of the current session.
type SessionResponse struct {
	UserID string `json:"user_id"`
}

// CurrentSession godoc
// @ID          currentSession
// @Summary     Look up the current session
// @Description Returns the identity the session cookie resolves to.
// @Tags        Session
// @Produce     json
// @Success     200  {object}  handlers.SessionResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Router      /session [get]
func (h *Handlers) CurrentSession(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	ok(c, http.StatusOK, SessionResponse{UserID: uid})
}

// SignOut godoc
// @ID          signOut
// @Summary     Sign out
// @Description Expires the session cookie. Always succeeds for an authenticated caller.
// @Tags        Session
// @Success     204  {string}  string  "No Content"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Router      /session [delete]
func (h *Handlers) SignOut(c *gin.Context) {
	if _, authed := requireUser(c); !authed {
		return
	}
	http.SetCookie(c.Writer, h.sessions.ClearCookie())
	noContent(c)
}
