package middleware

import (
	"context"
	"net/http"

	"doctor-directory/pkg/jwt"
	"doctor-directory/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	SessionIDKey contextKey = "session_id"
	RequestIDKey contextKey = "request_id"
)

// SessionCookieName carries the signed session token.
const SessionCookieName = "directory_session"

type SessionMiddleware struct {
	jwtService *jwt.JWTService
	log        *logrus.Logger
}

func NewSessionMiddleware(jwtService *jwt.JWTService, log *logrus.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		jwtService: jwtService,
		log:        log,
	}
}

// Handle resolves the caller's session from its cookie, starting a new
// session when the cookie is missing, expired or forged. The cookie is
// re-signed on every request so an active session does not expire.
func (m *SessionMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			if claims, err := m.jwtService.ValidateSessionToken(cookie.Value); err == nil {
				sessionID = claims.SessionID
			}
		}

		var (
			token string
			err   error
		)
		if sessionID == "" {
			token, sessionID, err = m.jwtService.GenerateSessionToken()
		} else {
			token, err = m.jwtService.RefreshSessionToken(sessionID)
		}
		if err != nil {
			m.log.Warnf("Failed to sign session token: %+v", err)
			response.InternalServerError(w, "Failed to start session")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(m.jwtService.GetSessionExpiry().Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionIDFromContext extracts session ID from context
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(string)
	return sessionID, ok && sessionID != ""
}

// GetRequestIDFromContext extracts request ID from context
func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(RequestIDKey).(string)
	return requestID, ok
}
