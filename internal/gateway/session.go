package gateway

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	identity "github.com/shophub/storefront/internal/identity/domain"
)

type ctxKey int

const (
	sessionKey ctxKey = iota
	userKey
)

const sessionCookie = "shophub_session"

// withSession assigns every request a stable cart session id via cookie.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sid string
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			sid = c.Value
		} else {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionID(r *http.Request) string {
	sid, _ := r.Context().Value(sessionKey).(string)
	return sid
}

// withUser resolves an optional bearer token into the request's user.
// Requests without a token proceed as guests.
func (s *Server) withUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := s.identity.ParseToken(token)
		if err != nil {
			s.writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}

func currentUser(r *http.Request) (identity.User, bool) {
	user, ok := r.Context().Value(userKey).(identity.User)
	return user, ok
}

// ownerID resolves the favorites/orders owner: uid or the guest sentinel.
func ownerID(r *http.Request) string {
	if user, ok := currentUser(r); ok {
		return user.UID
	}
	return identity.GuestID
}
