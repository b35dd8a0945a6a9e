package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const sessionIDKey contextKeyType = "session_id"

// SessionHeader is the header carrying the shopper's session identifier.
// Browsers persist it locally and replay it on every request so the cart
// and checkout state survive page reloads.
const SessionHeader = "X-Session-ID"

// Session extracts the session ID from the request header, minting a fresh
// one for first-time visitors, and echoes it back in the response so the
// client can persist it.
func Session() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(SessionHeader)
			if sessionID == "" {
				sessionID = uuid.New().String()
			}

			w.Header().Set(SessionHeader, sessionID)
			ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionIDFromContext extracts the session ID from the request context.
func SessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}
