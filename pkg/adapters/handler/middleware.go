package handler

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/wadjakorntonsri/minilink/pkg/ports"
)

type ctxKey string

const userIDKey ctxKey = "userID"

type Middleware struct {
	tokens ports.AuthTokens
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewMiddleware(tokens ports.AuthTokens, users ports.UserRepository, logger zerolog.Logger) *Middleware {
	return &Middleware{tokens: tokens, users: users, logger: logger}
}

// Authenticate verifies the raw token in the Authorization header (no
// "Bearer " scheme) and rejects sessions minted before the user's current
// session epoch.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			writeMessage(w, http.StatusUnauthorized, "This action is not allowed")
			return
		}

		claims, err := m.tokens.Verify(token)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		user, err := m.users.GetUserByID(r.Context(), claims.UserID)
		if err != nil {
			m.logger.Error().Err(err).Int64("user_id", claims.UserID).Msg("auth: user lookup failed")
			writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		if user == nil || user.SessionEpoch > claims.Epoch {
			writeMessage(w, http.StatusUnauthorized, "Session expired, please log in again")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFrom returns the authenticated user id placed by Authenticate.
func UserIDFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
