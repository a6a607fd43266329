package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/wadjakorntonsri/minilink/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/minilink/pkg/core/domain"
	"github.com/wadjakorntonsri/minilink/pkg/core/services"
)

func TestAuthenticate(t *testing.T) {
	repo, err := sqlite.NewSQLiteRepository("file:mw_auth?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Failed to init db: %v", err)
	}
	tokens := services.NewTokenService("test-secret")
	mw := NewMiddleware(tokens, repo, zerolog.Nop())

	epoch := time.Now().UnixMilli()
	user := &domain.User{
		Name:         "Alice",
		Email:        "alice@example.com",
		Mobile:       "555-0100",
		PasswordHash: "x",
		SessionEpoch: epoch,
		CreatedAt:    time.Now(),
	}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatal(err)
	}

	validToken, err := tokens.Issue(user.ID, epoch)
	if err != nil {
		t.Fatal(err)
	}
	// Minted before the current epoch, i.e. before the last email change.
	staleToken, err := tokens.Issue(user.ID, epoch-1)
	if err != nil {
		t.Fatal(err)
	}
	unknownUserToken, err := tokens.Issue(user.ID+999, epoch)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name           string
		token          string
		expectedStatus int
	}{
		{
			name:           "Missing Header",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid Token",
			token:          "invalid",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Stale Session",
			token:          staleToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Unknown User",
			token:          unknownUserToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Valid Token",
			token:          validToken,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/user/getusername", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", tt.token)
			}

			rr := httptest.NewRecorder()
			handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if id, ok := UserIDFrom(r.Context()); !ok || id != user.ID {
					t.Errorf("user id not attached to context")
				}
				w.WriteHeader(http.StatusOK)
			}))

			handler.ServeHTTP(rr, req)

			if status := rr.Code; status != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v",
					status, tt.expectedStatus)
			}
		})
	}
}
