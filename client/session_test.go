package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcm-webshop/models"
)

func TestSessionGateEnterWithoutSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/me", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{"user": nil})
	}))
	defer server.Close()

	gate := NewSessionGate(NewAPI(server.URL, nil), nil)
	_, err := gate.Enter(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestSessionGateLoginCookieRoundTrip(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		require.Equal(t, "user@example.com", creds.Email)
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "tok-1", Path: "/"})
		json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	})
	mux.HandleFunc("/api/me", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session")
		if err != nil || cookie.Value != "tok-1" {
			json.NewEncoder(w).Encode(map[string]interface{}{"user": nil})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user": models.User{ID: "u1", Email: "user@example.com", FullName: "Max Muster"},
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	gate := NewSessionGate(NewAPI(server.URL, nil), nil)

	// without login the gate refuses entry
	_, err := gate.Enter(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	require.NoError(t, gate.Login(context.Background(), "user@example.com", "secret"))

	// the jar now carries the session implicitly
	user, err := gate.Enter(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "user@example.com", user.Email)
}

func TestSessionGateLoginBadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "Ungültige Anmeldedaten",
			"code":  "invalid_credentials",
		})
	}))
	defer server.Close()

	gate := NewSessionGate(NewAPI(server.URL, nil), nil)
	err := gate.Login(context.Background(), "user@example.com", "wrong")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid_credentials", apiErr.Code)
	assert.Equal(t, "Ungültige Anmeldedaten", apiErr.Error())
}

func TestSessionGateLogoutIsBestEffort(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	gate := NewSessionGate(NewAPI(server.URL, nil), nil)
	// must not panic and has nothing to return; the caller navigates away
	// regardless of the outcome
	gate.Logout(context.Background())

	server.Close()
	gate.Logout(context.Background())
}
