package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendIdentity_EmailCodeFlow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/sign-in", func(w http.ResponseWriter, r *http.Request) {
		var req emailRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Email != "known@example.com" {
			writeJSON(w, http.StatusNotFound, ErrorEnvelope{Error: true, Message: "identifier not found"})
			return
		}
		writeJSON(w, http.StatusOK, Envelope[Attempt]{Data: Attempt{ID: "a1", Kind: AttemptSignIn, Email: req.Email, NextStep: "verify_code"}})
	})
	mux.HandleFunc("/auth/sign-up", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Envelope[Attempt]{Data: Attempt{ID: "a2", Kind: AttemptSignUp, NextStep: "verify_email"}})
	})
	mux.HandleFunc("/auth/attempts/a1/prepare", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Envelope[Attempt]{Data: Attempt{ID: "a1", Status: "code_sent"}})
	})
	mux.HandleFunc("/auth/attempts/a1/attempt", func(w http.ResponseWriter, r *http.Request) {
		var req codeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Code != "123456" {
			writeJSON(w, http.StatusOK, Envelope[AttemptResult]{Data: AttemptResult{Status: "needs_first_factor"}})
			return
		}
		writeJSON(w, http.StatusOK, Envelope[AttemptResult]{Data: AttemptResult{Status: StatusComplete, SessionToken: "jwt", UserID: "u1"}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx := context.Background()
	id := NewBackendIdentity(srv.URL)

	_, err := id.CreateSignIn(ctx, "new@example.com")
	assert.True(t, errors.Is(err, ErrIdentifierNotFound))

	signUp, err := id.CreateSignUp(ctx, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, AttemptSignUp, signUp.Kind)

	attempt, err := id.CreateSignIn(ctx, "known@example.com")
	require.NoError(t, err)
	_, err = id.PrepareFirstFactor(ctx, attempt.ID)
	require.NoError(t, err)

	res, err := id.AttemptFirstFactor(ctx, attempt.ID, "000000")
	require.NoError(t, err)
	assert.NotEqual(t, StatusComplete, res.Status)
	assert.False(t, id.IsSignedIn())

	_, err = id.Token(ctx)
	assert.ErrorIs(t, err, ErrNotSignedIn)

	res, err = id.AttemptFirstFactor(ctx, attempt.ID, " 123456 ")
	require.NoError(t, err)
	assert.Equal(t, StatusComplete, res.Status)
	assert.True(t, id.IsSignedIn())
	assert.Equal(t, "u1", id.UserID())

	tok, err := id.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jwt", tok)

	require.NoError(t, id.SignOut(ctx))
	assert.False(t, id.IsSignedIn())
}

func TestBackendIdentity_OAuth(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/oauth/google", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Envelope[OAuthStart]{Data: OAuthStart{URL: "https://accounts.example/auth", State: "s1"}})
	})
	mux.HandleFunc("/auth/oauth/google/callback", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "s1", r.URL.Query().Get("state"))
		assert.Equal(t, "c1", r.URL.Query().Get("code"))
		writeJSON(w, http.StatusOK, Envelope[AttemptResult]{Data: AttemptResult{Status: StatusComplete, SessionToken: "jwt-oauth"}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	id := NewBackendIdentity(srv.URL)
	start, err := id.StartOAuth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "s1", start.State)

	_, err = id.CompleteOAuth(context.Background(), start.State, "c1")
	require.NoError(t, err)

	client := New(srv.URL, id)
	tok, err := client.tokens.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "jwt-oauth", tok)
}
