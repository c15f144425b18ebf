package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestDo_AttachesHeadersAndFreshToken(t *testing.T) {
	var calls int32
	tokens := TokenFunc(func(ctx context.Context) (string, error) {
		n := atomic.AddInt32(&calls, 1)
		return []string{"", "tok-1", "tok-2"}[n], nil
	})

	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		writeJSON(w, http.StatusOK, map[string]any{"message": "ok", "userId": "u1", "data": map[string]any{}})
	}))
	defer srv.Close()

	c := New(srv.URL, tokens)
	_, err := c.Do(context.Background(), http.MethodGet, "/users/profile", nil)
	require.NoError(t, err)
	_, err = c.Do(context.Background(), http.MethodGet, "/users/profile", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer tok-1", "Bearer tok-2"}, seen)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDo_ResponseKinds(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantErr    bool
		wantKind   ErrorKind
		wantStatus int
		wantMsg    string
		wantJSON   bool
	}{
		{
			name: "json body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, map[string]any{"message": "ok"})
			},
			wantJSON: true,
		},
		{
			name: "plain text body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				_, _ = io.WriteString(w, "pong")
			},
		},
		{
			name: "not found envelope",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusNotFound, ErrorEnvelope{Error: true, Message: "User not found"})
			},
			wantErr:    true,
			wantKind:   KindHTTP,
			wantStatus: 404,
			wantMsg:    "User not found",
		},
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusUnauthorized, ErrorEnvelope{Error: true, Message: "Authentication required"})
			},
			wantErr:    true,
			wantKind:   KindUnauthorized,
			wantStatus: 401,
			wantMsg:    "Authentication required",
		},
		{
			name: "server error without envelope",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr:    true,
			wantKind:   KindHTTP,
			wantStatus: 500,
			wantMsg:    "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			resp, err := New(srv.URL, StaticToken("t")).Do(context.Background(), http.MethodGet, "/x", nil)
			if tt.wantErr {
				require.Error(t, err)
				var apiErr *Error
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, tt.wantKind, apiErr.Kind)
				assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
				assert.Equal(t, tt.wantMsg, apiErr.Message)
				assert.Contains(t, err.Error(), "HTTP error! status:")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantJSON, resp.IsJSON())
			if !tt.wantJSON {
				assert.Equal(t, "pong", resp.Text())
			}
		})
	}
}

func TestDo_TokenAndNetworkFailures(t *testing.T) {
	t.Run("token failure", func(t *testing.T) {
		c := New("http://127.0.0.1:1", TokenFunc(func(context.Context) (string, error) {
			return "", errors.New("signed out")
		}))
		_, err := c.Do(context.Background(), http.MethodGet, "/x", nil)
		assert.Equal(t, KindAuth, KindOf(err))
	})

	t.Run("network failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		_, err := New(srv.URL, StaticToken("t")).Do(context.Background(), http.MethodGet, "/x", nil)
		assert.Equal(t, KindNetwork, KindOf(err))
		assert.Equal(t, 0, StatusCode(err))
	})
}

func TestProfileRoundTrip(t *testing.T) {
	var stored map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/profile", r.URL.Path)
		switch r.Method {
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&stored))
			writeJSON(w, http.StatusOK, map[string]any{"message": "Profile updated", "userId": "u1", "data": stored})
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]any{"message": "Profile retrieved", "userId": "u1", "data": stored})
		}
	}))
	defer srv.Close()

	name, age, gender := "Jane", 29, "Female"
	c := New(srv.URL+"/api", StaticToken("t"))

	_, err := c.UpdateProfile(context.Background(), ProfileUpdate{
		Name:        &name,
		Age:         &age,
		Gender:      &gender,
		Orientation: []string{"Male"},
	})
	require.NoError(t, err)
	assert.NotContains(t, stored, "interests")

	got, err := c.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, name, *got.Data.Name)
	assert.Equal(t, age, *got.Data.Age)
	assert.Equal(t, gender, *got.Data.Gender)
	assert.Equal(t, []string{"Male"}, got.Data.Orientation)
	assert.Nil(t, got.Data.UniqueInterest)
}

func TestPromptOperations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/prompts/generate":
			var req SavePromptRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			writeJSON(w, http.StatusOK, Envelope[Prompt]{Data: Prompt{
				ID: "p1", Category: req.Category, ResponseText: req.ResponseText,
				PromptType: req.PromptType, AIGenerated: req.PromptType == PromptTypeGenerated, Status: "ACTIVE",
			}})
		case r.Method == http.MethodPut && r.URL.Path == "/prompts/p1":
			var req UpdatePromptRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			writeJSON(w, http.StatusOK, Envelope[Prompt]{Data: Prompt{ID: "p1", ResponseText: req.ResponseText, PromptType: PromptTypeEdited}})
		case r.Method == http.MethodPost && r.URL.Path == "/prompts/usage_record":
			var req UsageRecordRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			writeJSON(w, http.StatusOK, Envelope[UsageRecord]{Data: UsageRecord{ID: "r1", PromptID: req.PromptID}})
		default:
			writeJSON(w, http.StatusNotFound, ErrorEnvelope{Error: true, Message: "Prompt not found"})
		}
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("t"))
	ctx := context.Background()

	saved, err := c.SavePrompt(ctx, "My simple pleasures", "Coffee at dawn", "")
	require.NoError(t, err)
	assert.Equal(t, PromptTypeGenerated, saved.Data.PromptType)
	assert.True(t, saved.Data.AIGenerated)

	updated, err := c.UpdatePrompt(ctx, "p1", "Coffee at noon")
	require.NoError(t, err)
	assert.Equal(t, PromptTypeEdited, updated.Data.PromptType)

	usage, err := c.RecordPromptUsage(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", usage.Data.PromptID)

	_, err = c.UpdatePrompt(ctx, "nope", "x")
	assert.True(t, IsNotFound(err))
}

func TestResultOf(t *testing.T) {
	ok := ResultOf(42, nil)
	assert.True(t, ok.OK)
	assert.Equal(t, 42, ok.Value)

	failed := ResultOf(0, &Error{Kind: KindHTTP, StatusCode: 500, Message: "Failed to fetch user prompts"})
	assert.False(t, failed.OK)
	assert.Equal(t, KindHTTP, failed.Kind)
	assert.Equal(t, 500, failed.Status)
	assert.Equal(t, "Failed to fetch user prompts", failed.Message)
}
