package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mikeintech/budgetterrr/internal/model"
)

func signedToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewClientRequiresBaseURLAndAnonKey(t *testing.T) {
	if NewClient("", "anon", "", "") != nil {
		t.Error("client created without base URL")
	}
	if NewClient("https://x.supabase.co", "", "", "") != nil {
		t.Error("client created without anon key")
	}
	if NewClient("https://x.supabase.co/", "anon", "", "") == nil {
		t.Error("valid settings rejected")
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	c := NewClient("https://x.supabase.co", "anon", signedToken(t, "u1", now.Add(time.Hour)), "")
	if c.TokenExpired(now) {
		t.Error("token valid for an hour reported expired")
	}

	c = NewClient("https://x.supabase.co", "anon", signedToken(t, "u1", now.Add(-time.Hour)), "")
	if !c.TokenExpired(now) {
		t.Error("expired token reported valid")
	}

	// Within the skew window counts as expired.
	c = NewClient("https://x.supabase.co", "anon", signedToken(t, "u1", now.Add(10*time.Second)), "")
	if !c.TokenExpired(now) {
		t.Error("token inside skew window reported valid")
	}

	c = NewClient("https://x.supabase.co", "anon", "not-a-jwt", "")
	if !c.TokenExpired(now) {
		t.Error("malformed token reported valid")
	}

	c = NewClient("https://x.supabase.co", "anon", "", "")
	if !c.TokenExpired(now) {
		t.Error("missing token reported valid")
	}
}

func TestUserID(t *testing.T) {
	now := time.Now()
	c := NewClient("https://x.supabase.co", "anon", signedToken(t, "user-42", now.Add(time.Hour)), "")
	id, err := c.UserID()
	if err != nil {
		t.Fatalf("UserID: %v", err)
	}
	if id != "user-42" {
		t.Errorf("UserID = %q, want user-42", id)
	}
}

func TestFetch(t *testing.T) {
	now := time.Now()
	token := signedToken(t, "u1", now.Add(time.Hour))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != "anon" {
			t.Errorf("apikey header = %q", r.Header.Get("apikey"))
		}
		if r.Header.Get("Authorization") != "Bearer "+token {
			t.Errorf("Authorization header = %q", r.Header.Get("Authorization"))
		}
		rows := []snapshotRow{{
			UserID:    "u1",
			Payload:   model.UserData{Budget: model.Budget{Income: 4000}},
			UpdatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		}}
		_ = json.NewEncoder(w).Encode(rows)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "anon", token, "")
	data, updatedAt, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if data.Budget.Income != 4000 {
		t.Errorf("income = %.0f", data.Budget.Income)
	}
	if updatedAt.IsZero() {
		t.Error("updatedAt missing")
	}
}

func TestFetchNoRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "anon", signedToken(t, "u1", time.Now().Add(time.Hour)), "")
	_, _, err := c.Fetch(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFetchUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "anon", signedToken(t, "u1", time.Now().Add(time.Hour)), "")
	_, _, err := c.Fetch(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestPush(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	token := signedToken(t, "u1", now.Add(time.Hour))

	var got []snapshotRow
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.Header.Get("Prefer") != "resolution=merge-duplicates" {
			t.Errorf("Prefer header = %q", r.Header.Get("Prefer"))
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "anon", token, "")
	data := model.UserData{Budget: model.Budget{Income: 5000}}
	if err := c.Push(context.Background(), data, now); err != nil {
		t.Fatalf("Push: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("rows pushed = %d", len(got))
	}
	if got[0].UserID != "u1" {
		t.Errorf("user_id = %q", got[0].UserID)
	}
	if got[0].Payload.Budget.Income != 5000 {
		t.Errorf("payload income = %.0f", got[0].Payload.Budget.Income)
	}
	if !got[0].UpdatedAt.Equal(now) {
		t.Errorf("updated_at = %s", got[0].UpdatedAt)
	}
}

func TestRefreshAdoptsNewTokens(t *testing.T) {
	now := time.Now()
	newToken := signedToken(t, "u1", now.Add(2*time.Hour))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["refresh_token"] != "old-refresh" {
			t.Errorf("refresh_token = %q", req["refresh_token"])
		}
		_ = json.NewEncoder(w).Encode(Session{
			AccessToken:  newToken,
			RefreshToken: "new-refresh",
			ExpiresIn:    7200,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "anon", signedToken(t, "u1", now.Add(-time.Hour)), "old-refresh")
	sess, err := c.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if sess.AccessToken != newToken || sess.RefreshToken != "new-refresh" {
		t.Errorf("session = %+v", sess)
	}
	if c.TokenExpired(now) {
		t.Error("client did not adopt the refreshed token")
	}
}

func TestRefreshWithoutRefreshToken(t *testing.T) {
	c := NewClient("https://x.supabase.co", "anon", "", "")
	if _, err := c.Refresh(context.Background()); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}
