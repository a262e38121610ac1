package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/parth3300/portfolio/internal/config"
)

func TestAdminRequiresLogin(t *testing.T) {
	s, _ := newTestServer(t)
	w := newClient(s).get("/admin/dashboard")
	expectStatus(t, w, http.StatusFound)
	if loc := w.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("expected redirect to /admin/login, got %q", loc)
	}
}

func TestAdminLoginFlow(t *testing.T) {
	s, _ := newTestServer(t)
	c := newClient(s)

	w := c.post("/admin/login", url.Values{"username": {"owner"}, "password": {"wrong"}})
	expectStatus(t, w, http.StatusUnauthorized)
	expectBody(t, w, "Invalid credentials")

	w = c.post("/admin/login", url.Values{"username": {"owner"}, "password": {"letmein"}})
	expectStatus(t, w, http.StatusFound)
	if _, ok := c.cookies[adminCookie]; !ok {
		t.Fatal("expected admin cookie after login")
	}

	c.get("/")
	c.post("/services/web-development/open", nil)
	s.bg.Wait()

	w = c.get("/admin/dashboard")
	expectStatus(t, w, http.StatusOK)
	expectBody(t, w, "Dashboard", "service_open", "web-development", "Active sessions: 1")

	w = c.get("/admin/api/stats")
	expectStatus(t, w, http.StatusOK)
	var stats AdminStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if stats.TotalVisitors != 1 || stats.TotalInteractions != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}

	w = c.get("/admin/export/stats")
	expectStatus(t, w, http.StatusOK)
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "admin-stats-2024-06-01.json") {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}

	w = c.get("/admin/visitors")
	expectStatus(t, w, http.StatusOK)
	expectBody(t, w, "Recent visitors", s.admin.hashIP("192.0.2.1"))

	expectStatus(t, c.get("/admin/logout"), http.StatusFound)
	expectStatus(t, c.get("/admin/dashboard"), http.StatusFound)
}

func TestPrivacyPage(t *testing.T) {
	s, _ := newTestServer(t)
	w := newClient(s).get("/privacy")
	expectStatus(t, w, http.StatusOK)
	expectBody(t, w, "Privacy Policy", "365 days", "DNT: 1")
}

func TestAdminAuthConfig(t *testing.T) {
	t.Run("password hash", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("bcrypt: %v", err)
		}
		a, err := newAdminAuth(config.Admin{Username: "me", PasswordHash: string(hash)}, false)
		if err != nil {
			t.Fatalf("newAdminAuth: %v", err)
		}
		if err := a.check("me", "hunter2"); err != nil {
			t.Errorf("expected valid login, got %v", err)
		}
		if err := a.check("you", "hunter2"); err == nil {
			t.Error("expected wrong username to fail")
		}
	})

	t.Run("debug default", func(t *testing.T) {
		a, err := newAdminAuth(config.Admin{}, true)
		if err != nil {
			t.Fatalf("newAdminAuth: %v", err)
		}
		if err := a.check(defaultAdminUsername, defaultAdminPassword); err != nil {
			t.Errorf("expected default credentials in debug, got %v", err)
		}
	})

	t.Run("release without password", func(t *testing.T) {
		a, err := newAdminAuth(config.Admin{}, false)
		if err != nil {
			t.Fatalf("newAdminAuth: %v", err)
		}
		if err := a.check(defaultAdminUsername, defaultAdminPassword); !errors.Is(err, errAdminDisabled) {
			t.Errorf("expected errAdminDisabled, got %v", err)
		}
	})
}

func TestHashIPIsStablePerProcess(t *testing.T) {
	a, err := newAdminAuth(config.Admin{Password: "x"}, false)
	if err != nil {
		t.Fatalf("newAdminAuth: %v", err)
	}
	h := a.hashIP("203.0.113.7")
	if len(h) != 16 {
		t.Errorf("expected 16 hex chars, got %q", h)
	}
	if h != a.hashIP("203.0.113.7") {
		t.Error("expected the same hash for the same IP")
	}
	if h == a.hashIP("203.0.113.8") {
		t.Error("expected different IPs to hash differently")
	}
}
