package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func secured(cfg SecConfig) http.Handler {
	return AuthenticateRequestMiddleware(cfg)(testHandler())
}

func keyed(cfg SecConfig, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}
	rr := httptest.NewRecorder()
	secured(cfg).ServeHTTP(rr, req)
	return rr
}

func TestUnauthenticatedRejected(t *testing.T) {
	cfg := SecConfig{BackendKeys: map[string]struct{}{"bk": {}}}
	if rr := keyed(cfg, "/v1/analysis", ""); rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestBackendKeyAccepted(t *testing.T) {
	cfg := SecConfig{BackendKeys: map[string]struct{}{"bk": {}}}
	if rr := keyed(cfg, "/v1/analysis", "bk"); rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

func TestBearerHeaderAccepted(t *testing.T) {
	cfg := SecConfig{AdminKeys: map[string]struct{}{"ad": {}}}
	req := httptest.NewRequest(http.MethodGet, "/v1/analysis", nil)
	req.Header.Set("Authorization", "Bearer ad")
	rr := httptest.NewRecorder()
	secured(cfg).ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

func TestHealthzExempt(t *testing.T) {
	cfg := SecConfig{BackendKeys: map[string]struct{}{"bk": {}}}
	if rr := keyed(cfg, "/healthz", ""); rr.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want 200 without credentials", rr.Code)
	}
	if rr := keyed(cfg, "/metrics", ""); rr.Code != http.StatusOK {
		t.Errorf("metrics status = %d, want 200 without credentials", rr.Code)
	}
}

func TestOpenAccessWithoutCredentialConfig(t *testing.T) {
	if rr := keyed(SecConfig{}, "/v1/analysis", ""); rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 when no credentials are configured", rr.Code)
	}
}

func TestInviteTokenScope(t *testing.T) {
	cfg := SecConfig{
		BackendKeys:    map[string]struct{}{"bk": {}},
		InvitesEnabled: true,
		CheckInvite: func(token string, now time.Time) bool {
			return token == "good"
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/analysis/summary", nil)
	req.Header.Set("X-Invite-Token", "good")
	rr := httptest.NewRecorder()
	secured(cfg).ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("invite on analysis = %d, want 200", rr.Code)
	}

	// invites are read-only: no uploads
	req = httptest.NewRequest(http.MethodPost, "/v1/imports", nil)
	req.Header.Set("X-Invite-Token", "good")
	rr = httptest.NewRecorder()
	secured(cfg).ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Errorf("invite on imports = %d, want 403", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/analysis", nil)
	req.Header.Set("X-Invite-Token", "bad")
	rr = httptest.NewRecorder()
	secured(cfg).ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("bad invite = %d, want 401", rr.Code)
	}
}

func TestIPWhitelist(t *testing.T) {
	cfg := SecConfig{IPWhitelist: []string{"10.0.0.1"}}
	req := httptest.NewRequest(http.MethodGet, "/v1/analysis", nil)
	req.RemoteAddr = "192.168.1.5:1234"
	rr := httptest.NewRecorder()
	secured(cfg).ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 for non-whitelisted ip", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/analysis", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rr = httptest.NewRecorder()
	secured(cfg).ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for whitelisted ip", rr.Code)
	}
}

func TestRateLimiting(t *testing.T) {
	cfg := SecConfig{
		BackendKeys: map[string]struct{}{"bk": {}},
		RPS:         1,
		Burst:       2,
	}
	h := secured(cfg)
	codes := []int{}
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/analysis", nil)
		req.Header.Set("X-API-Key", "bk")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("burst requests = %v, first two should pass", codes)
	}
	limited := false
	for _, c := range codes {
		if c == http.StatusTooManyRequests {
			limited = true
		}
	}
	if !limited {
		t.Errorf("no request was rate limited: %v", codes)
	}
}

func TestCORSPreflight(t *testing.T) {
	cfg := SecConfig{AllowedOrigins: []string{"https://app.example.com"}}
	req := httptest.NewRequest(http.MethodOptions, "/v1/analysis", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rr := httptest.NewRecorder()
	secured(cfg).ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "https://app.example.com" {
		t.Errorf("allow-origin = %q", rr.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestRequireAdmin(t *testing.T) {
	h := RequireAdmin(testHandler())
	cases := []struct {
		role string
		want int
	}{
		{"admin", http.StatusOK},
		{"backend", http.StatusForbidden},
		{"invite", http.StatusForbidden},
		{"", http.StatusForbidden}, // no auth middleware ran: fail closed
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodPost, "/v1/invites", nil)
		if c.role != "" {
			req.Header.Set("X-Role-Name", c.role)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != c.want {
			t.Errorf("role %q: status = %d, want %d", c.role, rr.Code, c.want)
		}
	}
}
