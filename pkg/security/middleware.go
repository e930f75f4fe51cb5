// Package security provides the HTTP auth middleware: CORS, IP
// whitelisting, API-key roles, invite tokens and per-caller rate limiting.
package security

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/itoken5577-cpun/zenbu-jibun/pkg/logger"
)

type Role int

const (
	RoleUnauth Role = iota
	RoleInvite
	RoleBackend
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleInvite:
		return "invite"
	case RoleBackend:
		return "backend"
	case RoleAdmin:
		return "admin"
	default:
		return "unauth"
	}
}

// InviteChecker validates a presented invite token. Wired to the store at
// startup so this package stays free of persistence imports.
type InviteChecker func(token string, now time.Time) bool

type SecConfig struct {
	AllowedOrigins []string
	RPS            float64
	Burst          int
	IPWhitelist    []string
	BackendKeys    map[string]struct{}
	AdminKeys      map[string]struct{}
	InvitesEnabled bool
	CheckInvite    InviteChecker
}

// openAccess reports whether the config defines no credentials at all, in
// which case every request is allowed (local single-user usage).
func (c SecConfig) openAccess() bool {
	return len(c.BackendKeys) == 0 && len(c.AdminKeys) == 0 && !c.InvitesEnabled
}

// AuthenticateRequestMiddleware builds the outermost middleware applied to
// every route. Probe endpoints (/healthz, /metrics) pass unauthenticated.
func AuthenticateRequestMiddleware(cfg SecConfig) func(http.Handler) http.Handler {
	limiters := &limiterPool{cfg: cfg}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// CORS
			origin := r.Header.Get("Origin")
			if origin != "" && originAllowed(origin, cfg.AllowedOrigins) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type,X-API-Key,X-Invite-Token")
				w.Header().Set("Access-Control-Max-Age", "600")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			if len(cfg.IPWhitelist) > 0 {
				ip := clientIP(r)
				if !ipWhitelisted(ip, cfg.IPWhitelist) {
					logger.Warn("request_blocked", "reason", "ip_not_whitelisted", "ip", ip, "path", r.URL.Path)
					http.Error(w, "forbidden", http.StatusForbidden)
					return
				}
			}

			// Deployment probes cannot send credentials.
			if r.Method == http.MethodGet && (r.URL.Path == "/healthz" || r.URL.Path == "/metrics") {
				next.ServeHTTP(w, r)
				return
			}

			role, key := authenticate(r, cfg)
			if role == RoleUnauth && !cfg.openAccess() {
				logger.Warn("request_unauthorized", "path", r.URL.Path, "remote", r.RemoteAddr)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			r.Header.Set("X-Role-Name", role.String())

			// Invite holders get the read-only analysis surface only.
			if role == RoleInvite && !inviteAllowed(r) {
				logger.Warn("request_forbidden", "reason", "invite_scope", "path", r.URL.Path)
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			if !limiters.Allow(key) {
				logger.Warn("rate_limited", "path", r.URL.Path)
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			logger.Debug("request_allowed", "method", r.Method, "path", r.URL.Path, "role", role.String())
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin guards admin-only routes (invite management). The role
// header is stamped by AuthenticateRequestMiddleware, which overwrites
// anything the client sent; a missing header means the auth middleware
// never ran and the request is refused.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Role-Name") != RoleAdmin.String() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authenticate resolves the caller's role from the Authorization bearer,
// X-API-Key header, or X-Invite-Token header, in that order. The returned
// key is the rate-limiter identity (API key, invite token, or client IP).
func authenticate(r *http.Request, cfg SecConfig) (Role, string) {
	var key string
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		key = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	if key == "" {
		key = strings.TrimSpace(r.Header.Get("X-API-Key"))
	}
	if key != "" {
		if _, ok := cfg.AdminKeys[key]; ok {
			return RoleAdmin, key
		}
		if _, ok := cfg.BackendKeys[key]; ok {
			return RoleBackend, key
		}
	}
	if cfg.InvitesEnabled && cfg.CheckInvite != nil {
		tok := strings.TrimSpace(r.Header.Get("X-Invite-Token"))
		if tok == "" {
			tok = r.URL.Query().Get("invite")
		}
		if tok != "" && cfg.CheckInvite(tok, time.Now()) {
			return RoleInvite, tok
		}
	}
	return RoleUnauth, clientIP(r)
}

// inviteAllowed scopes invite tokens to GET requests on the analysis and
// conversation listing routes.
func inviteAllowed(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	return strings.HasPrefix(r.URL.Path, "/v1/analysis") || r.URL.Path == "/v1/conversations"
}

func originAllowed(origin string, allowed []string) bool {
	for _, a := range allowed {
		if a == "*" || strings.EqualFold(a, origin) {
			return true
		}
	}
	return false
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func ipWhitelisted(ip string, list []string) bool {
	for _, w := range list {
		if ip == w {
			return true
		}
	}
	return false
}

// limiterPool keeps one token bucket per caller identity.
type limiterPool struct {
	cfg SecConfig
	mu  sync.Mutex
	m   map[string]*rate.Limiter
}

func (p *limiterPool) Allow(key string) bool {
	if p.cfg.RPS <= 0 {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.m == nil {
		p.m = make(map[string]*rate.Limiter)
	}
	lim, ok := p.m[key]
	if !ok {
		burst := p.cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(p.cfg.RPS), burst)
		p.m[key] = lim
	}
	return lim.Allow()
}
