// Package app wires configuration, storage, security and the HTTP surface
// into one lifecycle: New validates and opens resources, Run blocks until
// shutdown, Close releases everything.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/itoken5577-cpun/zenbu-jibun/internal/retention"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/api"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/api/handlers"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/banner"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/classify"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/config"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/logger"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/security"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/store"
)

// App encapsulates the server components and lifecycle.
type App struct {
	eff     config.EffectiveConfigResult
	version string
	mode    classify.Mode

	srv             *http.Server
	cancelRetention context.CancelFunc
}

// New validates the effective config and opens the store. It does not
// start the HTTP server; call Run to start it and block until shutdown.
func New(eff config.EffectiveConfigResult, version string) (*App, error) {
	mode, err := validateConfig(eff)
	if err != nil {
		return nil, err
	}
	if err := store.Open(eff.DBPath); err != nil {
		return nil, fmt.Errorf("failed to open pebble at %s: %w", eff.DBPath, err)
	}
	return &App{eff: eff, version: version, mode: mode}, nil
}

// Run starts the retention scheduler and the HTTP server, then blocks
// until ctx is cancelled or the server fails.
func (a *App) Run(ctx context.Context) error {
	cfg := a.eff.Config

	cancel, err := retention.Start(ctx, cfg.Retention)
	if err != nil {
		return err
	}
	a.cancelRetention = cancel

	banner.Print(a.eff, a.version)

	opts := handlers.Options{
		Mode:           a.mode,
		Vocabulary:     cfg.Analysis.Vocabulary,
		SelfName:       cfg.Analysis.SelfName,
		MinChars:       cfg.Analysis.MinChars,
		TopN:           cfg.Analysis.TopN,
		MaxUploadBytes: cfg.Import.MaxUploadSize.Int64(),
		ImportWorkers:  cfg.Import.Workers,
		InvitesEnabled: cfg.Security.Invites.Enabled,
		InviteTTL:      int64(cfg.Security.Invites.TTL),
	}
	router := api.NewRouter(opts)

	sec := security.SecConfig{
		AllowedOrigins: cfg.Security.CORS.AllowedOrigins,
		RPS:            cfg.Security.RateLimit.RPS,
		Burst:          cfg.Security.RateLimit.Burst,
		IPWhitelist:    cfg.Security.IPWhitelist,
		BackendKeys:    keySet(cfg.Security.APIKeys.Backend),
		AdminKeys:      keySet(cfg.Security.APIKeys.Admin),
		InvitesEnabled: cfg.Security.Invites.Enabled,
		CheckInvite:    store.ValidInvite,
	}
	handler := security.AuthenticateRequestMiddleware(sec)(router)

	a.srv = &http.Server{
		Addr:              a.eff.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http_listening", "addr", a.eff.Addr)
		var err error
		if cfg.Server.TLS.CertFile != "" && cfg.Server.TLS.KeyFile != "" {
			err = a.srv.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile)
		} else {
			err = a.srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Close stops background work, drains the HTTP server and closes the store.
func (a *App) Close() error {
	if a.cancelRetention != nil {
		a.cancelRetention()
	}
	if a.srv != nil {
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.srv.Shutdown(shutCtx); err != nil {
			logger.Warn("http_shutdown_incomplete", "error", err)
		}
	}
	return store.Close()
}

// validateConfig fails fast on settings that would only surface as broken
// behavior later.
func validateConfig(eff config.EffectiveConfigResult) (classify.Mode, error) {
	if eff.Config == nil {
		return 0, fmt.Errorf("nil config")
	}
	cfg := eff.Config
	mode, err := classify.ParseMode(cfg.Analysis.Mode)
	if err != nil {
		return 0, err
	}
	switch cfg.Analysis.Vocabulary {
	case "keywords", "patterns":
	default:
		return 0, fmt.Errorf("unknown analysis vocabulary %q (want keywords or patterns)", cfg.Analysis.Vocabulary)
	}
	if eff.DBPath == "" {
		return 0, fmt.Errorf("no database path configured")
	}
	if (cfg.Server.TLS.CertFile == "") != (cfg.Server.TLS.KeyFile == "") {
		return 0, fmt.Errorf("tls requires both cert_file and key_file")
	}
	return mode, nil
}

func keySet(keys []string) map[string]struct{} {
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		m[k] = struct{}{}
	}
	return m
}
