package config

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EffectiveConfigResult bundles the merged config with the values main
// actually uses, plus a human-readable record of where they came from.
type EffectiveConfigResult struct {
	Config *Config
	Addr   string
	DBPath string
	Source string
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseCommandFlags defines and parses command-line flags and returns their
// values along with a map indicating which flags were explicitly set.
func ParseCommandFlags() (addr string, dbPath string, cfgPath string, setFlags map[string]bool) {
	addrPtr := flag.String("addr", ":8080", "HTTP listen address")
	dbPtr := flag.String("db", "./.database", "Pebble DB path")
	cfgPtr := flag.String("config", "./config.yaml", "Path to config file")
	flag.Parse()
	setFlags = map[string]bool{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	return *addrPtr, *dbPtr, *cfgPtr, setFlags
}

// ResolveConfigPath decides the config file path using the flag-provided value
// and the environment variable ZENBU_CONFIG when the flag was not set.
func ResolveConfigPath(flagPath string, flagSet bool) string {
	if flagSet {
		return flagPath
	}
	if p := os.Getenv("ZENBU_CONFIG"); p != "" {
		return p
	}
	return flagPath
}

// LoadEnvOverrides applies ZENBU_* environment overrides onto cfg and
// reports whether any env vars were used.
func LoadEnvOverrides(cfg *Config) bool {
	envUsed := false
	parseList := func(v string) []string {
		if v == "" {
			return nil
		}
		parts := []string{}
		for _, p := range strings.Split(v, ",") {
			if s := strings.TrimSpace(p); s != "" {
				parts = append(parts, s)
			}
		}
		return parts
	}

	if v := os.Getenv("ZENBU_ADDR"); v != "" {
		envUsed = true
		if h, p, err := net.SplitHostPort(v); err == nil {
			cfg.Server.Address = h
			if pi, err := strconv.Atoi(p); err == nil {
				cfg.Server.Port = pi
			}
		} else {
			cfg.Server.Address = v
		}
	}
	if v := os.Getenv("ZENBU_DB_PATH"); v != "" {
		envUsed = true
		cfg.Server.DBPath = v
	}
	if v := os.Getenv("ZENBU_LOG_LEVEL"); v != "" {
		envUsed = true
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ZENBU_CORS_ORIGINS"); v != "" {
		envUsed = true
		cfg.Security.CORS.AllowedOrigins = parseList(v)
	}
	if v := os.Getenv("ZENBU_RATE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			envUsed = true
			cfg.Security.RateLimit.RPS = f
		}
	}
	if v := os.Getenv("ZENBU_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			envUsed = true
			cfg.Security.RateLimit.Burst = n
		}
	}
	if v := os.Getenv("ZENBU_IP_WHITELIST"); v != "" {
		envUsed = true
		cfg.Security.IPWhitelist = parseList(v)
	}
	if v := os.Getenv("ZENBU_API_BACKEND_KEYS"); v != "" {
		envUsed = true
		cfg.Security.APIKeys.Backend = parseList(v)
	}
	if v := os.Getenv("ZENBU_API_ADMIN_KEYS"); v != "" {
		envUsed = true
		cfg.Security.APIKeys.Admin = parseList(v)
	}
	if v := os.Getenv("ZENBU_ANALYSIS_MODE"); v != "" {
		envUsed = true
		cfg.Analysis.Mode = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("ZENBU_ANALYSIS_VOCABULARY"); v != "" {
		envUsed = true
		cfg.Analysis.Vocabulary = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("ZENBU_SELF_NAME"); v != "" {
		envUsed = true
		cfg.Analysis.SelfName = v
	}
	if c := os.Getenv("ZENBU_TLS_CERT"); c != "" {
		envUsed = true
		cfg.Server.TLS.CertFile = c
	}
	if k := os.Getenv("ZENBU_TLS_KEY"); k != "" {
		envUsed = true
		cfg.Server.TLS.KeyFile = k
	}
	return envUsed
}

// LoadEffective loads config from the given path and applies environment
// overrides and flag values, flags winning over env winning over file.
func LoadEffective(cfgPath, flagAddr, flagDB string, setFlags map[string]bool) EffectiveConfigResult {
	cfg, err := Load(cfgPath)
	srcs := []string{}
	if err != nil {
		cfg = &Config{}
	} else {
		srcs = append(srcs, "config")
	}
	if LoadEnvOverrides(cfg) {
		srcs = append(srcs, "env")
	}

	applyDefaults(cfg)

	addr := cfg.Addr()
	if setFlags["addr"] {
		addr = flagAddr
	}
	dbPath := cfg.Server.DBPath
	if dbPath == "" || setFlags["db"] {
		dbPath = flagDB
	}
	if len(setFlags) > 0 {
		srcs = append(srcs, "flags")
	}
	return EffectiveConfigResult{Config: cfg, Addr: addr, DBPath: dbPath, Source: strings.Join(srcs, ", ")}
}

// applyDefaults fills zero values with the documented defaults.
func applyDefaults(cfg *Config) {
	if cfg.Analysis.Mode == "" {
		cfg.Analysis.Mode = "weighted"
	}
	if cfg.Analysis.Vocabulary == "" {
		cfg.Analysis.Vocabulary = "keywords"
	}
	if cfg.Analysis.MinChars <= 0 {
		cfg.Analysis.MinChars = 2
	}
	if cfg.Analysis.TopN <= 0 {
		cfg.Analysis.TopN = 3
	}
	if cfg.Import.MaxUploadSize <= 0 {
		cfg.Import.MaxUploadSize = 16 << 20 // 16MB
	}
	if cfg.Import.Workers <= 0 {
		cfg.Import.Workers = 2
	}
}
