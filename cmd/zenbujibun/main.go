package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/itoken5577-cpun/zenbu-jibun/internal/app"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/config"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/logger"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/shutdown"
)

// version is set via ldflags during release builds.
var version = "dev"

func main() {
	_ = godotenv.Load(".env")

	addrVal, dbVal, cfgVal, setFlags := config.ParseCommandFlags()
	cfgPath := config.ResolveConfigPath(cfgVal, setFlags["config"])
	eff := config.LoadEffective(cfgPath, addrVal, dbVal, setFlags)

	logger.Init(eff.Config.Logging.Level)

	a, err := app.New(eff, version)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	ctx := shutdown.SetupSignalHandler()
	if err := a.Run(ctx); err != nil {
		logger.Error("server_failed", "error", err)
		_ = a.Close()
		log.Fatalf("server failed: %v", err)
	}
	if err := a.Close(); err != nil {
		logger.Error("shutdown_error", "error", err)
	}
	logger.Info("stopped")
}
