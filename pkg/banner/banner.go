package banner

import (
	"fmt"

	"github.com/itoken5577-cpun/zenbu-jibun/pkg/config"
)

const banner = `
███████╗███████╗███╗   ██╗██████╗ ██╗   ██╗         ██╗██╗██████╗ ██╗   ██╗███╗   ██╗
╚══███╔╝██╔════╝████╗  ██║██╔══██╗██║   ██║         ██║██║██╔══██╗██║   ██║████╗  ██║
  ███╔╝ █████╗  ██╔██╗ ██║██████╔╝██║   ██║         ██║██║██████╔╝██║   ██║██╔██╗ ██║
 ███╔╝  ██╔══╝  ██║╚██╗██║██╔══██╗██║   ██║    ██   ██║██║██╔══██╗██║   ██║██║╚██╗██║
███████╗███████╗██║ ╚████║██████╔╝╚██████╔╝    ╚█████╔╝██║██████╔╝╚██████╔╝██║ ╚████║
╚══════╝╚══════╝╚═╝  ╚═══╝╚═════╝  ╚═════╝      ╚════╝ ╚═╝╚═════╝  ╚═════╝ ╚═╝  ╚═══╝
`

// Print shows the startup banner with the effective runtime configuration
// so operators can see what the server resolved at a glance.
func Print(eff config.EffectiveConfigResult, version string) {
	addr := eff.Addr
	if addr == "" && eff.Config != nil {
		addr = eff.Config.Addr()
	}
	dbPath := eff.DBPath
	if dbPath == "" && eff.Config != nil {
		dbPath = eff.Config.Server.DBPath
	}
	src := eff.Source
	if src == "" {
		src = "flags"
	}

	fmt.Print(banner)
	fmt.Println("== Config =====================================================")
	fmt.Printf("Listen:   %s\n", addr)
	fmt.Printf("DB Path:  %s\n", dbPath)
	if version != "" {
		fmt.Printf("Version:  %s\n", version)
	}
	fmt.Printf("Config:   %s\n", src)
	if eff.Config != nil {
		fmt.Printf("Mode:     %s (vocabulary: %s)\n", eff.Config.Analysis.Mode, eff.Config.Analysis.Vocabulary)
	}

	fmt.Println("\n== Endpoints ==================================================")
	fmt.Println("POST   /v1/imports                 - Upload LINE talk-history exports (multipart)")
	fmt.Println("GET    /v1/conversations           - List imported conversations")
	fmt.Println("DELETE /v1/conversations/{name}    - Remove one conversation and its messages")
	fmt.Println("GET    /v1/analysis                - Per-counterparty style/thinking distributions")
	fmt.Println("GET    /v1/analysis/diffs          - Diffs of each counterparty from the global profile")
	fmt.Println("GET    /v1/analysis/summary        - Aggregate-only summary (no raw content)")
	fmt.Println("GET    /v1/analysis/table          - Flat table view for charting")

	fmt.Println("\n== Examples ===================================================")
	fmt.Printf("curl -H 'Authorization: Bearer <key>' 'http://localhost%s/v1/analysis'\n", addr)
	fmt.Printf("curl -H 'Authorization: Bearer <key>' -F 'files=@talk.txt' 'http://localhost%s/v1/imports'\n", addr)

	if eff.Config != nil {
		be := len(eff.Config.Security.APIKeys.Backend)
		ad := len(eff.Config.Security.APIKeys.Admin)
		if be == 0 && ad == 0 {
			fmt.Println("\n== Production? =================================================")
			fmt.Println("No API keys configured; every endpoint is open. Set security.api_keys before exposing this server.")
		}
	}
	fmt.Println()
}
