// Command healthcheck probes the server's /healthz endpoint and exits
// non-zero on failure. Intended as a container HEALTHCHECK binary.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/valyala/fasthttp"
)

func main() {
	target := flag.String("url", "http://127.0.0.1:8080/healthz", "health endpoint to probe")
	timeout := flag.Duration("timeout", 3*time.Second, "probe timeout")
	flag.Parse()

	status, body, err := fasthttp.GetTimeout(nil, *target, *timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "probe failed: %v\n", err)
		os.Exit(1)
	}
	if status != fasthttp.StatusOK {
		fmt.Fprintf(os.Stderr, "unhealthy: status %d body %s\n", status, body)
		os.Exit(1)
	}
	fmt.Println("ok")
}
