// cmd/tools/report-cli/main.go

// report-cli generates one compliance report and prints it to stdout as JSON.
//
// Usage:
//
//	report-cli [-jurisdiction nyc|philly] [-config path] "140 West Street, Manhattan"
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"compliance-engine/internal/common/config"
	"compliance-engine/internal/common/logger"
	"compliance-engine/internal/report"
)

func main() {
	jurisdiction := flag.String("jurisdiction", "nyc", "jurisdiction rule set to use")
	configPath := flag.String("config", "", "path to a config file (defaults to ./configs/config.yaml)")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall generation timeout")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, `usage: report-cli [flags] "ADDRESS"`)
		flag.PrintDefaults()
		os.Exit(2)
	}
	address := flag.Arg(0)

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fail(fmt.Errorf("config load failed: %w", err))
	}

	// Keep stdout clean for the report payload.
	zapLog := logger.New("error", "json")
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	engine, err := report.BuildEngine(cfg, log, nil, nil)
	if err != nil {
		fail(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	rep, err := engine.Generate(ctx, *jurisdiction, address)
	if err != nil {
		fail(err)
	}

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		fail(err)
	}
	fmt.Println(string(out))
}

// fail prints a machine-readable failure envelope and exits non-zero, so the
// tool composes with scripts the same way the HTTP API composes with clients.
func fail(err error) {
	payload, _ := json.Marshal(map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
	fmt.Println(string(payload))
	os.Exit(1)
}
