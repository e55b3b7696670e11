package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/mark-gargan/adguard-rewrite-sync/internal/adguard"
	"github.com/mark-gargan/adguard-rewrite-sync/internal/config"
	"github.com/mark-gargan/adguard-rewrite-sync/internal/dnscheck"
	"github.com/mark-gargan/adguard-rewrite-sync/internal/localip"
	"github.com/mark-gargan/adguard-rewrite-sync/internal/service"
)

const usage = `adguard-rewrite-sync updates AdGuard Home DNS rewrite rules so the
configured hostnames keep pointing at this machine's current local IP.

Usage: adguard-rewrite-sync [options]

Options:
  --dry-run   Resolve the IP, fetch existing rules, and print the plan
              without making any changes
  -h, --help  Show this help message

Environment variables (a .env file in the working directory is loaded first):
  ADGUARD_HOST        AdGuard Home host (required)
  ADGUARD_PORT        API port (default 80)
  ADGUARD_USE_HTTPS   Use HTTPS for the API (default false)
  ADGUARD_USERNAME    API username
  ADGUARD_PASSWORD    API password
  HOSTNAME            Single hostname (legacy form)
  HOSTNAMES           Comma-separated hostnames, takes precedence over HOSTNAME
                      Example: HOSTNAMES=myhost.local,server.local,api.local
  ADGUARD_TIMEOUT     HTTP timeout (default 10s)
  ADGUARD_FILE_SHIM   Path to a JSON file used instead of the live API (testing)
  VERIFY_DNS          Query the appliance's DNS after applying (default false)
  VERIFY_DNS_PORT     DNS port used for verification (default 53)
`

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	dryRun := flag.Bool("dry-run", false, "compute and print the plan without applying it")
	flag.Parse()

	// A missing .env file is fine; plain environment variables work too.
	_ = godotenv.Load()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Error("Failed to load configuration")
		return 1
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Error("Invalid configuration")
		return 1
	}

	// Talk to the real appliance, or to the file shim for offline testing.
	var store adguard.RewriteStore
	if cfg.UseFileShim() {
		log.WithField("path", cfg.AdGuard.FileShim).Info("Using file shim instead of the AdGuard API")
		store = adguard.NewFileShim(cfg.AdGuard.FileShim)
	} else {
		store = adguard.New(cfg.AdGuard.BaseURL(), cfg.AdGuard.Username, cfg.AdGuard.Password, cfg.AdGuard.Timeout)
	}

	var checker *dnscheck.Checker
	if cfg.Verify.Enabled && !cfg.UseFileShim() {
		checker = dnscheck.New(cfg.DNSAddr())
	}

	svc := service.NewSyncService(localip.Detect(), store, checker, cfg.Rewrites.HostnameList())

	result, err := svc.Run(context.Background(), *dryRun)
	if err != nil {
		log.WithError(err).Error("Sync aborted")
		return 1
	}
	if !result.OK() {
		return 1
	}
	return 0
}
