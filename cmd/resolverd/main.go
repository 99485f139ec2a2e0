// Command resolverd is an iterative DNS resolver for A and MX queries:
// given a hostname, it walks the delegation chain itself starting from
// the root servers, rather than handing the query to a recursive
// resolver.
package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/dnsscience/resolverd/internal/config"
	"github.com/dnsscience/resolverd/internal/logging"
	"github.com/dnsscience/resolverd/internal/metrics"
	"github.com/dnsscience/resolverd/internal/random"
	"github.com/dnsscience/resolverd/internal/resolve"
	"github.com/dnsscience/resolverd/internal/rootservers"
	"github.com/dnsscience/resolverd/internal/transport"
	"github.com/miekg/dns"
	"go.uber.org/zap"
)

var (
	wantMX      = flag.Bool("mx", false, "perform an MX instead of an A query")
	verbose     = flag.Bool("verbose", false, "print detailed program output to screen")
	configPath  = flag.String("config", "", "optional YAML configuration file")
	metricsAddr = flag.String("metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9153) instead of exiting after resolution")
)

func init() {
	flag.BoolVar(wantMX, "m", false, "shorthand for -mx")
	flag.BoolVar(verbose, "v", false, "shorthand for -verbose")
}

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: resolverd [-mx] [-verbose] [-config path] <hostname>")
		os.Exit(2)
	}
	hostname := flag.Arg(0)

	if !dns.IsDomainName(hostname) {
		fmt.Fprintf(os.Stderr, "ERROR: %q is not a valid hostname.\n", hostname)
		os.Exit(1)
	}

	cfg := config.Defaults()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: could not load config %s: %v\n", *configPath, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *verbose {
		cfg.Verbose = true
	}

	logger, err := logging.New(cfg.LogFile, cfg.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: could not open log file %s: %v\n", cfg.LogFile, err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	roots := rootservers.Default
	if len(cfg.RootServers) > 0 {
		roots = cfg.RootServers
	}

	if cfg.ServerTimeoutMS > 0 {
		transport.PerServerTimeout = cfg.ServerTimeout()
	}

	engine := resolve.New(transport.UDPDialer{}, random.CryptoSource{}, roots)
	engine.Logger = logger
	if cfg.MaxSteps > 0 {
		engine.MaxSteps = cfg.MaxSteps
	}

	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	// Resolution failure is reported on stdout, not via exit status: the
	// process always exits zero once a resolution attempt has run.
	answer, err := engine.Resolve(hostname, *wantMX)
	switch {
	case err == nil:
		if *wantMX {
			fmt.Printf("Mail Server for %s: %s\n", hostname, answer)
		} else {
			fmt.Printf("IP address for %s: %s\n", hostname, answer)
		}
	case errors.Is(err, resolve.ErrNoRecord):
		fmt.Printf("Error: The hostname '%s' does not have an A or MX record.\n", hostname)
	default:
		fmt.Println("ERROR: Could not resolve request.")
	}

	if *metricsAddr != "" {
		logger.Info("serving metrics, press ctrl-c to exit", zap.String("addr", *metricsAddr))
		select {}
	}
}
