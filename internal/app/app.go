package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"forexscan/internal/adapters/alphavantage"
	"forexscan/internal/adapters/cache"
	"forexscan/internal/api"
	"forexscan/internal/config"
	"forexscan/internal/domain"
	httpserver "forexscan/internal/platform/http"
	"forexscan/internal/render"
	"forexscan/internal/scan"
	"forexscan/internal/snapshot"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// NewFlagSet declares the CLI surface. Flags override env vars and the
// optional config.yaml through viper bindings in config.Init.
func NewFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("forexscan", pflag.ContinueOnError)
	flags.StringSlice("pairs", config.DefaultPairs, "currency pairs to scan, BASE/QUOTE")
	flags.String("api-key", "", "Alpha Vantage API key (overrides ALPHAVANTAGE_API_KEY)")
	flags.String("output", outputTable, "output format: table or json")
	flags.String("save", "", "path to save a JSON snapshot")
	flags.Int("retry", 1, "retries per pair on API failure")
	flags.Float64("retry-delay", 5, "seconds to wait between retries")
	flags.Bool("demo", false, "use bundled demo data instead of the live API")
	flags.Bool("serve", false, "expose rates over HTTP instead of a one-shot scan")
	flags.String("port", "8080", "HTTP port for --serve")
	flags.Duration("watch", 0, "rescan on this interval, e.g. 1m (one-shot when zero)")
	return flags
}

// Run wires the application components and executes the selected mode.
func Run(args []string) error {
	flags := NewFlagSet()
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	appCfg, err := config.Init(flags)
	if err != nil {
		return err
	}

	// Logger; stdout stays reserved for scan output
	logrus.SetOutput(os.Stderr)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}

	output, _ := flags.GetString("output")
	if output != outputTable && output != outputJSON {
		return fmt.Errorf("invalid output format %q: use table or json", output)
	}
	savePath, _ := flags.GetString("save")

	pairs, err := domain.ParsePairs(appCfg.Scan.Pairs)
	if err != nil {
		return err
	}

	if demo, _ := flags.GetBool("demo"); demo {
		rates, lookupErr := scan.DemoSource{}.Lookup(pairs)
		if lookupErr != nil {
			return lookupErr
		}
		return emit(pairs, rates, output, savePath)
	}

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpTimeout := appCfg.Provider.Timeout()
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	fetcher := alphavantage.NewClient(
		&http.Client{Timeout: httpTimeout},
		appCfg.Provider.BaseURL,
		appCfg.Provider.APIKey,
	)
	scanner := scan.NewScanner(fetcher, scan.Options{
		APIKey:     appCfg.Provider.APIKey,
		Retries:    appCfg.Scan.Retries,
		RetryDelay: appCfg.Scan.RetryDelay(),
	})

	if serve, _ := flags.GetBool("serve"); serve {
		return runServe(ctx, appCfg, scanner)
	}

	if watchInterval, _ := flags.GetDuration("watch"); watchInterval > 0 {
		return runWatch(ctx, scanner, pairs, watchInterval, output, savePath)
	}

	rates, err := scanner.Run(ctx, pairs)
	if err != nil {
		return err
	}
	return emit(pairs, rates, output, savePath)
}

// emit prints the scan result and optionally writes a snapshot file.
func emit(pairs []domain.CurrencyPair, rates []domain.ExchangeRate, output string, savePath string) error {
	switch output {
	case outputJSON:
		rendered, err := render.JSON(rates)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
	default:
		fmt.Println(render.Table(rates))
	}

	if savePath != "" {
		doc := snapshot.Build(pairs, rates, time.Now())
		if err := doc.Write(savePath); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
	}
	return nil
}

func runWatch(ctx context.Context, scanner *scan.Scanner, pairs []domain.CurrencyPair, interval time.Duration, output string, savePath string) error {
	watcher := scan.NewWatcher(scanner, pairs, interval, func(rates []domain.ExchangeRate) error {
		return emit(pairs, rates, output, savePath)
	})
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	logrus.Infof("✅ Watching %d pairs every %s", len(pairs), interval)

	<-ctx.Done()
	return watcher.Shutdown()
}

func runServe(ctx context.Context, appCfg *config.AppConfig, scanner *scan.Scanner) error {
	rateCache, err := cache.NewRateCache(appCfg.Cache.MaxItems, appCfg.Cache.TTL())
	if err != nil {
		return err
	}
	defer rateCache.Close()

	router := api.NewRouter(api.NewHandler(scanner, rateCache))
	return httpserver.Start(ctx, appCfg.HTTPServer.Port, router)
}
