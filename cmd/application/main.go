package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"sellsheet_api/config"
	"sellsheet_api/internal/sellsheet/app"
	"sellsheet_api/metrics"
	"sellsheet_api/pkg/dbconnect"
	"sellsheet_api/pkg/dbconnect/postgres"
	"sellsheet_api/pkg/dbconnect/sqlite"
	"sellsheet_api/pkg/logger"
	"sellsheet_api/pkg/middleware"
)

const (
	modeExport    = "export"
	modeTranslate = "translate"
	modeMigrate   = "migrate"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the yaml config")
	mode := flag.String("mode", modeExport, "export | translate | migrate")
	setID := flag.Int64("set", 0, "auction set id to export")
	products := flag.String("products", "", "comma separated inventory product ids to translate")
	lang := flag.String("lang", "", "target language, config value when empty")
	dryRun := flag.Bool("dry-run", false, "assemble without uploading")
	metricsAddr := flag.String("metrics-addr", "", "serve /metrics on this address")
	logPath := flag.String("log", "", "also write logs to this file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("failed to load .env: %v", err)
	}

	var writer io.Writer
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("open log file: %v", err)
		}
		defer f.Close()
		writer = f
	}
	_log := logger.NewLogger(writer, "[main]")
	defer _log.Sync()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr, _log)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := app.NewSellsheetServer(connector(cfg.Database, _log), *cfg, writer)
	defer server.Close()

	if err := run(ctx, server, *mode, *setID, *products, *lang, *dryRun); err != nil {
		_log.Error("%s failed: %v", *mode, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, server *app.SellsheetServer, mode string, setID int64, products, lang string, dryRun bool) error {
	switch mode {
	case modeMigrate:
		return server.Migrate(ctx)
	case modeExport:
		if setID <= 0 {
			return errors.New("-set is required for export")
		}
		report, err := server.Export(ctx, setID, dryRun)
		if report != nil {
			printJSON(report)
		}
		return err
	case modeTranslate:
		ids, err := parseIDs(products)
		if err != nil {
			return err
		}
		results, err := server.TranslateProducts(ctx, ids, lang)
		if results != nil {
			printJSON(results)
		}
		return err
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

func connector(cfg config.DatabaseConfig, log logger.Logger) dbconnect.Database {
	if cfg.GetDriver() == config.DriverSQLite {
		return sqlite.NewSQLiteConnector(cfg.Path)
	}
	return postgres.NewPgConnector(cfg, log)
}

func parseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad product id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, errors.New("-products is required for translate")
	}
	return ids, nil
}

func serveMetrics(addr string, log logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", middleware.PrometheusMiddleware("metrics", metrics.MetricsHandler()))
	log.Log("metrics on %s/metrics", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("metrics server: %v", err)
	}
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Printf("encode result: %v", err)
	}
}
