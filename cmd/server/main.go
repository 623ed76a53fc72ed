package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/sanctionwatch/screening-endpoint/adapters/webfile"
	"github.com/sanctionwatch/screening-endpoint/application"
	"github.com/sanctionwatch/screening-endpoint/database"
	"github.com/sanctionwatch/screening-endpoint/metrics"
	"github.com/sanctionwatch/screening-endpoint/server"
)

var (
	version = "dev" // is set during build process

	// defaults
	defaultDebug          = os.Getenv("DEBUG") == "1"
	defaultLogJSON        = os.Getenv("LOG_JSON") == "1"
	defaultListenAddress  = "127.0.0.1:9000"
	defaultMetricsAddress = "127.0.0.1:9100"
	defaultRedisUrl       = "localhost:6379"
	defaultRefreshMinutes = 60
	defaultServiceName    = getEnvAsStrOrDefault("SERVICE_NAME", "screening-endpoint")

	// cli flags
	versionPtr     = flag.Bool("version", false, "just print the program version")
	listenAddress  = flag.String("listen", getEnvAsStrOrDefault("LISTEN_ADDR", defaultListenAddress), "Listen address")
	metricsAddress = flag.String("metrics", getEnvAsStrOrDefault("METRICS_ADDR", defaultMetricsAddress), "Metrics listen address")
	listUrl        = flag.String("listUrl", os.Getenv("LIST_URL"), "URL serving the sanctioned-address list document")
	listFile       = flag.String("listFile", os.Getenv("LIST_FILE"), "Path to a local sanctioned-address list document (instead of listUrl)")
	refreshMinutes = flag.Int("refreshMinutes", getEnvAsIntOrDefault("LIST_REFRESH_MINUTES", defaultRefreshMinutes), "minutes between list refreshes (0 to disable)")
	redisUrl       = flag.String("redis", getEnvAsStrOrDefault("REDIS_URL", defaultRedisUrl), "URL for Redis (use 'dev' to use integrated in-memory redis)")
	psqlDsn        = flag.String("psql", os.Getenv("POSTGRES_DSN"), "Postgres DSN")
	debugPtr       = flag.Bool("debug", defaultDebug, "print debug output")
	logJSONPtr     = flag.Bool("log-json", defaultLogJSON, "log in JSON")
	serviceName    = flag.String("serviceName", defaultServiceName, "name of the service which will be used in the logs")
)

func main() {
	flag.Parse()

	logLevel := log.LevelInfo
	if *debugPtr {
		logLevel = log.LevelDebug
	}

	var handler slog.Handler = log.NewTerminalHandlerWithLevel(os.Stderr, logLevel, true)
	if *logJSONPtr {
		handler = log.JSONHandlerWithLevel(os.Stderr, logLevel)
	}

	log.SetDefault(log.NewLogger(handler))
	logger := log.New("service", *serviceName)

	// Perhaps print only the version
	if *versionPtr {
		logger.Info("screening-endpoint", "version", version)
		return
	}

	logger.Info("Init screening-endpoint", "version", version)

	if *listUrl == "" && *listFile == "" {
		logger.Crit("Cannot screen without a sanctioned-address list. Use -listUrl or -listFile.")
	}

	// Setup the sanctioned-address list
	var lists *application.ListService
	var err error
	if *listFile != "" {
		logger.Info("Loading sanctioned-address list from file", "listFile", *listFile)
		lists, err = application.NewListServiceFromFile(*listFile)
	} else {
		logger.Info("Loading sanctioned-address list from URL", "listUrl", *listUrl, "refreshMinutes", *refreshMinutes)
		fetcher := webfile.NewFetcher(*listUrl)
		lists, err = application.StartListService(context.Background(), fetcher, time.Duration(*refreshMinutes)*time.Minute)
	}
	if err != nil {
		logger.Crit("Error loading sanctioned-address list", "error", err)
	}

	// Setup database
	var db database.Store
	if *psqlDsn == "" {
		db = database.NewMockStore()
	} else {
		db = database.NewPostgresStore(*psqlDsn)
	}

	go func() {
		logger.Info("Starting metrics server", "metricsAddress", *metricsAddress)
		if err := metrics.DefaultServer(*metricsAddress).ListenAndServe(); err != nil {
			logger.Error("Metrics server error", "error", err)
		}
	}()

	// Start the endpoint
	s, err := server.NewScreeningServer(logger, version, *listenAddress, *redisUrl, lists, db)
	if err != nil {
		logger.Crit("Server init error", "error", err)
	}
	s.Start()
}

func getEnvAsStrOrDefault(key string, defaultValue string) string {
	ret := os.Getenv(key)
	if ret == "" {
		ret = defaultValue
	}
	return ret
}

func getEnvAsIntOrDefault(name string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(name); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
