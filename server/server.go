package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/alicebob/miniredis"
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"

	"github.com/sanctionwatch/screening-endpoint/application"
	"github.com/sanctionwatch/screening-endpoint/database"
	"github.com/sanctionwatch/screening-endpoint/types"
)

var Now = time.Now // used to mock time in tests

// Screen-result cache shared by all request handlers
var RState *RedisState

type ScreeningServer struct {
	logger        log.Logger
	version       string
	startTime     time.Time
	listenAddress string
	lists         *application.ListService
	db            database.Store
}

func NewScreeningServer(logger log.Logger, version, listenAddress, redisUrl string, lists *application.ListService, db database.Store) (*ScreeningServer, error) {
	var err error

	if redisUrl == "dev" {
		logger.Info("Using integrated in-memory Redis instance")
		redisServer, err := miniredis.Run()
		if err != nil {
			return nil, err
		}
		redisUrl = redisServer.Addr()
	}

	logger.Info("Connecting to redis", "redisUrl", redisUrl)
	RState, err = NewRedisState(redisUrl)
	if err != nil {
		return nil, errors.Wrap(err, "Redis init error")
	}

	return &ScreeningServer{
		logger:        logger,
		version:       version,
		startTime:     Now(),
		listenAddress: listenAddress,
		lists:         lists,
		db:            db,
	}, nil
}

func (s *ScreeningServer) Start() {
	s.logger.Info("Starting screening-endpoint", "version", s.version, "listenAddress", s.listenAddress)

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.HandleScreenRequest)
	mux.HandleFunc("/health", s.handleHealthRequest)

	if err := http.ListenAndServe(s.listenAddress, MetricsMiddleware(mux)); err != nil {
		s.logger.Crit("Failed to start screening endpoint", "error", err)
	}
}

// HandleScreenRequest serves POST screening requests on the root URL: either
// one ScreenRequest object or a batch array of them.
func (s *ScreeningServer) HandleScreenRequest(respw http.ResponseWriter, req *http.Request) {
	respw.Header().Set("Access-Control-Allow-Origin", "*")
	respw.Header().Set("Access-Control-Allow-Headers", "Accept,Content-Type")

	if req.Method == http.MethodOptions {
		respw.WriteHeader(http.StatusOK)
		return
	}

	if req.Method != http.MethodPost {
		respw.WriteHeader(http.StatusNotFound)
		return
	}

	handler := NewScreenRequestHandler(&respw, req, s.lists, s.db)
	handler.process()
}

func (s *ScreeningServer) handleHealthRequest(respw http.ResponseWriter, req *http.Request) {
	snapshot := s.lists.Current()
	res := types.HealthResponse{
		Now:          Now(),
		StartTime:    s.startTime,
		Version:      s.version,
		ListVersion:  snapshot.Version,
		NumAddresses: snapshot.Set.Len(),
	}

	jsonResp, err := json.Marshal(res)
	if err != nil {
		s.logger.Error("healthCheck json error", "error", err)
		respw.WriteHeader(http.StatusInternalServerError)
		return
	}

	respw.Header().Set("Content-Type", "application/json")
	respw.WriteHeader(http.StatusOK)
	respw.Write(jsonResp)
}
