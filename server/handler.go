// Screening request handler for a single / batch screening request
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"

	"github.com/sanctionwatch/screening-endpoint/application"
	"github.com/sanctionwatch/screening-endpoint/database"
	"github.com/sanctionwatch/screening-endpoint/metrics"
	"github.com/sanctionwatch/screening-endpoint/screening"
	"github.com/sanctionwatch/screening-endpoint/types"
)

type ScreenRequestHandler struct {
	respw       *http.ResponseWriter
	req         *http.Request
	logger      log.Logger
	timeStarted time.Time
	uid         uuid.UUID
	lists       *application.ListService
	db          database.Store
}

func NewScreenRequestHandler(respw *http.ResponseWriter, req *http.Request, lists *application.ListService, db database.Store) *ScreenRequestHandler {
	return &ScreenRequestHandler{
		respw:       respw,
		req:         req,
		timeStarted: Now(),
		uid:         uuid.New(),
		lists:       lists,
		db:          db,
	}
}

func (h *ScreenRequestHandler) process() {
	h.logger = log.New("uid", h.uid)

	defer h.req.Body.Close()
	body, err := io.ReadAll(h.req.Body)
	if err != nil {
		h.logger.Error("Failed to read request body", "error", err)
		(*h.respw).WriteHeader(http.StatusBadRequest)
		return
	}

	if len(body) == 0 {
		(*h.respw).WriteHeader(http.StatusBadRequest)
		return
	}

	// One snapshot for the whole request: a batch is screened against a
	// single list version even if a refresh lands mid-request.
	snapshot := h.lists.Current()

	if isBatch(body) {
		var screenReqs []types.ScreenRequest
		if err = json.Unmarshal(body, &screenReqs); err != nil {
			h.logger.Warn("Failed to parse batch payload", "error", err)
			(*h.respw).WriteHeader(http.StatusBadRequest)
			return
		}
		results := make([]types.ScreenResult, len(screenReqs))
		for i, screenReq := range screenReqs {
			results[i] = h.screenOne(snapshot, screenReq)
		}
		h.writeJSON(results)
		return
	}

	var screenReq types.ScreenRequest
	if err = json.Unmarshal(body, &screenReq); err != nil {
		h.logger.Warn("Failed to parse payload", "error", err)
		(*h.respw).WriteHeader(http.StatusBadRequest)
		return
	}
	h.writeJSON(h.screenOne(snapshot, screenReq))
}

func (h *ScreenRequestHandler) screenOne(snapshot *application.Snapshot, screenReq types.ScreenRequest) types.ScreenResult {
	if !screening.IsKnownChain(screenReq.Chain) {
		// Deliberate pass-through: screening still runs, degraded to exact
		// matching on the trimmed string.
		h.logger.Warn("Screening unknown chain", "chain", screenReq.Chain)
		metrics.IncUnknownChainScreening()
	}

	canonical := screening.Canonicalize(screenReq.Chain, screenReq.Address)

	if cached, found, err := RState.GetScreenResult(snapshot.Version.SHA256, screenReq.Chain, canonical); err != nil {
		h.logger.Error("Redis error reading cached screen result", "error", err)
		metrics.IncRedisErr()
	} else if found {
		metrics.IncScreenCacheHit()
		result := *cached
		// Echo this caller's input, not the one that populated the cache.
		result.Address = screenReq.Address
		result.Chain = screenReq.Chain
		go h.saveScreeningEntry(screenReq, canonical, result)
		return result
	}

	result := screening.Screen(screenReq.Chain, screenReq.Address, snapshot.Set, snapshot.Version)

	switch result.Reason {
	case types.ReasonExactMatch:
		metrics.IncScreenMatch()
		h.logger.Info("Sanctioned address match", "chain", screenReq.Chain, "canonicalAddress", canonical, "listSource", snapshot.Version.Source)
	case types.ReasonNoExactMatch:
		metrics.IncScreenNoMatch()
	case types.ReasonInvalidAddressSyntax:
		metrics.IncScreenInvalidSyntax()
	}

	if err := RState.SetScreenResult(snapshot.Version.SHA256, screenReq.Chain, canonical, &result); err != nil {
		h.logger.Error("Redis error caching screen result", "error", err)
		metrics.IncRedisErr()
	}

	go h.saveScreeningEntry(screenReq, canonical, result)
	return result
}

func (h *ScreenRequestHandler) saveScreeningEntry(screenReq types.ScreenRequest, canonical string, result types.ScreenResult) {
	entry := &database.ScreeningEntry{
		Id:                uuid.New(),
		InsertedAt:        time.Now().UTC(),
		RequestDurationMs: time.Since(h.timeStarted).Milliseconds(),
		Chain:             screenReq.Chain,
		Address:           screenReq.Address,
		CanonicalAddress:  canonical,
		Match:             result.Match,
		RiskScore:         result.RiskScore,
		Reason:            result.Reason,
		ListSource:        result.ListVersion.Source,
		ListSha256:        result.ListVersion.SHA256,
		IpHash:            GetIPHash(h.req),
		Origin:            h.req.Header.Get("Origin"),
	}
	if err := h.db.SaveScreeningEntry(entry); err != nil {
		h.logger.Error("Failed to save screening entry", "error", err)
		metrics.IncDatabaseErr()
	}
}

func (h *ScreenRequestHandler) writeJSON(v interface{}) {
	jsonResp, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("Failed to marshal response", "error", err)
		(*h.respw).WriteHeader(http.StatusInternalServerError)
		return
	}
	(*h.respw).Header().Set("Content-Type", "application/json")
	(*h.respw).WriteHeader(http.StatusOK)
	(*h.respw).Write(jsonResp)
}

func isBatch(body []byte) bool {
	for _, b := range body {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		default:
			return b == '['
		}
	}
	return false
}
