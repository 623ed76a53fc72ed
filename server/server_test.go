/*
 * End-to-end style tests: a mock list source feeds the list service, the
 * server screens against it with the integrated in-memory redis.
 */
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/require"

	"github.com/sanctionwatch/screening-endpoint/adapters/webfile"
	"github.com/sanctionwatch/screening-endpoint/application"
	"github.com/sanctionwatch/screening-endpoint/database"
	"github.com/sanctionwatch/screening-endpoint/testutils"
	"github.com/sanctionwatch/screening-endpoint/types"
)

func newTestServer(t *testing.T) *ScreeningServer {
	t.Helper()
	testutils.MockListSourceReset()
	mockSource := httptest.NewServer(http.HandlerFunc(testutils.ListSourceHandler))
	t.Cleanup(mockSource.Close)

	fetcher := webfile.NewFetcher(mockSource.URL)
	lists, err := application.StartListService(context.Background(), fetcher, 0)
	require.Nil(t, err, err)

	s, err := NewScreeningServer(log.New("service", "test"), "test", "localhost:0", "dev", lists, database.NewMemStore())
	require.Nil(t, err, err)
	return s
}

func postScreen(t *testing.T, s *ScreeningServer, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()
	s.HandleScreenRequest(rec, req)
	return rec
}

func TestScreenSingleMatch(t *testing.T) {
	s := newTestServer(t)

	// Mixed-case input must canonicalize onto the stored lowercase entry
	rec := postScreen(t, s, `{"chain":"ETH","address":"0x7F367cc41522cE07553e823bf3be79A889DEbe1B"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res types.ScreenResult
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.True(t, res.Match)
	require.Equal(t, types.MaxRiskScore, res.RiskScore)
	require.Equal(t, types.ReasonExactMatch, res.Reason)
	require.Equal(t, "0x7F367cc41522cE07553e823bf3be79A889DEbe1B", res.Address)
	require.Equal(t, "MOCK_SOURCE", res.ListVersion.Source)
	require.NotEqual(t, "", res.ListVersion.SHA256)
}

func TestScreenSingleNoMatch(t *testing.T) {
	s := newTestServer(t)

	rec := postScreen(t, s, `{"chain":"ETH","address":"0x1111111111111111111111111111111111111111"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res types.ScreenResult
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.False(t, res.Match)
	require.Equal(t, 0, res.RiskScore)
	require.Equal(t, types.ReasonNoExactMatch, res.Reason)
}

func TestScreenInvalidSyntax(t *testing.T) {
	s := newTestServer(t)

	rec := postScreen(t, s, `{"chain":"ETH","address":"not-an-address"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res types.ScreenResult
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.False(t, res.Match)
	require.Equal(t, 0, res.RiskScore)
	require.Equal(t, types.ReasonInvalidAddressSyntax, res.Reason)
}

func TestScreenChainAlias(t *testing.T) {
	s := newTestServer(t)

	// Entry is stored under BTC, screened as XBT
	rec := postScreen(t, s, `{"chain":"XBT","address":"BC1QXY2KGDYGJRSQTZQ2N0YRF2493P83KKFJHX0WLH"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res types.ScreenResult
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.True(t, res.Match)
	require.Equal(t, types.ReasonExactMatch, res.Reason)
}

func TestScreenBatch(t *testing.T) {
	s := newTestServer(t)

	rec := postScreen(t, s, `[
		{"chain":"ETH","address":"0x7f367cc41522ce07553e823bf3be79a889debe1b"},
		{"chain":"ETH","address":"0x1111111111111111111111111111111111111111"},
		{"chain":"BTC","address":"garbage"}
	]`)
	require.Equal(t, http.StatusOK, rec.Code)

	var results []types.ScreenResult
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Equal(t, 3, len(results))
	require.Equal(t, types.ReasonExactMatch, results[0].Reason)
	require.Equal(t, types.ReasonNoExactMatch, results[1].Reason)
	require.Equal(t, types.ReasonInvalidAddressSyntax, results[2].Reason)
}

func TestScreenCacheHitEchoesInput(t *testing.T) {
	s := newTestServer(t)

	// Two casings of the same address share a canonical form, so the second
	// request is served from the cache but must echo its own input.
	rec := postScreen(t, s, `{"chain":"ETH","address":"0x7f367cc41522ce07553e823bf3be79a889debe1b"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postScreen(t, s, `{"chain":"ETH","address":"0x7F367CC41522CE07553E823BF3BE79A889DEBE1B"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res types.ScreenResult
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.True(t, res.Match)
	require.Equal(t, "0x7F367CC41522CE07553E823BF3BE79A889DEBE1B", res.Address)
}

func TestScreenMethodHandling(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	rec := httptest.NewRecorder()
	s.HandleScreenRequest(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	s.HandleScreenRequest(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScreenBadPayload(t *testing.T) {
	s := newTestServer(t)

	rec := postScreen(t, s, ``)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postScreen(t, s, `{not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postScreen(t, s, `[{not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthRequest(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.handleHealthRequest(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var res types.HealthResponse
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, "test", res.Version)
	require.Equal(t, len(testutils.MockListAddresses), res.NumAddresses)
	require.Equal(t, "MOCK_SOURCE", res.ListVersion.Source)
}
