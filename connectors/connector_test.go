package connectors

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<sdnList></sdnList>"))
	}))
	defer srv.Close()

	source := Source{Name: "TEST_SOURCE", URL: srv.URL}
	raw, err := Download(context.Background(), source)
	require.Nil(t, err, err)
	require.Equal(t, "TEST_SOURCE", raw.Source)
	require.Equal(t, srv.URL, raw.URI)
	require.Equal(t, []byte("<sdnList></sdnList>"), raw.Bytes)
	require.Len(t, raw.SHA256, 64)
	require.False(t, raw.RetrievedAt.IsZero())
}

func TestDownloadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := Download(context.Background(), Source{Name: "TEST_SOURCE", URL: srv.URL})
	require.NotNil(t, err)
}

func TestSourceByName(t *testing.T) {
	source, err := SourceByName("OFAC_SDN_ADVANCED")
	require.Nil(t, err, err)
	require.Equal(t, OFACSDNAdvanced, source)

	_, err = SourceByName("NOT_A_SOURCE")
	require.NotNil(t, err)
}

func TestSourcesConfigOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	content := "urls:\n  UK_SANCTIONS_LIST: https://example.org/uk.xml\nrefreshMinutes: 120\n"
	require.Nil(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := ReadSourcesConfigFromFile(path)
	require.Nil(t, err, err)
	require.Equal(t, 120, config.RefreshMinutes)

	uk, err := config.SourceFor("UK_SANCTIONS_LIST")
	require.Nil(t, err, err)
	require.Equal(t, "https://example.org/uk.xml", uk.URL)

	// Sources without an override keep their built-in URL.
	ofac, err := config.SourceFor("OFAC_SDN_ADVANCED")
	require.Nil(t, err, err)
	require.Equal(t, OFACSDNAdvanced.URL, ofac.URL)
}

func TestSourcesConfigEmptyFilename(t *testing.T) {
	config, err := ReadSourcesConfigFromFile("")
	require.Nil(t, err, err)

	source, err := config.SourceFor("UN_CONSOLIDATED")
	require.Nil(t, err, err)
	require.Equal(t, UNConsolidated, source)
}
