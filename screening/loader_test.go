package screening

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var validListDocument = []byte(`{
	"metadata": {
		"source": "OFAC_SDN_ADVANCED",
		"retrieved_at_utc": "2026-02-15T00:00:00Z",
		"sha256": "abc123",
		"uri": "https://www.treasury.gov/ofac/downloads/sdn_advanced.xml"
	},
	"addresses": [
		{"chain": "ETH", "address": "0x7F367CC41522CE07553E823BF3BE79A889DEBE1B"},
		{"chain": "XBT", "address": "bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh"}
	]
}`)

func TestParseListDocument(t *testing.T) {
	set, version, err := ParseListDocument(validListDocument)
	require.Nil(t, err, err)

	require.Equal(t, "OFAC_SDN_ADVANCED", version.Source)
	require.Equal(t, "abc123", version.SHA256)
	require.Equal(t, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), version.RetrievedAt)

	// Entries were canonicalized and alias-folded on the way in.
	require.Equal(t, 2, set.Len())
	require.True(t, set.Contains("ETH", "0x7f367cc41522ce07553e823bf3be79a889debe1b"))
	require.True(t, set.Contains("BTC", "bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh"))
}

func TestParseListDocumentMetadataDefaults(t *testing.T) {
	set, version, err := ParseListDocument([]byte(`{"addresses": []}`))
	require.Nil(t, err, err)
	require.Equal(t, 0, set.Len())

	// Missing metadata is not a load failure, it falls back to sentinels.
	require.Equal(t, "UNKNOWN", version.Source)
	require.Equal(t, time.Unix(0, 0).UTC(), version.RetrievedAt)
}

func TestParseListDocumentTimestampWithoutZone(t *testing.T) {
	doc := []byte(`{"metadata": {"source": "X", "retrieved_at_utc": "2026-02-15T12:30:00"}, "addresses": []}`)
	_, version, err := ParseListDocument(doc)
	require.Nil(t, err, err)
	require.Equal(t, time.Date(2026, 2, 15, 12, 30, 0, 0, time.UTC), version.RetrievedAt)
}

func TestParseListDocumentMissingAddresses(t *testing.T) {
	_, _, err := ParseListDocument([]byte(`{"metadata": {"source": "X"}}`))
	require.NotNil(t, err)
	require.True(t, errors.Is(err, ErrMalformedList))
}

func TestParseListDocumentMalformedEntry(t *testing.T) {
	doc := []byte(`{"addresses": [{"chain": "ETH"}]}`)
	_, _, err := ParseListDocument(doc)
	require.NotNil(t, err)
	require.True(t, errors.Is(err, ErrMalformedList))

	doc = []byte(`{"addresses": [{"address": "0x7f367cc41522ce07553e823bf3be79a889debe1b"}]}`)
	_, _, err = ParseListDocument(doc)
	require.NotNil(t, err)
	require.True(t, errors.Is(err, ErrMalformedList))
}

func TestParseListDocumentInvalidJSON(t *testing.T) {
	_, _, err := ParseListDocument([]byte(`{not json`))
	require.NotNil(t, err)
	require.True(t, errors.Is(err, ErrMalformedList))
}
