package screening

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/sanctionwatch/screening-endpoint/types"
)

// ErrMalformedList marks a list document that must not be screened against.
var ErrMalformedList = errors.New("malformed sanctions list document")

const unknownSource = "UNKNOWN"

// Exporters disagree on whether retrieved_at_utc carries a zone designator.
const isoNoZoneFormat = "2006-01-02T15:04:05"

// listDocument is the wire shape consumed by the loader. Addresses is a
// pointer so a structurally absent array can be told apart from an empty one.
type listDocument struct {
	Metadata  *types.ListMetadata   `json:"metadata"`
	Addresses *[]types.AddressEntry `json:"addresses"`
}

// ParseListDocument builds the in-memory sanctioned set from a normalized
// list document. Every entry passes through Canonicalize before insertion, so
// loading and screening always agree on the stored form.
//
// Absent optional metadata falls back to an "UNKNOWN" source and the Unix
// epoch rather than failing the load. A missing addresses array or an entry
// without chain or address is a hard error with no partial recovery.
func ParseListDocument(data []byte) (*SanctionedSet, types.ListVersion, error) {
	var doc listDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, types.ListVersion{}, errors.Wrap(ErrMalformedList, err.Error())
	}
	if doc.Addresses == nil {
		return nil, types.ListVersion{}, errors.Wrap(ErrMalformedList, "missing addresses array")
	}

	set := NewSanctionedSet()
	for i, entry := range *doc.Addresses {
		if entry.Chain == "" || entry.Address == "" {
			return nil, types.ListVersion{}, errors.Wrapf(ErrMalformedList, "entry %d is missing chain or address", i)
		}
		set.Add(entry.Chain, entry.Address)
	}

	return set, versionFromMetadata(doc.Metadata), nil
}

func versionFromMetadata(meta *types.ListMetadata) types.ListVersion {
	version := types.ListVersion{
		Source:      unknownSource,
		RetrievedAt: time.Unix(0, 0).UTC(),
	}
	if meta == nil {
		return version
	}
	if meta.Source != "" {
		version.Source = meta.Source
	}
	if ts, err := parseListTimestamp(meta.RetrievedAt); err == nil {
		version.RetrievedAt = ts
	}
	version.SHA256 = meta.SHA256
	version.URI = meta.URI
	return version
}

func parseListTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(isoNoZoneFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
