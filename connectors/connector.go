// Connectors retrieve raw sanctions-list publications from their
// authoritative sources and normalize them into list documents for the
// screening loader. The screening core never touches the network; everything
// here runs upstream of it.
package connectors

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sanctionwatch/screening-endpoint/adapters/webfile"
	"github.com/sanctionwatch/screening-endpoint/metrics"
)

// Source is one authoritative sanctions-list publication.
type Source struct {
	Name string
	URL  string
}

var (
	OFACSDNAdvanced = Source{
		Name: "OFAC_SDN_ADVANCED",
		URL:  "https://www.treasury.gov/ofac/downloads/sdn_advanced.xml",
	}
	// The published XML link changes with each UK list update; override it
	// via the sources config when it goes stale.
	UKSanctionsList = Source{
		Name: "UK_SANCTIONS_LIST",
		URL:  "https://assets.publishing.service.gov.uk/media/LATEST/UK_Sanctions_List.xml",
	}
	UNConsolidated = Source{
		Name: "UN_CONSOLIDATED",
		URL:  "https://scsanctions.un.org/resources/xml/en/consolidated.xml",
	}
)

func Sources() []Source {
	return []Source{OFACSDNAdvanced, UKSanctionsList, UNConsolidated}
}

func SourceByName(name string) (Source, error) {
	for _, s := range Sources() {
		if s.Name == name {
			return s, nil
		}
	}
	return Source{}, errors.Errorf("unknown sanctions source %q", name)
}

// RawDocument is one retrieved source publication plus the integrity metadata
// recorded at retrieval time. The digest covers the exact bytes received.
type RawDocument struct {
	Source      string
	URI         string
	RetrievedAt time.Time
	SHA256      string
	Bytes       []byte
}

// Download fetches the source publication and stamps it with a UTC retrieval
// time and SHA-256 digest.
func Download(ctx context.Context, source Source) (*RawDocument, error) {
	fetcher := webfile.NewFetcher(source.URL)
	bts, err := fetcher.Fetch(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "download %s", source.Name)
	}

	metrics.ReportSourceDownloaded(source.Name)

	sum := sha256.Sum256(bts)
	return &RawDocument{
		Source:      source.Name,
		URI:         source.URL,
		RetrievedAt: time.Now().UTC(),
		SHA256:      hex.EncodeToString(sum[:]),
		Bytes:       bts,
	}, nil
}

// rawMetadata is the sidecar written next to each saved raw document.
type rawMetadata struct {
	Source      string `json:"source"`
	URL         string `json:"url"`
	RetrievedAt string `json:"retrieved_at_utc"`
	SHA256      string `json:"sha256"`
	SizeBytes   int    `json:"size_bytes"`
	Filename    string `json:"filename"`
}

// Save writes the raw document and a JSON metadata sidecar into dir. The
// filename embeds the retrieval timestamp and digest prefix so successive
// retrievals never collide.
func (d *RawDocument) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create data dir")
	}

	ts := strings.ReplaceAll(d.RetrievedAt.Format("2006-01-02T15:04:05"), ":", "-")
	filename := fmt.Sprintf("%s_%s_%s.xml", strings.ToLower(d.Source), ts, d.SHA256[:8])
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, d.Bytes, 0o644); err != nil {
		return "", errors.Wrap(err, "write raw document")
	}

	meta := rawMetadata{
		Source:      d.Source,
		URL:         d.URI,
		RetrievedAt: d.RetrievedAt.Format(time.RFC3339),
		SHA256:      d.SHA256,
		SizeBytes:   len(d.Bytes),
		Filename:    filename,
	}
	metaBytes, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}
	metaPath := strings.TrimSuffix(path, ".xml") + ".json"
	if err := os.WriteFile(metaPath, metaBytes, 0o644); err != nil {
		return "", errors.Wrap(err, "write metadata sidecar")
	}
	return path, nil
}
