package connectors

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sanctionwatch/screening-endpoint/types"
)

// BuildListDocument normalizes parsed addresses into the exported document
// shape the screening loader consumes. Duplicate (chain, address) pairs
// collapse and the output is sorted so two exports of the same input are
// byte-identical.
func BuildListDocument(raw *RawDocument, addresses []DigitalCurrencyAddress) types.ListDocument {
	seen := make(map[types.AddressEntry]bool)
	entries := make([]types.AddressEntry, 0, len(addresses))
	for _, addr := range addresses {
		entry := types.AddressEntry{Chain: addr.Chain, Address: addr.Address}
		if seen[entry] {
			continue
		}
		seen[entry] = true
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Chain != entries[j].Chain {
			return entries[i].Chain < entries[j].Chain
		}
		return entries[i].Address < entries[j].Address
	})

	return types.ListDocument{
		Metadata: types.ListMetadata{
			Source:      raw.Source,
			RetrievedAt: raw.RetrievedAt.Format(time.RFC3339),
			SHA256:      raw.SHA256,
			URI:         raw.URI,
		},
		Addresses: entries,
	}
}

// WriteListDocument writes the normalized document as indented JSON.
func WriteListDocument(path string, doc types.ListDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write list document")
}

// WriteChainAddressFiles writes one JSON and one TXT address file per chain,
// named <source>_<chain>_addresses.<ext>.
func WriteChainAddressFiles(dir string, doc types.ListDocument) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create output dir")
	}

	byChain := make(map[string][]string)
	for _, entry := range doc.Addresses {
		byChain[entry.Chain] = append(byChain[entry.Chain], entry.Address)
	}

	source := strings.ToLower(doc.Metadata.Source)
	for chain, addrs := range byChain {
		sort.Strings(addrs)
		base := fmt.Sprintf("%s_%s_addresses", source, strings.ToLower(chain))

		data, err := json.MarshalIndent(addrs, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, base+".json"), data, 0o644); err != nil {
			return errors.Wrapf(err, "write %s json", chain)
		}
		txt := strings.Join(addrs, "\n") + "\n"
		if err := os.WriteFile(filepath.Join(dir, base+".txt"), []byte(txt), 0o644); err != nil {
			return errors.Wrapf(err, "write %s txt", chain)
		}
	}
	return nil
}
