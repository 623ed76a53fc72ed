// Downloads a sanctions publication (or reads one from disk), extracts its
// digital-currency addresses, and exports them as a list document the
// screening endpoint can load.
package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/sanctionwatch/screening-endpoint/connectors"
)

var (
	sourceName = flag.String("source", connectors.OFACSDNAdvanced.Name, "sanctions source to download")
	xmlFile    = flag.String("xml", "", "parse a local XML file instead of downloading")
	dataDir    = flag.String("dataDir", "", "directory to save the raw publication into (skipped if empty)")
	outFile    = flag.String("out", "sanctioned_addresses.json", "output path for the list document")
	chainDir   = flag.String("chainDir", "", "also write per-chain address files into this directory")
	configFile = flag.String("config", os.Getenv("SOURCES_CONFIG"), "sources config file with URL overrides")
	debugPtr   = flag.Bool("debug", os.Getenv("DEBUG") == "1", "print debug output")
)

func main() {
	flag.Parse()

	logLevel := log.LevelInfo
	if *debugPtr {
		logLevel = log.LevelDebug
	}
	var handler slog.Handler = log.NewTerminalHandlerWithLevel(os.Stderr, logLevel, true)
	log.SetDefault(log.NewLogger(handler))
	logger := log.New("service", "listtool")

	cfg, err := connectors.ReadSourcesConfigFromFile(*configFile)
	if err != nil {
		logger.Crit("Error reading sources config", "error", err)
	}

	source, err := cfg.SourceFor(*sourceName)
	if err != nil {
		logger.Crit("Unknown source", "error", err)
	}

	var raw *connectors.RawDocument
	if *xmlFile != "" {
		logger.Info("Reading local publication", "xmlFile", *xmlFile)
		data, err := os.ReadFile(*xmlFile)
		if err != nil {
			logger.Crit("Error reading XML file", "error", err)
		}
		sum := sha256.Sum256(data)
		raw = &connectors.RawDocument{
			Source:      source.Name,
			URI:         *xmlFile,
			RetrievedAt: time.Now().UTC(),
			SHA256:      hex.EncodeToString(sum[:]),
			Bytes:       data,
		}
	} else {
		logger.Info("Downloading publication", "source", source.Name, "url", source.URL)
		raw, err = connectors.Download(context.Background(), source)
		if err != nil {
			logger.Crit("Download error", "error", err)
		}
	}
	logger.Info("Publication retrieved", "sha256", raw.SHA256, "sizeBytes", len(raw.Bytes))

	if *dataDir != "" {
		path, err := raw.Save(*dataDir)
		if err != nil {
			logger.Crit("Error saving raw publication", "error", err)
		}
		logger.Info("Raw publication saved", "path", path)
	}

	// Only the OFAC SDN Advanced format has a parser so far. The other
	// sources can still be downloaded and archived.
	if source.Name != connectors.OFACSDNAdvanced.Name {
		logger.Info("No address parser for this source, done after archiving", "source", source.Name)
		return
	}

	addresses, err := connectors.ParseSDNXML(raw.Bytes)
	if err != nil {
		logger.Crit("Error parsing SDN XML", "error", err)
	}
	logger.Info("Digital currency addresses extracted", "numAddresses", len(addresses))

	doc := connectors.BuildListDocument(raw, addresses)
	if err := connectors.WriteListDocument(*outFile, doc); err != nil {
		logger.Crit("Error writing list document", "error", err)
	}
	logger.Info("List document written", "outFile", *outFile, "numAddresses", len(doc.Addresses))

	if *chainDir != "" {
		if err := connectors.WriteChainAddressFiles(*chainDir, doc); err != nil {
			logger.Crit("Error writing per-chain files", "error", err)
		}
		logger.Info("Per-chain address files written", "chainDir", *chainDir)
	}
}
