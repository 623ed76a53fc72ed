package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"

	"github.com/sanctionwatch/screening-endpoint/metrics"
	"github.com/sanctionwatch/screening-endpoint/screening"
	"github.com/sanctionwatch/screening-endpoint/types"
)

type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

const refreshTimeout = 2 * time.Minute

// Snapshot is one fully-formed sanctioned set together with the version it
// was built from. Callers needing consistency across a batch of screenings
// capture one Snapshot and reuse it for the whole batch.
type Snapshot struct {
	Set      *screening.SanctionedSet
	Version  types.ListVersion
	LoadedAt time.Time
}

// ListService owns the current sanctioned-set snapshot. A refresh parses a
// complete document and then swaps the snapshot pointer, so in-flight
// screenings always observe either the fully-old or the fully-new set, never
// a partially populated one.
type ListService struct {
	fetcher Fetcher
	current atomic.Pointer[Snapshot]
}

// StartListService loads the initial snapshot through the fetcher and, when
// fetchInterval > 0, keeps refreshing it in the background. The initial load
// must succeed: screening without a list is not an option.
func StartListService(ctx context.Context, fetcher Fetcher, fetchInterval time.Duration) (*ListService, error) {
	ls := &ListService{fetcher: fetcher}
	if err := ls.refresh(ctx); err != nil {
		return nil, err
	}
	if fetchInterval > 0 {
		go ls.syncLoop(fetchInterval)
	}
	return ls, nil
}

// NewListServiceFromFile builds a static snapshot from an already exported
// list document on disk. No background refresh.
func NewListServiceFromFile(path string) (*ListService, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read list document")
	}
	ls := &ListService{}
	if err := ls.load(data); err != nil {
		return nil, err
	}
	return ls, nil
}

// Current returns the snapshot in force. The returned snapshot is immutable.
func (ls *ListService) Current() *Snapshot {
	return ls.current.Load()
}

func (ls *ListService) syncLoop(fetchInterval time.Duration) {
	ticker := time.NewTicker(fetchInterval)
	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		if err := ls.refresh(ctx); err != nil {
			// A failed refresh keeps screening against the previous snapshot.
			log.Error("sanctions list refresh failed, keeping previous snapshot", "err", err)
			metrics.IncListRefreshErr()
		}
		cancel()
	}
}

func (ls *ListService) refresh(ctx context.Context) error {
	data, err := ls.fetcher.Fetch(ctx)
	if err != nil {
		return errors.Wrap(err, "fetch list document")
	}
	return ls.load(data)
}

func (ls *ListService) load(data []byte) error {
	set, version, err := screening.ParseListDocument(data)
	if err != nil {
		return err
	}
	if version.SHA256 == "" {
		// Documents without an upstream digest get one over the exact bytes
		// received, so the version is still auditable.
		sum := sha256.Sum256(data)
		version.SHA256 = hex.EncodeToString(sum[:])
	}

	ls.current.Store(&Snapshot{
		Set:      set,
		Version:  version,
		LoadedAt: time.Now().UTC(),
	})
	metrics.SetSanctionedAddresses(set.Len())
	log.Info("sanctions list loaded", "source", version.Source, "sha256", version.SHA256, "numAddresses", set.Len())
	return nil
}
