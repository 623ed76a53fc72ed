package database

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const (
	connTimeOut = 10 * time.Second
)

type postgresStore struct {
	DB *sqlx.DB
}

func NewPostgresStore(dsn string) *postgresStore {
	db := sqlx.MustConnect("postgres", dsn)
	return &postgresStore{
		DB: db,
	}
}

func (d *postgresStore) Close() {
	d.DB.Close()
}

func (d *postgresStore) SaveScreeningEntry(entry *ScreeningEntry) error {
	query := `INSERT INTO screening_requests
	(id, inserted_at, request_duration_ms, chain, address, canonical_address, match, risk_score, reason, list_source, list_sha256, ip_hash, origin) VALUES (:id, :inserted_at, :request_duration_ms, :chain, :address, :canonical_address, :match, :risk_score, :reason, :list_source, :list_sha256, :ip_hash, :origin)`
	ctx, cancel := context.WithTimeout(context.Background(), connTimeOut)
	defer cancel()
	_, err := d.DB.NamedExecContext(ctx, query, entry)
	return err
}
