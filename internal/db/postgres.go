package db

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/worldforge/mapgen/internal/worldgen"
)

// Postgres manages PostgreSQL connections
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a new PostgreSQL connection pool
func NewPostgres(connString string) (*Postgres, error) {
	if connString == "" {
		return &Postgres{}, nil
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, err
	}

	log.Println("Connected to PostgreSQL")
	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool
func (p *Postgres) Close() {
	if p != nil && p.pool != nil {
		p.pool.Close()
	}
}

// Pool returns the underlying connection pool
func (p *Postgres) Pool() *pgxpool.Pool {
	return p.pool
}

// IsConnected returns true if the database is connected
func (p *Postgres) IsConnected() bool {
	return p.pool != nil
}

// GenerationRun is the persisted row shape for one worldgen.Generate call:
// the input seed, the RNG seed, and the resulting map once finished.
type GenerationRun struct {
	ID        uuid.UUID          `json:"id"`
	RNGSeed   int64              `json:"rng_seed"`
	WorldSeed worldgen.WorldSeed `json:"world_seed"`
	Map       *worldgen.Map      `json:"map,omitempty"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
}

const createRunsTable = `
CREATE TABLE IF NOT EXISTS generation_runs (
	id UUID PRIMARY KEY,
	rng_seed BIGINT NOT NULL,
	world_seed JSONB NOT NULL,
	map JSONB,
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

// EnsureSchema creates the generation_runs table if it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if !p.IsConnected() {
		return nil
	}
	_, err := p.pool.Exec(ctx, createRunsTable)
	return err
}

// SaveRun upserts a GenerationRun by id.
func (p *Postgres) SaveRun(ctx context.Context, run *GenerationRun) error {
	if !p.IsConnected() {
		return nil
	}
	seedJSON, err := json.Marshal(run.WorldSeed)
	if err != nil {
		return err
	}
	var mapJSON []byte
	if run.Map != nil {
		mapJSON, err = json.Marshal(run.Map)
		if err != nil {
			return err
		}
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO generation_runs (id, rng_seed, world_seed, map, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET map = $4, status = $5`,
		run.ID, run.RNGSeed, seedJSON, mapJSON, run.Status, run.CreatedAt)
	return err
}

// LoadRun fetches a GenerationRun by id.
func (p *Postgres) LoadRun(ctx context.Context, id uuid.UUID) (*GenerationRun, error) {
	if !p.IsConnected() {
		return nil, ErrNotConnected
	}

	var run GenerationRun
	var seedJSON, mapJSON []byte
	err := p.pool.QueryRow(ctx, `
		SELECT id, rng_seed, world_seed, map, status, created_at
		FROM generation_runs WHERE id = $1`, id,
	).Scan(&run.ID, &run.RNGSeed, &seedJSON, &mapJSON, &run.Status, &run.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(seedJSON, &run.WorldSeed); err != nil {
		return nil, err
	}
	if len(mapJSON) > 0 {
		run.Map = &worldgen.Map{}
		if err := json.Unmarshal(mapJSON, run.Map); err != nil {
			return nil, err
		}
	}
	return &run, nil
}
