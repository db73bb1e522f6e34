package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Harshitk-cp/anchorgraph/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS anchors (
	id                      TEXT PRIMARY KEY,
	name                    TEXT NOT NULL DEFAULT '',
	level                   INTEGER NOT NULL DEFAULT 0,
	confidence              TEXT NOT NULL,
	status                  TEXT NOT NULL,
	limitations             TEXT[] NOT NULL DEFAULT '{}',
	falsification_condition TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS readings (
	id                   TEXT PRIMARY KEY,
	meaning              TEXT NOT NULL DEFAULT '',
	confidence           TEXT NOT NULL,
	max_confidence       TEXT NOT NULL DEFAULT '',
	depends_on           TEXT[] NOT NULL DEFAULT '{}',
	supports             TEXT[] NOT NULL DEFAULT '{}',
	supported_hypotheses TEXT[] NOT NULL DEFAULT '{}',
	evidence_sources     TEXT[] NOT NULL DEFAULT '{}',
	cascade_note         TEXT NOT NULL DEFAULT '',
	registered_at        TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS corpus_metadata (
	id            SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
	last_updated  TIMESTAMPTZ,
	version       TEXT NOT NULL DEFAULT '',
	cascade_rules JSONB
);
`

// PostgresStore keeps the corpus in three tables. Save rewrites every row in
// one transaction, matching the whole-corpus contract of the file backend.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (*domain.Corpus, error) {
	c := domain.NewCorpus()

	if err := s.loadAnchors(ctx, c); err != nil {
		return nil, err
	}
	if len(c.Anchors) == 0 {
		return nil, fmt.Errorf("anchors table: %w", ErrNotFound)
	}
	if err := s.loadReadings(ctx, c); err != nil {
		return nil, err
	}
	if err := s.loadMetadata(ctx, c); err != nil {
		return nil, err
	}

	c.Normalize()
	return c, nil
}

func (s *PostgresStore) loadAnchors(ctx context.Context, c *domain.Corpus) error {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, level, confidence, status, limitations, falsification_condition
		 FROM anchors`)
	if err != nil {
		return fmt.Errorf("query anchors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			a                  domain.Anchor
			confidence, status string
		)
		if err := rows.Scan(&a.ID, &a.Name, &a.Level, &confidence, &status,
			&a.Limitations, &a.FalsificationCondition); err != nil {
			return fmt.Errorf("scan anchor: %w", err)
		}
		a.Confidence = domain.Confidence(confidence)
		a.Status = domain.AnchorStatus(status)
		c.Anchors[a.ID] = &a
	}
	return rows.Err()
}

func (s *PostgresStore) loadReadings(ctx context.Context, c *domain.Corpus) error {
	rows, err := s.db.Query(ctx,
		`SELECT id, meaning, confidence, max_confidence, depends_on, supports,
		        supported_hypotheses, evidence_sources, cascade_note, registered_at
		 FROM readings`)
	if err != nil {
		return fmt.Errorf("query readings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			r                   domain.Reading
			confidence, maxConf string
			registered          *time.Time
		)
		if err := rows.Scan(&r.ID, &r.Meaning, &confidence, &maxConf, &r.DependsOn, &r.Supports,
			&r.SupportedHypotheses, &r.EvidenceSources, &r.CascadeNote, &registered); err != nil {
			return fmt.Errorf("scan reading: %w", err)
		}
		r.Confidence = domain.Confidence(confidence)
		r.MaxConfidence = domain.ParseConfidence(maxConf)
		if registered != nil {
			r.Registered = registered.UTC()
		}
		c.Readings[r.ID] = &r
	}
	return rows.Err()
}

func (s *PostgresStore) loadMetadata(ctx context.Context, c *domain.Corpus) error {
	var (
		lastUpdated *time.Time
		rulesJSON   []byte
	)
	err := s.db.QueryRow(ctx,
		`SELECT last_updated, version, cascade_rules FROM corpus_metadata WHERE id = 1`,
	).Scan(&lastUpdated, &c.Metadata.Version, &rulesJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("query metadata: %w", err)
	}
	if lastUpdated != nil {
		c.Metadata.LastUpdated = lastUpdated.UTC()
	}
	if len(rulesJSON) > 0 {
		if err := json.Unmarshal(rulesJSON, &c.CascadeRules); err != nil {
			return fmt.Errorf("%w: cascade_rules: %v", ErrCorpus, err)
		}
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, c *domain.Corpus) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM readings`); err != nil {
		return fmt.Errorf("clear readings: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM anchors`); err != nil {
		return fmt.Errorf("clear anchors: %w", err)
	}

	for _, id := range c.SortedAnchorIDs() {
		a := c.Anchors[id]
		_, err := tx.Exec(ctx,
			`INSERT INTO anchors (id, name, level, confidence, status, limitations, falsification_condition)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			id, a.Name, a.Level, string(a.Confidence), string(a.Status),
			nonNil(a.Limitations), a.FalsificationCondition,
		)
		if err != nil {
			return fmt.Errorf("insert anchor %s: %w", id, err)
		}
	}

	for _, id := range c.SortedReadingIDs() {
		r := c.Readings[id]
		_, err := tx.Exec(ctx,
			`INSERT INTO readings (id, meaning, confidence, max_confidence, depends_on, supports,
			                       supported_hypotheses, evidence_sources, cascade_note, registered_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			id, r.Meaning, string(r.Confidence), string(r.MaxConfidence),
			nonNil(r.DependsOn), nonNil(r.Supports),
			nonNil(r.SupportedHypotheses), nonNil(r.EvidenceSources),
			r.CascadeNote, nullTime(r.Registered),
		)
		if err != nil {
			return fmt.Errorf("insert reading %s: %w", id, err)
		}
	}

	var rulesJSON []byte
	if c.CascadeRules != nil {
		rulesJSON, err = json.Marshal(c.CascadeRules)
		if err != nil {
			return fmt.Errorf("marshal cascade_rules: %w", err)
		}
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO corpus_metadata (id, last_updated, version, cascade_rules)
		 VALUES (1, $1, $2, $3)
		 ON CONFLICT (id) DO UPDATE
		 SET last_updated = EXCLUDED.last_updated,
		     version = EXCLUDED.version,
		     cascade_rules = EXCLUDED.cascade_rules`,
		nullTime(c.Metadata.LastUpdated), c.Metadata.Version, rulesJSON,
	)
	if err != nil {
		return fmt.Errorf("upsert metadata: %w", err)
	}

	return tx.Commit(ctx)
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
