package scans

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const defaultListLimit = 20

// result is the minimal interface needed from a neo4j result.
type result interface {
	Next(ctx context.Context) bool
	Record() *neo4j.Record
	Err() error
}

// runner is the minimal interface needed from a neo4j session.
type runner interface {
	Run(ctx context.Context, cypher string, params map[string]any) (result, error)
	Close(ctx context.Context) error
}

// Store persists scans in Neo4j as (:Farmer)-[:SCANNED]->(:Scan) with an
// optional (:Scan)-[:DIAGNOSED_AS]->(:Disease) edge.
type Store struct {
	driver     neo4j.DriverWithContext
	newSession func(ctx context.Context) runner // for testing
}

// NewStore creates a Store on driver.
func NewStore(driver neo4j.DriverWithContext) *Store {
	return &Store{driver: driver}
}

type sessionAdapter struct {
	sess neo4j.SessionWithContext
}

func (a *sessionAdapter) Run(ctx context.Context, cypher string, params map[string]any) (result, error) {
	return a.sess.Run(ctx, cypher, params)
}

func (a *sessionAdapter) Close(ctx context.Context) error {
	return a.sess.Close(ctx)
}

func (s *Store) session(ctx context.Context) runner {
	if s.newSession != nil {
		return s.newSession(ctx)
	}
	return &sessionAdapter{sess: s.driver.NewSession(ctx, neo4j.SessionConfig{})}
}

var schemaCypher = []string{
	"CREATE CONSTRAINT scan_id IF NOT EXISTS FOR (s:Scan) REQUIRE s.id IS UNIQUE",
	"CREATE CONSTRAINT farmer_id IF NOT EXISTS FOR (u:Farmer) REQUIRE u.id IS UNIQUE",
	"CREATE CONSTRAINT disease_id IF NOT EXISTS FOR (d:Disease) REQUIRE d.id IS UNIQUE",
	"CREATE INDEX scan_created_at IF NOT EXISTS FOR (s:Scan) ON (s.created_at)",
}

// EnsureSchema creates the constraints and indexes the store relies on. It is
// safe to run repeatedly.
func (s *Store) EnsureSchema(ctx context.Context) error {
	sess := s.session(ctx)
	defer sess.Close(ctx)
	for _, c := range schemaCypher {
		if _, err := sess.Run(ctx, c, nil); err != nil {
			return fmt.Errorf("scans: schema: %w", err)
		}
	}
	return nil
}

const saveCypher = `MERGE (u:Farmer {id: $user})
CREATE (u)-[:SCANNED]->(s:Scan $props)
RETURN s.id`

const linkCypher = `MATCH (s:Scan {id: $scan})
MERGE (d:Disease {id: $disease})
MERGE (s)-[:DIAGNOSED_AS]->(d)`

// Save stores scan and links it to its disease when known.
func (s *Store) Save(ctx context.Context, scan Scan) error {
	if scan.ID == "" || scan.UserID == "" {
		return errors.New("scans: save: id and user are required")
	}
	sess := s.session(ctx)
	defer sess.Close(ctx)

	res, err := sess.Run(ctx, saveCypher, map[string]any{"user": scan.UserID, "props": toProps(scan)})
	if err != nil {
		return fmt.Errorf("scans: save %s: %w", scan.ID, err)
	}
	if !res.Next(ctx) {
		if err := res.Err(); err != nil {
			return fmt.Errorf("scans: save %s: %w", scan.ID, err)
		}
		return fmt.Errorf("scans: save %s: no row returned", scan.ID)
	}

	if scan.DiseaseID == "" {
		return nil
	}
	if _, err := sess.Run(ctx, linkCypher, map[string]any{"scan": scan.ID, "disease": scan.DiseaseID}); err != nil {
		return fmt.Errorf("scans: link %s to %s: %w", scan.ID, scan.DiseaseID, err)
	}
	return nil
}

const listCypher = `MATCH (:Farmer {id: $user})-[:SCANNED]->(s:Scan)
RETURN s
ORDER BY s.created_at DESC
LIMIT $limit`

// ListByUser returns the user's scans, newest first.
func (s *Store) ListByUser(ctx context.Context, user string, limit int) ([]Scan, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	sess := s.session(ctx)
	defer sess.Close(ctx)

	res, err := sess.Run(ctx, listCypher, map[string]any{"user": user, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("scans: list %s: %w", user, err)
	}

	var out []Scan
	for res.Next(ctx) {
		scan, err := fromRecord(res.Record())
		if err != nil {
			return nil, fmt.Errorf("scans: list %s: %w", user, err)
		}
		out = append(out, scan)
	}
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("scans: list %s: %w", user, err)
	}
	return out, nil
}

func toProps(s Scan) map[string]any {
	return map[string]any{
		"id":         s.ID,
		"user_id":    s.UserID,
		"created_at": s.CreatedAt,
		"label":      s.Label,
		"disease_id": s.DiseaseID,
		"confidence": s.Confidence,
		"severity":   s.Severity,
		"language":   s.Language,
		"treatment":  s.Treatment,
		"prevention": s.Prevention,
	}
}

func fromRecord(rec *neo4j.Record) (Scan, error) {
	if rec == nil || len(rec.Values) == 0 {
		return Scan{}, errors.New("empty record")
	}
	var props map[string]any
	switch v := rec.Values[0].(type) {
	case neo4j.Node:
		props = v.Props
	case map[string]any:
		props = v
	default:
		return Scan{}, fmt.Errorf("unexpected value %T", v)
	}

	s := Scan{
		ID:         str(props["id"]),
		UserID:     str(props["user_id"]),
		Label:      str(props["label"]),
		DiseaseID:  str(props["disease_id"]),
		Severity:   str(props["severity"]),
		Language:   str(props["language"]),
		Treatment:  strs(props["treatment"]),
		Prevention: strs(props["prevention"]),
	}
	if s.ID == "" {
		return Scan{}, errors.New("scan without id")
	}
	if f, ok := props["confidence"].(float64); ok {
		s.Confidence = f
	}
	if t, ok := props["created_at"].(time.Time); ok {
		s.CreatedAt = t.UTC()
	}
	return s, nil
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func strs(v any) []string {
	switch l := v.(type) {
	case []string:
		return append([]string(nil), l...)
	case []any:
		out := make([]string, 0, len(l))
		for _, it := range l {
			if s, ok := it.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
