package scans

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/krushit/krushit/engine/advisory"
	"github.com/krushit/krushit/engine/classifier"
	"github.com/krushit/krushit/engine/diagnosis"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

var now = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func catalogReport() *diagnosis.Report {
	return &diagnosis.Report{
		Label:      "Leaf Rust",
		Confidence: 92,
		Severity:   diagnosis.SeverityHigh,
		Language:   advisory.Hindi,
		Outcome:    classifier.Success,
		Source:     diagnosis.SourceCatalog,
		Advisory: &advisory.Projected{
			Name:       "पत्ती का रतुआ",
			Treatment:  []string{"t1", "t2"},
			Prevention: []string{"p1"},
		},
	}
}

// --- FromReport ---

func TestFromReport(t *testing.T) {
	s, ok := FromReport("farmer-7", catalogReport(), now.In(time.FixedZone("IST", 19800)))
	if !ok {
		t.Fatal("expected a scan")
	}
	if _, err := uuid.Parse(s.ID); err != nil {
		t.Fatalf("scan id is not a uuid: %q", s.ID)
	}
	want := Scan{
		ID: s.ID, UserID: "farmer-7", CreatedAt: now, Label: "Leaf Rust", DiseaseID: "leaf-rust",
		Confidence: 92, Severity: "high", Language: "hi",
		Treatment: []string{"t1", "t2"}, Prevention: []string{"p1"},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Fatalf("scan (-want +got):\n%s", diff)
	}
}

func TestFromReportClassifierSourceHasNoDisease(t *testing.T) {
	r := catalogReport()
	r.Source = diagnosis.SourceClassifier
	s, ok := FromReport("", r, now)
	if !ok || s.DiseaseID != "" || s.UserID != AnonymousUser {
		t.Fatalf("unexpected scan: %+v", s)
	}
}

func TestFromReportSkipsFailures(t *testing.T) {
	failed := &diagnosis.Report{Outcome: classifier.Unreachable, Severity: diagnosis.SeverityHigh}
	for _, r := range []*diagnosis.Report{nil, failed} {
		if _, ok := FromReport("u", r, now); ok {
			t.Fatalf("expected no scan for %+v", r)
		}
	}
}

// --- Recorder ---

type fakePublisher struct {
	mu    sync.Mutex
	err   error
	scans []Scan
}

func (f *fakePublisher) Publish(_ context.Context, s Scan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.scans = append(f.scans, s)
	return nil
}

func TestRecorderPublishesSuccessfulReports(t *testing.T) {
	pub := &fakePublisher{}
	rec := NewRecorder(pub, nil)
	rec.now = func() time.Time { return now }

	if !rec.Record(context.Background(), "u1", catalogReport()) {
		t.Fatal("expected the scan to be recorded")
	}
	if rec.Record(context.Background(), "u1", &diagnosis.Report{Outcome: classifier.Failed}) {
		t.Fatal("failed diagnoses must not be recorded")
	}
	if len(pub.scans) != 1 || !pub.scans[0].CreatedAt.Equal(now) {
		t.Fatalf("unexpected scans: %+v", pub.scans)
	}
}

func TestRecorderToleratesPublishFailure(t *testing.T) {
	rec := NewRecorder(&fakePublisher{err: errors.New("nats: connection closed")}, nil)
	if rec.Record(context.Background(), "u1", catalogReport()) {
		t.Fatal("expected false on publish failure")
	}
}

func TestRecorderDisabled(t *testing.T) {
	var nilRec *Recorder
	if nilRec.Record(context.Background(), "u", catalogReport()) {
		t.Fatal("nil recorder must be a no-op")
	}
	if NewRecorder(nil, nil).Record(context.Background(), "u", catalogReport()) {
		t.Fatal("recorder without publisher must be a no-op")
	}
}

// --- Store ---

type mockResult struct {
	records []*neo4j.Record
	idx     int
	err     error
}

func (m *mockResult) Next(context.Context) bool {
	if m.idx < len(m.records) {
		m.idx++
		return true
	}
	return false
}

func (m *mockResult) Record() *neo4j.Record { return m.records[m.idx-1] }
func (m *mockResult) Err() error            { return m.err }

type call struct {
	cypher string
	params map[string]any
}

type mockRunner struct {
	results []*mockResult
	err     error
	calls   []call
	closed  bool
}

func (m *mockRunner) Run(_ context.Context, cypher string, params map[string]any) (result, error) {
	m.calls = append(m.calls, call{cypher, params})
	if m.err != nil {
		return nil, m.err
	}
	if len(m.results) == 0 {
		return &mockResult{}, nil
	}
	r := m.results[0]
	m.results = m.results[1:]
	return r, nil
}

func (m *mockRunner) Close(context.Context) error {
	m.closed = true
	return nil
}

func newTestStore(r *mockRunner) *Store {
	s := NewStore(nil)
	s.newSession = func(context.Context) runner { return r }
	return s
}

func idRow(id string) *neo4j.Record {
	return &neo4j.Record{Keys: []string{"s.id"}, Values: []any{id}}
}

func TestStoreSaveLinksDisease(t *testing.T) {
	r := &mockRunner{results: []*mockResult{{records: []*neo4j.Record{idRow("s1")}}}}
	scan, _ := FromReport("u1", catalogReport(), now)

	if err := newTestStore(r).Save(context.Background(), scan); err != nil {
		t.Fatal(err)
	}
	if len(r.calls) != 2 || !r.closed {
		t.Fatalf("expected save and link in one session, got %d calls closed=%v", len(r.calls), r.closed)
	}
	if !strings.Contains(r.calls[0].cypher, "MERGE (u:Farmer") || r.calls[0].params["user"] != "u1" {
		t.Fatalf("unexpected save: %+v", r.calls[0])
	}
	props := r.calls[0].params["props"].(map[string]any)
	if props["id"] != scan.ID || props["created_at"] != now {
		t.Fatalf("unexpected props: %+v", props)
	}
	if !strings.Contains(r.calls[1].cypher, "DIAGNOSED_AS") || r.calls[1].params["disease"] != "leaf-rust" {
		t.Fatalf("unexpected link: %+v", r.calls[1])
	}
}

func TestStoreSaveWithoutDisease(t *testing.T) {
	r := &mockRunner{results: []*mockResult{{records: []*neo4j.Record{idRow("s1")}}}}
	scan := Scan{ID: "s1", UserID: "u1", CreatedAt: now}
	if err := newTestStore(r).Save(context.Background(), scan); err != nil {
		t.Fatal(err)
	}
	if len(r.calls) != 1 {
		t.Fatalf("expected no link query, got %d calls", len(r.calls))
	}
}

func TestStoreSaveErrors(t *testing.T) {
	scan := Scan{ID: "s1", UserID: "u1"}
	tests := []struct {
		name   string
		runner *mockRunner
		scan   Scan
	}{
		{"missing id", &mockRunner{}, Scan{UserID: "u1"}},
		{"run error", &mockRunner{err: errors.New("db down")}, scan},
		{"no row", &mockRunner{}, scan},
		{"result error", &mockRunner{results: []*mockResult{{err: errors.New("tx failed")}}}, scan},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := newTestStore(tt.runner).Save(context.Background(), tt.scan); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestStoreListByUser(t *testing.T) {
	newer := neo4j.Node{Props: map[string]any{
		"id": "s2", "user_id": "u1", "created_at": now, "label": "Leaf Rust", "disease_id": "leaf-rust",
		"confidence": 92.0, "severity": "high", "language": "en",
		"treatment": []any{"t1", "t2"}, "prevention": []any{"p1"},
	}}
	older := map[string]any{"id": "s1", "user_id": "u1", "created_at": now.Add(-time.Hour), "label": "X"}
	r := &mockRunner{results: []*mockResult{{records: []*neo4j.Record{
		{Keys: []string{"s"}, Values: []any{newer}},
		{Keys: []string{"s"}, Values: []any{older}},
	}}}}

	got, err := newTestStore(r).ListByUser(context.Background(), "u1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if r.calls[0].params["limit"] != defaultListLimit || !strings.Contains(r.calls[0].cypher, "ORDER BY s.created_at DESC") {
		t.Fatalf("unexpected query: %+v", r.calls[0])
	}
	want := []Scan{
		{
			ID: "s2", UserID: "u1", CreatedAt: now, Label: "Leaf Rust", DiseaseID: "leaf-rust",
			Confidence: 92, Severity: "high", Language: "en",
			Treatment: []string{"t1", "t2"}, Prevention: []string{"p1"},
		},
		{ID: "s1", UserID: "u1", CreatedAt: now.Add(-time.Hour), Label: "X"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("scans (-want +got):\n%s", diff)
	}
}

func TestStoreListByUserErrors(t *testing.T) {
	bad := &neo4j.Record{Keys: []string{"s"}, Values: []any{"not a node"}}
	tests := []struct {
		name   string
		runner *mockRunner
	}{
		{"run error", &mockRunner{err: errors.New("db down")}},
		{"bad record", &mockRunner{results: []*mockResult{{records: []*neo4j.Record{bad}}}}},
		{"result error", &mockRunner{results: []*mockResult{{err: errors.New("tx failed")}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := newTestStore(tt.runner).ListByUser(context.Background(), "u1", 5); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestStoreEnsureSchema(t *testing.T) {
	r := &mockRunner{}
	if err := newTestStore(r).EnsureSchema(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(r.calls) != len(schemaCypher) || !r.closed {
		t.Fatalf("expected %d schema statements, got %d", len(schemaCypher), len(r.calls))
	}

	if err := newTestStore(&mockRunner{err: errors.New("denied")}).EnsureSchema(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
