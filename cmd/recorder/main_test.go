package main

import (
	"context"
	"errors"
	"testing"

	"github.com/krushit/krushit/engine/scans"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeStore struct {
	err   error
	saved []string
}

func (f *fakeStore) Save(ctx context.Context, s scans.Scan) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("save without deadline")
	}
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, s.ID)
	return nil
}

func TestSaveHandlerCountsResults(t *testing.T) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "scans_total"}, []string{"result"})

	ok := &fakeStore{}
	if err := saveHandler(ok, counter)(context.Background(), scans.Scan{ID: "s1"}); err != nil {
		t.Fatal(err)
	}
	if len(ok.saved) != 1 {
		t.Fatalf("scan not saved: %v", ok.saved)
	}

	bad := &fakeStore{err: errors.New("neo4j down")}
	if err := saveHandler(bad, counter)(context.Background(), scans.Scan{ID: "s2"}); err == nil {
		t.Fatal("expected error to reach the subscriber for logging")
	}

	if testutil.ToFloat64(counter.WithLabelValues("saved")) != 1 || testutil.ToFloat64(counter.WithLabelValues("error")) != 1 {
		t.Fatal("unexpected counter values")
	}
}
