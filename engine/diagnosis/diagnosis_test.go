package diagnosis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/krushit/krushit/engine/advisory"
	"github.com/krushit/krushit/engine/classifier"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/goleak"
)

var leaf = []byte("\xff\xd8\xff\xe0 fake jpeg")

type stubClassifier struct {
	result classifier.Result
	calls  atomic.Int32
}

func (s *stubClassifier) Classify(_ context.Context, _ []byte, lang advisory.Language, _ time.Duration) classifier.Result {
	s.calls.Add(1)
	r := s.result
	r.Language = lang
	return r
}

func success(label string, confidence float64, f classifier.Fragments) *stubClassifier {
	return &stubClassifier{result: classifier.Result{
		Label: label, Confidence: confidence, Outcome: classifier.Success, Fragments: f,
	}}
}

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		confidence float64
		want       Severity
	}{
		{100, SeverityHigh},
		{80.01, SeverityHigh},
		{80, SeverityMedium},
		{65, SeverityMedium},
		{50, SeverityMedium},
		{49.99, SeverityLow},
		{0, SeverityLow},
	}
	for _, tt := range tests {
		if got := SeverityFor(tt.confidence); got != tt.want {
			t.Errorf("SeverityFor(%v) = %s, want %s", tt.confidence, got, tt.want)
		}
	}
}

func TestDiagnoseCatalogHit(t *testing.T) {
	rec, ok := advisory.Default().Lookup("leaf-rust")
	if !ok {
		t.Fatal("leaf-rust missing from default catalog")
	}
	for _, lang := range advisory.Supported {
		t.Run(string(lang), func(t *testing.T) {
			svc := New(success("Leaf Rust", 92, classifier.Fragments{Name: "ignored"}), nil, DefaultOptions(), nil)
			report, err := svc.Diagnose(context.Background(), leaf, lang)
			if err != nil {
				t.Fatalf("Diagnose: %v", err)
			}
			want, _ := advisory.Project(rec, lang)
			if diff := cmp.Diff(&want, report.Advisory); diff != "" {
				t.Fatalf("advisory (-want +got):\n%s", diff)
			}
			if len(report.Advisory.Treatment) != 4 {
				t.Fatalf("expected 4 treatment steps, got %d", len(report.Advisory.Treatment))
			}
			if report.Severity != SeverityHigh || report.Source != SourceCatalog || report.Language != lang {
				t.Fatalf("unexpected report: %+v", report)
			}
		})
	}
}

func TestDiagnoseCatalogMissUsesClassifierText(t *testing.T) {
	frags := classifier.Fragments{
		Cause:      "unknown fungus",
		Treatment:  []string{"Remove spotted leaves"},
		Prevention: []string{"Improve airflow"},
		Fertilizer: "Balanced NPK",
	}
	svc := New(success("Unknown Spot X", 65, frags), nil, DefaultOptions(), nil)

	report, err := svc.Diagnose(context.Background(), leaf, advisory.Hindi)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	want := &Report{
		Label:      "Unknown Spot X",
		Confidence: 65,
		Severity:   SeverityMedium,
		Language:   advisory.Hindi,
		Outcome:    classifier.Success,
		Source:     SourceClassifier,
		Advisory: &advisory.Projected{
			Name:       "Unknown Spot X",
			Cause:      "unknown fungus",
			Treatment:  []string{"Remove spotted leaves"},
			Prevention: []string{"Improve airflow"},
			Fertilizer: "Balanced NPK",
		},
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Fatalf("report (-want +got):\n%s", diff)
	}
}

func TestDiagnoseCatalogMissWithoutFragments(t *testing.T) {
	svc := New(success("Mystery Blotch", 30, classifier.Fragments{}), nil, DefaultOptions(), nil)
	report, err := svc.Diagnose(context.Background(), leaf, advisory.English)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if report.Advisory == nil {
		t.Fatal("successful diagnosis must carry an advisory")
	}
	if report.Advisory.Name != "Mystery Blotch" || report.Advisory.Treatment == nil || report.Severity != SeverityLow {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestDiagnoseClassifierFailuresAreData(t *testing.T) {
	tests := []struct {
		name   string
		result classifier.Result
		lang   advisory.Language
		reason string
	}{
		{
			name:   "unreachable",
			result: classifier.Result{Outcome: classifier.Unreachable, Message: "dial tcp: refused"},
			lang:   advisory.Marathi,
			reason: unreachableText[advisory.Marathi],
		},
		{
			name:   "classifier error",
			result: classifier.Result{Outcome: classifier.Failed, Message: "Uploaded file is not an image."},
			lang:   advisory.English,
			reason: classifierErrorText[advisory.English] + " (Uploaded file is not an image.)",
		},
		{
			name:   "classifier error without message",
			result: classifier.Result{Outcome: classifier.Failed},
			lang:   advisory.Hindi,
			reason: classifierErrorText[advisory.Hindi],
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(&stubClassifier{result: tt.result}, nil, DefaultOptions(), nil)
			report, err := svc.Diagnose(context.Background(), leaf, tt.lang)
			if err != nil {
				t.Fatalf("classifier failures must not be errors: %v", err)
			}
			if report.Advisory != nil {
				t.Fatal("failed diagnosis must not carry an advisory")
			}
			if report.Severity != SeverityHigh || report.Outcome != tt.result.Outcome {
				t.Fatalf("unexpected report: %+v", report)
			}
			if report.FailureReason != tt.reason {
				t.Fatalf("reason = %q, want %q", report.FailureReason, tt.reason)
			}
		})
	}
}

func TestDiagnoseTimeoutIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	svc := New(classifier.NewHTTPGateway(srv.URL), nil, Options{Timeout: 50 * time.Millisecond}, nil)
	report, err := svc.Diagnose(context.Background(), leaf, advisory.English)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if report.Outcome != classifier.Unreachable || report.Advisory != nil || report.Severity != SeverityHigh {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.FailureReason != unreachableText[advisory.English] {
		t.Fatalf("reason = %q", report.FailureReason)
	}
}

func TestDiagnoseRejectsInvalidImage(t *testing.T) {
	stub := success("Leaf Rust", 92, classifier.Fragments{})
	svc := New(stub, nil, DefaultOptions(), nil)

	tests := []struct {
		name  string
		image []byte
	}{
		{"nil", nil},
		{"empty", []byte{}},
		{"pdf", []byte("%PDF-1.4 not an image")},
		{"text", []byte("hello farmer")},
		{"html", []byte("<html><body>leaf</body></html>")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := svc.Diagnose(context.Background(), tt.image, advisory.English)
			if !errors.Is(err, ErrInvalidImage) || report != nil {
				t.Fatalf("expected ErrInvalidImage, got %v %+v", err, report)
			}
		})
	}
	if stub.calls.Load() != 0 {
		t.Fatalf("classifier must not be called for invalid input, got %d calls", stub.calls.Load())
	}
}

func TestDiagnoseAcceptsCommonImageFormats(t *testing.T) {
	for name, img := range map[string][]byte{
		"jpeg": leaf,
		"png":  []byte("\x89PNG\r\n\x1a\n fake png"),
		"webp": []byte("RIFF\x00\x00\x00\x00WEBPVP8 "),
	} {
		stub := success("Leaf Rust", 92, classifier.Fragments{})
		if _, err := New(stub, nil, DefaultOptions(), nil).Diagnose(context.Background(), img, advisory.English); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if stub.calls.Load() != 1 {
			t.Fatalf("%s: expected one classifier call, got %d", name, stub.calls.Load())
		}
	}
}

func TestDiagnoseIsIdempotent(t *testing.T) {
	svc := New(success("Blast Disease", 77, classifier.Fragments{}), nil, DefaultOptions(), nil)

	first, err := svc.Diagnose(context.Background(), leaf, advisory.Marathi)
	if err != nil {
		t.Fatal(err)
	}
	first.Advisory.Treatment[0] = "mutated by caller"

	second, err := svc.Diagnose(context.Background(), leaf, advisory.Marathi)
	if err != nil {
		t.Fatal(err)
	}
	third, err := svc.Diagnose(context.Background(), leaf, advisory.Marathi)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(second, third); diff != "" {
		t.Fatalf("reports differ (-second +third):\n%s", diff)
	}
	if second.Advisory.Treatment[0] == "mutated by caller" {
		t.Fatal("caller mutation leaked into the catalog")
	}
}

func TestDiagnoseUnknownLanguageFallsBackToEnglish(t *testing.T) {
	svc := New(success("Leaf Rust", 92, classifier.Fragments{}), nil, DefaultOptions(), nil)
	report, err := svc.Diagnose(context.Background(), leaf, advisory.Language("fr"))
	if err != nil {
		t.Fatal(err)
	}
	if report.Language != advisory.English {
		t.Fatalf("language = %s", report.Language)
	}
}

func TestDiagnoseCancellationDoesNotLeak(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	tr := &http.Transport{DisableKeepAlives: true}
	defer tr.CloseIdleConnections()
	gw := classifier.NewHTTPGateway(srv.URL, classifier.WithHTTPClient(&http.Client{Transport: tr}))
	svc := New(gw, nil, DefaultOptions(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(30*time.Millisecond, cancel)

	start := time.Now()
	report, err := svc.Diagnose(ctx, leaf, advisory.English)
	if err != nil {
		t.Fatal(err)
	}
	if report.Outcome != classifier.Unreachable {
		t.Fatalf("expected unreachable after cancel, got %+v", report)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("cancellation did not abort the classifier call")
	}
}

func TestDiagnoseRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	hit := New(success("Leaf Rust", 92, classifier.Fragments{}), nil, DefaultOptions(), nil).WithMetrics(m)
	miss := New(success("Unknown Spot X", 65, classifier.Fragments{}), nil, DefaultOptions(), nil).WithMetrics(m)
	down := New(&stubClassifier{result: classifier.Result{Outcome: classifier.Unreachable}}, nil, DefaultOptions(), nil).WithMetrics(m)

	for _, svc := range []*Service{hit, hit, miss, down} {
		if _, err := svc.Diagnose(context.Background(), leaf, advisory.English); err != nil {
			t.Fatal(err)
		}
	}

	for labels, want := range map[[2]string]float64{
		{"success", "catalog"}:    2,
		{"success", "classifier"}: 1,
		{"unreachable", "none"}:   1,
	} {
		if got := testutil.ToFloat64(m.total.WithLabelValues(labels[0], labels[1])); got != want {
			t.Errorf("diagnoses_total%v = %v, want %v", labels, got, want)
		}
	}
}

func TestReportJSON(t *testing.T) {
	svc := New(&stubClassifier{result: classifier.Result{Outcome: classifier.Unreachable}}, nil, DefaultOptions(), nil)
	report, _ := svc.Diagnose(context.Background(), leaf, advisory.English)

	b, err := json.Marshal(report)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	if m["advisory"] != nil || m["outcome"] != "unreachable" || m["severity"] != "high" {
		t.Fatalf("unexpected json: %s", b)
	}
}
