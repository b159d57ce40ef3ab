// Package diagnosis turns a leaf photo into a DiagnosisReport. It calls the
// classifier, grades severity from the model's confidence and attaches the
// advisory for the detected disease, falling back to the classifier's own
// text when the catalog has no entry for the label.
package diagnosis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/krushit/krushit/engine/advisory"
	"github.com/krushit/krushit/engine/classifier"
	"github.com/krushit/krushit/pkg/fn"
)

// ErrInvalidImage is returned when Diagnose receives empty or non-image bytes.
var ErrInvalidImage = errors.New("diagnosis: invalid image input")

// Severity is the urgency attached to a diagnosis.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// SeverityFor grades a confidence percentage: above 80 is high, 50 through 80
// is medium, below 50 is low. Higher model confidence maps to higher severity.
func SeverityFor(confidence float64) Severity {
	switch {
	case confidence > 80:
		return SeverityHigh
	case confidence >= 50:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Where the advisory in a successful report came from.
const (
	SourceCatalog    = "catalog"
	SourceClassifier = "classifier"
)

// Report is the single shape every diagnosis returns. Advisory is nil exactly
// when Outcome is not Success.
type Report struct {
	Label         string              `json:"label"`
	Confidence    float64             `json:"confidence"`
	Severity      Severity            `json:"severity"`
	Language      advisory.Language   `json:"language"`
	Outcome       classifier.Outcome  `json:"outcome"`
	Advisory      *advisory.Projected `json:"advisory"`
	Source        string              `json:"source,omitempty"`
	FailureReason string              `json:"failure_reason,omitempty"`
}

// Options configures the orchestrator.
type Options struct {
	// Timeout bounds each classifier call.
	Timeout time.Duration
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{Timeout: classifier.DefaultTimeout}
}

// Service is the diagnosis orchestrator. It holds no per-call state and is
// safe for concurrent use.
type Service struct {
	classifier classifier.Classifier
	catalog    *advisory.Catalog
	opts       Options
	metrics    *Metrics
	logger     *slog.Logger
	pipeline   fn.Stage[request, *Report]
}

type request struct {
	image []byte
	lang  advisory.Language
}

type classified struct {
	lang   advisory.Language
	result classifier.Result
}

// New creates a Service. A nil catalog uses advisory.Default().
func New(c classifier.Classifier, catalog *advisory.Catalog, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if catalog == nil {
		catalog = advisory.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = classifier.DefaultTimeout
	}
	s := &Service{classifier: c, catalog: catalog, opts: opts, logger: logger}
	s.pipeline = fn.Then(
		fn.TracedStage("diagnosis.classify", fn.Lift(s.classify)),
		fn.TracedStage("diagnosis.resolve", fn.Stage[classified, *Report](s.resolve)),
	)
	return s
}

// WithMetrics records every diagnosis in m.
func (s *Service) WithMetrics(m *Metrics) *Service {
	s.metrics = m
	return s
}

// Diagnose classifies image and assembles a report in lang. Classifier
// failures come back as report data; the only errors are ErrInvalidImage and
// catalog data defects (advisory.ErrMissingTranslation).
func (s *Service) Diagnose(ctx context.Context, image []byte, lang advisory.Language) (*Report, error) {
	if !isImage(image) {
		return nil, ErrInvalidImage
	}
	if _, ok := advisory.ParseLanguage(string(lang)); !ok {
		lang = advisory.Fallback
	}

	start := time.Now()
	report, err := s.pipeline(ctx, request{image: image, lang: lang}).Unwrap()
	if err != nil {
		s.logger.Error("diagnosis failed", "err", err, "language", lang)
		s.metrics.observeError(time.Since(start))
		return nil, err
	}
	s.metrics.observe(report, time.Since(start))
	s.logger.Info("diagnosis complete",
		"label", report.Label,
		"outcome", report.Outcome.String(),
		"severity", report.Severity,
		"source", report.Source,
	)
	return report, nil
}

// isImage sniffs the leading bytes the same way the model server does.
func isImage(b []byte) bool {
	return len(b) > 0 && strings.HasPrefix(http.DetectContentType(b), "image/")
}

func (s *Service) classify(ctx context.Context, req request) classified {
	return classified{
		lang:   req.lang,
		result: s.classifier.Classify(ctx, req.image, req.lang, s.opts.Timeout),
	}
}

func (s *Service) resolve(_ context.Context, in classified) fn.Result[*Report] {
	res := in.result
	if res.Outcome != classifier.Success {
		s.logger.Warn("classifier did not succeed", "outcome", res.Outcome.String(), "message", res.Message)
		return fn.Ok(&Report{
			Label:         res.Label,
			Confidence:    res.Confidence,
			Severity:      SeverityHigh,
			Language:      in.lang,
			Outcome:       res.Outcome,
			FailureReason: failureReason(res.Outcome, res.Message, in.lang),
		})
	}

	report := &Report{
		Label:      res.Label,
		Confidence: res.Confidence,
		Severity:   SeverityFor(res.Confidence),
		Language:   in.lang,
		Outcome:    classifier.Success,
	}

	id := advisory.ToID(res.Label)
	if rec, ok := s.catalog.Lookup(id); ok {
		p, err := advisory.Project(rec, in.lang)
		if err != nil {
			return fn.Err[*Report](fmt.Errorf("diagnosis: project %q: %w", id, err))
		}
		report.Advisory = &p
		report.Source = SourceCatalog
		return fn.Ok(report)
	}

	s.logger.Info("label not in catalog, using classifier advice", "label", res.Label, "id", id)
	report.Advisory = fromFragments(res.Label, res.Fragments)
	report.Source = SourceClassifier
	return fn.Ok(report)
}

func fromFragments(label string, f classifier.Fragments) *advisory.Projected {
	name := f.Name
	if name == "" {
		name = label
	}
	return &advisory.Projected{
		Name:       name,
		Cause:      f.Cause,
		Treatment:  nonNil(f.Treatment),
		Prevention: nonNil(f.Prevention),
		Fertilizer: f.Fertilizer,
	}
}

func nonNil(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
