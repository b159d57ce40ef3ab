package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/krushit/krushit/engine/advisory"
	"github.com/krushit/krushit/pkg/resilience"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const maxErrorBody = 64 << 10

// HTTPGateway calls the model server's POST /predict endpoint.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	breaker *resilience.Breaker
	limiter *rate.Limiter
	logger  *slog.Logger
}

// Option configures an HTTPGateway.
type Option func(*HTTPGateway)

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *HTTPGateway) { g.client = c }
}

// WithBreaker routes calls through a circuit breaker. Only transport
// failures count against it.
func WithBreaker(b *resilience.Breaker) Option {
	return func(g *HTTPGateway) { g.breaker = b }
}

// WithRateLimit caps outbound calls. Waiting for a token counts against the
// call timeout.
func WithRateLimit(l *rate.Limiter) Option {
	return func(g *HTTPGateway) { g.limiter = l }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *HTTPGateway) { g.logger = l }
}

// NewHTTPGateway creates a gateway for the model server at baseURL.
func NewHTTPGateway(baseURL string, opts ...Option) *HTTPGateway {
	g := &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, o := range opts {
		o(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Classify implements Classifier.
func (g *HTTPGateway) Classify(ctx context.Context, image []byte, lang advisory.Language, timeout time.Duration) Result {
	if len(image) == 0 {
		return failed(lang, "empty image")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	parent := ctx
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			g.logger.Warn("classifier rate limit wait failed", "err", err)
			return unreachable(lang, err.Error())
		}
	}

	var res Result
	call := func(ctx context.Context) error {
		var err error
		res, err = g.predict(ctx, image, lang)
		if err != nil && parent.Err() != nil {
			// Caller cancellation is not a service failure.
			g.logger.Info("classifier call abandoned by caller", "err", parent.Err())
			res = unreachable(lang, parent.Err().Error())
			return nil
		}
		return err
	}

	var err error
	if g.breaker != nil {
		err = g.breaker.Call(ctx, call)
	} else {
		err = call(ctx)
	}
	if err != nil {
		g.logger.Warn("classifier unreachable", "err", err, "breaker", g.breakerState())
		return unreachable(lang, err.Error())
	}
	if res.Outcome == Failed {
		g.logger.Warn("classifier returned error", "message", res.Message)
	}
	return res
}

func (g *HTTPGateway) breakerState() string {
	if g.breaker == nil {
		return "none"
	}
	return g.breaker.State().String()
}

// errTransport marks failures where the service could not be reached.
var errTransport = errors.New("classifier transport")

// predict performs one request. A non-nil error means the service was not
// reachable; every other failure comes back as a Failed result.
func (g *HTTPGateway) predict(ctx context.Context, image []byte, lang advisory.Language) (Result, error) {
	body, contentType, err := multipartImage(image)
	if err != nil {
		return failed(lang, err.Error()), nil
	}

	endpoint := g.baseURL + "/predict?language=" + url.QueryEscape(string(lang))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return failed(lang, err.Error()), nil
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", errTransport, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadGateway,
		resp.StatusCode == http.StatusServiceUnavailable,
		resp.StatusCode == http.StatusGatewayTimeout:
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return Result{}, fmt.Errorf("%w: status %d", errTransport, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return failed(lang, errorDetail(resp)), nil
	}

	var pr predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return failed(lang, fmt.Sprintf("decode response: %v", err)), nil
	}
	return pr.normalize(lang), nil
}

func multipartImage(image []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="upload"`)
	h.Set("Content-Type", http.DetectContentType(image))
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// errorDetail extracts the server's "detail" message when present.
func errorDetail(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if body.Detail != "" {
			return body.Detail
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}

// predictResponse accepts both field spellings the model server has used.
type predictResponse struct {
	Disease          string     `json:"disease"`
	Confidence       *float64   `json:"confidence"`
	Cause            string     `json:"cause"`
	Solution         stringList `json:"solution"`
	Treatment        stringList `json:"treatment"`
	Prevention       stringList `json:"prevention"`
	Fertilizer       string     `json:"fertilizer"`
	FertilizerAdvice string     `json:"fertilizer_advice"`
}

func (p predictResponse) normalize(lang advisory.Language) Result {
	label := strings.TrimSpace(p.Disease)
	if label == "" {
		return failed(lang, "response has no disease label")
	}
	if p.Confidence == nil {
		return failed(lang, "response has no confidence")
	}

	treatment := p.Solution
	if len(treatment) == 0 {
		treatment = p.Treatment
	}
	fertilizer := p.Fertilizer
	if fertilizer == "" {
		fertilizer = p.FertilizerAdvice
	}

	return Result{
		Label:      label,
		Confidence: clampPercent(*p.Confidence),
		Language:   lang,
		Outcome:    Success,
		Fragments: Fragments{
			Name:       label,
			Cause:      strings.TrimSpace(p.Cause),
			Treatment:  []string(treatment),
			Prevention: []string(p.Prevention),
			Fertilizer: strings.TrimSpace(fertilizer),
		},
	}
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// stringList decodes either a lone string or a list of strings. A lone
// string becomes a one-element list; blank entries are dropped.
type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s = strings.TrimSpace(s); s != "" {
			*l = stringList{s}
		}
		return nil
	}
	var items []string
	if err := json.Unmarshal(b, &items); err != nil {
		return fmt.Errorf("want string or list of strings: %w", err)
	}
	out := make(stringList, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	*l = out
	return nil
}
