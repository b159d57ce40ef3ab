// Package classifier adapts the external plant-disease image model into a
// canonical Result. Every failure mode is reported as data, never as an error.
package classifier

import (
	"context"
	"fmt"
	"time"

	"github.com/krushit/krushit/engine/advisory"
)

// DefaultTimeout bounds a classifier call when the caller passes none.
const DefaultTimeout = 30 * time.Second

// Outcome tags how a classification ended.
type Outcome int

const (
	Success     Outcome = iota // label and confidence are valid
	Unreachable                // network failure, timeout or service down
	Failed                     // the classifier answered with an error
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Unreachable:
		return "unreachable"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText renders the outcome as its string form in JSON.
func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText parses the form written by MarshalText.
func (o *Outcome) UnmarshalText(b []byte) error {
	switch string(b) {
	case "success":
		*o = Success
	case "unreachable":
		*o = Unreachable
	case "error":
		*o = Failed
	default:
		return fmt.Errorf("classifier: unknown outcome %q", b)
	}
	return nil
}

// Fragments is the free-text advice returned alongside a label, in the
// requested language only.
type Fragments struct {
	Name       string   `json:"name,omitempty"`
	Cause      string   `json:"cause,omitempty"`
	Treatment  []string `json:"treatment,omitempty"`
	Prevention []string `json:"prevention,omitempty"`
	Fertilizer string   `json:"fertilizer,omitempty"`
}

// Result is the normalized outcome of one classifier invocation.
type Result struct {
	Label      string            `json:"label"`
	Confidence float64           `json:"confidence"`
	Language   advisory.Language `json:"language"`
	Outcome    Outcome           `json:"outcome"`
	Message    string            `json:"message,omitempty"`
	Fragments  Fragments         `json:"fragments"`
}

// Classifier identifies a disease from an image.
type Classifier interface {
	Classify(ctx context.Context, image []byte, lang advisory.Language, timeout time.Duration) Result
}

func unreachable(lang advisory.Language, msg string) Result {
	return Result{Language: lang, Outcome: Unreachable, Message: msg}
}

func failed(lang advisory.Language, msg string) Result {
	return Result{Language: lang, Outcome: Failed, Message: msg}
}
