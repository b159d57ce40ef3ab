// Package scans keeps a history of successful diagnoses per farmer. Reports
// are published as events and written to Neo4j by a separate recorder, so a
// storage outage never affects the diagnosis the farmer sees.
package scans

import (
	"time"

	"github.com/google/uuid"
	"github.com/krushit/krushit/engine/advisory"
	"github.com/krushit/krushit/engine/diagnosis"
)

// AnonymousUser owns scans submitted without a user id.
const AnonymousUser = "anonymous"

// Scan is one stored diagnosis.
type Scan struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	Label      string    `json:"label"`
	DiseaseID  string    `json:"disease_id,omitempty"`
	Confidence float64   `json:"confidence"`
	Severity   string    `json:"severity"`
	Language   string    `json:"language"`
	Treatment  []string  `json:"treatment"`
	Prevention []string  `json:"prevention"`
}

// FromReport builds the Scan for a successful report. It reports false for
// reports that carry no advisory.
func FromReport(user string, r *diagnosis.Report, now time.Time) (Scan, bool) {
	if r == nil || r.Advisory == nil {
		return Scan{}, false
	}
	if user == "" {
		user = AnonymousUser
	}
	s := Scan{
		ID:         uuid.NewString(),
		UserID:     user,
		CreatedAt:  now.UTC(),
		Label:      r.Label,
		Confidence: r.Confidence,
		Severity:   string(r.Severity),
		Language:   string(r.Language),
		Treatment:  append([]string(nil), r.Advisory.Treatment...),
		Prevention: append([]string(nil), r.Advisory.Prevention...),
	}
	if r.Source == diagnosis.SourceCatalog {
		s.DiseaseID = advisory.ToID(r.Label)
	}
	return s, true
}
