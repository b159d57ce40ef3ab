package scans

import (
	"context"
	"log/slog"
	"time"

	"github.com/krushit/krushit/engine/diagnosis"
)

// Recorder forwards successful reports to a Publisher. Failures are logged
// and never reach the caller.
type Recorder struct {
	pub    Publisher
	logger *slog.Logger
	now    func() time.Time
}

// NewRecorder creates a Recorder. A nil publisher disables recording.
func NewRecorder(pub Publisher, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{pub: pub, logger: logger, now: time.Now}
}

// Record publishes report for user. It reports whether a scan was handed off.
func (r *Recorder) Record(ctx context.Context, user string, report *diagnosis.Report) bool {
	if r == nil || r.pub == nil {
		return false
	}
	scan, ok := FromReport(user, report, r.now())
	if !ok {
		return false
	}
	if err := r.pub.Publish(ctx, scan); err != nil {
		r.logger.Warn("scan not recorded", "scan", scan.ID, "user", scan.UserID, "err", err)
		return false
	}
	return true
}
