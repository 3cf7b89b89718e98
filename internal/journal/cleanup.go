package journal

import (
	"context"
	"fmt"
	"time"
)

// Cleanup deletes entries recorded more than olderThan ago and reports how
// many matched. With dryRun nothing is deleted.
func (j *Journal) Cleanup(ctx context.Context, olderThan time.Duration, dryRun bool) (int64, error) {
	if olderThan < 0 {
		return 0, fmt.Errorf("journal: cleanup threshold must be >= 0")
	}
	cutoff := j.now().Add(-olderThan).UTC().Format(timeLayout)

	if dryRun {
		var n int64
		if err := j.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events WHERE created_at < ?", cutoff).Scan(&n); err != nil {
			return 0, fmt.Errorf("journal: count entries for cleanup: %w", err)
		}
		return n, nil
	}

	res, err := j.db.ExecContext(ctx, "DELETE FROM events WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("journal: cleanup: %w", err)
	}
	return res.RowsAffected()
}
