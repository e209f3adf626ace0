package projections

import (
	"context"
	"sort"

	"kinetic/internal/domain/activity"
)

// GetActivityLogDeps holds dependencies for the activity log projection.
type GetActivityLogDeps struct {
	Records RecordReader
}

// GetActivityLog returns the audit trail, newest first. An empty userID
// returns every entry; entries for deleted users are still present.
func GetActivityLog(ctx context.Context, userID string, deps GetActivityLogDeps) ([]activity.Entry, error) {
	agg, err := deps.Records.Load(ctx)
	if err != nil {
		return nil, err
	}

	var entries []activity.Entry
	for _, e := range agg.UserActivities {
		if userID == "" || e.UserID == userID {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries, nil
}
