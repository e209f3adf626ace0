package projections

import (
	"context"
	"sort"

	"kinetic/internal/domain/activity"
	"kinetic/internal/domain/application"
	"kinetic/internal/domain/user"
)

// GetDirectorOverviewDeps holds dependencies for the director overview.
type GetDirectorOverviewDeps struct {
	Records RecordReader
}

// DirectorOverviewResult carries the output of the director overview.
type DirectorOverviewResult struct {
	TotalUsers          int
	ClientCount         int
	AdminCount          int
	TrainerCount        int
	PendingApplications []application.Application
	RecentActivity      []activity.Entry // newest first, capped
}

// recentActivityLimit caps the activity feed on the overview.
const recentActivityLimit = 20

// GetDirectorOverview summarizes the portal for the director dashboard.
// POST: Counts reflect live users; activity is newest first
func GetDirectorOverview(ctx context.Context, deps GetDirectorOverviewDeps) (DirectorOverviewResult, error) {
	agg, err := deps.Records.Load(ctx)
	if err != nil {
		return DirectorOverviewResult{}, err
	}

	result := DirectorOverviewResult{
		TotalUsers:   len(agg.Users),
		ClientCount:  agg.CountByRole(user.RoleClient),
		AdminCount:   agg.CountByRole(user.RoleAdmin),
		TrainerCount: agg.CountByRole(user.RoleTrainer),
	}

	for _, app := range agg.Applications {
		if app.IsPending() {
			result.PendingApplications = append(result.PendingApplications, app)
		}
	}

	entries := append([]activity.Entry(nil), agg.UserActivities...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	if len(entries) > recentActivityLimit {
		entries = entries[:recentActivityLimit]
	}
	result.RecentActivity = entries

	return result, nil
}
