package projections

import (
	"context"

	"kinetic/internal/domain/diary"
	"kinetic/internal/domain/user"
)

// RosterDiaryStore is the diary access the trainer roster needs.
type RosterDiaryStore interface {
	Entries(ctx context.Context) ([]diary.Entry, error)
	Plans(ctx context.Context) ([]diary.LessonPlan, error)
}

// GetTrainerRosterDeps holds dependencies for the trainer roster.
type GetTrainerRosterDeps struct {
	Records RecordReader
	Diary   RosterDiaryStore
}

// TrainerRosterResult carries the trainer panel data: the client roster plus
// the diary.
type TrainerRosterResult struct {
	Students []user.User // clients only, sanitized
	Entries  []diary.Entry
	Plans    []diary.LessonPlan
}

// GetTrainerRoster lists the students a trainer works with and the diary.
// POST: Students contains only client-role users, without password hashes
func GetTrainerRoster(ctx context.Context, deps GetTrainerRosterDeps) (TrainerRosterResult, error) {
	agg, err := deps.Records.Load(ctx)
	if err != nil {
		return TrainerRosterResult{}, err
	}

	var result TrainerRosterResult
	for _, u := range agg.Users {
		if u.Role == user.RoleClient {
			result.Students = append(result.Students, u.Sanitized())
		}
	}

	if deps.Diary != nil {
		if result.Entries, err = deps.Diary.Entries(ctx); err != nil {
			return TrainerRosterResult{}, err
		}
		if result.Plans, err = deps.Diary.Plans(ctx); err != nil {
			return TrainerRosterResult{}, err
		}
	}
	return result, nil
}
