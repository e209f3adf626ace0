package projections

import (
	"context"

	"kinetic/internal/domain/application"
	"kinetic/internal/domain/chat"
	"kinetic/internal/domain/purchase"
)

// GetClientDashboardDeps holds dependencies for the client dashboard.
type GetClientDashboardDeps struct {
	Records RecordReader
}

// ClientDashboardResult carries one client's slice of the portal.
type ClientDashboardResult struct {
	Applications []application.Application
	Purchases    []purchase.Purchase
	ChatHistory  []chat.Message
}

// GetClientDashboard collects everything owned by one user.
// POST: Only records whose userId matches are returned
func GetClientDashboard(ctx context.Context, userID string, deps GetClientDashboardDeps) (ClientDashboardResult, error) {
	agg, err := deps.Records.Load(ctx)
	if err != nil {
		return ClientDashboardResult{}, err
	}

	var result ClientDashboardResult
	for _, app := range agg.Applications {
		if app.UserID == userID {
			result.Applications = append(result.Applications, app)
		}
	}
	for _, p := range agg.Purchases {
		if p.UserID == userID {
			result.Purchases = append(result.Purchases, p)
		}
	}
	for _, m := range agg.ChatMessages {
		if m.UserID == userID {
			result.ChatHistory = append(result.ChatHistory, m)
		}
	}
	return result, nil
}
