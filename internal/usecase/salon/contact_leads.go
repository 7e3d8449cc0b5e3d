package salon

import (
	"context"

	"github.com/NailSitePro/salon-platform/internal/audit"
	domain "github.com/NailSitePro/salon-platform/internal/domain/salon"
	"github.com/NailSitePro/salon-platform/internal/httperr"
	"github.com/NailSitePro/salon-platform/internal/stats"
)

type ContactLeads struct {
	repo  domain.Repository
	stats *stats.Maintainer
	audit *audit.Dispatcher
}

func NewContactLeads(
	repo domain.Repository,
	stats *stats.Maintainer,
	audit *audit.Dispatcher,
) *ContactLeads {
	return &ContactLeads{
		repo:  repo,
		stats: stats,
		audit: audit,
	}
}

// Execute bulk-moves the given leads from notContacted to contacted and
// returns how many actually transitioned. pending_contacts is recomputed
// from a fresh count afterwards instead of subtracting the result: the
// bulk path trades one count query for immunity to accumulated drift.
func (uc *ContactLeads) Execute(
	ctx context.Context,
	actor Actor,
	leadIDs []uint,
) (int64, error) {

	if !actor.Authenticated() {
		return 0, httperr.ErrBusiness("unauthorized")
	}
	if !actor.Admin() {
		return 0, httperr.ErrBusiness("forbidden")
	}
	if len(leadIDs) == 0 {
		return 0, httperr.ErrBusiness("invalid_argument")
	}

	updated, err := uc.repo.MarkLeadsContacted(ctx, leadIDs)
	if err != nil {
		return 0, err
	}

	uc.stats.RecomputePendingContacts(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID: &actor.ID,
		Action: "leads_contacted",
		Entity: "salon",
		Metadata: map[string]any{
			"lead_ids": leadIDs,
			"updated":  updated,
		},
	})

	return updated, nil
}
