package salon

import (
	"context"
	"time"

	"github.com/NailSitePro/salon-platform/internal/audit"
	domain "github.com/NailSitePro/salon-platform/internal/domain/salon"
	"github.com/NailSitePro/salon-platform/internal/httperr"
	"github.com/NailSitePro/salon-platform/internal/models"
	"github.com/NailSitePro/salon-platform/internal/stats"
)

type ClaimSalon struct {
	repo  domain.Repository
	stats *stats.Maintainer
	audit *audit.Dispatcher
}

func NewClaimSalon(
	repo domain.Repository,
	stats *stats.Maintainer,
	audit *audit.Dispatcher,
) *ClaimSalon {
	return &ClaimSalon{
		repo:  repo,
		stats: stats,
		audit: audit,
	}
}

// Execute transfers ownership of an unclaimed salon to the actor. The
// repository serializes racing claims; the counter adjustment happens
// after the claim is durable and can never roll it back.
func (uc *ClaimSalon) Execute(
	ctx context.Context,
	actor Actor,
	salonID uint,
) (*models.Salon, error) {

	if !actor.Authenticated() {
		return nil, httperr.ErrBusiness("unauthorized")
	}

	s, wasPending, err := uc.repo.Claim(ctx, salonID, actor.ID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	uc.stats.OnSalonClaimed(ctx, wasPending)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "salon_claimed",
		Entity:   "salon",
		EntityID: &s.ID,
		Metadata: map[string]any{"was_pending": wasPending},
	})

	return s, nil
}
