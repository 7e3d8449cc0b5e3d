package salon

import (
	"context"

	"github.com/NailSitePro/salon-platform/internal/audit"
	domain "github.com/NailSitePro/salon-platform/internal/domain/salon"
	"github.com/NailSitePro/salon-platform/internal/httperr"
	"github.com/NailSitePro/salon-platform/internal/stats"
)

type DeleteSalon struct {
	repo  domain.Repository
	stats *stats.Maintainer
	audit *audit.Dispatcher
}

func NewDeleteSalon(
	repo domain.Repository,
	stats *stats.Maintainer,
	audit *audit.Dispatcher,
) *DeleteSalon {
	return &DeleteSalon{
		repo:  repo,
		stats: stats,
		audit: audit,
	}
}

func (uc *DeleteSalon) Execute(
	ctx context.Context,
	actor Actor,
	salonID uint,
) (deletedSlug string, err error) {

	if !actor.Authenticated() {
		return "", httperr.ErrBusiness("unauthorized")
	}

	s, err := uc.repo.GetByID(ctx, salonID)
	if err != nil {
		return "", err
	}

	ownedByActor := s.OwnerID != nil && *s.OwnerID == actor.ID
	if !actor.Admin() && !ownedByActor {
		return "", httperr.ErrBusiness("forbidden")
	}

	// Contact status must be captured before the row disappears.
	wasPending := domain.ContactStatus(s.ContactStatus) == domain.StatusNotContacted

	if err := uc.repo.Delete(ctx, s); err != nil {
		return "", err
	}

	uc.stats.OnSalonDeleted(ctx, wasPending)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "salon_deleted",
		Entity:   "salon",
		EntityID: &salonID,
	})

	return s.SampleURL, nil
}
