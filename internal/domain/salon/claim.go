package salon

import (
	"time"

	"github.com/NailSitePro/salon-platform/internal/httperr"
	"github.com/NailSitePro/salon-platform/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// CanClaim checks both Claimed and OwnerID: they always move in lockstep,
// and checking both guards against a partially-migrated record.
func CanClaim(s *models.Salon) error {
	if s.Claimed || s.OwnerID != nil {
		return httperr.ErrBusiness("already_claimed")
	}
	return nil
}

// Claim is the only writer of Claimed, OwnerID and ClaimedAt. It reports
// whether the salon was still a pending lead before the transition, which
// the stats maintainer needs for its counter deltas. A pending lead that
// claims its site converts straight to subscribed.
func Claim(s *models.Salon, ownerID uint, now time.Time) (wasPending bool, err error) {
	if err := CanClaim(s); err != nil {
		return false, err
	}

	wasPending = ContactStatus(s.ContactStatus) == StatusNotContacted

	s.OwnerID = &ownerID
	s.Claimed = true
	s.ClaimedAt = &now
	if wasPending {
		s.ContactStatus = string(StatusSubscribed)
	}

	return wasPending, nil
}
