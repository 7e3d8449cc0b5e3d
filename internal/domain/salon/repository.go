package salon

import (
	"context"
	"time"

	"github.com/NailSitePro/salon-platform/internal/models"
)

type ListParams struct {
	// Search matches name, location and description, case-insensitive.
	Search  string
	Claimed *bool
	Limit   int
	Offset  int
}

type Repository interface {
	// -------- Reads --------
	GetByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	GetBySampleURL(
		ctx context.Context,
		sampleURL string,
	) (*models.Salon, error)

	List(
		ctx context.Context,
		params ListParams,
	) ([]models.Salon, int64, error)

	// -------- Lifecycle --------

	// Create inserts the salon, assigning a unique SampleURL when none is
	// set. Slug probing and the insert share one transaction; the unique
	// constraint on sample_url is the final authority and a violation
	// triggers a bounded re-probe.
	Create(
		ctx context.Context,
		s *models.Salon,
	) error

	Update(
		ctx context.Context,
		s *models.Salon,
	) error

	Delete(
		ctx context.Context,
		s *models.Salon,
	) error

	// -------- Claim --------

	// Claim atomically transitions an unclaimed salon to claimed. Of two
	// racing claims exactly one succeeds; the loser gets already_claimed.
	Claim(
		ctx context.Context,
		salonID uint,
		ownerID uint,
		now time.Time,
	) (*models.Salon, bool, error)

	// -------- Leads --------

	MarkLeadsContacted(
		ctx context.Context,
		ids []uint,
	) (int64, error)

	CountByContactStatus(
		ctx context.Context,
		status ContactStatus,
	) (int64, error)
}
