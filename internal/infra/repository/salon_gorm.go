package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "github.com/NailSitePro/salon-platform/internal/domain/salon"
	"github.com/NailSitePro/salon-platform/internal/httperr"
	"github.com/NailSitePro/salon-platform/internal/models"
)

// maxSlugAttempts bounds both the in-transaction probe loop and the
// retry-on-constraint-violation loop. Exhausting it is effectively
// unreachable but must surface as a distinct conflict, not a generic 500.
const maxSlugAttempts = 50

type SalonGormRepository struct {
	db *gorm.DB
}

func NewSalonGormRepository(db *gorm.DB) *SalonGormRepository {
	return &SalonGormRepository{db: db}
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *SalonGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var s models.Salon
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Template").
		First(&s, id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("not_found")
		}
		return nil, err
	}
	return &s, nil
}

func (r *SalonGormRepository) GetBySampleURL(
	ctx context.Context,
	sampleURL string,
) (*models.Salon, error) {

	var s models.Salon
	if err := r.db.WithContext(ctx).
		Preload("Template").
		Where("sample_url = ?", sampleURL).
		First(&s).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("not_found")
		}
		return nil, err
	}
	return &s, nil
}

func (r *SalonGormRepository) List(
	ctx context.Context,
	params domain.ListParams,
) ([]models.Salon, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Salon{})

	if params.Search != "" {
		term := "%" + strings.ToLower(params.Search) + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(location) LIKE ? OR LOWER(description) LIKE ?",
			term, term, term,
		)
	}

	if params.Claimed != nil {
		q = q.Where("claimed = ?", *params.Claimed)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var salons []models.Salon
	if err := q.
		Preload("Owner").
		Preload("Template").
		Order("name ASC").
		Limit(limit).
		Offset(params.Offset).
		Find(&salons).Error; err != nil {
		return nil, 0, err
	}

	return salons, total, nil
}

// --------------------------------------------------
// Create (slug assignment)
// --------------------------------------------------

func (r *SalonGormRepository) Create(
	ctx context.Context,
	s *models.Salon,
) error {

	if s.ContactStatus == "" {
		s.ContactStatus = string(domain.InitialContactStatus())
	}

	// An explicitly provided slug is inserted as-is; the unique
	// constraint rejects duplicates.
	if s.SampleURL != "" {
		if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
			if isDuplicateKey(err) {
				return httperr.ErrBusiness("conflict")
			}
			return err
		}
		return nil
	}

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			slug, err := r.nextFreeSlug(tx, s)
			if err != nil {
				return err
			}
			s.SampleURL = slug
			return tx.Create(s).Error
		})

		if err == nil {
			return nil
		}
		if !isDuplicateKey(err) {
			return err
		}

		// A concurrent insert won the slug between probe and insert.
		// Re-probe from scratch.
		s.ID = 0
		s.SampleURL = ""
	}

	return httperr.ErrBusiness("conflict")
}

// nextFreeSlug probes "{base}", "{base}-1", "{base}-2", ... until no other
// salon holds the candidate, excluding the record itself on update paths.
func (r *SalonGormRepository) nextFreeSlug(
	tx *gorm.DB,
	s *models.Salon,
) (string, error) {

	base := domain.SlugBase(s.Name, s.Location)
	candidate := base

	for n := 1; n <= maxSlugAttempts; n++ {
		var count int64
		q := tx.Model(&models.Salon{}).Where("sample_url = ?", candidate)
		if s.ID != 0 {
			q = q.Where("id <> ?", s.ID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = domain.SuffixedSlug(base, n)
	}

	return "", httperr.ErrBusiness("conflict")
}

// --------------------------------------------------
// Update / Delete
// --------------------------------------------------

func (r *SalonGormRepository) Update(
	ctx context.Context,
	s *models.Salon,
) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SalonGormRepository) Delete(
	ctx context.Context,
	s *models.Salon,
) error {
	return r.db.WithContext(ctx).Delete(s).Error
}

// --------------------------------------------------
// Claim
// --------------------------------------------------

func (r *SalonGormRepository) Claim(
	ctx context.Context,
	salonID uint,
	ownerID uint,
	now time.Time,
) (*models.Salon, bool, error) {

	var claimed models.Salon
	var wasPending bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var s models.Salon
		if err := tx.First(&s, salonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("not_found")
			}
			return err
		}

		pending, err := domain.Claim(&s, ownerID, now)
		if err != nil {
			return err
		}
		wasPending = pending

		// The guarded update is the serialization point: of two racing
		// claims only one matches claimed = false AND owner_id IS NULL.
		res := tx.Model(&models.Salon{}).
			Where("id = ? AND claimed = ? AND owner_id IS NULL", salonID, false).
			Updates(map[string]any{
				"owner_id":       ownerID,
				"claimed":        true,
				"claimed_at":     now,
				"contact_status": s.ContactStatus,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("already_claimed")
		}

		return tx.Preload("Owner").Preload("Template").First(&claimed, salonID).Error
	})

	if err != nil {
		return nil, false, err
	}
	return &claimed, wasPending, nil
}

// --------------------------------------------------
// Leads
// --------------------------------------------------

func (r *SalonGormRepository) MarkLeadsContacted(
	ctx context.Context,
	ids []uint,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Salon{}).
		Where("id IN ? AND contact_status = ?", ids, string(domain.StatusNotContacted)).
		Update("contact_status", string(domain.StatusContacted))

	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *SalonGormRepository) CountByContactStatus(
	ctx context.Context,
	status domain.ContactStatus,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Salon{}).
		Where("contact_status = ?", string(status)).
		Count(&count).Error
	return count, err
}

// isDuplicateKey matches unique-constraint violations across the postgres
// and sqlite drivers; TranslateError in the gorm config normalizes most of
// them to gorm.ErrDuplicatedKey.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
