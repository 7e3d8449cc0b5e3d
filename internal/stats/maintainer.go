package stats

import (
	"context"
	"log"

	"gorm.io/gorm"

	domain "github.com/NailSitePro/salon-platform/internal/domain/salon"
	"github.com/NailSitePro/salon-platform/internal/models"
)

// Maintainer keeps the singleton stats row in step with salon lifecycle
// events. Counters are adjusted with atomic column deltas, never by
// loading and re-saving the row. Every failure here is logged and
// swallowed: the counters are advisory, the triggering mutation is not.
type Maintainer struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Maintainer {
	return &Maintainer{db: db}
}

// --------------------------------------------------
// Incremental paths
// --------------------------------------------------

func (m *Maintainer) OnSalonCreated(ctx context.Context) {
	m.apply(ctx, "salon create", map[string]any{
		"total_salons":     gorm.Expr("total_salons + ?", 1),
		"sample_sites":     gorm.Expr("sample_sites + ?", 1),
		"pending_contacts": gorm.Expr("pending_contacts + ?", 1),
	})
}

func (m *Maintainer) OnSalonClaimed(ctx context.Context, wasPending bool) {
	deltas := map[string]any{
		"sample_sites": gorm.Expr("sample_sites - ?", 1),
	}
	if wasPending {
		deltas["pending_contacts"] = gorm.Expr("pending_contacts - ?", 1)
	}
	m.apply(ctx, "salon claim", deltas)
}

func (m *Maintainer) OnSalonDeleted(ctx context.Context, wasPending bool) {
	deltas := map[string]any{
		"total_salons": gorm.Expr("total_salons - ?", 1),
		"sample_sites": gorm.Expr("sample_sites - ?", 1),
	}
	if wasPending {
		deltas["pending_contacts"] = gorm.Expr("pending_contacts - ?", 1)
	}
	m.apply(ctx, "salon delete", deltas)
}

func (m *Maintainer) OnSubscriptionActivated(ctx context.Context) {
	m.apply(ctx, "subscription activate", map[string]any{
		"active_subscriptions": gorm.Expr("active_subscriptions + ?", 1),
	})
}

func (m *Maintainer) OnSubscriptionCancelled(ctx context.Context) {
	m.apply(ctx, "subscription cancel", map[string]any{
		"active_subscriptions": gorm.Expr("active_subscriptions - ?", 1),
	})
}

// --------------------------------------------------
// Recomputed path (bulk contact update only)
// --------------------------------------------------

// RecomputePendingContacts resets pending_contacts to the live count of
// notContacted salons. Only the bulk contact path uses this; incremental
// paths keep their delta semantics so observed performance stays the same.
func (m *Maintainer) RecomputePendingContacts(ctx context.Context) {
	var pending int64
	if err := m.db.WithContext(ctx).
		Model(&models.Salon{}).
		Where("contact_status = ?", string(domain.StatusNotContacted)).
		Count(&pending).Error; err != nil {
		log.Printf("stats: recompute pending contacts failed: %v", err)
		return
	}

	m.apply(ctx, "pending recompute", map[string]any{
		"pending_contacts": pending,
	})
}

// --------------------------------------------------
// Reads / bootstrap
// --------------------------------------------------

func (m *Maintainer) Get(ctx context.Context) (*models.Stats, error) {
	var s models.Stats
	if err := m.db.WithContext(ctx).First(&s, models.StatsRowID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// Bootstrap makes sure the singleton row exists and resyncs every counter
// from live counts. Called once at startup, after migration.
func (m *Maintainer) Bootstrap(ctx context.Context) error {
	row := models.Stats{ID: models.StatsRowID}
	if err := m.db.WithContext(ctx).FirstOrCreate(&row, models.Stats{ID: models.StatsRowID}).Error; err != nil {
		return err
	}

	var total, samples, pending, subs int64
	db := m.db.WithContext(ctx)

	if err := db.Model(&models.Salon{}).Count(&total).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Salon{}).Where("claimed = ?", false).Count(&samples).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Salon{}).
		Where("contact_status = ?", string(domain.StatusNotContacted)).
		Count(&pending).Error; err != nil {
		return err
	}
	if err := db.Model(&models.User{}).
		Where("stripe_subscription_id <> ''").
		Count(&subs).Error; err != nil {
		return err
	}

	return db.Model(&models.Stats{}).
		Where("id = ?", models.StatsRowID).
		UpdateColumns(map[string]any{
			"total_salons":         total,
			"sample_sites":         samples,
			"pending_contacts":     pending,
			"active_subscriptions": subs,
		}).Error
}

// apply runs one atomic UPDATE against the singleton row. A missing row or
// a failed update is a warning, never an error for the caller.
func (m *Maintainer) apply(ctx context.Context, op string, deltas map[string]any) {
	res := m.db.WithContext(ctx).
		Model(&models.Stats{}).
		Where("id = ?", models.StatsRowID).
		UpdateColumns(deltas)

	if res.Error != nil {
		log.Printf("stats: %s update failed: %v", op, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		log.Printf("stats: %s update skipped, stats row %d not found", op, models.StatsRowID)
	}
}
