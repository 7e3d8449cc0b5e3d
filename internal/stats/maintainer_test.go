package stats

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/NailSitePro/salon-platform/internal/domain/salon"
	"github.com/NailSitePro/salon-platform/internal/models"
)

func newTestMaintainer(t *testing.T) (*Maintainer, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// In-memory sqlite gives every pooled connection its own database;
	// one connection keeps all queries on the same one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Salon{}, &models.User{}, &models.Stats{}))

	m := New(db)
	require.NoError(t, m.Bootstrap(context.Background()))
	return m, db
}

func currentStats(t *testing.T, m *Maintainer) *models.Stats {
	t.Helper()
	s, err := m.Get(context.Background())
	require.NoError(t, err)
	return s
}

func TestBootstrap_CreatesRowAndResyncsCounters(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Salon{}, &models.User{}, &models.Stats{}))

	owner := models.User{Username: "o", Email: "o@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&owner).Error)

	require.NoError(t, db.Create(&models.Salon{
		Name: "A", SampleURL: "a",
		ContactStatus: string(domain.StatusNotContacted),
	}).Error)
	require.NoError(t, db.Create(&models.Salon{
		Name: "B", SampleURL: "b",
		Claimed: true, OwnerID: &owner.ID,
		ContactStatus: string(domain.StatusSubscribed),
	}).Error)

	m := New(db)
	require.NoError(t, m.Bootstrap(context.Background()))

	s := currentStats(t, m)
	assert.Equal(t, int64(2), s.TotalSalons)
	assert.Equal(t, int64(1), s.SampleSites)
	assert.Equal(t, int64(1), s.PendingContacts)
	assert.Equal(t, int64(0), s.ActiveSubscriptions)
}

func TestMaintainer_SalonLifecycleDeltas(t *testing.T) {
	m, _ := newTestMaintainer(t)
	ctx := context.Background()

	m.OnSalonCreated(ctx)
	m.OnSalonCreated(ctx)

	s := currentStats(t, m)
	assert.Equal(t, int64(2), s.TotalSalons)
	assert.Equal(t, int64(2), s.SampleSites)
	assert.Equal(t, int64(2), s.PendingContacts)

	m.OnSalonClaimed(ctx, true)

	s = currentStats(t, m)
	assert.Equal(t, int64(2), s.TotalSalons)
	assert.Equal(t, int64(1), s.SampleSites)
	assert.Equal(t, int64(1), s.PendingContacts)

	// A claim of a lead that was already contacted leaves pending alone.
	m.OnSalonClaimed(ctx, false)

	s = currentStats(t, m)
	assert.Equal(t, int64(0), s.SampleSites)
	assert.Equal(t, int64(1), s.PendingContacts)

	m.OnSalonDeleted(ctx, true)

	s = currentStats(t, m)
	assert.Equal(t, int64(1), s.TotalSalons)
	assert.Equal(t, int64(-1), s.SampleSites)
	assert.Equal(t, int64(0), s.PendingContacts)
}

func TestMaintainer_SubscriptionDeltas(t *testing.T) {
	m, _ := newTestMaintainer(t)
	ctx := context.Background()

	m.OnSubscriptionActivated(ctx)
	m.OnSubscriptionActivated(ctx)
	m.OnSubscriptionCancelled(ctx)

	s := currentStats(t, m)
	assert.Equal(t, int64(1), s.ActiveSubscriptions)
}

func TestRecomputePendingContacts_UsesLiveCount(t *testing.T) {
	m, db := newTestMaintainer(t)
	ctx := context.Background()

	for i, status := range []domain.ContactStatus{
		domain.StatusNotContacted,
		domain.StatusNotContacted,
		domain.StatusContacted,
	} {
		require.NoError(t, db.Create(&models.Salon{
			Name:          "s",
			SampleURL:     fmt.Sprintf("salon-%d", i),
			ContactStatus: string(status),
		}).Error)
	}

	// Seed a deliberately wrong counter to prove recompute overwrites it.
	require.NoError(t, db.Model(&models.Stats{}).
		Where("id = ?", models.StatsRowID).
		UpdateColumn("pending_contacts", 99).Error)

	m.RecomputePendingContacts(ctx)

	s := currentStats(t, m)
	assert.Equal(t, int64(2), s.PendingContacts)
}

func TestMaintainer_MissingRowIsSwallowed(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Stats{}))

	// No Bootstrap: the singleton row does not exist. The deltas must not
	// panic or surface an error to the caller.
	m := New(db)
	m.OnSalonCreated(context.Background())
	m.OnSalonClaimed(context.Background(), true)
	m.OnSubscriptionCancelled(context.Background())
}
