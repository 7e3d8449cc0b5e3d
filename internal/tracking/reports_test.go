package tracking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/NailSitePro/salon-platform/internal/models"
)

func newTestReports(t *testing.T) (*Reports, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// In-memory sqlite gives every pooled connection its own database;
	// one connection keeps all queries on the same one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Visit{}))
	return NewReports(db), db
}

func visitAt(t *testing.T, db *gorm.DB, path, ip, session string, at time.Time) {
	t.Helper()

	v := models.Visit{Path: path, IPAddress: ip, SessionID: session}
	require.NoError(t, db.Create(&v).Error)
	require.NoError(t, db.Model(&v).UpdateColumn("created_at", at).Error)
}

func TestOverview_CountsWithinInclusiveRange(t *testing.T) {
	r, db := newTestReports(t)
	ctx := context.Background()

	day1 := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 1, 11, 18, 30, 0, 0, time.UTC)
	outside := time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC)

	visitAt(t, db, "/", "1.1.1.1", "s1", day1)
	visitAt(t, db, "/", "1.1.1.1", "s1", day1.Add(time.Hour))
	visitAt(t, db, "/pricing", "2.2.2.2", "s2", day2)
	visitAt(t, db, "/", "3.3.3.3", "s3", outside)

	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)

	ov, err := r.BuildOverview(ctx, start, end)
	require.NoError(t, err)

	assert.Equal(t, int64(3), ov.TotalVisits)
	assert.Equal(t, int64(2), ov.UniqueIPs)
	assert.Equal(t, int64(2), ov.UniqueSessions)
	assert.Equal(t, int64(0), ov.UniqueUsers)

	require.Len(t, ov.VisitsByDay, 2)
	assert.Equal(t, int64(2), ov.VisitsByDay[0].Count)
	assert.Equal(t, int64(1), ov.VisitsByDay[1].Count)

	require.NotEmpty(t, ov.PopularPages)
	assert.Equal(t, "/", ov.PopularPages[0].Path)
	assert.Equal(t, int64(2), ov.PopularPages[0].Count)
}

func TestPurgeOlderThan(t *testing.T) {
	r, db := newTestReports(t)
	ctx := context.Background()

	old := time.Now().UTC().AddDate(0, 0, -200)
	recent := time.Now().UTC().AddDate(0, 0, -1)

	visitAt(t, db, "/", "1.1.1.1", "s1", old)
	visitAt(t, db, "/", "2.2.2.2", "s2", recent)

	deleted, err := r.PurgeOlderThan(ctx, time.Now().UTC().AddDate(0, 0, -180))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var remaining int64
	require.NoError(t, db.Model(&models.Visit{}).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)
}
