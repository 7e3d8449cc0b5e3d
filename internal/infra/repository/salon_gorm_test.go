package repository

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/NailSitePro/salon-platform/internal/db"
	domain "github.com/NailSitePro/salon-platform/internal/domain/salon"
	"github.com/NailSitePro/salon-platform/internal/httperr"
	"github.com/NailSitePro/salon-platform/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
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

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	u := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         models.RoleUser,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// --------------------------------------------------
// Create / slug assignment
// --------------------------------------------------

func TestCreate_AssignsSlugFromNameAndLocation(t *testing.T) {
	repo := NewSalonGormRepository(newTestDB(t))
	ctx := context.Background()

	s := &models.Salon{Name: "Bliss Nails", Location: "Austin, TX"}
	require.NoError(t, repo.Create(ctx, s))

	assert.Equal(t, "bliss-nails-austin", s.SampleURL)
	assert.Equal(t, string(domain.StatusNotContacted), s.ContactStatus)
	assert.False(t, s.Claimed)
}

func TestCreate_DuplicateNamesGetNumericSuffixes(t *testing.T) {
	repo := NewSalonGormRepository(newTestDB(t))
	ctx := context.Background()

	first := &models.Salon{Name: "Bliss Nails", Location: "Austin, TX"}
	require.NoError(t, repo.Create(ctx, first))

	second := &models.Salon{Name: "Bliss Nails", Location: "Austin, TX"}
	require.NoError(t, repo.Create(ctx, second))

	third := &models.Salon{Name: "Bliss Nails", Location: "Austin, TX"}
	require.NoError(t, repo.Create(ctx, third))

	assert.Equal(t, "bliss-nails-austin", first.SampleURL)
	assert.Equal(t, "bliss-nails-austin-1", second.SampleURL)
	assert.Equal(t, "bliss-nails-austin-2", third.SampleURL)
}

func TestCreate_ExplicitSlugIsKept(t *testing.T) {
	repo := NewSalonGormRepository(newTestDB(t))
	ctx := context.Background()

	s := &models.Salon{Name: "Bliss Nails", SampleURL: "my-custom-slug"}
	require.NoError(t, repo.Create(ctx, s))
	assert.Equal(t, "my-custom-slug", s.SampleURL)
}

func TestCreate_ExplicitDuplicateSlugConflicts(t *testing.T) {
	repo := NewSalonGormRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Salon{Name: "A", SampleURL: "taken"}))

	err := repo.Create(ctx, &models.Salon{Name: "B", SampleURL: "taken"})
	assert.True(t, httperr.IsBusiness(err, "conflict"))
}

func TestCreate_UnsluggableNameGetsRandomFallback(t *testing.T) {
	repo := NewSalonGormRepository(newTestDB(t))
	ctx := context.Background()

	s := &models.Salon{Name: "!!!"}
	require.NoError(t, repo.Create(ctx, s))
	assert.Regexp(t, `^salon-[a-z0-9]{6}$`, s.SampleURL)
}

// --------------------------------------------------
// Claim
// --------------------------------------------------

func TestClaim_TransfersOwnership(t *testing.T) {
	db := newTestDB(t)
	repo := NewSalonGormRepository(db)
	ctx := context.Background()

	owner := newTestUser(t, db, "owner")
	s := &models.Salon{Name: "Bliss Nails", Location: "Austin, TX"}
	require.NoError(t, repo.Create(ctx, s))

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	claimed, wasPending, err := repo.Claim(ctx, s.ID, owner.ID, now)
	require.NoError(t, err)

	assert.True(t, wasPending)
	assert.True(t, claimed.Claimed)
	require.NotNil(t, claimed.OwnerID)
	assert.Equal(t, owner.ID, *claimed.OwnerID)
	require.NotNil(t, claimed.ClaimedAt)
	assert.Equal(t, string(domain.StatusSubscribed), claimed.ContactStatus)
	require.NotNil(t, claimed.Owner)
	assert.Equal(t, "owner", claimed.Owner.Username)
}

func TestClaim_OwnerPreloadFollowsOwnerColumn(t *testing.T) {
	db := newTestDB(t)
	repo := NewSalonGormRepository(db)
	ctx := context.Background()

	owner := newTestUser(t, db, "owner")
	other := newTestUser(t, db, "other")

	s := &models.Salon{Name: "Bliss Nails"}
	require.NoError(t, repo.Create(ctx, s))

	_, _, err := repo.Claim(ctx, s.ID, owner.ID, time.Now().UTC())
	require.NoError(t, err)

	// Another user pointing their profile link at this salon must not
	// leak into the Owner association.
	require.NoError(t, db.Model(other).Update("salon_id", s.ID).Error)

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Owner)
	assert.Equal(t, owner.ID, got.Owner.ID)
	assert.Equal(t, "owner", got.Owner.Username)
}

func TestClaim_SecondClaimLoses(t *testing.T) {
	db := newTestDB(t)
	repo := NewSalonGormRepository(db)
	ctx := context.Background()

	first := newTestUser(t, db, "first")
	second := newTestUser(t, db, "second")

	s := &models.Salon{Name: "Bliss Nails"}
	require.NoError(t, repo.Create(ctx, s))

	_, _, err := repo.Claim(ctx, s.ID, first.ID, time.Now().UTC())
	require.NoError(t, err)

	_, _, err = repo.Claim(ctx, s.ID, second.ID, time.Now().UTC())
	assert.True(t, httperr.IsBusiness(err, "already_claimed"))

	// The original owner is untouched.
	var reloaded models.Salon
	require.NoError(t, db.First(&reloaded, s.ID).Error)
	require.NotNil(t, reloaded.OwnerID)
	assert.Equal(t, first.ID, *reloaded.OwnerID)
}

// newFileTestDB opens a file-backed database so multiple connections can
// contend for the same rows. Transactions start in immediate mode to avoid
// sqlite's shared-to-write lock upgrade deadlock between two writers.
func newFileTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "salons.db") +
		"?_busy_timeout=5000&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func TestClaim_ConcurrentClaimsHaveOneWinner(t *testing.T) {
	db := newFileTestDB(t)
	repo := NewSalonGormRepository(db)
	ctx := context.Background()

	first := newTestUser(t, db, "first")
	second := newTestUser(t, db, "second")

	s := &models.Salon{Name: "Bliss Nails"}
	require.NoError(t, repo.Create(ctx, s))

	userIDs := []uint{first.ID, second.ID}
	errs := make([]error, len(userIDs))

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i, uid := range userIDs {
		wg.Add(1)
		go func(i int, uid uint) {
			defer wg.Done()
			<-start
			_, _, errs[i] = repo.Claim(ctx, s.ID, uid, time.Now().UTC())
		}(i, uid)
	}
	close(start)
	wg.Wait()

	var winners, losers int
	for _, err := range errs {
		switch {
		case err == nil:
			winners++
		case httperr.IsBusiness(err, "already_claimed"):
			losers++
		default:
			t.Fatalf("unexpected claim error: %v", err)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, losers)

	winnerID := userIDs[0]
	if errs[0] != nil {
		winnerID = userIDs[1]
	}

	var reloaded models.Salon
	require.NoError(t, db.First(&reloaded, s.ID).Error)
	assert.True(t, reloaded.Claimed)
	require.NotNil(t, reloaded.OwnerID)
	assert.Equal(t, winnerID, *reloaded.OwnerID)
}

func TestClaim_MissingSalonIsNotFound(t *testing.T) {
	repo := NewSalonGormRepository(newTestDB(t))

	_, _, err := repo.Claim(context.Background(), 9999, 1, time.Now().UTC())
	assert.True(t, httperr.IsBusiness(err, "not_found"))
}

func TestClaim_ContactedLeadIsNotPending(t *testing.T) {
	db := newTestDB(t)
	repo := NewSalonGormRepository(db)
	ctx := context.Background()

	owner := newTestUser(t, db, "owner")
	s := &models.Salon{Name: "Bliss Nails", ContactStatus: string(domain.StatusContacted)}
	require.NoError(t, repo.Create(ctx, s))

	claimed, wasPending, err := repo.Claim(ctx, s.ID, owner.ID, time.Now().UTC())
	require.NoError(t, err)

	assert.False(t, wasPending)
	assert.Equal(t, string(domain.StatusContacted), claimed.ContactStatus)
}

// --------------------------------------------------
// Leads
// --------------------------------------------------

func TestMarkLeadsContacted_OnlyMovesPendingLeads(t *testing.T) {
	db := newTestDB(t)
	repo := NewSalonGormRepository(db)
	ctx := context.Background()

	pending := &models.Salon{Name: "Pending"}
	require.NoError(t, repo.Create(ctx, pending))

	interested := &models.Salon{Name: "Interested", ContactStatus: string(domain.StatusInterested)}
	require.NoError(t, repo.Create(ctx, interested))

	updated, err := repo.MarkLeadsContacted(ctx, []uint{pending.ID, interested.ID, 9999})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	var reloaded models.Salon
	require.NoError(t, db.First(&reloaded, pending.ID).Error)
	assert.Equal(t, string(domain.StatusContacted), reloaded.ContactStatus)

	require.NoError(t, db.First(&reloaded, interested.ID).Error)
	assert.Equal(t, string(domain.StatusInterested), reloaded.ContactStatus)
}

// --------------------------------------------------
// List
// --------------------------------------------------

func TestList_FiltersBySearchAndClaimed(t *testing.T) {
	db := newTestDB(t)
	repo := NewSalonGormRepository(db)
	ctx := context.Background()

	owner := newTestUser(t, db, "owner")

	a := &models.Salon{Name: "Bliss Nails", Location: "Austin, TX"}
	require.NoError(t, repo.Create(ctx, a))
	b := &models.Salon{Name: "Polished", Location: "Dallas, TX"}
	require.NoError(t, repo.Create(ctx, b))

	_, _, err := repo.Claim(ctx, a.ID, owner.ID, time.Now().UTC())
	require.NoError(t, err)

	salons, total, err := repo.List(ctx, domain.ListParams{Search: "bliss"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, salons, 1)
	assert.Equal(t, "Bliss Nails", salons[0].Name)

	claimed := true
	salons, total, err = repo.List(ctx, domain.ListParams{Claimed: &claimed})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, salons, 1)
	assert.Equal(t, a.ID, salons[0].ID)

	unclaimed := false
	_, total, err = repo.List(ctx, domain.ListParams{Claimed: &unclaimed})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
