package salon_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/NailSitePro/salon-platform/internal/audit"
	dbpkg "github.com/NailSitePro/salon-platform/internal/db"
	domain "github.com/NailSitePro/salon-platform/internal/domain/salon"
	"github.com/NailSitePro/salon-platform/internal/httperr"
	infraRepo "github.com/NailSitePro/salon-platform/internal/infra/repository"
	"github.com/NailSitePro/salon-platform/internal/models"
	"github.com/NailSitePro/salon-platform/internal/stats"
	ucSalon "github.com/NailSitePro/salon-platform/internal/usecase/salon"
)

type fixture struct {
	db    *gorm.DB
	repo  domain.Repository
	stats *stats.Maintainer

	claim   *ucSalon.ClaimSalon
	create  *ucSalon.CreateSalon
	delete  *ucSalon.DeleteSalon
	contact *ucSalon.ContactLeads
}

func newFixture(t *testing.T) *fixture {
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

	m := stats.New(db)
	require.NoError(t, m.Bootstrap(context.Background()))

	repo := infraRepo.NewSalonGormRepository(db)
	dispatcher := audit.NewDispatcher(audit.New(db))

	return &fixture{
		db:      db,
		repo:    repo,
		stats:   m,
		claim:   ucSalon.NewClaimSalon(repo, m, dispatcher),
		create:  ucSalon.NewCreateSalon(repo, m, dispatcher),
		delete:  ucSalon.NewDeleteSalon(repo, m, dispatcher),
		contact: ucSalon.NewContactLeads(repo, m, dispatcher),
	}
}

func (f *fixture) user(t *testing.T, username, role string) ucSalon.Actor {
	t.Helper()

	u := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, f.db.Create(&u).Error)
	return ucSalon.Actor{ID: u.ID, Role: u.Role}
}

func (f *fixture) salon(t *testing.T, name string) *models.Salon {
	t.Helper()

	s := &models.Salon{Name: name}
	require.NoError(t, f.repo.Create(context.Background(), s))
	return s
}

func (f *fixture) statsRow(t *testing.T) *models.Stats {
	t.Helper()
	s, err := f.stats.Get(context.Background())
	require.NoError(t, err)
	return s
}

// --------------------------------------------------
// Claim
// --------------------------------------------------

func TestClaimSalon_AnonymousIsUnauthorized(t *testing.T) {
	f := newFixture(t)
	s := f.salon(t, "Bliss Nails")

	_, err := f.claim.Execute(context.Background(), ucSalon.Actor{}, s.ID)
	assert.True(t, httperr.IsBusiness(err, "unauthorized"))
}

func TestClaimSalon_TransfersOwnershipAndAdjustsStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	actor := f.user(t, "claimer", models.RoleUser)
	s := f.salon(t, "Bliss Nails")
	require.NoError(t, f.stats.Bootstrap(ctx))

	before := f.statsRow(t)

	claimed, err := f.claim.Execute(ctx, actor, s.ID)
	require.NoError(t, err)

	assert.True(t, claimed.Claimed)
	require.NotNil(t, claimed.OwnerID)
	assert.Equal(t, actor.ID, *claimed.OwnerID)
	assert.Equal(t, string(domain.StatusSubscribed), claimed.ContactStatus)

	after := f.statsRow(t)
	assert.Equal(t, before.TotalSalons, after.TotalSalons)
	assert.Equal(t, before.SampleSites-1, after.SampleSites)
	assert.Equal(t, before.PendingContacts-1, after.PendingContacts)
}

func TestClaimSalon_SecondClaimFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.user(t, "first", models.RoleUser)
	second := f.user(t, "second", models.RoleUser)
	s := f.salon(t, "Bliss Nails")

	_, err := f.claim.Execute(ctx, first, s.ID)
	require.NoError(t, err)

	_, err = f.claim.Execute(ctx, second, s.ID)
	assert.True(t, httperr.IsBusiness(err, "already_claimed"))
}

func TestClaimSalon_MissingSalonIsNotFound(t *testing.T) {
	f := newFixture(t)
	actor := f.user(t, "claimer", models.RoleUser)

	_, err := f.claim.Execute(context.Background(), actor, 12345)
	assert.True(t, httperr.IsBusiness(err, "not_found"))
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func TestCreateSalon_RequiresAdmin(t *testing.T) {
	f := newFixture(t)
	actor := f.user(t, "plain", models.RoleUser)

	_, err := f.create.Execute(context.Background(), actor, ucSalon.CreateSalonInput{Name: "X"})
	assert.True(t, httperr.IsBusiness(err, "forbidden"))
}

func TestCreateSalon_AssignsSlugAndBumpsStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.user(t, "boss", models.RoleAdmin)
	before := f.statsRow(t)

	s, err := f.create.Execute(ctx, admin, ucSalon.CreateSalonInput{
		Name:     "Bliss Nails",
		Location: "Austin, TX",
	})
	require.NoError(t, err)

	assert.Equal(t, "bliss-nails-austin", s.SampleURL)
	assert.False(t, s.Claimed)

	after := f.statsRow(t)
	assert.Equal(t, before.TotalSalons+1, after.TotalSalons)
	assert.Equal(t, before.SampleSites+1, after.SampleSites)
	assert.Equal(t, before.PendingContacts+1, after.PendingContacts)
}

// --------------------------------------------------
// Delete
// --------------------------------------------------

func TestDeleteSalon_ForbiddenForNonOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.user(t, "owner", models.RoleUser)
	stranger := f.user(t, "stranger", models.RoleUser)

	s := f.salon(t, "Bliss Nails")
	_, err := f.claim.Execute(ctx, owner, s.ID)
	require.NoError(t, err)

	_, err = f.delete.Execute(ctx, stranger, s.ID)
	assert.True(t, httperr.IsBusiness(err, "forbidden"))
}

func TestDeleteSalon_OwnerDeletesAndStatsFollow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.user(t, "owner", models.RoleUser)
	s := f.salon(t, "Bliss Nails")
	_, err := f.claim.Execute(ctx, owner, s.ID)
	require.NoError(t, err)

	before := f.statsRow(t)

	slug, err := f.delete.Execute(ctx, owner, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.SampleURL, slug)

	after := f.statsRow(t)
	assert.Equal(t, before.TotalSalons-1, after.TotalSalons)

	_, err = f.repo.GetByID(ctx, s.ID)
	assert.True(t, httperr.IsBusiness(err, "not_found"))
}

// --------------------------------------------------
// Contact leads
// --------------------------------------------------

func TestContactLeads_RequiresAdmin(t *testing.T) {
	f := newFixture(t)
	actor := f.user(t, "plain", models.RoleUser)

	_, err := f.contact.Execute(context.Background(), actor, []uint{1})
	assert.True(t, httperr.IsBusiness(err, "forbidden"))
}

func TestContactLeads_EmptyListIsInvalid(t *testing.T) {
	f := newFixture(t)
	admin := f.user(t, "boss", models.RoleAdmin)

	_, err := f.contact.Execute(context.Background(), admin, nil)
	assert.True(t, httperr.IsBusiness(err, "invalid_argument"))
}

func TestContactLeads_MovesLeadsAndRecomputesPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.user(t, "boss", models.RoleAdmin)
	a := f.salon(t, "A Nails")
	b := f.salon(t, "B Nails")
	f.salon(t, "C Nails")

	updated, err := f.contact.Execute(ctx, admin, []uint{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	// pending_contacts is recomputed from the live count on this path.
	after := f.statsRow(t)
	assert.Equal(t, int64(1), after.PendingContacts)
}
