package salon

import (
	"context"

	"gorm.io/datatypes"

	"github.com/NailSitePro/salon-platform/internal/audit"
	domain "github.com/NailSitePro/salon-platform/internal/domain/salon"
	"github.com/NailSitePro/salon-platform/internal/httperr"
	"github.com/NailSitePro/salon-platform/internal/models"
	"github.com/NailSitePro/salon-platform/internal/stats"
)

// ======================================================
// INPUT
// ======================================================

type CreateSalonInput struct {
	Name     string
	Location string
	Address  string
	Phone    string
	Email    string

	Description  string
	Services     datatypes.JSON
	OpeningHours string

	TemplateID *uint

	// SampleURL may be set explicitly by an admin; left empty it is
	// assigned from name and location.
	SampleURL string
}

// ======================================================
// USE CASE
// ======================================================

type CreateSalon struct {
	repo  domain.Repository
	stats *stats.Maintainer
	audit *audit.Dispatcher
}

func NewCreateSalon(
	repo domain.Repository,
	stats *stats.Maintainer,
	audit *audit.Dispatcher,
) *CreateSalon {
	return &CreateSalon{
		repo:  repo,
		stats: stats,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateSalon) Execute(
	ctx context.Context,
	actor Actor,
	in CreateSalonInput,
) (*models.Salon, error) {

	if !actor.Authenticated() {
		return nil, httperr.ErrBusiness("unauthorized")
	}
	if !actor.Admin() {
		return nil, httperr.ErrBusiness("forbidden")
	}
	if in.Name == "" {
		return nil, httperr.ErrBusiness("invalid_argument")
	}

	s := &models.Salon{
		Name:         in.Name,
		Location:     in.Location,
		Address:      in.Address,
		Phone:        in.Phone,
		Email:        in.Email,
		Description:  in.Description,
		Services:     in.Services,
		OpeningHours: in.OpeningHours,
		TemplateID:   in.TemplateID,
		SampleURL:    in.SampleURL,
		// New salons are unclaimed sample sites and untouched leads.
		Claimed:       false,
		ContactStatus: string(domain.InitialContactStatus()),
	}

	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}

	uc.stats.OnSalonCreated(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "salon_created",
		Entity:   "salon",
		EntityID: &s.ID,
	})

	return s, nil
}
