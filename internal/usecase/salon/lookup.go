package salon

import (
	"context"

	"github.com/NailSitePro/salon-platform/internal/cache"
	domain "github.com/NailSitePro/salon-platform/internal/domain/salon"
	"github.com/NailSitePro/salon-platform/internal/models"
)

type LookupSalon struct {
	repo  domain.Repository
	cache *cache.Cache
}

func NewLookupSalon(
	repo domain.Repository,
	cache *cache.Cache,
) *LookupSalon {
	return &LookupSalon{
		repo:  repo,
		cache: cache,
	}
}

// Execute resolves a salon by its sample URL. This is the public site
// renderer's hot path, so hits are served from redis when possible.
func (uc *LookupSalon) Execute(
	ctx context.Context,
	sampleURL string,
) (*models.Salon, error) {

	if s, ok := uc.cache.GetSalonBySlug(ctx, sampleURL); ok {
		return s, nil
	}

	s, err := uc.repo.GetBySampleURL(ctx, sampleURL)
	if err != nil {
		return nil, err
	}

	uc.cache.SetSalonBySlug(ctx, s)
	return s, nil
}
