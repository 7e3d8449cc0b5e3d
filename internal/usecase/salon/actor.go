package salon

import "github.com/NailSitePro/salon-platform/internal/models"

// Actor is the authenticated principal a use case is executed as. A zero
// ID means anonymous. Capability checks happen once, here, against this
// explicit value rather than against ambient request state.
type Actor struct {
	ID   uint
	Role string
}

func (a Actor) Authenticated() bool {
	return a.ID != 0
}

func (a Actor) Admin() bool {
	return a.Role == models.RoleAdmin
}
