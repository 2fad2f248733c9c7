package admins

import (
	"time"

	"github.com/marioskal/eshop-backend/pkg/db/models"
)

// AdminDTO is the transport projection of an admin profile.
type AdminDTO struct {
	UUID      string    `json:"uuid"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromModel(a *models.AdminUser) *AdminDTO {
	if a == nil {
		return nil
	}

	dto := &AdminDTO{
		UUID:      a.UUID,
		Firstname: a.Firstname,
		Lastname:  a.Lastname,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.User != nil {
		dto.Username = a.User.Username
	}
	return dto
}
