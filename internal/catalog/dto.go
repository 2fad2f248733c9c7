package catalog

import "github.com/marioskal/eshop-backend/pkg/db/models"

// LookupDTO is the transport shape shared by brands, categories, and regions.
type LookupDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func BrandToDTO(b models.Brand) LookupDTO {
	return LookupDTO{ID: b.ID, Name: b.Name}
}

func CategoryToDTO(c models.Category) LookupDTO {
	return LookupDTO{ID: c.ID, Name: c.Name}
}

func RegionToDTO(r models.Region) LookupDTO {
	return LookupDTO{ID: r.ID, Name: r.Name}
}
