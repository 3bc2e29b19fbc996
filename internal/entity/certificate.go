package entity

import (
	"fmt"

	"github.com/gosimple/slug"
)

// Certificate is a read-through snapshot of the backing non-fungible
// certificate held by the external registry.
type Certificate struct {
	Id         uint64 `json:"id"`
	Owner      string `json:"owner"`
	Uri        string `json:"uri"`
	TotalUnits uint64 `json:"totalUnits"`
}

func (c Certificate) Slug() string {
	return CreateCertificateSlug(c.Id)
}

func CreateCertificateSlug(id uint64) string {
	return slug.Make(fmt.Sprintf("certificate-%d", id))
}
