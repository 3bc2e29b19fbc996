package entity

import (
	"fmt"

	"github.com/gosimple/slug"
)

type Listing struct {
	Id           uint64 `json:"id"`
	Seller       string `json:"seller"`
	Amount       uint64 `json:"amount"`
	PricePerUnit uint64 `json:"pricePerUnit"`
	Active       bool   `json:"active"`
	CreatedAt    int64  `json:"createdAt"`
}

// Cost is the exact payment required to take the full listing.
func (l Listing) Cost() uint64 {
	return l.Amount * l.PricePerUnit
}

func (l Listing) Slug() string {
	return CreateListingSlug(l.Id)
}

func CreateListingSlug(id uint64) string {
	return slug.Make(fmt.Sprintf("listing-%d", id))
}
