package entity

import "testing"

func TestListingCost(t *testing.T) {
	tests := []struct {
		name    string
		listing Listing
		want    uint64
	}{
		{"hundred at two", Listing{Amount: 100, PricePerUnit: 2}, 200},
		{"single unit", Listing{Amount: 1, PricePerUnit: 50}, 50},
		{"zero amount", Listing{Amount: 0, PricePerUnit: 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.listing.Cost(); got != tt.want {
				t.Errorf("Cost() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestListingSlug(t *testing.T) {
	listing := Listing{Id: 42}
	if got := listing.Slug(); got != "listing-42" {
		t.Errorf("Slug() = %s, want listing-42", got)
	}
	if got := CreateListingSlug(42); got != listing.Slug() {
		t.Errorf("CreateListingSlug(42) = %s, want %s", got, listing.Slug())
	}
}
