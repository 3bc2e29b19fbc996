package factory

import (
	"time"

	"github.com/calebomondi/irec-smartcontract/internal/entity"
)

func CreateListing(id uint64, seller string, amount, pricePerUnit uint64) entity.Listing {
	return entity.Listing{
		Id:           id,
		Seller:       seller,
		Amount:       amount,
		PricePerUnit: pricePerUnit,
		Active:       true,
		CreatedAt:    time.Now().Unix(),
	}
}

func CreateSaleConfig(pricePerUnit uint64) entity.SaleConfig {
	return entity.SaleConfig{
		PricePerUnit: pricePerUnit,
		SaleActive:   true,
		UpdatedAt:    time.Now().Unix(),
	}
}
