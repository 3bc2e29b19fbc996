package elastic_search

import (
	"github.com/calebomondi/irec-smartcontract/internal/entity"
	"go.uber.org/zap"
)

func mergeRequests(cached Request, e entity.Entity) entity.Entity {
	switch result := cached.Entity.(type) {
	case entity.SaleConfig:
		return e.(entity.SaleConfig)

	case entity.Listing:
		// amount, price and seller are immutable, only the flag moves
		result.Active = e.(entity.Listing).Active
		return result

	case entity.OwnershipRecord:
		return result

	case entity.Certificate:
		result.Owner = e.(entity.Certificate).Owner
		result.Uri = e.(entity.Certificate).Uri
		return result
	}

	zap.L().Fatal("Failed to merge request")
	return nil
}
