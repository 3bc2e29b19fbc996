package marketplace

import (
	"errors"
	"math"

	"github.com/calebomondi/irec-smartcontract/internal/elastic_search"
	"github.com/calebomondi/irec-smartcontract/internal/entity"
	"github.com/calebomondi/irec-smartcontract/internal/event"
	"github.com/calebomondi/irec-smartcontract/internal/factory"
	"github.com/calebomondi/irec-smartcontract/internal/ledger"
	"github.com/calebomondi/irec-smartcontract/internal/repository"
	"go.uber.org/zap"
)

// ReserveSaleManager runs the primary sale out of the marketplace's own
// unit balance. Configuration and funding are admin operations.
type ReserveSaleManager struct {
	elastic        elastic_search.Index
	saleConfigRepo repository.SaleConfigRepository
	ledger         ledger.Service
	swap           *SwapEngine
	params         Params
}

func NewReserveSaleManager(
	elastic elastic_search.Index,
	saleConfigRepo repository.SaleConfigRepository,
	ledgerService ledger.Service,
	swap *SwapEngine,
	params Params,
) *ReserveSaleManager {
	return &ReserveSaleManager{
		elastic:        elastic,
		saleConfigRepo: saleConfigRepo,
		ledger:         ledgerService,
		swap:           swap,
		params:         params,
	}
}

// ConfigureSale overwrites the sale configuration and activates the sale.
// Idempotent; no history is kept.
func (m *ReserveSaleManager) ConfigureSale(caller string, pricePerUnit uint64) (*entity.SaleConfig, error) {
	if caller != m.params.Admin {
		return nil, ErrUnauthorized
	}
	if pricePerUnit == 0 {
		return nil, ErrInvalidPrice
	}

	saleConfig := factory.CreateSaleConfig(pricePerUnit)
	m.elastic.AddIndexRequest(elastic_search.SaleConfigIndex.Get(), saleConfig, elastic_search.SaleConfigure)
	m.elastic.Persist()

	zap.L().With(zap.Uint64("pricePerUnit", pricePerUnit)).Info("ReserveSale: Sale configured")

	return &saleConfig, nil
}

// DepositReserveTokens pulls the designated reserve amount from the admin's
// unit balance into the marketplace's. The admin must have approved the
// marketplace for at least that amount beforehand.
func (m *ReserveSaleManager) DepositReserveTokens(caller string) error {
	if caller != m.params.Admin {
		return ErrUnauthorized
	}

	err := m.ledger.TransferFrom(
		m.params.UnitToken,
		m.params.Marketplace,
		m.params.Admin,
		m.params.Marketplace,
		m.params.ReserveAmount,
	)
	if err != nil {
		return translateLedgerError(err)
	}

	zap.L().With(zap.Uint64("amount", m.params.ReserveAmount)).Info("ReserveSale: Reserve funded")
	event.EmitEvent(event.ReserveFundedEvent, m.params.ReserveAmount)

	return nil
}

// PurchaseFromReserve validates the sale preconditions and hands settlement
// to the swap engine. The payment stays with the marketplace.
func (m *ReserveSaleManager) PurchaseFromReserve(buyer string, amount uint64, payment uint64) (*entity.OwnershipRecord, error) {
	saleConfig, err := m.saleConfigRepo.GetSaleConfig()
	if err != nil {
		if errors.Is(err, repository.ErrSaleConfigNotFound) {
			return nil, ErrSaleInactive
		}
		return nil, err
	}
	if !saleConfig.SaleActive {
		return nil, ErrSaleInactive
	}

	if amount == 0 {
		return nil, ErrInvalidAmount
	}

	// the cost must be representable or the exact-payment check is void
	if amount > math.MaxUint64/saleConfig.PricePerUnit {
		return nil, ErrInvalidAmount
	}

	// Over and underpayment fail the same way.
	if payment != amount*saleConfig.PricePerUnit {
		return nil, ErrIncorrectPayment
	}

	return m.swap.PurchaseFromReserve(buyer, amount, payment)
}
