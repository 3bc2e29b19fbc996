package marketplace

import (
	"github.com/calebomondi/irec-smartcontract/internal/entity"
	"github.com/calebomondi/irec-smartcontract/internal/ledger"
	"github.com/calebomondi/irec-smartcontract/internal/repository"
)

const basisPointScale = 10000

// OwnershipLedger serves the audit log and the derived ownership view.
type OwnershipLedger struct {
	recordRepo repository.OwnershipRecordRepository
	ledger     ledger.Service
	params     Params
}

func NewOwnershipLedger(
	recordRepo repository.OwnershipRecordRepository,
	ledgerService ledger.Service,
	params Params,
) *OwnershipLedger {
	return &OwnershipLedger{
		recordRepo: recordRepo,
		ledger:     ledgerService,
		params:     params,
	}
}

// GetOwnershipTransfers returns completed swaps in program order. The full
// sequence is retrievable by paging.
func (o *OwnershipLedger) GetOwnershipTransfers(size, page int) ([]entity.OwnershipRecord, int64, error) {
	return o.recordRepo.GetTransfers(size, page)
}

func (o *OwnershipLedger) GetTransfersByHolder(holder string, size, page int) ([]entity.OwnershipRecord, int64, error) {
	return o.recordRepo.GetTransfersByHolder(holder, size, page)
}

// GetOwnershipPercentage computes the holder's share in basis points from
// the live ledger balance and the fixed total supply.
func (o *OwnershipLedger) GetOwnershipPercentage(holder string) (uint64, error) {
	if o.params.TotalSupply == 0 {
		return 0, nil
	}

	balance, err := o.ledger.BalanceOf(o.params.UnitToken, holder)
	if err != nil {
		return 0, err
	}

	return balance * basisPointScale / o.params.TotalSupply, nil
}
