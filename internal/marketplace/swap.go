package marketplace

import (
	"errors"
	"math/bits"
	"sync"

	"github.com/calebomondi/irec-smartcontract/internal/dev"
	"github.com/calebomondi/irec-smartcontract/internal/elastic_search"
	"github.com/calebomondi/irec-smartcontract/internal/entity"
	"github.com/calebomondi/irec-smartcontract/internal/factory"
	"github.com/calebomondi/irec-smartcontract/internal/ledger"
	"github.com/calebomondi/irec-smartcontract/internal/repository"
	"go.uber.org/zap"
)

// SwapEngine settles purchases for both the reserve and the listing paths.
// A settlement either fully completes or leaves balances, listing flags and
// the ownership log exactly as they were.
type SwapEngine struct {
	elastic     elastic_search.Index
	listingRepo repository.ListingRepository
	recordRepo  repository.OwnershipRecordRepository
	ledger      ledger.Service
	params      Params

	mu           sync.Mutex
	listingLocks map[uint64]*sync.Mutex
	reserveLock  sync.Mutex
	seq          uint64
	seqLoaded    bool
}

func NewSwapEngine(
	elastic elastic_search.Index,
	listingRepo repository.ListingRepository,
	recordRepo repository.OwnershipRecordRepository,
	ledgerService ledger.Service,
	params Params,
) *SwapEngine {
	return &SwapEngine{
		elastic:      elastic,
		listingRepo:  listingRepo,
		recordRepo:   recordRepo,
		ledger:       ledgerService,
		params:       params,
		listingLocks: make(map[uint64]*sync.Mutex),
	}
}

// PurchaseFromListing executes the unit-for-payment swap for a listing. The
// per-listing lock is held for the whole settlement so the active flag, the
// value movements and the log append are observed as one step.
func (e *SwapEngine) PurchaseFromListing(buyer string, listingId uint64, payment uint64) (*entity.OwnershipRecord, error) {
	lock := e.lockFor(listingId)
	lock.Lock()
	defer lock.Unlock()

	listing, err := e.listingRepo.GetListing(listingId)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	if !listing.Active {
		return nil, ErrListingInactive
	}

	// reject any listing whose true cost does not fit uint64
	hi, cost := bits.Mul64(listing.Amount, listing.PricePerUnit)
	if hi != 0 || payment != cost {
		return nil, ErrIncorrectPayment
	}

	// The flag goes down before any value moves. A re-entered purchase of
	// the same listing now fails with ErrListingInactive.
	listing.Active = false
	e.elastic.AddUpdateRequest(elastic_search.ListingIndex.Get(), *listing, elastic_search.ListingDeactivate)
	e.elastic.Persist()

	record, err := e.settle(listing.Seller, buyer, listing.Amount, payment, true)
	if err != nil {
		listing.Active = true
		e.elastic.AddUpdateRequest(elastic_search.ListingIndex.Get(), *listing, elastic_search.ListingReactivate)
		e.elastic.Persist()

		e.captureFailure("PurchaseFromListing", err, map[string]interface{}{
			"listingId": listingId,
			"buyer":     buyer,
		})

		return nil, err
	}

	zap.L().With(
		zap.Uint64("listingId", listingId),
		zap.String("seller", listing.Seller),
		zap.String("buyer", buyer),
		zap.Uint64("amount", listing.Amount),
		zap.Uint64("payment", payment),
	).Info("SwapEngine: Listing purchased")

	return record, nil
}

// PurchaseFromReserve moves units out of the marketplace's own balance. The
// payment is retained by the marketplace; sale preconditions are the
// ReserveSaleManager's concern.
func (e *SwapEngine) PurchaseFromReserve(buyer string, amount uint64, payment uint64) (*entity.OwnershipRecord, error) {
	e.reserveLock.Lock()
	defer e.reserveLock.Unlock()

	reserve, err := e.ledger.BalanceOf(e.params.UnitToken, e.params.Marketplace)
	if err != nil {
		return nil, err
	}
	if reserve < amount {
		return nil, ErrInsufficientReserve
	}

	record, err := e.settle(e.params.Marketplace, buyer, amount, payment, false)
	if err != nil {
		e.captureFailure("PurchaseFromReserve", err, map[string]interface{}{
			"buyer":  buyer,
			"amount": amount,
		})
		return nil, err
	}

	zap.L().With(
		zap.String("buyer", buyer),
		zap.Uint64("amount", amount),
		zap.Uint64("payment", payment),
	).Info("SwapEngine: Reserve purchase")

	return record, nil
}

// settle pulls the buyer's payment and the seller's units into the
// marketplace's own custody, pays the seller, then delivers the units and
// appends the ownership record. Any failed leg unwinds the legs before it,
// and every compensation moves only the marketplace's own balances, so no
// unwinding ever needs a party's transfer authority.
func (e *SwapEngine) settle(seller, buyer string, amount, payment uint64, forwardPayment bool) (*entity.OwnershipRecord, error) {
	if err := e.ledger.TransferFrom(e.params.PaymentToken, e.params.Marketplace, buyer, e.params.Marketplace, payment); err != nil {
		return nil, translateLedgerError(err)
	}

	if seller != e.params.Marketplace {
		if err := e.ledger.TransferFrom(e.params.UnitToken, e.params.Marketplace, seller, e.params.Marketplace, amount); err != nil {
			e.refundPayment(buyer, payment)
			return nil, translateLedgerError(err)
		}
	}

	if forwardPayment {
		if err := e.ledger.Transfer(e.params.PaymentToken, e.params.Marketplace, seller, payment); err != nil {
			e.returnUnits(seller, amount)
			e.refundPayment(buyer, payment)
			return nil, translateLedgerError(err)
		}
	}

	if err := e.ledger.Transfer(e.params.UnitToken, e.params.Marketplace, buyer, amount); err != nil {
		if !forwardPayment {
			e.refundPayment(buyer, payment)
			return nil, translateLedgerError(err)
		}

		// The seller has already been paid. The units stay in marketplace
		// custody for operator recovery; nothing here may touch a balance
		// the marketplace holds no authority over.
		zap.L().With(
			zap.Error(err),
			zap.String("buyer", buyer),
			zap.Uint64("amount", amount),
		).Error("SwapEngine: Failed to deliver units, holding in custody")

		return nil, translateLedgerError(err)
	}

	record := factory.CreateOwnershipRecord(e.nextSeq(), seller, buyer, amount)
	e.elastic.AddIndexRequest(elastic_search.OwnershipRecordIndex.Get(), record, elastic_search.OwnershipRecordCreate)
	e.elastic.Persist()

	return &record, nil
}

func (e *SwapEngine) refundPayment(buyer string, payment uint64) {
	if err := e.ledger.Transfer(e.params.PaymentToken, e.params.Marketplace, buyer, payment); err != nil {
		zap.L().With(zap.Error(err), zap.String("buyer", buyer)).Error("SwapEngine: Failed to refund payment")
	}
}

func (e *SwapEngine) returnUnits(seller string, amount uint64) {
	if err := e.ledger.Transfer(e.params.UnitToken, e.params.Marketplace, seller, amount); err != nil {
		zap.L().With(zap.Error(err), zap.String("seller", seller)).Error("SwapEngine: Failed to return units")
	}
}

func (e *SwapEngine) nextSeq() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.seqLoaded {
		best, err := e.recordRepo.GetBestSeq()
		if err != nil {
			zap.L().With(zap.Error(err)).Warn("SwapEngine: Failed to load best seq")
		}
		e.seq = best
		e.seqLoaded = true
	}

	e.seq++
	return e.seq
}

func (e *SwapEngine) lockFor(listingId uint64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.listingLocks[listingId]; !ok {
		e.listingLocks[listingId] = &sync.Mutex{}
	}

	return e.listingLocks[listingId]
}

func (e *SwapEngine) captureFailure(name string, err error, extra map[string]interface{}) {
	devErr := dev.NewError("swap", name, err, extra)
	e.elastic.AddIndexRequest(elastic_search.DevErrorIndex.Get(), devErr, elastic_search.DevError)
	e.elastic.Persist()
}

func translateLedgerError(err error) error {
	if errors.Is(err, ledger.ErrInsufficientAllowance) {
		return ErrInsufficientAuthorization
	}
	if errors.Is(err, ledger.ErrInsufficientFunds) {
		return ErrInsufficientBalance
	}

	return err
}
