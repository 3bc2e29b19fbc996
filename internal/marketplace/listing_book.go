package marketplace

import (
	"errors"
	"math"
	"sync"

	"github.com/calebomondi/irec-smartcontract/internal/elastic_search"
	"github.com/calebomondi/irec-smartcontract/internal/entity"
	"github.com/calebomondi/irec-smartcontract/internal/factory"
	"github.com/calebomondi/irec-smartcontract/internal/ledger"
	"github.com/calebomondi/irec-smartcontract/internal/repository"
	"go.uber.org/zap"
)

// ListingBook is the append-only registry of secondary-market offers.
// Listings never escrow units; sellers keep custody until settlement, so
// overlapping listings can oversell a balance and fail only when purchased.
type ListingBook struct {
	elastic     elastic_search.Index
	listingRepo repository.ListingRepository
	ledger      ledger.Service
	params      Params

	mu       sync.Mutex
	nextId   uint64
	idLoaded bool
}

func NewListingBook(
	elastic elastic_search.Index,
	listingRepo repository.ListingRepository,
	ledgerService ledger.Service,
	params Params,
) *ListingBook {
	return &ListingBook{
		elastic:     elastic,
		listingRepo: listingRepo,
		ledger:      ledgerService,
		params:      params,
	}
}

// ListToken creates an active listing for the caller's units. The balance
// check is against the live ledger, not a marketplace-side counter.
func (b *ListingBook) ListToken(seller string, amount, pricePerUnit uint64) (*entity.Listing, error) {
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	if pricePerUnit == 0 {
		return nil, ErrInvalidPrice
	}

	// the cost must be representable or the exact-payment check is void
	if amount > math.MaxUint64/pricePerUnit {
		return nil, ErrInvalidAmount
	}

	balance, err := b.ledger.BalanceOf(b.params.UnitToken, seller)
	if err != nil {
		return nil, err
	}
	if balance < amount {
		return nil, ErrInsufficientBalance
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	listing := factory.CreateListing(b.nextListingId(), seller, amount, pricePerUnit)
	b.elastic.AddIndexRequest(elastic_search.ListingIndex.Get(), listing, elastic_search.ListingCreate)
	b.elastic.Persist()

	zap.L().With(
		zap.Uint64("listingId", listing.Id),
		zap.String("seller", seller),
		zap.Uint64("amount", amount),
		zap.Uint64("pricePerUnit", pricePerUnit),
	).Info("ListingBook: Listing created")

	return &listing, nil
}

func (b *ListingBook) GetTokenListing(id uint64) (*entity.Listing, error) {
	listing, err := b.listingRepo.GetListing(id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	return listing, nil
}

func (b *ListingBook) GetListings(size, page int) ([]entity.Listing, int64, error) {
	return b.listingRepo.GetListings(size, page)
}

// caller holds b.mu
func (b *ListingBook) nextListingId() uint64 {
	if !b.idLoaded {
		best, err := b.listingRepo.GetBestListingId()
		if err != nil {
			zap.L().With(zap.Error(err)).Warn("ListingBook: Failed to load best listing id")
		}
		b.nextId = best
		b.idLoaded = true
	}

	b.nextId++
	return b.nextId
}
