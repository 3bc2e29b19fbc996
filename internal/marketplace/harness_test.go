package marketplace

import (
	"sort"

	"github.com/calebomondi/irec-smartcontract/internal/elastic_search"
	"github.com/calebomondi/irec-smartcontract/internal/entity"
	"github.com/calebomondi/irec-smartcontract/internal/ledger"
	"github.com/calebomondi/irec-smartcontract/internal/repository"
	"github.com/olivere/elastic/v7"
)

const (
	testAdmin       = "0xadmin"
	testMarket      = "0xmarketplace"
	testUnitToken   = "0xunits"
	testPayToken    = "0xpayments"
	testSupply      = uint64(1000)
	testReserve     = uint64(1000)
	testSeller      = "0xseller"
	testBuyer       = "0xbuyer"
)

type market struct {
	index   *fakeIndex
	ledger  *ledger.MemoryLedger
	swap    *SwapEngine
	reserve *ReserveSaleManager
	book    *ListingBook
	records *OwnershipLedger
}

func newMarket() *market {
	index := newFakeIndex()
	memory := ledger.NewMemoryLedger()

	params := Params{
		Admin:         testAdmin,
		Marketplace:   testMarket,
		UnitToken:     testUnitToken,
		PaymentToken:  testPayToken,
		TotalSupply:   testSupply,
		ReserveAmount: testReserve,
	}

	listingRepo := fakeListingRepo{index}
	saleConfigRepo := fakeSaleConfigRepo{index}
	recordRepo := fakeRecordRepo{index}

	swap := NewSwapEngine(index, listingRepo, recordRepo, memory, params)

	return &market{
		index:   index,
		ledger:  memory,
		swap:    swap,
		reserve: NewReserveSaleManager(index, saleConfigRepo, memory, swap, params),
		book:    NewListingBook(index, listingRepo, memory, params),
		records: NewOwnershipLedger(recordRepo, memory, params),
	}
}

// newFundedMarket seeds the full supply with the admin, funds the reserve
// and activates the sale at the given price.
func newFundedMarket(pricePerUnit uint64) *market {
	m := newMarket()
	m.ledger.Mint(testUnitToken, testAdmin, testSupply)
	m.ledger.Approve(testUnitToken, testAdmin, testMarket, testReserve)

	if _, err := m.reserve.ConfigureSale(testAdmin, pricePerUnit); err != nil {
		panic(err)
	}
	if err := m.reserve.DepositReserveTokens(testAdmin); err != nil {
		panic(err)
	}

	return m
}

func (m *market) fundBuyer(payment uint64) {
	m.ledger.Mint(testPayToken, testBuyer, payment)
	m.ledger.Approve(testPayToken, testBuyer, testMarket, payment)
}

func (m *market) balance(token, holder string) uint64 {
	balance, _ := m.ledger.BalanceOf(token, holder)
	return balance
}

// fakeIndex is an in-memory stand-in for the elastic index. Saves are
// immediately visible; buffered requests surface on Persist, matching the
// pending-request behaviour the repositories rely on.
type fakeIndex struct {
	store   map[string]map[string]entity.Entity
	pending map[string]elastic_search.Request
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{
		store:   make(map[string]map[string]entity.Entity),
		pending: make(map[string]elastic_search.Request),
	}
}

func (f *fakeIndex) GetClient() *elastic.Client { return nil }

func (f *fakeIndex) InstallMappings() {}

func (f *fakeIndex) AddIndexRequest(index string, e entity.Entity, action elastic_search.RequestAction) {
	f.AddRequest(index, e, elastic_search.IndexRequest, action)
}

func (f *fakeIndex) AddUpdateRequest(index string, e entity.Entity, action elastic_search.RequestAction) {
	f.AddRequest(index, e, elastic_search.UpdateRequest, action)
}

func (f *fakeIndex) AddRequest(index string, e entity.Entity, reqType elastic_search.RequestType, action elastic_search.RequestAction) {
	f.pending[e.Slug()] = elastic_search.Request{Index: index, Entity: e, Type: reqType, Action: action}
}

func (f *fakeIndex) GetRequests() []elastic_search.Request {
	requests := make([]elastic_search.Request, 0)
	for _, req := range f.pending {
		requests = append(requests, req)
	}
	return requests
}

func (f *fakeIndex) GetRequest(id string) *elastic_search.Request {
	if req, found := f.pending[id]; found {
		return &req
	}
	return nil
}

func (f *fakeIndex) ClearRequests() {
	f.pending = make(map[string]elastic_search.Request)
}

func (f *fakeIndex) Save(index string, e entity.Entity) {
	if f.store[index] == nil {
		f.store[index] = make(map[string]entity.Entity)
	}
	f.store[index][e.Slug()] = e
}

func (f *fakeIndex) Persist() int {
	count := len(f.pending)
	for _, req := range f.pending {
		f.Save(req.Index, req.Entity)
	}
	f.ClearRequests()
	return count
}

type fakeListingRepo struct {
	index *fakeIndex
}

func (r fakeListingRepo) GetListing(id uint64) (*entity.Listing, error) {
	if id == 0 {
		return nil, repository.ErrListingNotFound
	}

	if req := r.index.GetRequest(entity.CreateListingSlug(id)); req != nil {
		listing := req.Entity.(entity.Listing)
		return &listing, nil
	}

	if e, found := r.index.store[elastic_search.ListingIndex.Get()][entity.CreateListingSlug(id)]; found {
		listing := e.(entity.Listing)
		return &listing, nil
	}

	return nil, repository.ErrListingNotFound
}

func (r fakeListingRepo) GetListings(size, page int) ([]entity.Listing, int64, error) {
	listings := r.all()
	from := size*page - size
	if from > len(listings) {
		from = len(listings)
	}
	to := from + size
	if to > len(listings) {
		to = len(listings)
	}

	return listings[from:to], int64(len(listings)), nil
}

func (r fakeListingRepo) GetActiveListingsBySeller(seller string) ([]entity.Listing, int64, error) {
	listings := make([]entity.Listing, 0)
	for _, l := range r.all() {
		if l.Seller == seller && l.Active {
			listings = append(listings, l)
		}
	}

	return listings, int64(len(listings)), nil
}

func (r fakeListingRepo) GetBestListingId() (uint64, error) {
	best := uint64(0)
	for _, l := range r.all() {
		if l.Id > best {
			best = l.Id
		}
	}

	return best, nil
}

func (r fakeListingRepo) all() []entity.Listing {
	listings := make([]entity.Listing, 0)
	for _, e := range r.index.store[elastic_search.ListingIndex.Get()] {
		listings = append(listings, e.(entity.Listing))
	}
	sort.Slice(listings, func(i, j int) bool { return listings[i].Id < listings[j].Id })

	return listings
}

type fakeSaleConfigRepo struct {
	index *fakeIndex
}

func (r fakeSaleConfigRepo) GetSaleConfig() (*entity.SaleConfig, error) {
	if req := r.index.GetRequest(entity.SaleConfig{}.Slug()); req != nil {
		saleConfig := req.Entity.(entity.SaleConfig)
		return &saleConfig, nil
	}

	if e, found := r.index.store[elastic_search.SaleConfigIndex.Get()][entity.SaleConfig{}.Slug()]; found {
		saleConfig := e.(entity.SaleConfig)
		return &saleConfig, nil
	}

	return nil, repository.ErrSaleConfigNotFound
}

type fakeRecordRepo struct {
	index *fakeIndex
}

func (r fakeRecordRepo) GetTransfers(size, page int) ([]entity.OwnershipRecord, int64, error) {
	records := r.all()
	from := size*page - size
	if from > len(records) {
		from = len(records)
	}
	to := from + size
	if to > len(records) {
		to = len(records)
	}

	return records[from:to], int64(len(records)), nil
}

func (r fakeRecordRepo) GetTransfersByHolder(holder string, size, page int) ([]entity.OwnershipRecord, int64, error) {
	records := make([]entity.OwnershipRecord, 0)
	for _, record := range r.all() {
		if record.From == holder || record.To == holder {
			records = append(records, record)
		}
	}

	return records, int64(len(records)), nil
}

func (r fakeRecordRepo) GetBestSeq() (uint64, error) {
	best := uint64(0)
	for _, record := range r.all() {
		if record.Seq > best {
			best = record.Seq
		}
	}

	return best, nil
}

func (r fakeRecordRepo) all() []entity.OwnershipRecord {
	records := make([]entity.OwnershipRecord, 0)
	for _, e := range r.index.store[elastic_search.OwnershipRecordIndex.Get()] {
		records = append(records, e.(entity.OwnershipRecord))
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Seq < records[j].Seq })

	return records
}
