package repository

import (
	"encoding/json"
	"errors"

	"github.com/calebomondi/irec-smartcontract/internal/elastic_search"
	"github.com/calebomondi/irec-smartcontract/internal/entity"
	"github.com/olivere/elastic/v7"
	"go.uber.org/zap"
)

var (
	ErrListingNotFound = errors.New("listing not found")
)

type ListingRepository interface {
	GetListing(id uint64) (*entity.Listing, error)
	GetListings(size, page int) ([]entity.Listing, int64, error)
	GetActiveListingsBySeller(seller string) ([]entity.Listing, int64, error)
	GetBestListingId() (uint64, error)
}

type listingRepository struct {
	elastic elastic_search.Index
}

func NewListingRepository(elastic elastic_search.Index) ListingRepository {
	return listingRepository{elastic}
}

func (r listingRepository) GetListing(id uint64) (*entity.Listing, error) {
	if id == 0 {
		return nil, ErrListingNotFound
	}

	pendingRequest := r.elastic.GetRequest(entity.CreateListingSlug(id))
	if pendingRequest != nil {
		pendingListing := pendingRequest.Entity.(entity.Listing)
		return &pendingListing, nil
	}

	results, err := search(r.elastic.GetClient().
		Search(elastic_search.ListingIndex.Get()).
		Query(elastic.NewTermQuery("id", id)).
		Size(1))

	l, err := r.findOne(results, err)
	if err != nil && errors.Is(err, ErrListingNotFound) {
		zap.S().Warnf("%s: %d", err.Error(), id)
	}

	return l, err
}

func (r listingRepository) GetListings(size, page int) ([]entity.Listing, int64, error) {
	from := size*page - size

	zap.L().With(
		zap.Int("size", size),
		zap.Int("page", page),
		zap.Int("from", from),
	).Info("GetListings")

	results, err := search(r.elastic.GetClient().
		Search(elastic_search.ListingIndex.Get()).
		Sort("id", true).
		Size(size).
		From(from))

	return r.findMany(results, err)
}

func (r listingRepository) GetActiveListingsBySeller(seller string) ([]entity.Listing, int64, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("seller.keyword", seller),
		elastic.NewTermQuery("active", true),
	)

	results, err := search(r.elastic.GetClient().
		Search(elastic_search.ListingIndex.Get()).
		Query(query).
		Sort("id", true).
		Size(100))

	return r.findMany(results, err)
}

func (r listingRepository) GetBestListingId() (uint64, error) {
	results, err := search(r.elastic.GetClient().
		Search(elastic_search.ListingIndex.Get()).
		Size(1).
		Sort("id", false))

	if err != nil {
		return 0, err
	}

	if len(results.Hits.Hits) == 0 {
		return 0, nil
	}

	l, err := r.findOne(results, err)
	if err != nil {
		return 0, err
	}

	return l.Id, nil
}

func (r listingRepository) findOne(results *elastic.SearchResult, err error) (*entity.Listing, error) {
	if err != nil {
		return nil, err
	}

	if len(results.Hits.Hits) == 0 {
		return nil, ErrListingNotFound
	}

	var listing entity.Listing
	hit := results.Hits.Hits[0]
	err = json.Unmarshal(hit.Source, &listing)

	return &listing, err
}

func (r listingRepository) findMany(results *elastic.SearchResult, err error) ([]entity.Listing, int64, error) {
	listings := make([]entity.Listing, 0)

	if err != nil {
		return listings, 0, err
	}

	for _, hit := range results.Hits.Hits {
		var listing entity.Listing
		if err := json.Unmarshal(hit.Source, &listing); err == nil {
			listings = append(listings, listing)
		}
	}

	return listings, results.TotalHits(), nil
}
