package repository

import (
	"encoding/json"
	"errors"

	"github.com/calebomondi/irec-smartcontract/internal/elastic_search"
	"github.com/calebomondi/irec-smartcontract/internal/entity"
	"github.com/olivere/elastic/v7"
)

var (
	ErrSaleConfigNotFound = errors.New("sale config not found")
)

type SaleConfigRepository interface {
	GetSaleConfig() (*entity.SaleConfig, error)
}

type saleConfigRepository struct {
	elastic elastic_search.Index
}

func NewSaleConfigRepository(elastic elastic_search.Index) SaleConfigRepository {
	return saleConfigRepository{elastic}
}

func (r saleConfigRepository) GetSaleConfig() (*entity.SaleConfig, error) {
	pendingRequest := r.elastic.GetRequest(entity.SaleConfig{}.Slug())
	if pendingRequest != nil {
		pendingConfig := pendingRequest.Entity.(entity.SaleConfig)
		return &pendingConfig, nil
	}

	results, err := search(r.elastic.GetClient().
		Search(elastic_search.SaleConfigIndex.Get()).
		Query(elastic.NewTermQuery("_id", entity.SaleConfig{}.Slug())).
		Size(1))

	return r.findOne(results, err)
}

func (r saleConfigRepository) findOne(results *elastic.SearchResult, err error) (*entity.SaleConfig, error) {
	if err != nil {
		return nil, err
	}

	if len(results.Hits.Hits) == 0 {
		return nil, ErrSaleConfigNotFound
	}

	var saleConfig entity.SaleConfig
	hit := results.Hits.Hits[0]
	err = json.Unmarshal(hit.Source, &saleConfig)

	return &saleConfig, err
}
