package repository

import (
	"encoding/json"

	"github.com/calebomondi/irec-smartcontract/internal/elastic_search"
	"github.com/calebomondi/irec-smartcontract/internal/entity"
	"github.com/olivere/elastic/v7"
	"go.uber.org/zap"
)

type OwnershipRecordRepository interface {
	GetTransfers(size, page int) ([]entity.OwnershipRecord, int64, error)
	GetTransfersByHolder(holder string, size, page int) ([]entity.OwnershipRecord, int64, error)
	GetBestSeq() (uint64, error)
}

type ownershipRecordRepository struct {
	elastic elastic_search.Index
}

func NewOwnershipRecordRepository(elastic elastic_search.Index) OwnershipRecordRepository {
	return ownershipRecordRepository{elastic}
}

func (r ownershipRecordRepository) GetTransfers(size, page int) ([]entity.OwnershipRecord, int64, error) {
	from := size*page - size

	zap.L().With(
		zap.Int("size", size),
		zap.Int("page", page),
		zap.Int("from", from),
	).Info("GetTransfers")

	results, err := search(r.elastic.GetClient().
		Search(elastic_search.OwnershipRecordIndex.Get()).
		Sort("seq", true).
		Size(size).
		From(from))

	return r.findMany(results, err)
}

func (r ownershipRecordRepository) GetTransfersByHolder(holder string, size, page int) ([]entity.OwnershipRecord, int64, error) {
	from := size*page - size

	query := elastic.NewBoolQuery().Should(
		elastic.NewTermQuery("from.keyword", holder),
		elastic.NewTermQuery("to.keyword", holder),
	).MinimumShouldMatch("1")

	results, err := search(r.elastic.GetClient().
		Search(elastic_search.OwnershipRecordIndex.Get()).
		Query(query).
		Sort("seq", true).
		Size(size).
		From(from))

	return r.findMany(results, err)
}

func (r ownershipRecordRepository) GetBestSeq() (uint64, error) {
	results, err := search(r.elastic.GetClient().
		Search(elastic_search.OwnershipRecordIndex.Get()).
		Size(1).
		Sort("seq", false))

	if err != nil {
		return 0, err
	}

	if len(results.Hits.Hits) == 0 {
		return 0, nil
	}

	var record entity.OwnershipRecord
	if err := json.Unmarshal(results.Hits.Hits[0].Source, &record); err != nil {
		return 0, err
	}

	return record.Seq, nil
}

func (r ownershipRecordRepository) findMany(results *elastic.SearchResult, err error) ([]entity.OwnershipRecord, int64, error) {
	records := make([]entity.OwnershipRecord, 0)

	if err != nil {
		return records, 0, err
	}

	for _, hit := range results.Hits.Hits {
		var record entity.OwnershipRecord
		if err := json.Unmarshal(hit.Source, &record); err == nil {
			records = append(records, record)
		}
	}

	return records, results.TotalHits(), nil
}
