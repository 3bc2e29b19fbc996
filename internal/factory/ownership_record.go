package factory

import (
	"time"

	"github.com/calebomondi/irec-smartcontract/internal/entity"
)

func CreateOwnershipRecord(seq uint64, from, to string, amount uint64) entity.OwnershipRecord {
	return entity.OwnershipRecord{
		Seq:       seq,
		From:      from,
		To:        to,
		Amount:    amount,
		Timestamp: time.Now().Unix(),
	}
}
