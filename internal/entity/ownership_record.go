package entity

import (
	"crypto/md5"
	"fmt"
)

type OwnershipRecord struct {
	Seq       uint64 `json:"seq"`
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    uint64 `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

func (o OwnershipRecord) Slug() string {
	return CreateOwnershipRecordSlug(o.Seq, o.From, o.To)
}

func CreateOwnershipRecordSlug(seq uint64, from, to string) string {
	data := []byte(fmt.Sprintf("ownershiprecord-%d-%s-%s", seq, from, to))
	return fmt.Sprintf("%x", md5.Sum(data))
}
