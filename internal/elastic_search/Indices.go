package elastic_search

import (
	"fmt"

	"github.com/calebomondi/irec-smartcontract/internal/config"
)

type Indices string

var (
	SaleConfigIndex      Indices = "saleconfig"
	ListingIndex         Indices = "listing"
	OwnershipRecordIndex Indices = "ownershiprecord"
	CertificateIndex     Indices = "certificate"
	DevErrorIndex        Indices = "deverror"
)

// Sets the network and returns the full string
func (i *Indices) Get() string {
	return fmt.Sprintf("%s.%s.%s", config.Get().Network, config.Get().Index, string(*i))
}
