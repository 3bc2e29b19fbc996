package daemon

import (
	"encoding/json"
	"net/http"

	"github.com/calebomondi/irec-smartcontract/internal/api"
	"github.com/calebomondi/irec-smartcontract/internal/config"
	"github.com/calebomondi/irec-smartcontract/internal/elastic_search"
	"github.com/calebomondi/irec-smartcontract/internal/entity"
	"github.com/calebomondi/irec-smartcontract/internal/event"
	"github.com/calebomondi/irec-smartcontract/internal/messenger"
	"github.com/calebomondi/irec-smartcontract/internal/registry"
	"go.uber.org/zap"
)

type Daemon struct {
	elastic   elastic_search.Index
	server    api.Server
	messenger messenger.MessageService
	registry  registry.Service
}

func NewDaemon(
	elastic elastic_search.Index,
	server api.Server,
	messengerService messenger.MessageService,
	registryService registry.Service,
) *Daemon {
	return &Daemon{elastic: elastic, server: server, messenger: messengerService, registry: registryService}
}

func (d *Daemon) Execute() {
	d.elastic.InstallMappings()

	d.snapshotCertificate()
	d.registerListeners()

	zap.L().With(zap.String("port", config.Get().ApiPort)).Info("Marketplace Started")

	if err := http.ListenAndServe(":"+config.Get().ApiPort, d.server.Router()); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start marketplace api")
	}
}

// snapshotCertificate mirrors the backing certificate into the index so the
// read side serves it without a registry round trip.
func (d *Daemon) snapshotCertificate() {
	cert, err := d.registry.GetCertificate(config.Get().CertificateId)
	if err != nil {
		zap.L().With(zap.Error(err)).Warn("Certificate snapshot unavailable")
		return
	}

	d.elastic.AddIndexRequest(elastic_search.CertificateIndex.Get(), *cert, elastic_search.CertificateSnapshot)
	d.elastic.Persist()
}

func (d *Daemon) registerListeners() {
	event.AddEventListener(event.SettlementCompletedEvent, d.publishSettlement)
	event.AddEventListener(event.ListingCreatedEvent, d.publishListing)
}

func (d *Daemon) publishSettlement(msg interface{}) {
	record, ok := msg.(entity.OwnershipRecord)
	if !ok {
		return
	}

	body, err := json.Marshal(messenger.Settlement{
		Seq:    record.Seq,
		From:   record.From,
		To:     record.To,
		Amount: record.Amount,
	})
	if err != nil {
		return
	}

	if err := d.messenger.SendMessage(messenger.SettlementCompleted, body); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to publish settlement notification")
	}
}

func (d *Daemon) publishListing(msg interface{}) {
	listing, ok := msg.(entity.Listing)
	if !ok {
		return
	}

	body, err := json.Marshal(messenger.Listing{
		Id:           listing.Id,
		Seller:       listing.Seller,
		Amount:       listing.Amount,
		PricePerUnit: listing.PricePerUnit,
	})
	if err != nil {
		return
	}

	if err := d.messenger.SendMessage(messenger.ListingCreated, body); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to publish listing notification")
	}
}
