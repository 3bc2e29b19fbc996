package di

import (
	"github.com/calebomondi/irec-smartcontract/internal/api"
	"github.com/calebomondi/irec-smartcontract/internal/config"
	"github.com/calebomondi/irec-smartcontract/internal/elastic_search"
	"github.com/calebomondi/irec-smartcontract/internal/entity"
	"github.com/calebomondi/irec-smartcontract/internal/ledger"
	"github.com/calebomondi/irec-smartcontract/internal/marketplace"
	"github.com/calebomondi/irec-smartcontract/internal/messenger"
	"github.com/calebomondi/irec-smartcontract/internal/registry"
	"github.com/calebomondi/irec-smartcontract/internal/repository"
	"github.com/sarulabs/di/v2"
	"go.uber.org/zap"
)

type Container struct {
	ctn di.Container
}

func NewContainer() (*Container, error) {
	builder, err := di.NewBuilder()
	if err != nil {
		return nil, err
	}

	if err := builder.Add(definitions...); err != nil {
		return nil, err
	}

	return &Container{ctn: builder.Build()}, nil
}

func (c *Container) GetElastic() elastic_search.Index {
	return c.ctn.Get("elastic").(elastic_search.Index)
}

func (c *Container) GetLedger() ledger.Service {
	return c.ctn.Get("ledger").(ledger.Service)
}

func (c *Container) GetRegistry() registry.Service {
	return c.ctn.Get("registry").(registry.Service)
}

func (c *Container) GetListingRepo() repository.ListingRepository {
	return c.ctn.Get("listingRepo").(repository.ListingRepository)
}

func (c *Container) GetSaleConfigRepo() repository.SaleConfigRepository {
	return c.ctn.Get("saleConfigRepo").(repository.SaleConfigRepository)
}

func (c *Container) GetOwnershipRecordRepo() repository.OwnershipRecordRepository {
	return c.ctn.Get("ownershipRecordRepo").(repository.OwnershipRecordRepository)
}

func (c *Container) GetSwapEngine() *marketplace.SwapEngine {
	return c.ctn.Get("swapEngine").(*marketplace.SwapEngine)
}

func (c *Container) GetReserveSale() *marketplace.ReserveSaleManager {
	return c.ctn.Get("reserveSale").(*marketplace.ReserveSaleManager)
}

func (c *Container) GetListingBook() *marketplace.ListingBook {
	return c.ctn.Get("listingBook").(*marketplace.ListingBook)
}

func (c *Container) GetOwnershipLedger() *marketplace.OwnershipLedger {
	return c.ctn.Get("ownershipLedger").(*marketplace.OwnershipLedger)
}

func (c *Container) GetMessenger() messenger.MessageService {
	return c.ctn.Get("messenger").(messenger.MessageService)
}

func (c *Container) GetApiServer() api.Server {
	return c.ctn.Get("apiServer").(api.Server)
}

var definitions = []di.Def{
	{
		Name: "elastic",
		Build: func(ctn di.Container) (interface{}, error) {
			elastic, err := elastic_search.New()
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to start ES")
			}

			return elastic, nil
		},
	},
	{
		Name: "ledger",
		Build: func(ctn di.Container) (interface{}, error) {
			cfg := config.Get()

			if cfg.Ledger.Backend == "memory" {
				memory := ledger.NewMemoryLedger()
				memory.Mint(cfg.UnitToken, cfg.AdminAddress, cfg.TotalSupply)
				return memory, nil
			}

			client, err := ledger.NewClient(cfg.Ledger.Url, cfg.Ledger.Timeout, cfg.Ledger.Debug)
			if err != nil {
				return nil, err
			}

			return ledger.NewLedgerService(ledger.NewProvider(client)), nil
		},
	},
	{
		Name: "registry",
		Build: func(ctn di.Container) (interface{}, error) {
			cfg := config.Get()

			if cfg.Ledger.Backend == "memory" {
				return registry.NewStaticService(entity.Certificate{
					Id:         cfg.CertificateId,
					Owner:      cfg.AdminAddress,
					TotalUnits: cfg.TotalSupply,
				}), nil
			}

			caller, err := ledger.NewCaller(cfg.Ledger.Url, cfg.Ledger.Timeout, cfg.Ledger.Debug)
			if err != nil {
				return nil, err
			}

			return registry.NewRegistryService(registry.NewProvider(caller)), nil
		},
	},
	{
		Name: "listingRepo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewListingRepository(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "saleConfigRepo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewSaleConfigRepository(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "ownershipRecordRepo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewOwnershipRecordRepository(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "swapEngine",
		Build: func(ctn di.Container) (interface{}, error) {
			return marketplace.NewSwapEngine(
				ctn.Get("elastic").(elastic_search.Index),
				ctn.Get("listingRepo").(repository.ListingRepository),
				ctn.Get("ownershipRecordRepo").(repository.OwnershipRecordRepository),
				ctn.Get("ledger").(ledger.Service),
				params(),
			), nil
		},
	},
	{
		Name: "reserveSale",
		Build: func(ctn di.Container) (interface{}, error) {
			return marketplace.NewReserveSaleManager(
				ctn.Get("elastic").(elastic_search.Index),
				ctn.Get("saleConfigRepo").(repository.SaleConfigRepository),
				ctn.Get("ledger").(ledger.Service),
				ctn.Get("swapEngine").(*marketplace.SwapEngine),
				params(),
			), nil
		},
	},
	{
		Name: "listingBook",
		Build: func(ctn di.Container) (interface{}, error) {
			return marketplace.NewListingBook(
				ctn.Get("elastic").(elastic_search.Index),
				ctn.Get("listingRepo").(repository.ListingRepository),
				ctn.Get("ledger").(ledger.Service),
				params(),
			), nil
		},
	},
	{
		Name: "ownershipLedger",
		Build: func(ctn di.Container) (interface{}, error) {
			return marketplace.NewOwnershipLedger(
				ctn.Get("ownershipRecordRepo").(repository.OwnershipRecordRepository),
				ctn.Get("ledger").(ledger.Service),
				params(),
			), nil
		},
	},
	{
		Name: "messenger",
		Build: func(ctn di.Container) (interface{}, error) {
			return messenger.NewMessenger(), nil
		},
	},
	{
		Name: "apiServer",
		Build: func(ctn di.Container) (interface{}, error) {
			return api.NewServer(
				ctn.Get("reserveSale").(*marketplace.ReserveSaleManager),
				ctn.Get("listingBook").(*marketplace.ListingBook),
				ctn.Get("swapEngine").(*marketplace.SwapEngine),
				ctn.Get("ownershipLedger").(*marketplace.OwnershipLedger),
				ctn.Get("registry").(registry.Service),
			), nil
		},
	},
}

func params() marketplace.Params {
	cfg := config.Get()

	return marketplace.Params{
		Admin:         cfg.AdminAddress,
		Marketplace:   cfg.MarketplaceAddress,
		UnitToken:     cfg.UnitToken,
		PaymentToken:  cfg.PaymentToken,
		TotalSupply:   cfg.TotalSupply,
		ReserveAmount: cfg.ReserveAmount,
	}
}
