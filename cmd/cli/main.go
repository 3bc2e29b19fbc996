package main

import (
	"fmt"
	"os"

	"github.com/calebomondi/irec-smartcontract/internal/config"
	"github.com/calebomondi/irec-smartcontract/internal/config/di"
	"github.com/calebomondi/irec-smartcontract/internal/elastic_search"
	"github.com/calebomondi/irec-smartcontract/internal/entity"
	"github.com/calebomondi/irec-smartcontract/internal/ledger"
	"github.com/calebomondi/irec-smartcontract/internal/marketplace"
	"github.com/calebomondi/irec-smartcontract/internal/messenger"
	"github.com/calebomondi/irec-smartcontract/internal/registry"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	container        *di.Container
	elastic          elastic_search.Index
	ledgerService    ledger.Service
	registryService  registry.Service
	reserveSale      *marketplace.ReserveSaleManager
	listingBook      *marketplace.ListingBook
	ownershipLedger  *marketplace.OwnershipLedger
	messengerService messenger.MessageService
)

func main() {
	config.Init("cli")

	var err error
	container, err = di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}
	elastic = container.GetElastic()
	ledgerService = container.GetLedger()
	registryService = container.GetRegistry()
	reserveSale = container.GetReserveSale()
	listingBook = container.GetListingBook()
	ownershipLedger = container.GetOwnershipLedger()
	messengerService = container.GetMessenger()

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "configure-sale",
				Usage:  "Set the reserve sale price and activate the sale",
				Action: configureSale,
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "price", Usage: "price per unit, smallest payment denomination"},
				},
			},
			{
				Name:   "deposit-reserve",
				Usage:  "Pull the designated reserve amount from the admin balance",
				Action: depositReserve,
			},
			{
				Name:   "seed-certificate",
				Usage:  "Transfer the backing certificate to the marketplace custodian",
				Action: seedCertificate,
			},
			{
				Name:   "approve",
				Usage:  "Grant the marketplace an allowance on the admin's unit balance",
				Action: approve,
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "amount", Usage: "allowance to grant"},
				},
			},
			{
				Name:   "listings",
				Usage:  "Show listings",
				Action: listings,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "size", Value: 100},
					&cli.IntFlag{Name: "page", Value: 1},
				},
			},
			{
				Name:   "transfers",
				Usage:  "Show the ownership transfer log",
				Action: transfers,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "holder", Value: "", Usage: "filter by holder"},
					&cli.IntFlag{Name: "size", Value: 100},
					&cli.IntFlag{Name: "page", Value: 1},
				},
			},
			{
				Name:   "percentage",
				Usage:  "Show a holder's ownership in basis points",
				Action: percentage,
			},
			{
				Name:   "queue-size",
				Usage:  "Show the settlement notification queue size",
				Action: queueSize,
			},
		},
	}

	err = app.Run(os.Args)
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start CLI")
	}
}

func configureSale(c *cli.Context) error {
	saleConfig, err := reserveSale.ConfigureSale(config.Get().AdminAddress, c.Uint64("price"))
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to configure sale")
		return err
	}

	zap.S().Infof("Sale active at %d per unit", saleConfig.PricePerUnit)

	return nil
}

func depositReserve(c *cli.Context) error {
	if err := reserveSale.DepositReserveTokens(config.Get().AdminAddress); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to deposit reserve")
		return err
	}

	zap.S().Infof("Reserve funded with %d units", config.Get().ReserveAmount)

	return nil
}

func seedCertificate(c *cli.Context) error {
	cfg := config.Get()

	cert, err := registryService.GetCertificate(cfg.CertificateId)
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to fetch certificate")
		return err
	}

	if cert.Owner == cfg.MarketplaceAddress {
		zap.L().Info("Certificate already held by the custodian")
		return nil
	}

	if err := registryService.TransferOwnership(cert.Owner, cfg.MarketplaceAddress, cfg.CertificateId); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to transfer certificate")
		return err
	}

	zap.S().Infof("Certificate %d transferred to custodian", cfg.CertificateId)

	return nil
}

func approve(c *cli.Context) error {
	cfg := config.Get()

	err := ledgerService.Approve(cfg.UnitToken, cfg.AdminAddress, cfg.MarketplaceAddress, c.Uint64("amount"))
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to approve")
		return err
	}

	zap.S().Infof("Marketplace approved for %d units", c.Uint64("amount"))

	return nil
}

func listings(c *cli.Context) error {
	results, total, err := listingBook.GetListings(c.Int("size"), c.Int("page"))
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to get listings")
		return err
	}

	zap.S().Infof("Found %d listings", total)
	for _, l := range results {
		fmt.Printf("%d: seller=%s amount=%d price=%d cost=%d active=%t\n", l.Id, l.Seller, l.Amount, l.PricePerUnit, l.Cost(), l.Active)
	}

	return nil
}

func transfers(c *cli.Context) error {
	holder := c.String("holder")

	records, total, err := getTransfers(holder, c.Int("size"), c.Int("page"))
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to get transfers")
		return err
	}

	zap.S().Infof("Found %d transfers", total)
	for _, r := range records {
		fmt.Printf("%d: %s -> %s amount=%d at=%d\n", r.Seq, r.From, r.To, r.Amount, r.Timestamp)
	}

	return nil
}

func getTransfers(holder string, size, page int) ([]entity.OwnershipRecord, int64, error) {
	if holder != "" {
		return ownershipLedger.GetTransfersByHolder(holder, size, page)
	}

	return ownershipLedger.GetOwnershipTransfers(size, page)
}

func percentage(c *cli.Context) error {
	holder := c.Args().First()
	if holder == "" {
		zap.L().Error("No holder provided")
		return nil
	}

	bps, err := ownershipLedger.GetOwnershipPercentage(holder)
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to get percentage")
		return err
	}

	zap.S().Infof("%s holds %d basis points", holder, bps)

	return nil
}

func queueSize(c *cli.Context) error {
	size, err := messengerService.GetQueueSize(messenger.SettlementCompleted)
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Could not get the queue size")
		return err
	}

	zap.S().Infof("Queue size: %d", *size)

	return nil
}
