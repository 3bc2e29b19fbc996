package main

import (
	"encoding/json"

	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/calebomondi/irec-smartcontract/internal/config"
	"github.com/calebomondi/irec-smartcontract/internal/config/di"
	"github.com/calebomondi/irec-smartcontract/internal/messenger"
	"go.uber.org/zap"
)

var messageService messenger.MessageService

func main() {
	config.Init("subscriber")

	container, err := di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}
	messageService = container.GetMessenger()

	go pollSettlements()
	go pollListings()

	select {}
}

func pollSettlements() {
	zap.L().Info("Subscribing to settlement notifications")
	messages := make(chan *sqs.Message, 10)
	go messageService.PollMessages(messenger.SettlementCompleted, messages)

	for message := range messages {
		var data messenger.Settlement
		if err := json.Unmarshal([]byte(*message.Body), &data); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to read message")
			continue
		}

		zap.L().With(
			zap.Uint64("seq", data.Seq),
			zap.String("from", data.From),
			zap.String("to", data.To),
			zap.Uint64("amount", data.Amount),
		).Info("Settlement completed")

		if err := messageService.DeleteMessage(messenger.SettlementCompleted, message); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to delete message")
		}
	}
}

func pollListings() {
	zap.L().Info("Subscribing to listing notifications")
	messages := make(chan *sqs.Message, 10)
	go messageService.PollMessages(messenger.ListingCreated, messages)

	for message := range messages {
		var data messenger.Listing
		if err := json.Unmarshal([]byte(*message.Body), &data); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to read message")
			continue
		}

		zap.L().With(
			zap.Uint64("listingId", data.Id),
			zap.String("seller", data.Seller),
			zap.Uint64("amount", data.Amount),
			zap.Uint64("pricePerUnit", data.PricePerUnit),
		).Info("Listing created")

		if err := messageService.DeleteMessage(messenger.ListingCreated, message); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to delete message")
		}
	}
}
