package messenger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/calebomondi/irec-smartcontract/internal/config"
	"go.uber.org/zap"
)

type MessageService interface {
	SendMessage(item Item, body []byte) error
	PollMessages(item Item, messages chan<- *sqs.Message)
	DeleteMessage(item Item, msg *sqs.Message) error
	GetQueueSize(item Item) (*int, error)
}

type Messenger struct {
	client *sqs.SQS
}

type Item string

var (
	SettlementCompleted Item = "settlement.completed"
	ListingCreated      Item = "listing.created"
)

// Settlement is the notification payload published after a completed swap.
type Settlement struct {
	Seq    uint64 `json:"seq"`
	From   string `json:"from"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

// Listing is the notification payload published when an offer is created.
type Listing struct {
	Id           uint64 `json:"id"`
	Seller       string `json:"seller"`
	Amount       uint64 `json:"amount"`
	PricePerUnit uint64 `json:"pricePerUnit"`
}

func (i Item) queue() string {
	return fmt.Sprintf("%s-%s-%s", config.Get().Network, config.Get().Index, strings.ReplaceAll(string(i), ".", "-"))
}

func NewMessenger() MessageService {
	awsConfig := config.Get().Aws

	sess := session.Must(session.NewSession(&aws.Config{
		Region:      aws.String(awsConfig.Region),
		Credentials: credentials.NewStaticCredentials(awsConfig.AccessKey, awsConfig.SecretKey, ""),
	}))

	return &Messenger{client: sqs.New(sess)}
}

func (m Messenger) SendMessage(item Item, body []byte) error {
	queueUrl, err := m.queueUrl(item)
	if err != nil {
		return err
	}

	_, err = m.client.SendMessage(&sqs.SendMessageInput{
		QueueUrl:    queueUrl,
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("queue", item.queue())).Error("[Queue] Failed to send message")
		return err
	}

	zap.L().With(zap.String("queue", item.queue())).Info("[Queue] Published message")

	return nil
}

func (m Messenger) PollMessages(item Item, messages chan<- *sqs.Message) {
	queueUrl, err := m.queueUrl(item)
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("queue", item.queue())).Error("[Queue] Failed to resolve queue")
		return
	}

	for {
		output, err := m.client.ReceiveMessage(&sqs.ReceiveMessageInput{
			QueueUrl:            queueUrl,
			MaxNumberOfMessages: aws.Int64(10),
			WaitTimeSeconds:     aws.Int64(15),
		})
		if err != nil {
			zap.L().With(zap.Error(err), zap.String("queue", item.queue())).Error("[Queue] Failed to fetch messages")
			continue
		}

		for _, message := range output.Messages {
			messages <- message
		}
	}
}

func (m Messenger) DeleteMessage(item Item, msg *sqs.Message) error {
	queueUrl, err := m.queueUrl(item)
	if err != nil {
		return err
	}

	_, err = m.client.DeleteMessage(&sqs.DeleteMessageInput{
		QueueUrl:      queueUrl,
		ReceiptHandle: msg.ReceiptHandle,
	})

	return err
}

func (m Messenger) GetQueueSize(item Item) (*int, error) {
	queueUrl, err := m.queueUrl(item)
	if err != nil {
		return nil, err
	}

	attributes, err := m.client.GetQueueAttributes(&sqs.GetQueueAttributesInput{
		QueueUrl:       queueUrl,
		AttributeNames: []*string{aws.String(sqs.QueueAttributeNameApproximateNumberOfMessages)},
	})
	if err != nil {
		return nil, err
	}

	size, err := strconv.Atoi(*attributes.Attributes[sqs.QueueAttributeNameApproximateNumberOfMessages])
	if err != nil {
		return nil, err
	}

	return &size, nil
}

func (m Messenger) queueUrl(item Item) (*string, error) {
	result, err := m.client.GetQueueUrl(&sqs.GetQueueUrlInput{
		QueueName: aws.String(item.queue()),
	})
	if err != nil {
		return nil, err
	}

	return result.QueueUrl, nil
}
