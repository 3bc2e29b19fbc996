package event

type Type string

const (
	SaleConfiguredEvent      Type = "SaleConfiguredEvent"
	ReserveFundedEvent       Type = "ReserveFundedEvent"
	ListingCreatedEvent      Type = "ListingCreatedEvent"
	SettlementCompletedEvent Type = "SettlementCompletedEvent"
)
