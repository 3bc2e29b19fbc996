package marketplace

// Params carries the deployment-fixed identities and amounts the core
// operates against. Populated from config at wiring time.
type Params struct {
	Admin         string
	Marketplace   string
	UnitToken     string
	PaymentToken  string
	TotalSupply   uint64
	ReserveAmount uint64
}
