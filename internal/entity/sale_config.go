package entity

type SaleConfig struct {
	PricePerUnit uint64 `json:"pricePerUnit"`
	SaleActive   bool   `json:"saleActive"`
	UpdatedAt    int64  `json:"updatedAt"`
}

// Single document per deployment. Reconfiguration overwrites in place.
func (s SaleConfig) Slug() string {
	return "saleconfig"
}
