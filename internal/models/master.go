package models

// PaymentCycle элемент справочника периодов оплаты.
type PaymentCycle struct {
	ID               int64  `json:"id"`
	PaymentCycleName string `json:"payment_cycle_name"`
}

// PaymentMethod элемент справочника способов оплаты.
type PaymentMethod struct {
	ID                int64  `json:"id"`
	PaymentMethodName string `json:"payment_method_name"`
}

// Master справочники для формы подписки.
type Master struct {
	Categories     []*Category      `json:"categories"`
	PaymentCycles  []*PaymentCycle  `json:"payment_cycles"`
	PaymentMethods []*PaymentMethod `json:"payment_methods"`
}
