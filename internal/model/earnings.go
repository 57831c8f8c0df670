package model

import "github.com/shopspring/decimal"

type Earnings struct {
	Today  decimal.Decimal
	Weekly decimal.Decimal
}

type Payment struct {
	PaymentID     string `json:"paymentId"`
	Status        string `json:"status"`
	TransactionID string `json:"transactionId,omitempty"`
}
