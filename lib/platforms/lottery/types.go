package lottery

import "time"

// Currency of a receipt amount, the portal only accepts PLN.
type Currency string

const CurrencyPLN Currency = "PLN"

type Amount struct {
	// Value is a decimal string like "1234.56", the fraction is optional.
	Value    string   `json:"value"`
	Currency Currency `json:"currency"`
}

type Agreements struct {
	TermsOfService         bool `json:"termsOfService"`
	PersonalDataProcessing bool `json:"personalDataProcessing"`
	UseMyEffigy            bool `json:"useMyEffigy"`
}

// TicketDetails are the receipt fields shared by creation and update.
type TicketDetails struct {
	PointOfSale           string    `json:"pointOfSale"`
	TaxRegistrationNumber string    `json:"taxRegistrationNumber"`
	Phone                 string    `json:"phone"`
	PurchaseOrderNumber   string    `json:"purchaseOrderNumber"`
	Date                  time.Time `json:"date"`
	Amount                Amount    `json:"amount"`
	Trade                 Trade     `json:"trade"`
}

// TicketRequest is a new receipt entry.
type TicketRequest struct {
	TicketDetails
	Email      string     `json:"email"`
	Agreements Agreements `json:"agreements"`
}

type TicketResult struct {
	Id                    string    `json:"id"`
	Code                  string    `json:"code"`
	PointOfSale           string    `json:"pointOfSale,omitempty"`
	PurchaseOrderNumber   string    `json:"purchaseOrderNumber,omitempty"`
	TaxRegistrationNumber string    `json:"taxRegistrationNumber,omitempty"`
	Phone                 string    `json:"phone,omitempty"`
	Date                  time.Time `json:"date"`
	Amount                Amount    `json:"amount"`
	Trade                 Trade     `json:"trade,omitempty"`
	// Special records whether the entry was found under the special period.
	Special bool `json:"special"`
}

type Credentials struct {
	Email    string
	Password string
}

// HistoryRow is one row of the account receipt history.
type HistoryRow struct {
	Id                  string    `json:"id"`
	Special             bool      `json:"special"`
	Date                time.Time `json:"date"`
	AmountValue         string    `json:"amountValue"`
	PurchaseOrderNumber string    `json:"purchaseOrderNumber"`
	Code                string    `json:"code"`
}

// ResultRow is one row of the published draw results.
type ResultRow struct {
	Date  string `json:"date"`
	Name  string `json:"name"`
	Code  string `json:"code"`
	Type  string `json:"type"`
	Prize string `json:"prize"`
}
