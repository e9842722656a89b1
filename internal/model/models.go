package model

import (
	"time"
)

// Transaction is the canonical view assembled from the processor's raw
// records. CreatedAt/UpdatedAt hold display strings because upstream dates
// arrive in several shapes and an unrecognized one is kept verbatim;
// CreatedAtTime carries the parsed instant when one could be recovered.
type Transaction struct {
	ID            string         `json:"id"`
	Code          string         `json:"transactionCode"`
	Status        string         `json:"status"`
	StatusName    string         `json:"statusName"`
	Severity      string         `json:"severity"`
	CreatedAt     string         `json:"createdAt"`
	UpdatedAt     string         `json:"updatedAt,omitempty"`
	Amount        float64        `json:"amount"`
	CardNumber    string         `json:"cardNumber,omitempty"`
	MaskedCard    string         `json:"maskedCard,omitempty"`
	Brand         string         `json:"brand"`
	Reference     string         `json:"reference"`
	Country       string         `json:"country"`
	Message       string         `json:"message,omitempty"`
	BankSwift     string         `json:"bankSwift,omitempty"`
	IbanAccount   string         `json:"ibanAccount,omitempty"`
	History       []HistoryEvent `json:"history,omitempty"`
	CreatedAtTime time.Time      `json:"-"`
}

// HistoryEvent is one status transition recorded by the processor.
// Events are read-only here; the backend appends them.
type HistoryEvent struct {
	ID                string    `json:"id"`
	TransactionCode   string    `json:"transactionCode,omitempty"`
	HistoryStatusCode string    `json:"historyStatusCode,omitempty"`
	Status            string    `json:"status"`
	StatusName        string    `json:"statusName"`
	Severity          string    `json:"severity"`
	StatusChangedAt   string    `json:"statusChangedAt"`
	Message           string    `json:"message,omitempty"`
	ChangedAtTime     time.Time `json:"-"`
}

// SavedFilter is the last date-range filter a dashboard client submitted.
type SavedFilter struct {
	ClientID  string    `json:"client_id"`
	DateFrom  string    `json:"date_from"`
	TimeFrom  string    `json:"time_from"`
	DateTo    string    `json:"date_to"`
	TimeTo    string    `json:"time_to"`
	UpdatedAt time.Time `json:"updated_at"`
}
