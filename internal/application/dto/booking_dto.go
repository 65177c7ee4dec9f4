package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	CustomerEmail string          `json:"customer_email,omitempty"`
	EventDate     time.Time       `json:"event_date"`
	EventType     string          `json:"event_type"`
	Venue         string          `json:"venue"`
	Amount        decimal.Decimal `json:"amount"`
	IsPaid        bool            `json:"is_paid"`
	Status        string          `json:"status,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

type UpdateBookingRequest struct {
	CustomerName  *string          `json:"customer_name"`
	CustomerPhone *string          `json:"customer_phone"`
	CustomerEmail *string          `json:"customer_email"`
	EventDate     *time.Time       `json:"event_date"`
	EventType     *string          `json:"event_type"`
	Venue         *string          `json:"venue"`
	Amount        *decimal.Decimal `json:"amount"`
	IsPaid        *bool            `json:"is_paid"`
	Status        *string          `json:"status"`
	Notes         *string          `json:"notes"`
}

type BookingResponse struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	CustomerEmail string          `json:"customer_email,omitempty"`
	EventDate     time.Time       `json:"event_date"`
	EventType     string          `json:"event_type"`
	Venue         string          `json:"venue"`
	Amount        decimal.Decimal `json:"amount"`
	IsPaid        bool            `json:"is_paid"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type BookingListQuery struct {
	Status    string `query:"status"`
	EventType string `query:"event_type"`
	Search    string `query:"search"`
}
