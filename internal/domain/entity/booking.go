package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType tipo de evento reservado.
type EventType string

const (
	EventWedding   EventType = "WEDDING"
	EventSendoff   EventType = "SENDOFF"
	EventCorporate EventType = "CORPORATE"
	EventRentals   EventType = "RENTALS"
	EventOther     EventType = "OTHER"
)

// EventTypes devuelve todos los tipos en orden estable.
func EventTypes() []EventType {
	return []EventType{EventWedding, EventSendoff, EventCorporate, EventRentals, EventOther}
}

// Valid informa si t es un tipo conocido.
func (t EventType) Valid() bool {
	for _, e := range EventTypes() {
		if e == t {
			return true
		}
	}
	return false
}

// BookingStatus estado de la reserva.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingPending   BookingStatus = "PENDING"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

// Valid informa si s es un estado conocido.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingConfirmed, BookingPending, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// Booking reserva de un evento.
type Booking struct {
	ID            string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	EventDate     time.Time
	EventType     EventType
	Venue         string
	Amount        decimal.Decimal
	IsPaid        bool
	Status        BookingStatus
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
