package dto

import "time"

// CreateItemRequest body para POST /api/items. InStock por defecto igual a Quantity.
type CreateItemRequest struct {
	Name        string     `json:"name"`
	Brand       string     `json:"brand,omitempty"`
	Type        string     `json:"type,omitempty"`
	Quantity    int        `json:"quantity"`
	InStock     *int       `json:"in_stock,omitempty"`
	Store       string     `json:"store"`
	DateOfEntry *time.Time `json:"date_of_entry,omitempty"`
}

// UpdateItemRequest parche tipado; solo se aplican los campos presentes.
type UpdateItemRequest struct {
	Name        *string    `json:"name"`
	Brand       *string    `json:"brand"`
	Type        *string    `json:"type"`
	Quantity    *int       `json:"quantity"`
	InStock     *int       `json:"in_stock"`
	Store       *string    `json:"store"`
	DateOfEntry *time.Time `json:"date_of_entry"`
}

// ItemResponse salida de un artículo.
type ItemResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand,omitempty"`
	Type        string    `json:"type,omitempty"`
	Quantity    int       `json:"quantity"`
	InStock     int       `json:"in_stock"`
	Out         int       `json:"out"`
	Store       string    `json:"store"`
	DateOfEntry time.Time `json:"date_of_entry"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemListQuery filtros de GET /api/items.
type ItemListQuery struct {
	Store  string `query:"store"`
	Type   string `query:"type"`
	Search string `query:"search"`
}

// LineDTO artículo y cantidad de un despacho o devolución.
type LineDTO struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// CreateDispatchRequest body para POST /api/movements.
// IssuedByUserID vacío toma el usuario del token.
type CreateDispatchRequest struct {
	Store              string    `json:"store"`
	Lines              []LineDTO `json:"lines"`
	CustomerName       string    `json:"customer_name"`
	ResponsiblePerson  string    `json:"responsible_person"`
	UseLocation        string    `json:"use_location"`
	ExpectedReturnAt   time.Time `json:"expected_return_at"`
	AuthorizedByUserID string    `json:"authorized_by_user_id"`
	IssuedByUserID     string    `json:"issued_by_user_id,omitempty"`
}

// CreateDispatchResponse id del movimiento creado.
type CreateDispatchResponse struct {
	MovementID string `json:"movement_id"`
}

// RegisterReturnRequest body para POST /api/movements/:id/returns.
type RegisterReturnRequest struct {
	ReceivedByUserID string    `json:"received_by_user_id,omitempty"`
	Lines            []LineDTO `json:"lines"`
}

// RegisterReturnResponse id del registro de devolución y estado resultante.
type RegisterReturnResponse struct {
	ReturnID   string `json:"return_id"`
	MovementID string `json:"movement_id"`
	Status     string `json:"status"`
}

// MovementLineResponse línea con nombre del artículo y saldo de devoluciones.
type MovementLineResponse struct {
	ItemID      string `json:"item_id"`
	ItemName    string `json:"item_name"`
	Quantity    int    `json:"quantity"`
	Returned    int    `json:"returned"`
	Outstanding int    `json:"outstanding"`
}

// ReturnRecordResponse salida de un registro de devolución.
type ReturnRecordResponse struct {
	ID               string    `json:"id"`
	MovementID       string    `json:"movement_id"`
	ReturnedAt       time.Time `json:"returned_at"`
	Lines            []LineDTO `json:"lines"`
	ReceivedByUserID string    `json:"received_by_user_id"`
}

// MovementResponse salida de un movimiento. Returns solo se incluye en el detalle.
type MovementResponse struct {
	ID                 string                 `json:"id"`
	CreatedAt          time.Time              `json:"created_at"`
	Store              string                 `json:"store"`
	Lines              []MovementLineResponse `json:"lines"`
	TotalOut           int                    `json:"total_out"`
	TotalReturned      int                    `json:"total_returned"`
	AuthorizedByUserID string                 `json:"authorized_by_user_id"`
	IssuedByUserID     string                 `json:"issued_by_user_id"`
	CustomerName       string                 `json:"customer_name"`
	ResponsiblePerson  string                 `json:"responsible_person"`
	UseLocation        string                 `json:"use_location"`
	ExpectedReturnAt   time.Time              `json:"expected_return_at"`
	Status             string                 `json:"status"`
	Overdue            bool                   `json:"overdue"`
	Returns            []ReturnRecordResponse `json:"returns,omitempty"`
}

// MovementListQuery filtros de GET /api/movements.
type MovementListQuery struct {
	Store   string `query:"store"`
	Status  string `query:"status"`
	Search  string `query:"search"`
	Overdue bool   `query:"overdue"`
}
