package dto

import "time"

type CreateEmployeeRequest struct {
	FullName          string    `json:"full_name"`
	DateOfBirth       time.Time `json:"date_of_birth"`
	Gender            string    `json:"gender"`
	Position          string    `json:"position"`
	MobileContact     string    `json:"mobile_contact"`
	ContractStartDate time.Time `json:"contract_start_date"`
	ContractEndDate   time.Time `json:"contract_end_date"`
	IsActive          *bool     `json:"is_active,omitempty"`
}

type UpdateEmployeeRequest struct {
	FullName          *string    `json:"full_name"`
	DateOfBirth       *time.Time `json:"date_of_birth"`
	Gender            *string    `json:"gender"`
	Position          *string    `json:"position"`
	MobileContact     *string    `json:"mobile_contact"`
	ContractStartDate *time.Time `json:"contract_start_date"`
	ContractEndDate   *time.Time `json:"contract_end_date"`
	IsActive          *bool      `json:"is_active"`
}

type EmployeeResponse struct {
	ID                string    `json:"id"`
	FullName          string    `json:"full_name"`
	DateOfBirth       time.Time `json:"date_of_birth"`
	Gender            string    `json:"gender"`
	Position          string    `json:"position"`
	MobileContact     string    `json:"mobile_contact"`
	ContractStartDate time.Time `json:"contract_start_date"`
	ContractEndDate   time.Time `json:"contract_end_date"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type EmployeeListQuery struct {
	Gender string `query:"gender"`
	Active string `query:"active"`
	Search string `query:"search"`
}
