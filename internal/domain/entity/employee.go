package entity

import "time"

// Gender género registrado para un empleado.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Valid informa si g es un valor conocido.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Employee ficha de recursos humanos.
type Employee struct {
	ID                string
	FullName          string
	DateOfBirth       time.Time
	Gender            Gender
	Position          string
	MobileContact     string
	ContractStartDate time.Time
	ContractEndDate   time.Time
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
