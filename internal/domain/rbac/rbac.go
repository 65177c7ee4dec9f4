// Package rbac define la tabla de permisos por rol del panel.
package rbac

import "github.com/jhoicas/wegesa-api/internal/domain/entity"

// Permission acción protegida.
type Permission string

const (
	ManageUsers       Permission = "manage_users"
	AddItem           Permission = "add_item"
	EditItem          Permission = "edit_item"
	DeleteItem        Permission = "delete_item"
	CreateDispatch    Permission = "create_dispatch"
	AuthorizeDispatch Permission = "authorize_dispatch"
	ConfirmReturn     Permission = "confirm_return"
	ViewReports       Permission = "view_reports"
	ManageSettings    Permission = "manage_settings"
	ViewEmployees     Permission = "view_employees"
	AddEmployee       Permission = "add_employee"
	EditEmployee      Permission = "edit_employee"
	DeleteEmployee    Permission = "delete_employee"
	ViewFinance       Permission = "view_finance"
	CreateInvoice     Permission = "create_invoice"
	EditInvoice       Permission = "edit_invoice"
	DeleteInvoice     Permission = "delete_invoice"
	AddTransaction    Permission = "add_transaction"
	EditTransaction   Permission = "edit_transaction"
	DeleteTransaction Permission = "delete_transaction"
	ViewBookings      Permission = "view_bookings"
	CreateBooking     Permission = "create_booking"
	EditBooking       Permission = "edit_booking"
	DeleteBooking     Permission = "delete_booking"
)

var (
	all         = []entity.Role{entity.RoleSuperAdmin, entity.RoleOperation, entity.RoleStoreKeeper}
	adminOnly   = []entity.Role{entity.RoleSuperAdmin}
	adminAndOps = []entity.Role{entity.RoleSuperAdmin, entity.RoleOperation}
)

var table = map[Permission][]entity.Role{
	ManageUsers:       adminOnly,
	AddItem:           {entity.RoleSuperAdmin, entity.RoleStoreKeeper},
	EditItem:          all,
	DeleteItem:        adminOnly,
	CreateDispatch:    adminAndOps,
	AuthorizeDispatch: adminAndOps,
	ConfirmReturn:     all,
	ViewReports:       all,
	ManageSettings:    adminOnly,
	ViewEmployees:     all,
	AddEmployee:       adminAndOps,
	EditEmployee:      adminAndOps,
	DeleteEmployee:    adminOnly,
	ViewFinance:       adminAndOps,
	CreateInvoice:     adminAndOps,
	EditInvoice:       adminAndOps,
	DeleteInvoice:     adminOnly,
	AddTransaction:    adminAndOps,
	EditTransaction:   adminAndOps,
	DeleteTransaction: adminOnly,
	ViewBookings:      all,
	CreateBooking:     adminAndOps,
	EditBooking:       adminAndOps,
	DeleteBooking:     adminOnly,
}

// Can informa si el rol tiene el permiso. Permisos desconocidos se niegan.
func Can(role entity.Role, p Permission) bool {
	for _, r := range table[p] {
		if r == role {
			return true
		}
	}
	return false
}

// Permissions lista los permisos del rol (para /api/auth/me).
func Permissions(role entity.Role) []Permission {
	out := make([]Permission, 0, len(table))
	for _, p := range ordered {
		if Can(role, p) {
			out = append(out, p)
		}
	}
	return out
}

var ordered = []Permission{
	ManageUsers, AddItem, EditItem, DeleteItem,
	CreateDispatch, AuthorizeDispatch, ConfirmReturn,
	ViewReports, ManageSettings,
	ViewEmployees, AddEmployee, EditEmployee, DeleteEmployee,
	ViewFinance, CreateInvoice, EditInvoice, DeleteInvoice,
	AddTransaction, EditTransaction, DeleteTransaction,
	ViewBookings, CreateBooking, EditBooking, DeleteBooking,
}
