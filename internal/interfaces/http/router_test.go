package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/wegesa-api/internal/application/analytics"
	"github.com/jhoicas/wegesa-api/internal/application/auth"
	"github.com/jhoicas/wegesa-api/internal/application/dto"
	"github.com/jhoicas/wegesa-api/internal/application/export"
	"github.com/jhoicas/wegesa-api/internal/application/ledger"
	"github.com/jhoicas/wegesa-api/internal/application/seed"
	"github.com/jhoicas/wegesa-api/internal/application/usecase"
	"github.com/jhoicas/wegesa-api/internal/infrastructure/memory"
	"github.com/jhoicas/wegesa-api/internal/infrastructure/pdf"
	"github.com/jhoicas/wegesa-api/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/wegesa-api/internal/interfaces/http"
)

const demoPassword = "wegesa-demo"

var (
	adminID = seed.StableID("user", "u1")
	opsID   = seed.StableID("user", "u2")
	chairs  = seed.StableID("item", "i1") // 500 en BOBA
)

type apiFixture struct {
	app    *fiber.App
	tokens map[string]string
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	ledgerUC := ledger.NewUseCase(s, s.Items(), s.Movements(), s.Returns(), s.Users())
	_, err := seed.NewSeeder(s.Users(), s.Items(), s.Employees(), ledgerUC, nil).Demo(ctx, demoPassword)
	require.NoError(t, err)

	exportUC := export.NewUseCase(export.Repos{
		Items: s.Items(), Movements: s.Movements(), Returns: s.Returns(), Users: s.Users(),
		Invoices: s.Invoices(), Transactions: s.Transactions(), Bookings: s.Bookings(), Employees: s.Employees(),
	}, ledgerUC, xlsx.NewWriter(), pdf.NewMarotoPDFGenerator())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(s.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		LedgerUC:      ledgerUC,
		UserUC:        usecase.NewUserUseCase(s.Users()),
		EmployeeUC:    usecase.NewEmployeeUseCase(s.Employees()),
		InvoiceUC:     usecase.NewInvoiceUseCase(s.Invoices()),
		TransactionUC: usecase.NewTransactionUseCase(s.Transactions()),
		BookingUC:     usecase.NewBookingUseCase(s.Bookings()),
		DashboardUC:   appanalytics.NewDashboardUseCase(s.Items(), s.Movements(), time.UTC),
		SummaryUC:     appanalytics.NewSummaryUseCase(s.Invoices(), s.Transactions(), s.Bookings(), s.Employees()),
		ExportUC:      exportUC,
		JWTSecret:     testJWTSecret,
	})

	f := &apiFixture{app: app, tokens: map[string]string{}}
	for role, email := range map[string]string{
		"admin":  "asha@wegesa.co",
		"ops":    "jonas@wegesa.co",
		"keeper": "neema@wegesa.co",
	} {
		var out dto.LoginResponse
		resp := f.call(t, "", http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: email, Password: demoPassword})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decode(t, resp, &out)
		f.tokens[role] = out.Token
	}
	return f
}

func (f *apiFixture) call(t *testing.T, as, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if as != "" {
		req.Header.Set("Authorization", "Bearer "+f.tokens[as])
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func dispatchBody(qty int) dto.CreateDispatchRequest {
	return dto.CreateDispatchRequest{
		Store:              "BOBA",
		Lines:              []dto.LineDTO{{ItemID: chairs, Quantity: qty}},
		CustomerName:       "Serena Hotel",
		ResponsiblePerson:  "Peter",
		UseLocation:        "Kivukoni",
		ExpectedReturnAt:   time.Now().Add(72 * time.Hour),
		AuthorizedByUserID: adminID,
	}
}

func TestAPI_Login(t *testing.T) {
	f := newAPI(t)

	resp := f.call(t, "", http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: "asha@wegesa.co", Password: "mala"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var me dto.MeResponse
	resp = f.call(t, "keeper", http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &me)
	assert.Equal(t, "STORE_KEEPER", me.User.Role)
	assert.Contains(t, me.Permissions, "confirm_return")
	assert.NotContains(t, me.Permissions, "create_dispatch")
}

func TestAPI_DespachoYDevoluciones(t *testing.T) {
	f := newAPI(t)

	var created dto.CreateDispatchResponse
	resp := f.call(t, "ops", http.MethodPost, "/api/movements", dispatchBody(120))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &created)
	require.NotEmpty(t, created.MovementID)

	var item dto.ItemResponse
	resp = f.call(t, "keeper", http.MethodGet, "/api/items/"+chairs, nil)
	decode(t, resp, &item)
	assert.Equal(t, 380, item.InStock)

	// Sobregiro: nada cambia y se informa el disponible.
	var stockErr struct {
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	}
	resp = f.call(t, "ops", http.MethodPost, "/api/movements", dispatchBody(381))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	decode(t, resp, &stockErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", stockErr.Code)
	assert.EqualValues(t, 380, stockErr.Details["available"])

	returnsPath := "/api/movements/" + created.MovementID + "/returns"
	var ret dto.RegisterReturnResponse
	resp = f.call(t, "keeper", http.MethodPost, returnsPath, dto.RegisterReturnRequest{Lines: []dto.LineDTO{{ItemID: chairs, Quantity: 100}}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &ret)
	assert.Equal(t, "PARTIAL_RETURN", ret.Status)

	resp = f.call(t, "keeper", http.MethodPost, returnsPath, dto.RegisterReturnRequest{Lines: []dto.LineDTO{{ItemID: chairs, Quantity: 21}}})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = f.call(t, "keeper", http.MethodPost, returnsPath, dto.RegisterReturnRequest{Lines: []dto.LineDTO{{ItemID: chairs, Quantity: 20}}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &ret)
	assert.Equal(t, "RETURNED", ret.Status)

	var detail dto.MovementResponse
	resp = f.call(t, "keeper", http.MethodGet, "/api/movements/"+created.MovementID, nil)
	decode(t, resp, &detail)
	assert.Equal(t, 120, detail.TotalReturned)
	assert.Len(t, detail.Returns, 2)

	resp = f.call(t, "keeper", http.MethodGet, "/api/movements/"+created.MovementID+"/pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestAPI_MapeoDeErrores(t *testing.T) {
	f := newAPI(t)

	resp := f.call(t, "keeper", http.MethodGet, "/api/movements/no-existe", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var e dto.ErrorResponse
	resp = f.call(t, "keeper", http.MethodPost, "/api/items", dto.CreateItemRequest{Name: "Tent", Quantity: 5, Store: "ARUSHA"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &e)
	assert.Equal(t, "VALIDATION", e.Code)

	inStock := 9
	resp = f.call(t, "keeper", http.MethodPatch, "/api/items/"+chairs, dto.UpdateItemRequest{Quantity: ptr(5), InStock: &inStock})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = f.call(t, "admin", http.MethodDelete, "/api/users/"+adminID, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "no puede borrarse a sí mismo")

	resp = f.call(t, "ops", http.MethodGet, "/api/reports?period=DECADE", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_PermisosPorRol(t *testing.T) {
	f := newAPI(t)
	cases := []struct {
		as, method, path string
		want             int
	}{
		{"keeper", http.MethodPost, "/api/movements", http.StatusForbidden},
		{"keeper", http.MethodGet, "/api/finance/summary", http.StatusForbidden},
		{"keeper", http.MethodGet, "/api/exports/invoices.xlsx", http.StatusForbidden},
		{"ops", http.MethodDelete, "/api/items/" + chairs, http.StatusForbidden},
		{"ops", http.MethodGet, "/api/users", http.StatusForbidden},
		{"", http.MethodGet, "/api/items", http.StatusUnauthorized},
		{"admin", http.MethodGet, "/api/users", http.StatusOK},
		{"keeper", http.MethodGet, "/api/dashboard", http.StatusOK},
		{"keeper", http.MethodGet, "/api/employees/summary", http.StatusOK},
		{"ops", http.MethodGet, "/api/bookings/summary", http.StatusOK},
	}
	for _, tc := range cases {
		resp := f.call(t, tc.as, tc.method, tc.path, nil)
		resp.Body.Close()
		assert.Equal(t, tc.want, resp.StatusCode, "%s %s como %q", tc.method, tc.path, tc.as)
	}
}

func TestAPI_FacturasYExportaciones(t *testing.T) {
	f := newAPI(t)

	var inv dto.InvoiceResponse
	resp := f.call(t, "ops", http.MethodPost, "/api/invoices", dto.CreateInvoiceRequest{
		CustomerName: "Serena Hotel",
		Items:        []dto.InvoiceItemDTO{{Description: "Chairs", Quantity: decimal.NewFromInt(100), UnitPrice: decimal.NewFromInt(500)}},
		DueDate:      time.Now().Add(14 * 24 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &inv)
	assert.Contains(t, inv.InvoiceNumber, "WGS-")

	resp = f.call(t, "ops", http.MethodGet, "/api/invoices/"+inv.ID+"/pdf", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var list dto.ListResponse[dto.InvoiceResponse]
	resp = f.call(t, "ops", http.MethodGet, "/api/invoices?search=serena", nil)
	decode(t, resp, &list)
	assert.Equal(t, 1, list.Total)

	resp = f.call(t, "keeper", http.MethodGet, "/api/exports/inventory.xlsx", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "wegesa_inventory.xlsx")
	resp.Body.Close()

	resp = f.call(t, "keeper", http.MethodGet, "/api/exports/payroll", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func ptr[T any](v T) *T { return &v }
