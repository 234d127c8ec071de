package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"paytrack/internal/constants"
	"paytrack/internal/models"
)

const testSecret = "test-secret"

func withUser(r *http.Request, user models.User) context.Context {
	return context.WithValue(r.Context(), UserContextKey, user)
}

func TestTokenRoundTrip(t *testing.T) {
	user := models.User{ID: 7, Username: "kisan", Role: constants.ROLE_ADMIN}

	token, err := CreateToken(user, testSecret)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := parseToken(token, testSecret)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "kisan", claims.Username)
	assert.Equal(t, constants.ROLE_ADMIN, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := CreateToken(models.User{ID: 7}, testSecret)
	assert.NoError(t, err)

	_, err = parseToken(token, "another-secret")
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := parseToken("not.a.token", testSecret)
	assert.Error(t, err)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	handler := AuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/workers", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp jsonResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "error", resp.Status)
}

func TestAuthMiddlewareRejectsNonBearer(t *testing.T) {
	handler := AuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/workers", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name     string
		role     string
		required string
		wantCode int
	}{
		{name: "admin passes admin routes", role: constants.ROLE_ADMIN, required: constants.ROLE_ADMIN, wantCode: http.StatusNoContent},
		{name: "admin passes staff routes", role: constants.ROLE_ADMIN, required: constants.ROLE_STAFF, wantCode: http.StatusNoContent},
		{name: "staff passes staff routes", role: constants.ROLE_STAFF, required: constants.ROLE_STAFF, wantCode: http.StatusNoContent},
		{name: "staff blocked from admin routes", role: constants.ROLE_STAFF, required: constants.ROLE_ADMIN, wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RoleMiddleware(tt.required)(next)
			req := httptest.NewRequest(http.MethodDelete, "/api/workers/1", nil)
			req = req.WithContext(withUser(req, models.User{ID: 1, Role: tt.role}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestRoleMiddlewareWithoutUser(t *testing.T) {
	handler := RoleMiddleware(constants.ROLE_ADMIN)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/workers", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDecodeAndValidate(t *testing.T) {
	type payload struct {
		Name   string  `json:"name" validate:"required"`
		Amount float64 `json:"amount" validate:"gt=0"`
	}

	tests := []struct {
		name    string
		body    string
		wantOK  bool
		wantMsg string
	}{
		{name: "valid", body: `{"name":"Ram","amount":100}`, wantOK: true},
		{name: "missing required field", body: `{"amount":100}`, wantOK: false, wantMsg: "Field 'name' is required"},
		{name: "non-positive amount", body: `{"name":"Ram","amount":0}`, wantOK: false, wantMsg: "Field 'amount' must be greater than 0"},
		{name: "empty body", body: ``, wantOK: false, wantMsg: "Request body is empty"},
		{name: "wrong type", body: `{"name":"Ram","amount":"lots"}`, wantOK: false, wantMsg: "should be of type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			var dst payload
			ok := decodeAndValidate(rec, req, &dst)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				var resp jsonResponse
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Contains(t, resp.Message, tt.wantMsg)
			}
		})
	}
}

func TestDecodeAndValidateFieldList(t *testing.T) {
	type payload struct {
		Name   string  `json:"name" validate:"required"`
		Amount float64 `json:"amount" validate:"gt=0"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount":0}`))
	rec := httptest.NewRecorder()

	var dst payload
	assert.False(t, decodeAndValidate(rec, req, &dst))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Status  string       `json:"status"`
		Message string       `json:"message"`
		Data    []fieldError `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, []fieldError{
		{Field: "name", Message: "Field 'name' is required"},
		{Field: "amount", Message: "Field 'amount' must be greater than 0"},
	}, resp.Data)
}

func TestMeelPartnerValidation(t *testing.T) {
	base := meelRequest{
		CropName:        "wheat",
		TransactionType: constants.MEEL_TYPE_BUY,
		TransactionMode: constants.MEEL_MODE_WITH_PARTNER,
		TotalCost:       50000,
	}

	tests := []struct {
		name     string
		partners []models.MeelPartner
		wantOK   bool
	}{
		{name: "valid split", partners: []models.MeelPartner{
			{Name: "Mohan", Contribution: 30000}, {Name: "Sohan", Contribution: 20000}}, wantOK: true},
		{name: "no partners", partners: nil, wantOK: false},
		{name: "unnamed partner", partners: []models.MeelPartner{{Name: " ", Contribution: 100}}, wantOK: false},
		{name: "zero contribution", partners: []models.MeelPartner{{Name: "Mohan", Contribution: 0}}, wantOK: false},
		{name: "contributions exceed total", partners: []models.MeelPartner{
			{Name: "Mohan", Contribution: 40000}, {Name: "Sohan", Contribution: 20000}}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			req.Partners = tt.partners
			rec := httptest.NewRecorder()
			assert.Equal(t, tt.wantOK, req.validatePartners(rec))
		})
	}
}

func TestMeelIndividualModeSkipsPartnerChecks(t *testing.T) {
	req := meelRequest{
		CropName:        "wheat",
		TransactionType: constants.MEEL_TYPE_SELL,
		TransactionMode: constants.MEEL_MODE_INDIVIDUAL,
		TotalCost:       50000,
	}
	rec := httptest.NewRecorder()
	assert.True(t, req.validatePartners(rec))
}

func TestNotFoundHandlerEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFoundHandler(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var resp jsonResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "error", resp.Status)
}
