package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotelops-api/internal/application/dto"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
	apphttp "github.com/jhoicas/hotelops-api/internal/interfaces/http"
)

const provisionPath = "/functions/v1/provision-user"

func provision(t *testing.T, s *testServer, secret string, payload any) (*http.Response, []byte) {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, provisionPath, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set(apphttp.HeaderWebhookSecret, secret)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestProvision_Preflight(t *testing.T) {
	s := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodOptions, provisionPath, nil)
	req.Header.Set("Origin", "https://otro.dominio")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "content-type")
}

func TestProvision_AdminPorDefecto(t *testing.T) {
	s := newTestServer(t, "")

	resp, body := provision(t, s, "", dto.ProvisionRequest{Record: &dto.ProvisionRecord{
		ID:    "9f1c2a4e-0000-4000-8000-000000000001",
		Email: "Nueva@Hotel.co",
	}})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.True(t, decode[dto.ProvisionResponse](t, body).Success)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	u, err := s.store.Users().GetByID(context.Background(), "9f1c2a4e-0000-4000-8000-000000000001")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleAdmin, u.Role())
	assert.Equal(t, "nueva@hotel.co", u.Email)
}

func TestProvision_Errores(t *testing.T) {
	s := newTestServer(t, "")

	resp, body := provision(t, s, "", dto.ProvisionRequest{Record: &dto.ProvisionRecord{
		ID:              "9f1c2a4e-0000-4000-8000-000000000002",
		Email:           "g@hotel.co",
		RawUserMetaData: dto.ProvisionMetadata{Role: "guest"},
	}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, decode[dto.ProvisionError](t, body).Error)

	resp, body = provision(t, s, "", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "no se recibió el registro del usuario", decode[dto.ProvisionError](t, body).Error)
}

func TestProvision_Secreto(t *testing.T) {
	s := newTestServer(t, "compartido")
	payload := dto.ProvisionRequest{Record: &dto.ProvisionRecord{ID: "9f1c2a4e-0000-4000-8000-000000000003", Email: "x@hotel.co"}}

	resp, _ := provision(t, s, "", payload)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = provision(t, s, "otro", payload)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = provision(t, s, "compartido", payload)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
