package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
	"github.com/jhoicas/LabOps-api/internal/application/usecase"
	"github.com/jhoicas/LabOps-api/internal/application/workflow"
	"github.com/jhoicas/LabOps-api/internal/domain"
	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
	apphttp "github.com/jhoicas/LabOps-api/internal/interfaces/http"
	"github.com/jhoicas/LabOps-api/pkg/barcode"
)

type memOrgs struct {
	mu   sync.Mutex
	byID map[string]*entity.Organization
}

func (m *memOrgs) Create(_ context.Context, o *entity.Organization) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.byID {
		if x.Code == o.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *o
	m.byID[o.ID] = &cp
	return nil
}

func (m *memOrgs) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.byID[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (m *memOrgs) GetByCode(_ context.Context, code string) (*entity.Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.byID {
		if o.Code == code {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memOrgs) Update(_ context.Context, o *entity.Organization) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[o.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *o
	m.byID[o.ID] = &cp
	return nil
}

func (m *memOrgs) List(_ context.Context, f repository.ListFilter) ([]*entity.Organization, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []*entity.Organization
	for _, o := range m.byID {
		if f.Query != "" && !strings.Contains(strings.ToLower(o.Name), strings.ToLower(f.Query)) {
			continue
		}
		all = append(all, o)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	total := len(all)
	if f.Offset >= total {
		return []*entity.Organization{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return all[f.Offset:end], total, nil
}

func (m *memOrgs) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func newRouterApp() *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		OrganizationUC: usecase.NewOrganizationUseCase(&memOrgs{byID: map[string]*entity.Organization{}}),
		ScanUC:         workflow.NewScanUseCase(barcode.New(0), nil, nil, nil, nil, nil),
		JWTSecret:      testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, auth string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	return resp, buf.Bytes()
}

func TestOrganizations_CRUD(t *testing.T) {
	app := newRouterApp()
	sup := tokenForRole(t, entity.RoleSupervisor)
	tech := tokenForRole(t, entity.RoleTechnician)

	resp, _ := call(t, app, http.MethodPost, "/api/organizations", "", dto.CreateOrganizationRequest{Code: "x", Name: "X"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, "/api/organizations", tech, dto.CreateOrganizationRequest{Code: "x", Name: "X"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "el técnico no edita datos maestros")

	resp, body := call(t, app, http.MethodPost, "/api/organizations", sup, dto.CreateOrganizationRequest{Code: "lab-norte", Name: "Laboratorio Norte"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var org dto.OrganizationResponse
	require.NoError(t, json.Unmarshal(body, &org))
	assert.Equal(t, "LAB-NORTE", org.Code)
	assert.Equal(t, entity.OrgTypeClientLab, org.Type)
	assert.True(t, org.IsActive)

	resp, body = call(t, app, http.MethodPost, "/api/organizations", sup, dto.CreateOrganizationRequest{Code: "LAB-NORTE", Name: "Otro"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "DUPLICATE")

	resp, body = call(t, app, http.MethodGet, "/api/organizations/"+org.ID, tech, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Laboratorio Norte")

	name := "Laboratorio del Norte"
	resp, body = call(t, app, http.MethodPut, "/api/organizations/"+org.ID, sup, dto.UpdateOrganizationRequest{Name: &name})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), name)

	resp, body = call(t, app, http.MethodGet, "/api/organizations?q=norte&limit=1", tech, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.OrganizationListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 1, list.Page.Total)
	assert.Equal(t, 1, list.Page.Limit)

	resp, _ = call(t, app, http.MethodDelete, "/api/organizations/"+org.ID, sup, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, body = call(t, app, http.MethodDelete, "/api/organizations/"+org.ID, sup, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "NOT_FOUND")
	resp, _ = call(t, app, http.MethodGet, "/api/organizations/"+org.ID, sup, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrganizations_Validacion(t *testing.T) {
	app := newRouterApp()
	admin := tokenForRole(t, entity.RoleAdmin)

	resp, body := call(t, app, http.MethodPost, "/api/organizations", admin, dto.CreateOrganizationRequest{Name: "Sin código"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "VALIDATION")

	resp, _ = call(t, app, http.MethodPost, "/api/organizations", admin, dto.CreateOrganizationRequest{Code: "A", Name: "A", Type: "hospital"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestScan_CodigoIlegible(t *testing.T) {
	app := newRouterApp()
	tech := tokenForRole(t, entity.RoleTechnician)

	resp, body := call(t, app, http.MethodPost, "/api/scan", tech, dto.ScanRequest{Code: "HOLA-123"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "VALIDATION")

	resp, _ = call(t, app, http.MethodPost, "/api/scan", tech, dto.ScanRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUsers_SoloAdmin(t *testing.T) {
	app := newRouterApp()
	resp, _ := call(t, app, http.MethodGet, "/api/users", tokenForRole(t, entity.RoleSupervisor), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
