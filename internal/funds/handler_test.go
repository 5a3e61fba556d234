package funds

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/paginadofounder/backend/internal/telemetry/metrics"
)

// TestMain will run goleak after all tests have been run in the package
// to detect any goroutine leaks
func TestMain(m *testing.M) {
	m.Run()
	goleak.VerifyTestMain(m)
}

func newTestRouter(t *testing.T) (*repoMock, *mux.Router) {
	t.Helper()
	repo := NewMockRepo()
	handler := NewHandler(repo, metrics.NewTestManager())

	r := mux.NewRouter()
	handler.SetupRoutes(r)
	return repo, r
}

func seedFunds(t *testing.T, repo *repoMock, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		_, err := repo.Add(context.Background(), Fund{
			Parceiro:         gofakeit.Company(),
			TipoInvestimento: "Seed",
			TamanhoCheque:    "R$ 500k - R$ 2M",
			Tese:             gofakeit.BuzzWord(),
			Contato:          gofakeit.Email(),
		})
		require.NoError(t, err)
	}
}

func TestHandler_Routes(t *testing.T) {
	_, r := newTestRouter(t)

	for caseName, route := range map[string]struct {
		name   string
		path   string
		method string
	}{
		"list":   {name: "list-funds", path: "/api/funds", method: "GET"},
		"new":    {name: "new-fund", path: "/api/funds", method: "POST"},
		"update": {name: "update-fund", path: "/api/funds", method: "PUT"},
		"delete": {name: "delete-fund", path: "/api/funds", method: "DELETE"},
	} {
		t.Run(caseName, func(t *testing.T) {
			req, err := http.NewRequest(route.method, route.path, nil)
			require.NoError(t, err)

			routeMatch := &mux.RouteMatch{}
			muxRoute := r.Get(route.name)
			require.NotNil(t, muxRoute)
			assert.True(t, muxRoute.Match(req, routeMatch), caseName)
		})
	}
}

func TestHandler_List(t *testing.T) {
	repo, r := newTestRouter(t)
	seedFunds(t, repo, 3)

	req := httptest.NewRequest("GET", "/api/funds", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var found []Fund
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &found))
	require.Len(t, found, 3)
	for i := 1; i < len(found); i++ {
		assert.Greater(t, found[i].ID, found[i-1].ID)
	}
}

func TestHandler_List_Empty(t *testing.T) {
	_, r := newTestRouter(t)

	req := httptest.NewRequest("GET", "/api/funds", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestHandler_Add(t *testing.T) {
	repo, r := newTestRouter(t)

	body := `{"parceiro":"Fundo A","tipoInvestimento":"Seed","tamanhoCheque":"R$ 500k - R$ 2M","tese":"B2B SaaS","contato":"contato@fundoa.vc"}`
	req := httptest.NewRequest("POST", "/api/funds", strings.NewReader(body))
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var added Fund
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &added))
	assert.Equal(t, 1, added.ID)
	assert.Equal(t, "Seed", added.TipoInvestimento)
	assert.Equal(t, "R$ 500k - R$ 2M", added.TamanhoCheque)
	assert.Equal(t, 1, repo.Count())
}

func TestHandler_Add_EmptyParceiro(t *testing.T) {
	repo, r := newTestRouter(t)

	req := httptest.NewRequest("POST", "/api/funds", strings.NewReader(`{"parceiro":""}`))
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, repo.Count())
}

func TestHandler_Update(t *testing.T) {
	repo, r := newTestRouter(t)
	seedFunds(t, repo, 1)

	body := `{"id":1,"parceiro":"Fundo Renomeado","tipoInvestimento":"Série A","tamanhoCheque":"R$ 2M+","tese":"Fintech","contato":"ola@fundo.vc"}`
	req := httptest.NewRequest("PUT", "/api/funds", strings.NewReader(body))
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var updated Fund
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, "Fundo Renomeado", updated.Parceiro)
	assert.Equal(t, "Fundo Renomeado", repo.funds[1].Parceiro)
}

func TestHandler_Update_NotFound(t *testing.T) {
	_, r := newTestRouter(t)

	body := `{"id":42,"parceiro":"Fundo X","tipoInvestimento":"Seed","tamanhoCheque":"R$ 1M","tese":"x","contato":"x@x.vc"}`
	req := httptest.NewRequest("PUT", "/api/funds", strings.NewReader(body))
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"message":"Fund not found"}`, rr.Body.String())
}

func TestHandler_Delete(t *testing.T) {
	repo, r := newTestRouter(t)
	seedFunds(t, repo, 2)

	req := httptest.NewRequest("DELETE", "/api/funds", strings.NewReader(`{"id":1}`))
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true}`, rr.Body.String())
	assert.Equal(t, 1, repo.Count())
}
