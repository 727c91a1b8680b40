package companies

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jobly/jobly/pkg/binder"
	"github.com/jobly/jobly/pkg/errcodes"
	"github.com/jobly/jobly/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle
	return e
}

func serve(e *echo.Echo, fn echo.HandlerFunc, method, target, body, handle string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	c := e.NewContext(req, rr)
	if handle != "" {
		c.SetParamNames("handle")
		c.SetParamValues(handle)
	}
	if err := fn(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rr
}

func TestHandlers(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	e := newTestEcho(t)
	h := &handler{companyService: NewService(db)}

	t.Run("create", func(tt *testing.T) {
		rr := serve(e, h.create, http.MethodPost, "/companies", `{"handle":"acme","name":"Acme","numEmployees":10}`, "")
		require.Equal(tt, http.StatusCreated, rr.Code)

		var resp struct {
			Company struct {
				Handle       string `json:"handle"`
				Name         string `json:"name"`
				NumEmployees *int   `json:"numEmployees"`
			} `json:"company"`
		}
		require.NoError(tt, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(tt, "acme", resp.Company.Handle)
		assert.Equal(tt, "Acme", resp.Company.Name)
		require.NotNil(tt, resp.Company.NumEmployees)
		assert.Equal(tt, 10, *resp.Company.NumEmployees)
	})

	t.Run("create rejects bad handles", func(tt *testing.T) {
		rr := serve(e, h.create, http.MethodPost, "/companies", `{"handle":"Not A Handle","name":"X"}`, "")
		assert.Equal(tt, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(tt, rr.Body.String(), "lowercase letters")
	})

	t.Run("create rejects duplicates", func(tt *testing.T) {
		rr := serve(e, h.create, http.MethodPost, "/companies", `{"handle":"acme","name":"Acme 2"}`, "")
		assert.Equal(tt, http.StatusConflict, rr.Code)
	})

	t.Run("list", func(tt *testing.T) {
		rr := serve(e, h.list, http.MethodGet, "/companies?nameLike=ac", "", "")
		require.Equal(tt, http.StatusOK, rr.Code)
		assert.Contains(tt, rr.Body.String(), `"handle":"acme"`)
	})

	t.Run("list rejects inverted employee range", func(tt *testing.T) {
		rr := serve(e, h.list, http.MethodGet, "/companies?minEmployees=10&maxEmployees=1", "", "")
		assert.Equal(tt, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("retrieve always includes jobs", func(tt *testing.T) {
		rr := serve(e, h.retrieve, http.MethodGet, "/companies/acme", "", "acme")
		require.Equal(tt, http.StatusOK, rr.Code)
		assert.Contains(tt, rr.Body.String(), `"jobs":[]`)

		var resp struct {
			Company map[string]json.RawMessage `json:"company"`
		}
		require.NoError(tt, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(tt, `"acme"`, string(resp.Company["handle"]))
		assert.Equal(tt, `[]`, string(resp.Company["jobs"]))
	})

	t.Run("list rows leave out jobs", func(tt *testing.T) {
		rr := serve(e, h.list, http.MethodGet, "/companies", "", "")
		require.Equal(tt, http.StatusOK, rr.Code)
		assert.NotContains(tt, rr.Body.String(), `"jobs"`)
	})

	t.Run("retrieve lists jobs with plain equity", func(tt *testing.T) {
		equity := models.Equity("0.5")
		job := createJob(tt, db, "engineer", "acme")
		_, err := db.NewUpdate().Model(&models.Job{ID: job.ID, Equity: &equity}).Column("equity").WherePK().Exec(context.Background())
		require.NoError(tt, err)
		defer func() {
			_, err := db.NewDelete().Model((*models.Job)(nil)).Where("id = ?", job.ID).Exec(context.Background())
			require.NoError(tt, err)
		}()

		rr := serve(e, h.retrieve, http.MethodGet, "/companies/acme", "", "acme")
		require.Equal(tt, http.StatusOK, rr.Code)

		var resp struct {
			Company struct {
				Jobs []struct {
					Title  string  `json:"title"`
					Equity *string `json:"equity"`
				} `json:"jobs"`
			} `json:"company"`
		}
		require.NoError(tt, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(tt, resp.Company.Jobs, 1)
		assert.Equal(tt, "engineer", resp.Company.Jobs[0].Title)
		require.NotNil(tt, resp.Company.Jobs[0].Equity)
		assert.Equal(tt, "0.5", *resp.Company.Jobs[0].Equity)
	})

	t.Run("update rejects a blank name", func(tt *testing.T) {
		rr := serve(e, h.update, http.MethodPatch, "/companies/acme", `{"name":"   "}`, "acme")
		assert.Equal(tt, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(tt, rr.Body.String(), `"name" length must be greater than or equal to 1 character`)
	})

	t.Run("update cannot change the handle", func(tt *testing.T) {
		rr := serve(e, h.update, http.MethodPatch, "/companies/acme", `{"handle":"other"}`, "acme")
		assert.Equal(tt, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(tt, rr.Body.String(), "unknown_parameter")
	})

	t.Run("update", func(tt *testing.T) {
		rr := serve(e, h.update, http.MethodPatch, "/companies/acme", `{"name":"Acme Corp"}`, "acme")
		require.Equal(tt, http.StatusOK, rr.Code)
		assert.Contains(tt, rr.Body.String(), `"name":"Acme Corp"`)
	})

	t.Run("delete", func(tt *testing.T) {
		rr := serve(e, h.delete, http.MethodDelete, "/companies/acme", "", "acme")
		require.Equal(tt, http.StatusOK, rr.Code)
		assert.JSONEq(tt, `{"deleted":"acme"}`, rr.Body.String())

		rr = serve(e, h.delete, http.MethodDelete, "/companies/acme", "", "acme")
		assert.Equal(tt, http.StatusNotFound, rr.Code)
	})
}
