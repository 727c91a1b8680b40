package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jobly/jobly/pkg/config"
	"github.com/jobly/jobly/pkg/database"
	"github.com/jobly/jobly/pkg/migrations"
	"github.com/labstack/echo/v4"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t *testing.T
	e *echo.Echo
}

func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()

	db, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	e, err := newEcho(cfg, db)
	require.NoError(t, err)

	return &testServer{t: t, e: e}
}

func (s *testServer) do(method, target, body, token string) *httptest.ResponseRecorder {
	s.t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.e.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) token(rr *httptest.ResponseRecorder) string {
	s.t.Helper()
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(s.t, resp.Token)
	return resp.Token
}

type jobEnvelope struct {
	Job struct {
		ID            int     `json:"id"`
		Title         string  `json:"title"`
		Salary        *int    `json:"salary"`
		Equity        *string `json:"equity"`
		CompanyHandle string  `json:"companyHandle"`
		Company       *struct {
			Handle string `json:"handle"`
			Name   string `json:"name"`
		} `json:"company"`
	} `json:"job"`
}

type errorEnvelope struct {
	Error struct {
		Code       string   `json:"code"`
		Message    string   `json:"message"`
		StatusCode int      `json:"status_code"`
		Messages   []string `json:"messages"`
	} `json:"error"`
}

func newTestConfig() *config.Config {
	cfg := config.NewForTest()
	cfg.AuthRateLimit = 1000
	return cfg
}

const registerBody = `{"username":"%s","password":"password","firstName":"Test","lastName":"User","email":"%s@example.com"}`

func TestJobsEndToEnd(t *testing.T) {
	s := newTestServer(t, newTestConfig())

	rr := s.do(http.MethodGet, "/auth/status", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"needsSetup":true}`, rr.Body.String())

	rr = s.do(http.MethodPost, "/auth/setup", fmt.Sprintf(registerBody, "admin", "admin"), "")
	require.Equal(t, http.StatusCreated, rr.Code)
	adminToken := s.token(rr)

	rr = s.do(http.MethodPost, "/auth/setup", fmt.Sprintf(registerBody, "other", "other"), "")
	require.Equal(t, http.StatusForbidden, rr.Code)

	rr = s.do(http.MethodPost, "/auth/register", fmt.Sprintf(registerBody, "viewer", "viewer"), "")
	require.Equal(t, http.StatusCreated, rr.Code)
	viewerToken := s.token(rr)

	rr = s.do(http.MethodPost, "/auth/token", `{"username":"viewer","password":"password"}`, "")
	require.Equal(t, http.StatusOK, rr.Code)
	s.token(rr)

	rr = s.do(http.MethodPost, "/auth/token", `{"username":"viewer","password":"wrong-password"}`, "")
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = s.do(http.MethodGet, "/auth/me", "", adminToken)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"isAdmin":true`)
	assert.Contains(t, rr.Body.String(), `"jobs:write"`)

	rr = s.do(http.MethodGet, "/roles", "", adminToken)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"viewer"`)

	rr = s.do(http.MethodGet, "/users", "", viewerToken)
	require.Equal(t, http.StatusForbidden, rr.Code)

	rr = s.do(http.MethodPost, "/companies", `{"handle":"c1","name":"C1","numEmployees":10}`, viewerToken)
	require.Equal(t, http.StatusForbidden, rr.Code)

	rr = s.do(http.MethodPost, "/companies", `{"handle":"c1","name":"C1","numEmployees":10}`, adminToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = s.do(http.MethodGet, "/companies/c1", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"jobs":[]`)

	jobBody := `{"title":"Engineer","salary":100000,"equity":"0.05","companyHandle":"c1"}`

	t.Run("writes need a token", func(tt *testing.T) {
		rr := s.do(http.MethodPost, "/jobs", jobBody, "")
		assert.Equal(tt, http.StatusUnauthorized, rr.Code)
	})

	t.Run("writes need the admin role", func(tt *testing.T) {
		rr := s.do(http.MethodPost, "/jobs", jobBody, viewerToken)
		assert.Equal(tt, http.StatusForbidden, rr.Code)

		rr = s.do(http.MethodGet, "/jobs", "", "")
		assert.JSONEq(tt, `{"jobs":[]}`, rr.Body.String())
	})

	rr = s.do(http.MethodPost, "/jobs", jobBody, adminToken)
	require.Equal(t, http.StatusCreated, rr.Code)
	created := jobEnvelope{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	require.NotZero(t, created.Job.ID)
	assert.Equal(t, "Engineer", created.Job.Title)
	require.NotNil(t, created.Job.Equity)
	assert.Equal(t, "0.05", *created.Job.Equity)
	id := created.Job.ID

	t.Run("create reports every violation", func(tt *testing.T) {
		rr := s.do(http.MethodPost, "/jobs", `{"salary":-1}`, adminToken)
		require.Equal(tt, http.StatusUnprocessableEntity, rr.Code)
		body := errorEnvelope{}
		require.NoError(tt, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(tt, http.StatusUnprocessableEntity, body.Error.StatusCode)
		assert.Len(tt, body.Error.Messages, 3)
	})

	t.Run("create needs an existing company", func(tt *testing.T) {
		rr := s.do(http.MethodPost, "/jobs", `{"title":"x","companyHandle":"nope"}`, adminToken)
		assert.Equal(tt, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("search", func(tt *testing.T) {
		rr := s.do(http.MethodGet, "/jobs?hasEquity=true&minSalary=50000", "", "")
		require.Equal(tt, http.StatusOK, rr.Code)
		assert.Contains(tt, rr.Body.String(), `"companyName":"C1"`)
		assert.Contains(tt, rr.Body.String(), `"title":"Engineer"`)

		rr = s.do(http.MethodGet, "/jobs?minSalary=200000", "", "")
		require.Equal(tt, http.StatusOK, rr.Code)
		assert.JSONEq(tt, `{"jobs":[]}`, rr.Body.String())

		rr = s.do(http.MethodGet, "/jobs?minSalary=abc", "", "")
		assert.Equal(tt, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("equity search against stored jobs", func(tt *testing.T) {
		rr := s.do(http.MethodPost, "/jobs", `{"title":"Intern","equity":0,"companyHandle":"c1"}`, adminToken)
		require.Equal(tt, http.StatusCreated, rr.Code)
		intern := jobEnvelope{}
		require.NoError(tt, json.Unmarshal(rr.Body.Bytes(), &intern))
		defer func() {
			rr := s.do(http.MethodDelete, fmt.Sprintf("/jobs/%d", intern.Job.ID), "", adminToken)
			require.Equal(tt, http.StatusOK, rr.Code)
		}()

		var list struct {
			Jobs []struct {
				Title  string  `json:"title"`
				Equity *string `json:"equity"`
			} `json:"jobs"`
		}

		rr = s.do(http.MethodGet, "/jobs?hasEquity=true", "", "")
		require.Equal(tt, http.StatusOK, rr.Code)
		require.NoError(tt, json.Unmarshal(rr.Body.Bytes(), &list))
		require.Len(tt, list.Jobs, 1)
		assert.Equal(tt, "Engineer", list.Jobs[0].Title)
		require.NotNil(tt, list.Jobs[0].Equity)
		assert.Equal(tt, "0.05", *list.Jobs[0].Equity)

		rr = s.do(http.MethodGet, "/jobs?hasEquity=false&minSalary=", "", "")
		require.Equal(tt, http.StatusOK, rr.Code)
		list.Jobs = nil
		require.NoError(tt, json.Unmarshal(rr.Body.Bytes(), &list))
		assert.Len(tt, list.Jobs, 2)
	})

	t.Run("get includes the company", func(tt *testing.T) {
		rr := s.do(http.MethodGet, fmt.Sprintf("/jobs/%d", id), "", "")
		require.Equal(tt, http.StatusOK, rr.Code)
		job := jobEnvelope{}
		require.NoError(tt, json.Unmarshal(rr.Body.Bytes(), &job))
		require.NotNil(tt, job.Job.Company)
		assert.Equal(tt, "C1", job.Job.Company.Name)
		require.NotNil(tt, job.Job.Equity)
		assert.Equal(tt, "0.05", *job.Job.Equity)
	})

	t.Run("update", func(tt *testing.T) {
		rr := s.do(http.MethodPatch, fmt.Sprintf("/jobs/%d", id), `{"title":"Senior Engineer"}`, viewerToken)
		assert.Equal(tt, http.StatusForbidden, rr.Code)

		rr = s.do(http.MethodPatch, fmt.Sprintf("/jobs/%d", id), `{"title":"Senior Engineer"}`, adminToken)
		require.Equal(tt, http.StatusOK, rr.Code)
		job := jobEnvelope{}
		require.NoError(tt, json.Unmarshal(rr.Body.Bytes(), &job))
		assert.Equal(tt, "Senior Engineer", job.Job.Title)
		assert.Equal(tt, "c1", job.Job.CompanyHandle)
	})

	t.Run("company includes its jobs", func(tt *testing.T) {
		rr := s.do(http.MethodGet, "/companies/c1", "", "")
		require.Equal(tt, http.StatusOK, rr.Code)
		assert.Contains(tt, rr.Body.String(), `"title":"Senior Engineer"`)
	})

	t.Run("delete", func(tt *testing.T) {
		rr := s.do(http.MethodDelete, fmt.Sprintf("/jobs/%d", id), "", viewerToken)
		assert.Equal(tt, http.StatusForbidden, rr.Code)

		rr = s.do(http.MethodDelete, fmt.Sprintf("/jobs/%d", id), "", adminToken)
		require.Equal(tt, http.StatusOK, rr.Code)
		assert.JSONEq(tt, fmt.Sprintf(`{"deleted":%d}`, id), rr.Body.String())

		first := s.do(http.MethodDelete, fmt.Sprintf("/jobs/%d", id), "", adminToken)
		second := s.do(http.MethodDelete, fmt.Sprintf("/jobs/%d", id), "", adminToken)
		assert.Equal(tt, http.StatusNotFound, first.Code)
		assert.Equal(tt, first.Body.String(), second.Body.String())
	})

	t.Run("missing jobs", func(tt *testing.T) {
		rr := s.do(http.MethodGet, "/jobs/999", "", "")
		require.Equal(tt, http.StatusNotFound, rr.Code)
		body := errorEnvelope{}
		require.NoError(tt, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(tt, "not_found", body.Error.Code)
		assert.Equal(tt, "Job not found.", body.Error.Message)
	})

	t.Run("deleting a company deletes its jobs", func(tt *testing.T) {
		rr := s.do(http.MethodPost, "/jobs", jobBody, adminToken)
		require.Equal(tt, http.StatusCreated, rr.Code)

		rr = s.do(http.MethodDelete, "/companies/c1", "", adminToken)
		require.Equal(tt, http.StatusOK, rr.Code)
		assert.JSONEq(tt, `{"deleted":"c1"}`, rr.Body.String())

		rr = s.do(http.MethodGet, "/jobs", "", "")
		assert.JSONEq(tt, `{"jobs":[]}`, rr.Body.String())
	})
}

func TestUnknownRoutes(t *testing.T) {
	s := newTestServer(t, newTestConfig())

	rr := s.do(http.MethodGet, "/nope", "", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Page not found.")
}

func TestOperationalRoutes(t *testing.T) {
	s := newTestServer(t, newTestConfig())

	rr := s.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(http.MethodGet, "/version", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"version":"dev"}`, rr.Body.String())
}

func TestAuthRateLimit(t *testing.T) {
	cfg := newTestConfig()
	cfg.AuthRateLimit = 1
	s := newTestServer(t, cfg)

	rr := s.do(http.MethodGet, "/auth/status", "", "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(http.MethodGet, "/auth/status", "", "")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	rr = s.do(http.MethodGet, "/jobs", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestTestRoutes(t *testing.T) {
	t.Run("registered in the test environment", func(tt *testing.T) {
		s := newTestServer(tt, newTestConfig())

		rr := s.do(http.MethodPost, "/test/users", `{"username":"e2e","password":"password","role":"viewer"}`, "")
		require.Equal(tt, http.StatusCreated, rr.Code)
		assert.Contains(tt, rr.Body.String(), `"role":"viewer"`)

		rr = s.do(http.MethodPost, "/auth/token", `{"username":"e2e","password":"password"}`, "")
		require.Equal(tt, http.StatusOK, rr.Code)

		rr = s.do(http.MethodDelete, "/test/users", "", "")
		require.Equal(tt, http.StatusOK, rr.Code)
		assert.JSONEq(tt, `{"deleted":1}`, rr.Body.String())

		rr = s.do(http.MethodDelete, "/test/data", "", "")
		require.Equal(tt, http.StatusOK, rr.Code)
		assert.JSONEq(tt, `{"deleted":0}`, rr.Body.String())
	})

	t.Run("absent elsewhere", func(tt *testing.T) {
		cfg := newTestConfig()
		cfg.Environment = config.EnvironmentDevelopment
		s := newTestServer(tt, cfg)

		rr := s.do(http.MethodPost, "/test/users", `{"username":"e2e","password":"password"}`, "")
		assert.Equal(tt, http.StatusNotFound, rr.Code)
	})
}
