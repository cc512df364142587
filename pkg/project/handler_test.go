package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/klokku/bizcalc/pkg/allocation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) *mux.Router {
	stub := NewRepositoryStub()
	handler := NewHandler(NewService(stub))
	router := mux.NewRouter()
	router.HandleFunc("/api/project", handler.ListProjects).Methods("GET")
	router.HandleFunc("/api/project", handler.CreateProject).Methods("POST")
	router.HandleFunc("/api/project/{projectId:[0-9]+}", handler.GetProject).Methods("GET")
	router.HandleFunc("/api/project/{projectId:[0-9]+}", handler.UpdateProject).Methods("PUT")
	router.HandleFunc("/api/project/{projectId:[0-9]+}", handler.DeleteProject).Methods("DELETE")
	router.HandleFunc("/api/project/{projectId:[0-9]+}/breakdown", handler.GetBreakdown).Methods("GET")
	return router
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createProject(t *testing.T, router http.Handler, name string) ProjectDTO {
	w := doRequest(t, router, http.MethodPost, "/api/project", ProjectToDTO(sampleProject(name)))
	require.Equal(t, http.StatusCreated, w.Code)
	var created ProjectDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	return created
}

func TestHandler_CreateProject(t *testing.T) {
	t.Run("should create project", func(t *testing.T) {
		// given
		router := setupHandlerTest(t)

		// when
		created := createProject(t, router, "Landing page")

		// then
		assert.Positive(t, created.Id)
		assert.Equal(t, "Landing page", created.Name)
		assert.InDelta(t, 16250.0, created.TotalRevenue, 1e-9)
	})

	t.Run("should reject invalid allocation", func(t *testing.T) {
		router := setupHandlerTest(t)
		dto := ProjectToDTO(sampleProject("Bad"))
		dto.FreelancerAllocation = 90

		w := doRequest(t, router, http.MethodPost, "/api/project", dto)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), allocation.ErrAllocationNot100.Error())
	})

	t.Run("should reject malformed body", func(t *testing.T) {
		router := setupHandlerTest(t)
		req := httptest.NewRequest(http.MethodPost, "/api/project", bytes.NewBufferString("not json"))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_ListProjects(t *testing.T) {
	t.Run("should return empty array", func(t *testing.T) {
		router := setupHandlerTest(t)

		w := doRequest(t, router, http.MethodGet, "/api/project", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("should list newest first", func(t *testing.T) {
		router := setupHandlerTest(t)
		createProject(t, router, "A")
		createProject(t, router, "B")

		w := doRequest(t, router, http.MethodGet, "/api/project", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var projects []ProjectDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&projects))
		require.Len(t, projects, 2)
		assert.Equal(t, "B", projects[0].Name)
	})
}

func TestHandler_GetProject(t *testing.T) {
	t.Run("should return 404 for unknown project", func(t *testing.T) {
		router := setupHandlerTest(t)

		w := doRequest(t, router, http.MethodGet, "/api/project/12", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("should not route non numeric id", func(t *testing.T) {
		router := setupHandlerTest(t)

		w := doRequest(t, router, http.MethodGet, "/api/project/abc", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_UpdateProject(t *testing.T) {
	t.Run("should update project", func(t *testing.T) {
		router := setupHandlerTest(t)
		created := createProject(t, router, "Draft")
		created.Name = "Final"

		w := doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/project/%d", created.Id), created)

		require.Equal(t, http.StatusOK, w.Code)
		var updated ProjectDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
		assert.Equal(t, "Final", updated.Name)
		assert.Equal(t, created.Id, updated.Id)
	})

	t.Run("should return 404 for unknown project", func(t *testing.T) {
		router := setupHandlerTest(t)

		w := doRequest(t, router, http.MethodPut, "/api/project/77", ProjectToDTO(sampleProject("Ghost")))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_DeleteProject(t *testing.T) {
	router := setupHandlerTest(t)
	created := createProject(t, router, "Gone")
	path := fmt.Sprintf("/api/project/%d", created.Id)

	w := doRequest(t, router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_GetBreakdown(t *testing.T) {
	t.Run("should return breakdown of saved project", func(t *testing.T) {
		// given
		router := setupHandlerTest(t)
		created := createProject(t, router, "Priced")

		// when
		w := doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/project/%d/breakdown", created.Id), nil)

		// then
		require.Equal(t, http.StatusOK, w.Code)
		var breakdown allocation.BreakdownDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&breakdown))
		assert.InDelta(t, 16250.0, breakdown.TotalRevenue, 1e-9)
		assert.InDelta(t, 16250.0*0.7, breakdown.AvailableBudget, 1e-6)
		require.Len(t, breakdown.Categories, 4)
	})

	t.Run("should return 404 for unknown project", func(t *testing.T) {
		router := setupHandlerTest(t)

		w := doRequest(t, router, http.MethodGet, "/api/project/5/breakdown", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
