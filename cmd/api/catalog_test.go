package main

import (
	"net/http"
	"testing"

	"wayfarer/internal/domain/catalog"
	"wayfarer/internal/domain/errs"
	"wayfarer/internal/domain/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		categories: []catalog.Category{
			{ID: 1, Name: "Temples", PlaceCount: 3},
			{ID: 2, Name: "Lakes", PlaceCount: 1},
		},
		cities: []catalog.City{
			{ID: 1, CountryID: 1, CountryName: "Nepal", Name: "Kathmandu", Slug: "kathmandu"},
			{ID: 2, CountryID: 1, CountryName: "Nepal", Name: "Pokhara", Slug: "pokhara"},
			{ID: 3, CountryID: 2, CountryName: "France", Name: "Lyon", Slug: "lyon"},
		},
	}
}

func TestListCategories(t *testing.T) {
	app := newTestApplication(t, &storage.Container{Catalog: newFakeCatalog()})

	rr := executeRequest(app, newJSONRequest(t, http.MethodGet, "/api/categories", nil))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	list := decodeBody(t, rr)["data"].([]any)
	require.Len(t, list, 2)
	assert.Equal(t, "Temples", list[0].(map[string]any)["name"])
	assert.Equal(t, 3.0, list[0].(map[string]any)["place_count"])
}

func TestListCities(t *testing.T) {
	tests := []struct {
		query   string
		country string
		want    int
	}{
		{"", "", 3},
		{"?country=nepal", "nepal", 2},
		{"?country=Atlantis", "Atlantis", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			fc := newFakeCatalog()
			app := newTestApplication(t, &storage.Container{Catalog: fc})

			rr := executeRequest(app, newJSONRequest(t, http.MethodGet, "/api/cities"+tt.query, nil))
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			assert.Equal(t, tt.country, fc.country)
			assert.Len(t, decodeBody(t, rr)["data"].([]any), tt.want)
		})
	}
}

func TestCatalogStorageFailure(t *testing.T) {
	fc := newFakeCatalog()
	fc.err = errs.Infra("list categories", assert.AnError)
	app := newTestApplication(t, &storage.Container{Catalog: fc})

	rr := executeRequest(app, newJSONRequest(t, http.MethodGet, "/api/categories", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), assert.AnError.Error())
}
