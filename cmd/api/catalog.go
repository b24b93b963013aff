package main

import "net/http"

// listCategoriesHandler godoc
//
//	@Summary		List categories
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{array}		catalog.Category
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Router			/categories [get]
func (app *application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	list, err := app.store.Catalog.Categories(r.Context())
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listCitiesHandler godoc
//
//	@Summary		List cities
//	@Tags			catalog
//	@Produce		json
//	@Param			country	query		string	false	"Country name"
//	@Success		200		{array}		catalog.City
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Router			/cities [get]
func (app *application) listCitiesHandler(w http.ResponseWriter, r *http.Request) {
	list, err := app.store.Catalog.Cities(r.Context(), r.URL.Query().Get("country"))
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}
