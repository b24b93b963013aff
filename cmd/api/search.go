package main

import (
	"net/http"
	"time"

	"wayfarer/internal/metrics"
)

// searchPlacesHandler godoc
//
//	@Summary		Search places
//	@Description	Ranks places by the average of their approved reviews, best first. Places without reviews come last and are excluded by a rating floor.
//	@Tags			places
//	@Produce		json
//	@Param			q			query		string	false	"Text contained in the name or description"
//	@Param			category	query		int		false	"Category ID"
//	@Param			city		query		int		false	"City ID"
//	@Param			rating		query		number	false	"Minimum average rating (1-5)"
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			limit		query		int		false	"Page size"		default(10)
//	@Success		200			{object}	places.Page
//	@Failure		400			{object}	ErrorBadRequestResponse
//	@Failure		500			{object}	ErrorInternalServerResponse
//	@Router			/search [get]
func (app *application) searchPlacesHandler(w http.ResponseWriter, r *http.Request) {
	c, err := parsePlaceCriteria(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	start := time.Now()
	page, err := app.store.Places.Search(r.Context(), c)
	metrics.RecordPlaceQuery("search", time.Since(start))
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, page); err != nil {
		app.internalServerError(w, r, err)
	}
}
