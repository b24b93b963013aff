package main

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"wayfarer/internal/domain/errs"
	"wayfarer/internal/domain/photos"
	"wayfarer/internal/domain/places"
	"wayfarer/internal/domain/reviews"
	"wayfarer/internal/metrics"
	"wayfarer/internal/params"
)

const (
	detailReviewLimit = 10
	detailPhotoLimit  = 5
)

// parsePlaceCriteria reads the browse and search filters from the query
// string. Unknown keys are ignored. Pagination never fails, malformed values
// fall back to the defaults.
func parsePlaceCriteria(r *http.Request) (places.Criteria, error) {
	q := r.URL.Query()
	c := places.Criteria{
		Query:      strings.TrimSpace(q.Get("q")),
		Pagination: params.ParsePagination(q),
	}

	var err error
	if c.CategoryID, err = optionalID(q.Get("category"), "category"); err != nil {
		return c, err
	}
	if c.CityID, err = optionalID(q.Get("city"), "city"); err != nil {
		return c, err
	}

	if raw := strings.TrimSpace(q.Get("rating")); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil || !(rating >= 1 && rating <= 5) {
			return c, errs.Validation("rating must be a number between 1 and 5")
		}
		c.MinRating = &rating
	}

	return c, nil
}

func optionalID(raw, name string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, errs.Validation("%s must be a positive integer", name)
	}
	return &id, nil
}

// browsePlacesHandler godoc
//
//	@Summary		List places
//	@Description	Lists places alphabetically with optional category, city and text filters
//	@Tags			places
//	@Produce		json
//	@Param			category	query		int		false	"Category ID"
//	@Param			city		query		int		false	"City ID"
//	@Param			q			query		string	false	"Text contained in the name or description"
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			limit		query		int		false	"Page size"		default(10)
//	@Success		200			{object}	places.Page
//	@Failure		400			{object}	ErrorBadRequestResponse
//	@Failure		500			{object}	ErrorInternalServerResponse
//	@Router			/places [get]
func (app *application) browsePlacesHandler(w http.ResponseWriter, r *http.Request) {
	c, err := parsePlaceCriteria(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	start := time.Now()
	page, err := app.store.Places.Browse(r.Context(), c)
	metrics.RecordPlaceQuery("browse", time.Since(start))
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, page); err != nil {
		app.internalServerError(w, r, err)
	}
}

type PlaceDetail struct {
	Place   *places.Place    `json:"place"`
	Reviews []reviews.Review `json:"reviews"`
	Photos  []photos.Photo   `json:"photos"`
}

// getPlaceHandler godoc
//
//	@Summary		Get a place
//	@Description	Returns a place with its latest approved reviews and photos
//	@Tags			places
//	@Produce		json
//	@Param			placeID	path		int	true	"Place ID"
//	@Success		200		{object}	PlaceDetail
//	@Failure		404		{object}	error
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Router			/places/{placeID} [get]
func (app *application) getPlaceHandler(w http.ResponseWriter, r *http.Request) {
	placeID, err := parseIDParam(r, "placeID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	place, err := app.store.Places.GetByID(ctx, placeID)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	latest, _, err := app.store.Reviews.ListByPlace(ctx, placeID, params.New(1, detailReviewLimit))
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	pics, err := app.store.Photos.ListByPlace(ctx, placeID, detailPhotoLimit)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	detail := PlaceDetail{Place: place, Reviews: latest, Photos: pics}
	if err := app.jsonResponse(w, http.StatusOK, detail); err != nil {
		app.internalServerError(w, r, err)
	}
}

type ReviewPage struct {
	Reviews    []reviews.Review  `json:"reviews"`
	Pagination params.Pagination `json:"pagination"`
}

// getPlaceReviewsHandler godoc
//
//	@Summary		List reviews of a place
//	@Description	Approved reviews, newest first
//	@Tags			reviews
//	@Produce		json
//	@Param			placeID	path		int	true	"Place ID"
//	@Param			page	query		int	false	"Page number"	default(1)
//	@Param			limit	query		int	false	"Page size"		default(10)
//	@Success		200		{object}	ReviewPage
//	@Failure		404		{object}	error
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Router			/places/{placeID}/reviews [get]
func (app *application) getPlaceReviewsHandler(w http.ResponseWriter, r *http.Request) {
	placeID, err := parseIDParam(r, "placeID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	if _, err := app.store.Places.GetByID(ctx, placeID); err != nil {
		app.storeError(w, r, err)
		return
	}

	p := params.ParsePagination(r.URL.Query())
	list, total, err := app.store.Reviews.ListByPlace(ctx, placeID, p)
	if err != nil {
		app.storeError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	if err := app.jsonResponse(w, http.StatusOK, ReviewPage{Reviews: list, Pagination: p}); err != nil {
		app.internalServerError(w, r, err)
	}
}
