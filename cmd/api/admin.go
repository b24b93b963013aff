package main

import (
	"net/http"

	"wayfarer/internal/domain/admins"
	"wayfarer/internal/domain/errs"
	"wayfarer/internal/domain/places"
	"wayfarer/internal/domain/reviews"
	"wayfarer/internal/domain/storage"
	"wayfarer/internal/domain/users"
	"wayfarer/internal/metrics"
	"wayfarer/internal/params"
)

type ModerateReviewPayload struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

// moderateReviewHandler godoc
//
//	@Summary		Moderate a review
//	@Description	Sets the moderation status of a review and refreshes the place rating. Only approved reviews count towards ratings.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			reviewID	path		int						true	"Review ID"
//	@Param			payload		body		ModerateReviewPayload	true	"New status"
//	@Success		200			{object}	reviews.Review
//	@Failure		400			{object}	ErrorBadRequestResponse
//	@Failure		403			{object}	error
//	@Failure		404			{object}	error
//	@Failure		500			{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/reviews/{reviewID}/status [put]
func (app *application) moderateReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := parseIDParam(r, "reviewID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload ModerateReviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)
	ctx := r.Context()

	existing, err := app.store.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	var moderated *reviews.Review
	err = app.store.WithReviewTx(ctx, existing.PlaceID, func(tx *storage.ReviewTx) error {
		var err error
		moderated, err = tx.Reviews.SetModerationStatus(ctx, reviewID, payload.Status)
		if err != nil {
			return err
		}
		_, err = tx.Admins.Record(ctx, user.ID, admins.ActionModerated)
		return err
	})
	metrics.RecordRatingRecompute("moderate", err)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	app.logger.Infow("review moderated", "review_id", reviewID, "status", payload.Status, "moderator_id", user.ID)

	if err := app.jsonResponse(w, http.StatusOK, moderated); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UserPage struct {
	Users      []users.AdminUserRow `json:"users"`
	Pagination params.Pagination    `json:"pagination"`
}

// listUsersHandler godoc
//
//	@Summary		List users
//	@Description	Newest users first with the number of reviews each wrote
//	@Tags			admin
//	@Produce		json
//	@Param			page	query		int	false	"Page number"	default(1)
//	@Param			limit	query		int	false	"Page size"		default(10)
//	@Success		200		{object}	UserPage
//	@Failure		403		{object}	error
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/users [get]
func (app *application) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	p := params.ParsePagination(r.URL.Query())

	list, total, err := app.store.Users.ListWithReviewCounts(r.Context(), p)
	if err != nil {
		app.storeError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	if err := app.jsonResponse(w, http.StatusOK, UserPage{Users: list, Pagination: p}); err != nil {
		app.internalServerError(w, r, err)
	}
}

var errMissingName = errs.Validation("name is required")

type PlacePayload struct {
	CategoryID  *int64   `json:"category_id" validate:"omitempty,gt=0"`
	CityID      *int64   `json:"city_id" validate:"omitempty,gt=0"`
	Name        *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Slug        *string  `json:"slug" validate:"omitempty,max=220,slug"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	Address     *string  `json:"address" validate:"omitempty,max=255"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,longitude"`
	WebsiteURL  *string  `json:"website_url" validate:"omitempty,url,max=2048"`
	PhoneNumber *string  `json:"phone_number" validate:"omitempty,max=30"`
	PriceLevel  *int16   `json:"price_level" validate:"omitempty,min=1,max=4"`
	PhotoURL    *string  `json:"photo_url" validate:"omitempty,url,max=2048"`
}

// createPlaceHandler godoc
//
//	@Summary		Create a place
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		PlacePayload	true	"Place"
//	@Success		201		{object}	places.Place
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		403		{object}	error
//	@Failure		409		{object}	error
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/places [post]
func (app *application) createPlaceHandler(w http.ResponseWriter, r *http.Request) {
	var payload PlacePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if payload.Name == nil {
		app.badRequestResponse(w, r, errMissingName)
		return
	}

	place := &places.Place{
		CategoryID:  payload.CategoryID,
		CityID:      payload.CityID,
		Name:        *payload.Name,
		Description: payload.Description,
		Address:     payload.Address,
		Latitude:    payload.Latitude,
		Longitude:   payload.Longitude,
		WebsiteURL:  payload.WebsiteURL,
		PhoneNumber: payload.PhoneNumber,
		PriceLevel:  payload.PriceLevel,
		PhotoURL:    payload.PhotoURL,
	}
	if payload.Slug != nil {
		place.Slug = *payload.Slug
	}

	if err := app.store.Places.Create(r.Context(), place); err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, place); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updatePlaceHandler godoc
//
//	@Summary		Update a place
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			placeID	path		int				true	"Place ID"
//	@Param			payload	body		PlacePayload	true	"Fields to change"
//	@Success		200		{object}	places.Place
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		403		{object}	error
//	@Failure		404		{object}	error
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/places/{placeID} [put]
func (app *application) updatePlaceHandler(w http.ResponseWriter, r *http.Request) {
	placeID, err := parseIDParam(r, "placeID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload PlacePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	place, err := app.store.Places.Update(r.Context(), placeID, places.PlaceUpdate{
		CategoryID:  payload.CategoryID,
		CityID:      payload.CityID,
		Name:        payload.Name,
		Slug:        payload.Slug,
		Description: payload.Description,
		Address:     payload.Address,
		Latitude:    payload.Latitude,
		Longitude:   payload.Longitude,
		WebsiteURL:  payload.WebsiteURL,
		PhoneNumber: payload.PhoneNumber,
		PriceLevel:  payload.PriceLevel,
		PhotoURL:    payload.PhotoURL,
	})
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, place); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deletePlaceHandler godoc
//
//	@Summary		Delete a place
//	@Description	Deletes a place with its reviews, photos and bookmarks
//	@Tags			admin
//	@Produce		json
//	@Param			placeID	path		int	true	"Place ID"
//	@Success		200		{object}	map[string]string
//	@Failure		403		{object}	error
//	@Failure		404		{object}	error
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/places/{placeID} [delete]
func (app *application) deletePlaceHandler(w http.ResponseWriter, r *http.Request) {
	placeID, err := parseIDParam(r, "placeID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Places.Delete(r.Context(), placeID); err != nil {
		app.storeError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]string{"message": "place deleted"})
}
