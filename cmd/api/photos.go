package main

import (
	"net/http"

	"wayfarer/internal/domain/photos"
)

// Photos are registered by URL, the files themselves live elsewhere.
type PhotoPayload struct {
	PhotoURL string  `json:"photo_url" validate:"required,url,max=2048"`
	Caption  *string `json:"caption" validate:"omitempty,max=255"`
	ReviewID *int64  `json:"review_id" validate:"omitempty,gt=0"`
}

// createPhotoHandler godoc
//
//	@Summary		Add a photo to a place
//	@Description	Registers a photo URL for a place, optionally attached to one of its reviews
//	@Tags			photos
//	@Accept			json
//	@Produce		json
//	@Param			placeID	path		int				true	"Place ID"
//	@Param			payload	body		PhotoPayload	true	"Photo"
//	@Success		201		{object}	photos.Photo
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/places/{placeID}/photos [post]
func (app *application) createPhotoHandler(w http.ResponseWriter, r *http.Request) {
	placeID, err := parseIDParam(r, "placeID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload PhotoPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	p := &photos.Photo{
		UserID:   user.ID,
		PlaceID:  &placeID,
		ReviewID: payload.ReviewID,
		PhotoURL: payload.PhotoURL,
		Caption:  payload.Caption,
	}
	if err := app.store.Photos.Create(r.Context(), p); err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, p); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deletePhotoHandler godoc
//
//	@Summary		Delete own photo
//	@Tags			photos
//	@Produce		json
//	@Param			photoID	path		int	true	"Photo ID"
//	@Success		200		{object}	map[string]string
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/photos/{photoID} [delete]
func (app *application) deletePhotoHandler(w http.ResponseWriter, r *http.Request) {
	photoID, err := parseIDParam(r, "photoID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	if err := app.store.Photos.Delete(r.Context(), photoID, user.ID); err != nil {
		app.storeError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]string{"message": "photo deleted"})
}
