package main

import (
	"errors"
	"net/http"

	"wayfarer/internal/domain/bookmarks"
)

type BookmarkPayload struct {
	Notes          *string `json:"notes" validate:"omitempty,max=2000"`
	CollectionName *string `json:"collection_name" validate:"omitempty,min=1,max=100"`
}

// addBookmarkHandler godoc
//
//	@Summary		Bookmark a place
//	@Tags			bookmarks
//	@Accept			json
//	@Produce		json
//	@Param			placeID	path		int				true	"Place ID"
//	@Param			payload	body		BookmarkPayload	false	"Notes and collection"
//	@Success		201		{object}	bookmarks.Bookmark
//	@Failure		400		{object}	ErrorBadRequestResponse	"Invalid payload or duplicate_bookmark"
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/bookmarks/{placeID} [post]
func (app *application) addBookmarkHandler(w http.ResponseWriter, r *http.Request) {
	placeID, err := parseIDParam(r, "placeID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload BookmarkPayload
	if r.ContentLength != 0 {
		if err := readJSON(w, r, &payload); err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	b := &bookmarks.Bookmark{
		UserID:         user.ID,
		PlaceID:        placeID,
		Notes:          payload.Notes,
		CollectionName: payload.CollectionName,
	}
	if err := app.store.Bookmarks.Add(r.Context(), b); err != nil {
		if errors.Is(err, bookmarks.ErrDuplicateBookmark) {
			app.duplicateResponse(w, r, "duplicate_bookmark", err)
			return
		}
		app.storeError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, b); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateBookmarkHandler godoc
//
//	@Summary		Update a bookmark
//	@Tags			bookmarks
//	@Accept			json
//	@Produce		json
//	@Param			placeID	path		int				true	"Place ID"
//	@Param			payload	body		BookmarkPayload	true	"Notes and collection"
//	@Success		200		{object}	bookmarks.Bookmark
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/bookmarks/{placeID} [put]
func (app *application) updateBookmarkHandler(w http.ResponseWriter, r *http.Request) {
	placeID, err := parseIDParam(r, "placeID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload BookmarkPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	b, err := app.store.Bookmarks.Update(r.Context(), user.ID, placeID, payload.Notes, payload.CollectionName)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, b); err != nil {
		app.internalServerError(w, r, err)
	}
}

// removeBookmarkHandler godoc
//
//	@Summary		Remove a bookmark
//	@Tags			bookmarks
//	@Produce		json
//	@Param			placeID	path		int	true	"Place ID"
//	@Success		200		{object}	map[string]string
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/bookmarks/{placeID} [delete]
func (app *application) removeBookmarkHandler(w http.ResponseWriter, r *http.Request) {
	placeID, err := parseIDParam(r, "placeID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	if err := app.store.Bookmarks.Remove(r.Context(), user.ID, placeID); err != nil {
		app.storeError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]string{"message": "bookmark removed"})
}
