package main

import (
	"net/http"

	"wayfarer/internal/domain/users"
)

// getProfileHandler godoc
//
//	@Summary		Get own profile
//	@Tags			users
//	@Produce		json
//	@Success		200	{object}	users.User
//	@Failure		401	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/profile [get]
func (app *application) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	if err := app.jsonResponse(w, http.StatusOK, user); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateProfilePayload struct {
	FullName *string `json:"full_name" validate:"omitempty,max=100"`
	Bio      *string `json:"bio" validate:"omitempty,max=2000"`
	Country  *string `json:"country" validate:"omitempty,min=1,max=100"`
}

// updateProfileHandler godoc
//
//	@Summary		Update own profile
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		UpdateProfilePayload	true	"Fields to change"
//	@Success		200		{object}	users.User
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		401		{object}	error
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/users/profile [put]
func (app *application) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var payload UpdateProfilePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	updated, err := app.store.Users.UpdateProfile(r.Context(), user.ID, users.ProfileUpdate{
		FullName: payload.FullName,
		Bio:      payload.Bio,
		Country:  payload.Country,
	})
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, updated); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getUserReviewsHandler godoc
//
//	@Summary		List own reviews
//	@Description	Every review the caller wrote, whatever its moderation status
//	@Tags			users
//	@Produce		json
//	@Success		200	{array}		reviews.Review
//	@Failure		401	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/reviews [get]
func (app *application) getUserReviewsHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	list, err := app.store.Reviews.ListByUser(r.Context(), user.ID)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getUserCommentsHandler godoc
//
//	@Summary		List own comments
//	@Tags			users
//	@Produce		json
//	@Success		200	{array}		comments.Comment
//	@Failure		401	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/comments [get]
func (app *application) getUserCommentsHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	list, err := app.store.Comments.ListByUser(r.Context(), user.ID)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getUserBookmarksHandler godoc
//
//	@Summary		List own bookmarks
//	@Tags			users
//	@Produce		json
//	@Param			collection	query		string	false	"Collection name"
//	@Success		200			{array}		bookmarks.Bookmark
//	@Failure		401			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/bookmarks [get]
func (app *application) getUserBookmarksHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	list, err := app.store.Bookmarks.ListByUser(r.Context(), user.ID, r.URL.Query().Get("collection"))
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}
