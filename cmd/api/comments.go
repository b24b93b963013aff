package main

import (
	"net/http"

	"wayfarer/internal/domain/comments"
)

type CommentPayload struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// createCommentHandler godoc
//
//	@Summary		Comment on a review
//	@Tags			comments
//	@Accept			json
//	@Produce		json
//	@Param			reviewID	path		int				true	"Review ID"
//	@Param			payload		body		CommentPayload	true	"Comment"
//	@Success		201			{object}	comments.Comment
//	@Failure		400			{object}	ErrorBadRequestResponse
//	@Failure		404			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/reviews/{reviewID}/comments [post]
func (app *application) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := parseIDParam(r, "reviewID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload CommentPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	c := &comments.Comment{
		UserID:   user.ID,
		ReviewID: reviewID,
		Content:  payload.Content,
	}
	if err := app.store.Comments.Create(r.Context(), c); err != nil {
		app.storeError(w, r, err)
		return
	}
	c.Username = user.Username

	if err := app.jsonResponse(w, http.StatusCreated, c); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listReviewCommentsHandler godoc
//
//	@Summary		List comments of a review
//	@Tags			comments
//	@Produce		json
//	@Param			reviewID	path		int	true	"Review ID"
//	@Success		200			{array}		comments.Comment
//	@Failure		404			{object}	error
//	@Router			/reviews/{reviewID}/comments [get]
func (app *application) listReviewCommentsHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := parseIDParam(r, "reviewID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	if _, err := app.store.Reviews.GetByID(ctx, reviewID); err != nil {
		app.storeError(w, r, err)
		return
	}

	list, err := app.store.Comments.ListByReview(ctx, reviewID)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateCommentHandler godoc
//
//	@Summary		Edit own comment
//	@Tags			comments
//	@Accept			json
//	@Produce		json
//	@Param			commentID	path		int				true	"Comment ID"
//	@Param			payload		body		CommentPayload	true	"Comment"
//	@Success		200			{object}	comments.Comment
//	@Failure		400			{object}	ErrorBadRequestResponse
//	@Failure		404			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/comments/{commentID} [put]
func (app *application) updateCommentHandler(w http.ResponseWriter, r *http.Request) {
	commentID, err := parseIDParam(r, "commentID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload CommentPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	c, err := app.store.Comments.Update(r.Context(), commentID, user.ID, payload.Content)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, c); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteCommentHandler godoc
//
//	@Summary		Delete own comment
//	@Tags			comments
//	@Produce		json
//	@Param			commentID	path		int	true	"Comment ID"
//	@Success		200			{object}	map[string]string
//	@Failure		404			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/comments/{commentID} [delete]
func (app *application) deleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	commentID, err := parseIDParam(r, "commentID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	if err := app.store.Comments.Delete(r.Context(), commentID, user.ID); err != nil {
		app.storeError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}
