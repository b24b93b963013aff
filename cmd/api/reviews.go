package main

import (
	"context"
	"errors"
	"net/http"

	"wayfarer/internal/auth"
	"wayfarer/internal/domain/admins"
	"wayfarer/internal/domain/errs"
	"wayfarer/internal/domain/reviews"
	"wayfarer/internal/domain/storage"
	"wayfarer/internal/metrics"
)

type CreateReviewPayload struct {
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Title     *string `json:"title" validate:"omitempty,max=200"`
	Content   string  `json:"content" validate:"required,max=5000"`
	VisitDate *string `json:"visit_date" validate:"omitempty,datetime=2006-01-02,notfuture"`
}

// createReviewHandler godoc
//
//	@Summary		Review a place
//	@Description	Creates the caller's review of a place and refreshes the place rating. A user can review a place once.
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			placeID	path		int					true	"Place ID"
//	@Param			payload	body		CreateReviewPayload	true	"Review"
//	@Success		201		{object}	reviews.Review
//	@Failure		400		{object}	ErrorBadRequestResponse	"Invalid payload or duplicate_review"
//	@Failure		401		{object}	error
//	@Failure		404		{object}	error
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/places/{placeID}/reviews [post]
func (app *application) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	placeID, err := parseIDParam(r, "placeID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload CreateReviewPayload
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

	review := &reviews.Review{
		UserID:           user.ID,
		PlaceID:          placeID,
		Rating:           payload.Rating,
		Title:            payload.Title,
		Content:          payload.Content,
		VisitDate:        payload.VisitDate,
		ModerationStatus: reviews.StatusPending,
	}
	if app.config.reviews.autoApprove {
		review.ModerationStatus = reviews.StatusApproved
	}

	err = app.store.WithReviewTx(ctx, placeID, func(tx *storage.ReviewTx) error {
		if err := tx.Reviews.Create(ctx, review); err != nil {
			return err
		}
		return app.recordAdminAction(ctx, tx, user.ID, user.Role, admins.ActionAdded)
	})
	metrics.RecordRatingRecompute("create", err)
	if err != nil {
		app.reviewStoreError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateReviewPayload struct {
	Rating    *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Title     *string `json:"title" validate:"omitempty,max=200"`
	Content   *string `json:"content" validate:"omitempty,min=1,max=5000"`
	VisitDate *string `json:"visit_date" validate:"omitempty,datetime=2006-01-02,notfuture"`
}

// updateReviewHandler godoc
//
//	@Summary		Update own review
//	@Description	Changes the caller's review and refreshes the place rating. Reviews of other users are reported as not found.
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			reviewID	path		int					true	"Review ID"
//	@Param			payload		body		UpdateReviewPayload	true	"Fields to change"
//	@Success		200			{object}	reviews.Review
//	@Failure		400			{object}	ErrorBadRequestResponse
//	@Failure		401			{object}	error
//	@Failure		404			{object}	error
//	@Failure		500			{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/reviews/{reviewID} [put]
func (app *application) updateReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := parseIDParam(r, "reviewID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload UpdateReviewPayload
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

	existing, err := app.ownedReview(r, reviewID, user.ID)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	patch := reviews.ReviewUpdate{
		Rating:    payload.Rating,
		Title:     payload.Title,
		Content:   payload.Content,
		VisitDate: payload.VisitDate,
	}

	var updated *reviews.Review
	err = app.store.WithReviewTx(ctx, existing.PlaceID, func(tx *storage.ReviewTx) error {
		var err error
		updated, err = tx.Reviews.Update(ctx, reviewID, user.ID, patch)
		if err != nil {
			return err
		}
		return app.recordAdminAction(ctx, tx, user.ID, user.Role, admins.ActionEdited)
	})
	metrics.RecordRatingRecompute("update", err)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, updated); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteReviewHandler godoc
//
//	@Summary		Delete own review
//	@Description	Deletes the caller's review and refreshes the place rating
//	@Tags			reviews
//	@Produce		json
//	@Param			reviewID	path		int	true	"Review ID"
//	@Success		200			{object}	map[string]string
//	@Failure		401			{object}	error
//	@Failure		404			{object}	error
//	@Failure		500			{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/reviews/{reviewID} [delete]
func (app *application) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := parseIDParam(r, "reviewID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)
	ctx := r.Context()

	existing, err := app.ownedReview(r, reviewID, user.ID)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	err = app.store.WithReviewTx(ctx, existing.PlaceID, func(tx *storage.ReviewTx) error {
		if err := tx.Reviews.Delete(ctx, reviewID, user.ID); err != nil {
			return err
		}
		return app.recordAdminAction(ctx, tx, user.ID, user.Role, admins.ActionDeleted)
	})
	metrics.RecordRatingRecompute("delete", err)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]string{"message": "review deleted"})
}

// ownedReview loads a review the user wrote. Someone else's review is
// reported exactly like a missing one.
func (app *application) ownedReview(r *http.Request, reviewID, userID int64) (*reviews.Review, error) {
	rv, err := app.store.Reviews.GetByID(r.Context(), reviewID)
	if err != nil {
		return nil, err
	}
	if rv.UserID != userID {
		return nil, errs.NotFound("review")
	}
	return rv, nil
}

// recordAdminAction bumps the admin activity counter when an admin acts on
// a review. Non-admins are skipped.
func (app *application) recordAdminAction(ctx context.Context, tx *storage.ReviewTx, userID int64, role string, action admins.Action) error {
	if role != auth.RoleAdmin {
		return nil
	}
	_, err := tx.Admins.Record(ctx, userID, action)
	return err
}

func (app *application) reviewStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, reviews.ErrDuplicateReview) {
		app.duplicateResponse(w, r, "duplicate_review", err)
		return
	}
	app.storeError(w, r, err)
}
