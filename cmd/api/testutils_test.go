package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wayfarer/internal/auth"
	"wayfarer/internal/domain/bookmarks"
	"wayfarer/internal/domain/catalog"
	"wayfarer/internal/domain/comments"
	"wayfarer/internal/domain/errs"
	"wayfarer/internal/domain/photos"
	"wayfarer/internal/domain/places"
	"wayfarer/internal/domain/reviews"
	"wayfarer/internal/domain/storage"
	"wayfarer/internal/domain/users"
	"wayfarer/internal/params"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret-with-enough-entropy"

func newTestApplication(t *testing.T, store *storage.Container) *application {
	t.Helper()

	cfg := config{
		env: "test",
		auth: authConfig{
			basic: basicConfig{user: "ops", pass: "ops-pass"},
			token: tokenConfig{secret: testSecret, iss: "wayfarer"},
		},
		reviews: reviewConfig{autoApprove: true},
	}

	return &application{
		config:        cfg,
		store:         store,
		logger:        zap.NewNop().Sugar(),
		authenticator: auth.NewJWTAuthenticator(testSecret, "wayfarer", "wayfarer"),
	}
}

func executeRequest(app *application, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	app.mount().ServeHTTP(rr, req)
	return rr
}

func newJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func bearer(t *testing.T, app *application, u *users.User) string {
	t.Helper()
	token, err := app.authenticator.IssueToken(u.ID, u.Email, u.Role)
	require.NoError(t, err)
	return "Bearer " + token
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func newTestUser(t *testing.T, id int64, role, password string) *users.User {
	t.Helper()
	u, err := users.NewUser(fmt.Sprintf("user%d", id), fmt.Sprintf("user%d@example.com", id), password, nil, "France")
	require.NoError(t, err)
	u.ID = id
	u.Role = role
	u.IsActive = true
	u.CreatedAt = time.Now()
	return u
}

// fakeUsers is an in-memory users.Store.
type fakeUsers struct {
	byID      map[int64]*users.User
	createErr error
	listed    params.Pagination
}

func newFakeUsers(list ...*users.User) *fakeUsers {
	f := &fakeUsers{byID: map[int64]*users.User{}}
	for _, u := range list {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *users.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	u.ID = int64(len(f.byID) + 1)
	u.Role = auth.RoleUser
	u.IsActive = true
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*users.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, errs.NotFound("user")
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*users.User, error) {
	for _, u := range f.byID {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, errs.NotFound("user")
}

func (f *fakeUsers) TouchLastLogin(context.Context, int64) error { return nil }

func (f *fakeUsers) UpdateProfile(_ context.Context, id int64, in users.ProfileUpdate) (*users.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, errs.NotFound("user")
	}
	if in.FullName != nil {
		u.FullName = in.FullName
	}
	if in.Bio != nil {
		u.Bio = in.Bio
	}
	if in.Country != nil {
		u.Country = *in.Country
	}
	return u, nil
}

func (f *fakeUsers) ListWithReviewCounts(_ context.Context, p params.Pagination) ([]users.AdminUserRow, int, error) {
	f.listed = p
	out := []users.AdminUserRow{}
	for _, u := range f.byID {
		out = append(out, users.AdminUserRow{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role})
	}
	return out, len(out), nil
}

// fakePlaces records the criteria it was asked for.
type fakePlaces struct {
	criteria places.Criteria
	mode     string
	result   []places.PlaceSummary
	total    int
	place    *places.Place
	err      error
}

func (f *fakePlaces) page(mode string, c places.Criteria) (*places.Page, error) {
	f.mode, f.criteria = mode, c
	if f.err != nil {
		return nil, f.err
	}
	p := &places.Page{Places: f.result, Pagination: c.Pagination}
	if p.Places == nil {
		p.Places = []places.PlaceSummary{}
	}
	p.Pagination.ComputeMeta(f.total)
	return p, nil
}

func (f *fakePlaces) Browse(_ context.Context, c places.Criteria) (*places.Page, error) {
	return f.page("browse", c)
}

func (f *fakePlaces) Search(_ context.Context, c places.Criteria) (*places.Page, error) {
	return f.page("search", c)
}

func (f *fakePlaces) GetByID(_ context.Context, id int64) (*places.Place, error) {
	if f.place != nil && f.place.ID == id {
		return f.place, nil
	}
	return nil, errs.NotFound("place")
}

func (f *fakePlaces) Create(_ context.Context, p *places.Place) error {
	p.ID = 1
	if p.Slug == "" {
		p.Slug = places.Slugify(p.Name)
	}
	f.place = p
	return nil
}

func (f *fakePlaces) Update(context.Context, int64, places.PlaceUpdate) (*places.Place, error) {
	return nil, errs.NotFound("place")
}

func (f *fakePlaces) Delete(context.Context, int64) error { return errs.NotFound("place") }

// fakeReviews holds reviews by id.
type fakeReviews struct {
	byID map[int64]*reviews.Review
}

func newFakeReviews(list ...*reviews.Review) *fakeReviews {
	f := &fakeReviews{byID: map[int64]*reviews.Review{}}
	for _, rv := range list {
		f.byID[rv.ID] = rv
	}
	return f
}

func (f *fakeReviews) Create(context.Context, *reviews.Review) error { return nil }

func (f *fakeReviews) GetByID(_ context.Context, id int64) (*reviews.Review, error) {
	if rv, ok := f.byID[id]; ok {
		return rv, nil
	}
	return nil, errs.NotFound("review")
}

func (f *fakeReviews) Update(context.Context, int64, int64, reviews.ReviewUpdate) (*reviews.Review, error) {
	return nil, errs.NotFound("review")
}

func (f *fakeReviews) Delete(context.Context, int64, int64) error { return errs.NotFound("review") }

func (f *fakeReviews) ListByPlace(_ context.Context, placeID int64, p params.Pagination) ([]reviews.Review, int, error) {
	out := []reviews.Review{}
	for _, rv := range f.byID {
		if rv.PlaceID == placeID && rv.ModerationStatus == reviews.StatusApproved {
			out = append(out, *rv)
		}
	}
	return out, len(out), nil
}

func (f *fakeReviews) ListByUser(context.Context, int64) ([]reviews.Review, error) {
	return []reviews.Review{}, nil
}

func (f *fakeReviews) SetModerationStatus(context.Context, int64, string) (*reviews.Review, error) {
	return nil, errs.NotFound("review")
}

type fakeBookmarks struct {
	addErr error
	added  *bookmarks.Bookmark
}

func (f *fakeBookmarks) Add(_ context.Context, b *bookmarks.Bookmark) error {
	if f.addErr != nil {
		return f.addErr
	}
	b.ID = 1
	f.added = b
	return nil
}

func (f *fakeBookmarks) Update(context.Context, int64, int64, *string, *string) (*bookmarks.Bookmark, error) {
	return nil, errs.NotFound("bookmark")
}

func (f *fakeBookmarks) Remove(context.Context, int64, int64) error { return errs.NotFound("bookmark") }

func (f *fakeBookmarks) ListByUser(context.Context, int64, string) ([]bookmarks.Bookmark, error) {
	return []bookmarks.Bookmark{}, nil
}

// fakePhotos holds photos by id. Delete only removes the caller's own.
type fakePhotos struct {
	byID map[int64]*photos.Photo
}

func newFakePhotos(list ...*photos.Photo) fakePhotos {
	f := fakePhotos{byID: map[int64]*photos.Photo{}}
	for _, p := range list {
		f.byID[p.ID] = p
	}
	return f
}

func (f fakePhotos) Create(_ context.Context, p *photos.Photo) error {
	p.ID = int64(len(f.byID) + 1)
	p.ModerationStatus = "approved"
	if f.byID != nil {
		f.byID[p.ID] = p
	}
	return nil
}

func (f fakePhotos) ListByPlace(_ context.Context, placeID int64, limit int) ([]photos.Photo, error) {
	out := []photos.Photo{}
	for _, p := range f.byID {
		if p.PlaceID != nil && *p.PlaceID == placeID && len(out) < limit {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f fakePhotos) Delete(_ context.Context, id, userID int64) error {
	p, ok := f.byID[id]
	if !ok || p.UserID != userID {
		return errs.NotFound("photo")
	}
	delete(f.byID, id)
	return nil
}

// fakeComments holds comments by id. Update and Delete are owner-scoped.
type fakeComments struct {
	byID map[int64]*comments.Comment
}

func newFakeComments(list ...*comments.Comment) *fakeComments {
	f := &fakeComments{byID: map[int64]*comments.Comment{}}
	for _, c := range list {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeComments) Create(_ context.Context, c *comments.Comment) error {
	c.ID = int64(len(f.byID) + 1)
	c.ModerationStatus = "approved"
	f.byID[c.ID] = c
	return nil
}

func (f *fakeComments) ListByReview(_ context.Context, reviewID int64) ([]comments.Comment, error) {
	out := []comments.Comment{}
	for _, c := range f.byID {
		if c.ReviewID == reviewID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeComments) ListByUser(_ context.Context, userID int64) ([]comments.Comment, error) {
	out := []comments.Comment{}
	for _, c := range f.byID {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeComments) Update(_ context.Context, id, userID int64, content string) (*comments.Comment, error) {
	c, ok := f.byID[id]
	if !ok || c.UserID != userID {
		return nil, errs.NotFound("comment")
	}
	c.Content = content
	return c, nil
}

func (f *fakeComments) Delete(_ context.Context, id, userID int64) error {
	c, ok := f.byID[id]
	if !ok || c.UserID != userID {
		return errs.NotFound("comment")
	}
	delete(f.byID, id)
	return nil
}

// fakeCatalog serves fixed reference data and records the country filter.
type fakeCatalog struct {
	categories []catalog.Category
	cities     []catalog.City
	country    string
	err        error
}

func (f *fakeCatalog) Categories(context.Context) ([]catalog.Category, error) {
	return f.categories, f.err
}

func (f *fakeCatalog) Cities(_ context.Context, country string) ([]catalog.City, error) {
	f.country = country
	if f.err != nil {
		return nil, f.err
	}
	out := []catalog.City{}
	for _, c := range f.cities {
		if country == "" || strings.EqualFold(c.CountryName, country) {
			out = append(out, c)
		}
	}
	return out, nil
}
