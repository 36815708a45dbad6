package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"hangout/backend/internal/auth"
	"hangout/backend/internal/hub"
	"hangout/backend/internal/models"
	"hangout/backend/internal/service"
)

var now = time.Date(2026, 10, 18, 18, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

type feedStore struct {
	friends    []string
	candidates []models.Activity
}

func (f feedStore) GetFriendIDs(context.Context, string) ([]string, error) { return f.friends, nil }

func (f feedStore) GetPreviousConnectionIDs(context.Context, string) ([]string, error) {
	return nil, nil
}

func (f feedStore) GetActivityCandidates(context.Context, string) ([]models.Activity, error) {
	return f.candidates, nil
}

func strPtr(s string) *string { return &s }

func testRouter(provider auth.Provider) *gin.Engine {
	today := datatypes.Date(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC))
	created := now.Add(-time.Hour)
	store := feedStore{
		friends: []string{"friend"},
		candidates: []models.Activity{
			{ID: "later", Title: "Brunch", CreatorID: "viewer", Visibility: models.VisibilityFriends,
				Category: models.CategoryPlanned, Timeframe: strPtr("tomorrow"), CreatedAt: created.Add(3 * time.Minute)},
			{ID: "ago", Title: "Movie", CreatorID: "stranger", Visibility: models.VisibilityOpen,
				Category: models.CategoryPlanned, Timeframe: strPtr("yesterday"), CreatedAt: created.Add(2 * time.Minute)},
			{ID: "soon", Title: "Hoops", CreatorID: "friend", Visibility: models.VisibilityFriends,
				Category: models.CategorySpontaneous, Date: &today, Time: strPtr("18:30"), CreatedAt: created.Add(time.Minute),
				Creator: models.User{ID: "friend", Phone: "+15552345678"}},
		},
	}

	clock := func() time.Time { return now }
	activities := NewActivityHandler(service.NewFeedService(store, clock), nil, nil, hub.NewHub(), clock)
	return Router(RouterOptions{Provider: provider, Auth: NewAuthHandler(nil, false), Activities: activities})
}

func do(r http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func ids(dtos []ActivityDTO) []string {
	out := make([]string, len(dtos))
	for i, d := range dtos {
		out[i] = d.ID
	}
	return out
}

func TestListActivities_TimingOrder(t *testing.T) {
	w := do(testRouter(auth.DevProvider{UserID: "viewer"}), http.MethodGet, "/api/v1/activities")
	require.Equal(t, http.StatusOK, w.Code)

	var body PaginatedResponse[ActivityDTO]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"soon", "later", "ago"}, ids(body.Data))
	assert.Equal(t, int64(3), body.Meta.TotalItems)

	soon := body.Data[0]
	assert.True(t, soon.Timing.IsImmediate)
	assert.Equal(t, 30, soon.Timing.Priority)
	assert.Equal(t, "2026-10-18", *soon.Date)
	require.NotNil(t, soon.Creator)
	assert.Equal(t, "friend", soon.Creator.ID)
	assert.Equal(t, models.DisplayNotInterested, soon.UserResponse)

	assert.True(t, body.Data[2].Timing.IsPast)
}

func TestListActivities_QueryParameters(t *testing.T) {
	r := testRouter(auth.DevProvider{UserID: "viewer"})

	tests := []struct {
		query string
		want  []string
	}{
		{"sort=recent", []string{"later", "ago", "soon"}},
		{"creatorType=me", []string{"later"}},
		{"creatorType=friends", []string{"soon"}},
		{"category=spontaneous", []string{"soon"}},
		{"visibility=open", []string{"ago"}},
		{"category=bogus&visibility=nope", []string{"soon", "later", "ago"}},
		{"participationStatus=participating", []string{"later"}},
		{"limit=2&page=2", []string{"ago"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := do(r, http.MethodGet, "/api/v1/activities?"+tt.query)
			require.Equal(t, http.StatusOK, w.Code)

			var body PaginatedResponse[ActivityDTO]
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.want, ids(body.Data))
		})
	}
}

func TestSections(t *testing.T) {
	w := do(testRouter(auth.DevProvider{UserID: "viewer"}), http.MethodGet, "/api/v1/activities/sections")
	require.Equal(t, http.StatusOK, w.Code)

	var body SectionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"soon", "later"}, ids(body.Current))
	assert.Equal(t, []string{"ago"}, ids(body.Past))
}

func TestActivities_RequireAuthentication(t *testing.T) {
	r := testRouter(auth.JWTProvider{Secret: []byte("secret")})
	for _, path := range []string{"/api/v1/activities", "/api/v1/status", "/api/v1/friends/status", "/api/v1/auth/me"} {
		w := do(r, http.MethodGet, path)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestLogout_WithOrWithoutSession(t *testing.T) {
	for _, provider := range []auth.Provider{
		auth.DevProvider{UserID: "viewer"},
		auth.JWTProvider{Secret: []byte("secret")},
	} {
		w := do(testRouter(provider), http.MethodPost, "/api/v1/auth/logout")
		assert.Equal(t, http.StatusNoContent, w.Code)
		cookie := w.Header().Get("Set-Cookie")
		assert.Contains(t, cookie, auth.CookieName+"=;")
		assert.Contains(t, cookie, "Max-Age=0")
	}
}

func TestAvatarRoutesOnlyWhenConfigured(t *testing.T) {
	r := testRouter(auth.DevProvider{UserID: "viewer"})
	w := do(r, http.MethodPost, "/api/v1/users/me/avatar/upload-url")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTimeframeSuggestions(t *testing.T) {
	r := testRouter(auth.DevProvider{UserID: "viewer"})

	var body SuggestionsResponse
	w := do(r, http.MethodGet, "/api/v1/timeframes/suggestions?category=planned")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "planned", body.Category)
	assert.Contains(t, body.Suggestions, "Next week")

	w = do(r, http.MethodGet, "/api/v1/timeframes/suggestions")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "spontaneous", body.Category)
}

func TestPing(t *testing.T) {
	w := do(testRouter(auth.DevProvider{UserID: "viewer"}), http.MethodGet, "/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", service.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("%w: dup", service.ErrConflict), http.StatusConflict},
		{service.ErrActivityFull, http.StatusConflict},
		{fmt.Errorf("%w: bad", service.ErrInvalidInput), http.StatusBadRequest},
		{service.ErrInvalidPhone, http.StatusBadRequest},
		{service.ErrInvalidCode, http.StatusBadRequest},
		{service.ErrCodeExpired, http.StatusBadRequest},
		{fmt.Errorf("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestRespondError_HidesInternalErrors(t *testing.T) {
	r := gin.New()
	r.GET("/x", func(c *gin.Context) { respondError(c, fmt.Errorf("pq: secret detail"), "Failed to load") })
	r.GET("/y", func(c *gin.Context) { respondError(c, service.ErrNotFound, "Failed to load") })

	w := do(r, http.MethodGet, "/x")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to load"}`, w.Body.String())

	w = do(r, http.MethodGet, "/y")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not found"}`, w.Body.String())
}

func TestPaginateSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	p := PaginateSlice(items, 1, 2)
	assert.Equal(t, []int{1, 2}, p.Data)
	assert.Equal(t, PaginationMeta{TotalItems: 5, TotalPages: 3, CurrentPage: 1, PageSize: 2}, p.Meta)

	assert.Equal(t, []int{5}, PaginateSlice(items, 3, 2).Data)
	assert.Equal(t, []int{}, PaginateSlice(items, 9, 2).Data)
	assert.Equal(t, []int{}, PaginateSlice([]int(nil), 1, 10).Data)

	far := PaginateSlice([]int{1, 2, 3}, 100000000000000000, 100)
	assert.Equal(t, []int{}, far.Data)
	assert.Equal(t, 100000000000000000, far.Meta.CurrentPage)
}

func TestActivities_HugePageNumber(t *testing.T) {
	r := testRouter(auth.DevProvider{UserID: "viewer"})
	w := do(r, http.MethodGet, "/api/v1/activities?page=100000000000000000")
	require.Equal(t, http.StatusOK, w.Code)

	var body PaginatedResponse[ActivityDTO]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Data)
	assert.Equal(t, int64(3), body.Meta.TotalItems)
}
