package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookit/models"
	"bookit/remote"
	"bookit/services/auth"
	"bookit/services/booking"
	"bookit/services/verification"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// fakeBooking records the last call and answers with canned results.
type fakeBooking struct {
	status     models.BookingStatus
	spots      []models.Spot
	spotsErr   error
	cancelErr  error
	reschedule models.RescheduledBooking
	resErr     error
	all        []models.FullBookingInfo
	info       models.FullBookingInfo

	gotSpotID string
	gotWindow models.TimeWindow
	gotPage   [2]int
}

func (f *fakeBooking) Book(_ context.Context, spotID string, w models.TimeWindow) models.BookingStatus {
	f.gotSpotID, f.gotWindow = spotID, w
	return f.status
}

func (f *fakeBooking) Cancel(context.Context, string) error { return f.cancelErr }

func (f *fakeBooking) Reschedule(_ context.Context, _ string, w models.TimeWindow) (models.RescheduledBooking, error) {
	f.gotWindow = w
	return f.reschedule, f.resErr
}

func (f *fakeBooking) FetchSpots(_ context.Context, _ string, w models.TimeWindow) ([]models.Spot, error) {
	f.gotWindow = w
	return f.spots, f.spotsErr
}

func (f *fakeBooking) CurrentBookingForSpot(context.Context, string) (models.FullBookingInfo, error) {
	return f.info, nil
}

func (f *fakeBooking) AllBookings(_ context.Context, page, count int) ([]models.FullBookingInfo, error) {
	f.gotPage = [2]int{page, count}
	return f.all, nil
}

var _ booking.BookingService = (*fakeBooking)(nil)

func bookingRouter(f *fakeBooking) *gin.Engine {
	h := NewBookingHandler(f)
	r := gin.New()
	r.POST("/bookings", h.BookHandler)
	r.DELETE("/bookings/:id", h.CancelHandler)
	r.PATCH("/bookings/:id", h.RescheduleHandler)
	r.GET("/bookings", h.AllBookingsHandler)
	r.GET("/spots/:id/booking", h.SpotBookingHandler)
	return r
}

func TestBookHandlerSuccess(t *testing.T) {
	f := &fakeBooking{status: models.BookingSucceeded()}
	w := do(bookingRouter(f), http.MethodPost, "/bookings",
		`{"spot_id":"7","date":"2026-10-20","time_from":"10:00","time_until":"12:30"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "7", f.gotSpotID)
	from, until := f.gotWindow.Wire()
	assert.Equal(t, "2026-10-20T10:00:00", from)
	assert.Equal(t, "2026-10-20T12:30:00", until)
}

func TestBookHandlerRejectsBadWindow(t *testing.T) {
	f := &fakeBooking{}
	w := do(bookingRouter(f), http.MethodPost, "/bookings",
		`{"spot_id":"7","date":"2026-10-20","time_from":"12:00","time_until":"10:00"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, f.gotSpotID, "no booking attempted")

	w = do(bookingRouter(f), http.MethodPost, "/bookings", `{"date":"2026-10-20"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookHandlerConflict(t *testing.T) {
	spot := &models.Spot{ID: "s-12", Name: "A12", Position: 12, Available: true}
	f := &fakeBooking{status: models.BookingConflicted(spot, &remote.StatusError{Code: http.StatusConflict})}
	w := do(bookingRouter(f), http.MethodPost, "/bookings",
		`{"spot_id":"7","date":"2026-10-20","time_from":"10:00","time_until":"12:00"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	body := decode(t, w)
	assert.Equal(t, "conflict", body["status"])
	assert.Equal(t, float64(12), body["spot"].(map[string]any)["position"])
}

func TestBookHandlerConflictWithoutSpot(t *testing.T) {
	f := &fakeBooking{status: models.BookingConflicted(nil, &booking.SpotNameError{Name: "??"})}
	w := do(bookingRouter(f), http.MethodPost, "/bookings",
		`{"spot_id":"7","date":"2026-10-20","time_from":"10:00","time_until":"12:00"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Nil(t, decode(t, w)["spot"])

	f.status = models.BookingConflicted(nil, &remote.TransportError{Err: errors.New("dial")})
	w = do(bookingRouter(f), http.MethodPost, "/bookings",
		`{"spot_id":"7","date":"2026-10-20","time_from":"10:00","time_until":"12:00"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCancelAndRescheduleFailuresAreDistinct(t *testing.T) {
	f := &fakeBooking{
		cancelErr:  &remote.StatusError{Code: http.StatusNotFound},
		reschedule: models.InvalidRescheduledBooking(),
		resErr:     &remote.StatusError{Code: http.StatusInternalServerError},
	}
	r := bookingRouter(f)

	w := do(r, http.MethodDelete, "/bookings/b1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Cancellation failed", decode(t, w)["message"])

	w = do(r, http.MethodPatch, "/bookings/b1", `{"date":"2026-10-20","time_from":"09:00","time_until":"10:00"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Reschedule failed", decode(t, w)["message"])

	f.cancelErr, f.resErr = nil, nil
	f.reschedule = models.RescheduledBooking{ID: "b1", Status: models.StatusActive}
	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/bookings/b1", "").Code)
	w = do(r, http.MethodPatch, "/bookings/b1", `{"date":"2026-10-20","time_from":"09:00","time_until":"10:00"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "b1", decode(t, w)["id"])
}

func TestAllBookingsHandlerPaging(t *testing.T) {
	f := &fakeBooking{all: []models.FullBookingInfo{{ID: "b1"}}}
	r := bookingRouter(f)

	w := do(r, http.MethodGet, "/bookings?page=2&count=50", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, [2]int{2, 50}, f.gotPage)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/bookings?page=x", "").Code)
}

func TestSpotBookingHandler(t *testing.T) {
	f := &fakeBooking{info: models.FullBookingInfo{ID: "b1", Status: models.StatusActive}}
	w := do(bookingRouter(f), http.MethodGet, "/spots/7/booking", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["active"])
}

type fakeDirectory struct{}

func (fakeDirectory) List(context.Context) ([]models.CoworkingSummary, error) {
	return []models.CoworkingSummary{{ID: "1", Name: "Main"}}, nil
}

func (fakeDirectory) Get(_ context.Context, id string) (models.CoworkingDetail, error) {
	if id != "1" {
		return models.CoworkingDetail{}, &remote.StatusError{Code: http.StatusNotFound}
	}
	return models.CoworkingDetail{ID: "1", Images: []string{}}, nil
}

func coworkingRouter(f *fakeBooking) *gin.Engine {
	h := NewCoworkingHandler(fakeDirectory{}, f)
	r := gin.New()
	r.GET("/coworkings", h.ListHandler)
	r.GET("/coworkings/:id", h.GetHandler)
	r.GET("/coworkings/:id/layout", h.LayoutHandler)
	r.GET("/coworkings/:id/spots", h.SpotsHandler)
	return r
}

func TestCoworkingDirectoryHandlers(t *testing.T) {
	r := coworkingRouter(&fakeBooking{})
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/coworkings", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/coworkings/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/coworkings/2", "").Code)
}

func TestLayoutHandler(t *testing.T) {
	r := coworkingRouter(&fakeBooking{})

	body := decode(t, do(r, http.MethodGet, "/coworkings/1/layout", ""))
	assert.Equal(t, false, body["generic"])
	assert.Len(t, body["slots"], 28)

	body = decode(t, do(r, http.MethodGet, "/coworkings/unknown/layout?spots=6", ""))
	assert.Equal(t, true, body["generic"])
	assert.Len(t, body["slots"], 6)
}

func TestSpotsHandlerArrangesSpots(t *testing.T) {
	f := &fakeBooking{spots: []models.Spot{{ID: "s1", Position: 1, Capacity: models.CapacitySingle, Available: true}}}
	w := do(coworkingRouter(f), http.MethodGet,
		"/coworkings/1/spots?date=2026-10-20&time_from=10:00&time_until=11:00", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, false, body["degraded"])
	placed := body["spots"].([]any)
	require.Len(t, placed, 28)
	first := placed[0].(map[string]any)["spot"].(map[string]any)
	assert.Equal(t, "s1", first["id"])
	assert.Equal(t, true, first["available"])
	second := placed[1].(map[string]any)["spot"].(map[string]any)
	assert.Equal(t, false, second["available"])
}

func TestSpotsHandlerDegradesToEmpty(t *testing.T) {
	f := &fakeBooking{spots: []models.Spot{}, spotsErr: &remote.TransportError{Err: errors.New("timeout")}}
	w := do(coworkingRouter(f), http.MethodGet,
		"/coworkings/unknown/spots?date=2026-10-20&time_from=10:00&time_until=11:00", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, true, body["degraded"])
	assert.Empty(t, body["spots"])

	w = do(coworkingRouter(f), http.MethodGet, "/coworkings/1/spots?date=bad", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type fakeProfile struct {
	deleteErr error
	gotPage   [2]int
}

func (f *fakeProfile) Profile(context.Context) (models.UserProfile, error) {
	return models.UserProfile{ID: "u1", FullName: "Ann"}, nil
}

func (f *fakeProfile) ListBookings(_ context.Context, page, size int) ([]models.ProfileBooking, error) {
	f.gotPage = [2]int{page, size}
	return []models.ProfileBooking{{ID: "b1"}}, nil
}

func (f *fakeProfile) DeleteBooking(context.Context, string) ([]models.ProfileBooking, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return []models.ProfileBooking{}, nil
}

func (f *fakeProfile) Reschedule(_ context.Context, id string, _ models.TimeWindow) (models.RescheduledBooking, []models.ProfileBooking, error) {
	return models.RescheduledBooking{ID: id}, []models.ProfileBooking{{ID: id}}, nil
}

func (f *fakeProfile) PageSize() int { return 1 }

func (f *fakeProfile) ChangeUserInfo(_ context.Context, id, _, _ string) error {
	if id == "" {
		return errors.New("empty id")
	}
	return nil
}

func TestProfileHandlers(t *testing.T) {
	f := &fakeProfile{}
	h := NewProfileHandler(f)
	r := gin.New()
	r.GET("/profile", h.ProfileHandler)
	r.GET("/profile/bookings", h.ListBookingsHandler)
	r.DELETE("/profile/bookings/:id", h.DeleteBookingHandler)
	r.POST("/profile/bookings/:id/reschedule", h.RescheduleHandler)
	r.PATCH("/users/:id", h.ChangeUserInfoHandler)

	assert.Equal(t, "Ann", decode(t, do(r, http.MethodGet, "/profile", ""))["full_name"])

	w := do(r, http.MethodGet, "/profile/bookings?page=1&count=20", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, [2]int{1, 20}, f.gotPage)
	body := decode(t, w)
	assert.Equal(t, false, body["has_more"], "one item on a page of 20")
	assert.Equal(t, float64(2), body["next_page"])

	body = decode(t, do(r, http.MethodGet, "/profile/bookings", ""))
	assert.Equal(t, true, body["has_more"], "default page size is full")
	assert.Equal(t, float64(1), body["next_page"])

	assert.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/profile/bookings/b1", "").Code)
	f.deleteErr = &remote.StatusError{Code: http.StatusForbidden}
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodDelete, "/profile/bookings/b1", "").Code)

	w = do(r, http.MethodPost, "/profile/bookings/b1/reschedule", `{"date":"2026-10-20","time_from":"09:00","time_until":"10:00"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "b1", decode(t, w)["booking"].(map[string]any)["id"])

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodPatch, "/users/u1", `{"email":"a@b.c","full_name":"Ann"}`).Code)
}

type fakeChecker struct{ calls int }

func (f *fakeChecker) CheckBooking(_ context.Context, code string) (models.BookingDetails, error) {
	f.calls++
	if code == "missing" {
		return models.BookingDetails{}, verification.ErrBookingNotFound
	}
	return models.BookingDetails{ID: code}, nil
}

func TestVerifyHandlerDebouncesScans(t *testing.T) {
	checker := &fakeChecker{}
	h := NewVerifyHandler(checker, verification.NewDebouncer(time.Minute))
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("deviceID", "scanner-1") })
	r.POST("/verify", h.VerifyHandler)

	w := do(r, http.MethodPost, "/verify", `{"code":"b1"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "b1", decode(t, w)["id"])

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodPost, "/verify", `{"code":"b1"}`).Code)
	assert.Equal(t, 1, checker.calls)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/verify", `{"code":"missing"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/verify", `{}`).Code)
}

type fakeAuth struct {
	registered models.RegisterInput
	err        error
	fcm        string
	fcmErr     error
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", auth.ErrInvalidInput
	}
	return f.session()
}

func (f *fakeAuth) SignInWithYandex(context.Context, string) (string, error) { return f.session() }

func (f *fakeAuth) Register(_ context.Context, in models.RegisterInput) (string, error) {
	f.registered = in
	return f.session()
}

func (f *fakeAuth) session() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "sid-1", nil
}

func (f *fakeAuth) Logout(context.Context) error { return nil }

func (f *fakeAuth) SaveFCMToken(_ context.Context, token string) error {
	f.fcm = token
	return f.fcmErr
}

func authRouter(f *fakeAuth) *gin.Engine {
	h := NewAuthHandler(f)
	r := gin.New()
	r.POST("/auth/login", h.LoginHandler)
	r.POST("/auth/register", h.RegisterHandler)
	r.POST("/auth/yandex", h.YandexHandler)
	r.POST("/auth/logout", h.LogoutHandler)
	r.PUT("/auth/fcm-token", h.FCMTokenHandler)
	return r
}

func TestLoginHandler(t *testing.T) {
	f := &fakeAuth{}
	r := authRouter(f)
	w := do(r, http.MethodPost, "/auth/login", `{"email":"a@b.c","password":"pw"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sid-1", decode(t, w)["session_id"])
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/auth/login", `{"email":"a@b.c"}`).Code)

	f.err = &remote.StatusError{Code: http.StatusUnauthorized}
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/auth/login", `{"email":"a@b.c","password":"pw"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/auth/yandex", `{"oauth_token":"t"}`).Code)
}

func TestRegisterHandlerMultipart(t *testing.T) {
	f := &fakeAuth{}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("email", "a@b.c"))
	require.NoError(t, mw.WriteField("full_name", "Ann"))
	require.NoError(t, mw.WriteField("password", "pw"))
	require.NoError(t, mw.WriteField("is_business", "true"))
	part, err := mw.CreateFormFile("avatar", "me.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/auth/register", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	authRouter(f).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "sid-1", decode(t, w)["session_id"])
	assert.Equal(t, "Ann", f.registered.FullName)
	assert.True(t, f.registered.IsBusiness)
	require.NotNil(t, f.registered.Avatar)
	assert.Equal(t, "me.png", f.registered.Avatar.Filename)
	assert.Equal(t, []byte("png-bytes"), f.registered.Avatar.Data)
}

func TestRegisterHandlerReportsStep(t *testing.T) {
	f := &fakeAuth{err: &auth.RegistrationError{
		Step:      auth.StepCreateAccount,
		AvatarURL: "https://cdn/x.png",
		Err:       &remote.StatusError{Code: http.StatusUnprocessableEntity},
	}}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("email", "a@b.c"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/auth/register", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	authRouter(f).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode(t, w)["details"], "create-account")
	assert.Nil(t, f.registered.Avatar)
}

func TestFCMTokenAndLogout(t *testing.T) {
	f := &fakeAuth{}
	r := authRouter(f)
	assert.Equal(t, http.StatusNoContent, do(r, http.MethodPut, "/auth/fcm-token", `{"token":"fcm-1"}`).Code)
	assert.Equal(t, "fcm-1", f.fcm)
	assert.Equal(t, http.StatusNoContent, do(r, http.MethodPost, "/auth/logout", "").Code)

	f.fcmErr = errors.New("failed to set session key: connection refused")
	assert.Equal(t, http.StatusInternalServerError, do(r, http.MethodPut, "/auth/fcm-token", `{"token":"fcm-2"}`).Code)
}
