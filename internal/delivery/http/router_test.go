package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"doctor-directory/config"
	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/delivery/http/handler"
	"doctor-directory/internal/delivery/http/middleware"
	"doctor-directory/internal/delivery/http/view"
	"doctor-directory/internal/domain/entity"
	"doctor-directory/internal/service"
	"doctor-directory/internal/usecase"
	"doctor-directory/pkg/jwt"
	"doctor-directory/pkg/validator"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	doctors []entity.Doctor
	err     error
}

func (s *stubSource) FetchDoctors(context.Context) ([]entity.Doctor, error) {
	return s.doctors, s.err
}

func stubDoctors() []entity.Doctor {
	return []entity.Doctor{
		{
			ID:           "1",
			Name:         "Dr. Ananya Rao",
			Specialities: []entity.Speciality{{Name: "Dentist"}},
			Experience:   "13 Years of experience",
			Fees:         "₹ 500",
			Clinic:       entity.Clinic{Name: "Smile Care", Address: entity.ClinicAddress{Locality: "Indiranagar"}},
		},
		{
			ID:           "2",
			Name:         "Dr. Vikram Shah",
			Specialities: []entity.Speciality{{Name: "Cardiologist"}},
			Experience:   "8 Years of experience",
			Fees:         "₹ 800",
			Clinic:       entity.Clinic{Name: "Heart Point", Address: entity.ClinicAddress{Locality: "Koramangala"}},
		},
	}
}

type envelope struct {
	Success bool                  `json:"success"`
	Data    dto.DirectoryResponse `json:"data"`
	Error   map[string]string     `json:"error"`
}

func newTestServer(t *testing.T, source *stubSource) *httptest.Server {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	sessions := service.NewSessionRegistry[*usecase.DirectoryView](time.Hour, time.Hour, log)
	t.Cleanup(sessions.Stop)

	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	jwtService := jwt.NewJWTService(config.SessionConfig{Secret: "test-secret", IdleTTL: time.Hour})
	directoryUsecase := usecase.NewDirectoryUsecase(log, source, sessions)
	directoryHandler := handler.NewDirectoryHandler(directoryUsecase, validator.NewValidator(), renderer, log)

	router := NewRouter(
		directoryHandler,
		middleware.NewSessionMiddleware(jwtService, log),
		middleware.NewLoggerMiddleware(log),
		middleware.NewRecoveryMiddleware(log),
		middleware.NewCORSMiddleware(),
	)

	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)
	return srv
}

func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar, Timeout: 5 * time.Second}
}

func getDirectory(t *testing.T, client *http.Client, base, rawQuery string) (int, envelope) {
	t.Helper()
	target := base + "/api/v1/directory"
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	resp, err := client.Get(target)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func waitForStatus(t *testing.T, client *http.Client, base string, status string) {
	t.Helper()
	require.Eventually(t, func() bool {
		_, body := getDirectory(t, client, base, "")
		return body.Data.Status == status
	}, 2*time.Second, 10*time.Millisecond)
}

func getPage(t *testing.T, client *http.Client, target string) string {
	t.Helper()
	resp, err := client.Get(target)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func postForm(t *testing.T, client *http.Client, target string, form url.Values) string {
	t.Helper()
	resp, err := client.PostForm(target, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestRouter_HealthCheck(t *testing.T) {
	srv := newTestServer(t, &stubSource{doctors: stubDoctors()})

	resp, err := http.Get(srv.URL + "/api/v1/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_PageFilterFlow(t *testing.T) {
	srv := newTestServer(t, &stubSource{doctors: stubDoctors()})
	browser := newBrowser(t)

	getPage(t, browser, srv.URL+"/")
	waitForStatus(t, browser, srv.URL, "loaded")

	page := getPage(t, browser, srv.URL+"/")
	assert.Contains(t, page, "Dr. Ananya Rao")
	assert.Contains(t, page, "Dr. Vikram Shah")
	assert.Contains(t, page, `name="speciality" value="Dentist"`)
	assert.Contains(t, page, "Book Appointment")
	assert.NotContains(t, page, "Loading doctors")

	page = postForm(t, browser, srv.URL+"/filters/specialities/toggle", url.Values{"speciality": {"Dentist"}})
	assert.Contains(t, page, "Dr. Ananya Rao")
	assert.NotContains(t, page, "Dr. Vikram Shah")
	assert.Contains(t, page, `aria-checked="true"`)

	page = postForm(t, browser, srv.URL+"/filters/clear", url.Values{})
	assert.Contains(t, page, "Dr. Ananya Rao")
	assert.Contains(t, page, "Dr. Vikram Shah")
	assert.NotContains(t, page, `aria-checked="true"`)
}

func TestRouter_ToggleKeepsQuery(t *testing.T) {
	srv := newTestServer(t, &stubSource{doctors: stubDoctors()})
	browser := newBrowser(t)

	getPage(t, browser, srv.URL+"/")
	waitForStatus(t, browser, srv.URL, "loaded")

	noRedirect := *browser
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

	resp, err := noRedirect.PostForm(srv.URL+"/filters/specialities/toggle?sort=price&search=tooth", url.Values{"speciality": {"Dentist"}})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/?search=tooth&sort=price", resp.Header.Get("Location"))
}

func TestRouter_FailedLoadShowsEmptyState(t *testing.T) {
	srv := newTestServer(t, &stubSource{err: errors.New("network unreachable")})
	browser := newBrowser(t)

	getPage(t, browser, srv.URL+"/")
	waitForStatus(t, browser, srv.URL, "failed")

	page := getPage(t, browser, srv.URL+"/")
	assert.Contains(t, page, "No doctors match the selected filters.")
	assert.Contains(t, page, "The doctor list could not be loaded.")
	assert.NotContains(t, page, `name="speciality"`)

	_, body := getDirectory(t, browser, srv.URL, "")
	assert.Empty(t, body.Data.Doctors)
	assert.Empty(t, body.Data.Specialities)
	assert.Contains(t, body.Data.Reason, "network unreachable")
}

func TestRouter_APIFlow(t *testing.T) {
	srv := newTestServer(t, &stubSource{doctors: stubDoctors()})
	client := newBrowser(t)

	getDirectory(t, client, srv.URL, "")
	waitForStatus(t, client, srv.URL, "loaded")

	resp, err := client.Post(srv.URL+"/api/v1/directory/specialities/toggle", "application/json", strings.NewReader(`{"speciality":"Cardiologist"}`))
	require.NoError(t, err)
	var toggled envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&toggled))
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"Cardiologist"}, toggled.Data.Selected)
	require.Len(t, toggled.Data.Doctors, 1)
	assert.Equal(t, "2", toggled.Data.Doctors[0].ID)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/directory/filters", nil)
	require.NoError(t, err)
	resp, err = client.Do(req)
	require.NoError(t, err)
	var cleared envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cleared))
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, cleared.Data.Doctors, 2)
	assert.Equal(t, 2, cleared.Data.Total)
}

func TestRouter_APIValidation(t *testing.T) {
	srv := newTestServer(t, &stubSource{doctors: stubDoctors()})
	client := newBrowser(t)

	status, body := getDirectory(t, client, srv.URL, "sort=rating")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, body.Success)
	assert.Contains(t, body.Error["Sort"], "must be one of")

	resp, err := client.Post(srv.URL+"/api/v1/directory/specialities/toggle", "application/json", strings.NewReader(`{"speciality":""}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_APIToggleWithoutSession(t *testing.T) {
	srv := newTestServer(t, &stubSource{doctors: stubDoctors()})

	resp, err := http.Post(srv.URL+"/api/v1/directory/specialities/toggle", "application/json", strings.NewReader(`{"speciality":"Dentist"}`))
	require.NoError(t, err)
	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"Dentist"}, body.Data.Selected)
}

func TestRouter_ToggleAfterRestartIsKept(t *testing.T) {
	before := newTestServer(t, &stubSource{doctors: stubDoctors()})
	after := newTestServer(t, &stubSource{doctors: stubDoctors()})
	browser := newBrowser(t)

	getPage(t, browser, before.URL+"/")
	waitForStatus(t, browser, before.URL, "loaded")

	// Same cookie, same secret, but the second server has never seen this session
	postForm(t, browser, after.URL+"/filters/specialities/toggle", url.Values{"speciality": {"Dentist"}})
	waitForStatus(t, browser, after.URL, "loaded")

	_, body := getDirectory(t, browser, after.URL, "")
	assert.Equal(t, []string{"Dentist"}, body.Data.Selected)
	require.Len(t, body.Data.Doctors, 1)
	assert.Equal(t, "1", body.Data.Doctors[0].ID)

	page := getPage(t, browser, after.URL+"/")
	assert.Contains(t, page, `aria-checked="true"`)
}

func TestRouter_APIToggleKeepsSort(t *testing.T) {
	doctors := stubDoctors()
	doctors[1].Specialities = []entity.Speciality{{Name: "Dentist"}}
	doctors[0].Fees, doctors[1].Fees = "Rs. 900", "Rs.100"
	srv := newTestServer(t, &stubSource{doctors: doctors})
	client := newBrowser(t)

	getDirectory(t, client, srv.URL, "")
	waitForStatus(t, client, srv.URL, "loaded")

	resp, err := client.Post(srv.URL+"/api/v1/directory/specialities/toggle?sort=price", "application/json", strings.NewReader(`{"speciality":"Dentist"}`))
	require.NoError(t, err)
	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()

	require.Len(t, body.Data.Doctors, 2)
	assert.Equal(t, "2", body.Data.Doctors[0].ID)
	assert.Equal(t, "price", body.Data.Sort)
}

func TestRouter_CORSPreflight(t *testing.T) {
	srv := newTestServer(t, &stubSource{doctors: stubDoctors()})

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/directory/specialities/toggle", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
}

func TestRouter_SessionsDoNotShareSelection(t *testing.T) {
	srv := newTestServer(t, &stubSource{doctors: stubDoctors()})
	alice := newBrowser(t)
	bob := newBrowser(t)

	getPage(t, alice, srv.URL+"/")
	getPage(t, bob, srv.URL+"/")
	waitForStatus(t, alice, srv.URL, "loaded")
	waitForStatus(t, bob, srv.URL, "loaded")

	postForm(t, alice, srv.URL+"/filters/specialities/toggle", url.Values{"speciality": {"Dentist"}})

	_, body := getDirectory(t, bob, srv.URL, "")
	assert.Empty(t, body.Data.Selected)
	assert.Len(t, body.Data.Doctors, 2)
}

func TestRouter_SortByPrice(t *testing.T) {
	doctors := stubDoctors()
	doctors[0].Fees, doctors[1].Fees = "₹ 900", "₹ 100"
	srv := newTestServer(t, &stubSource{doctors: doctors})
	client := newBrowser(t)

	getDirectory(t, client, srv.URL, "")
	waitForStatus(t, client, srv.URL, "loaded")

	_, body := getDirectory(t, client, srv.URL, "sort=price")
	require.Len(t, body.Data.Doctors, 2)
	assert.Equal(t, "2", body.Data.Doctors[0].ID)

	_, body = getDirectory(t, client, srv.URL, "")
	assert.Equal(t, "1", body.Data.Doctors[0].ID)
}
