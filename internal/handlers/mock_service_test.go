package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"travro/internal/apperr"
	"travro/internal/models"
	"travro/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	user     *models.User
	token    string
	err      error
	authUser *models.User
	authErr  error

	lastRegister   service.RegisterInput
	lastImageBytes string
	lastUsername   string
	lastPassword   string
	lastHeader     string

	// authorizeLimit > 0 makes every Authorize call after that many fail.
	mu             sync.Mutex
	authorizeCalls int
	authorizeLimit int
}

func (m *mockAuth) Register(_ context.Context, in service.RegisterInput) (*models.User, string, error) {
	m.lastRegister = in
	if in.Image != nil && in.Image.Body != nil {
		buf := make([]byte, 64)
		n, _ := in.Image.Body.Read(buf)
		m.lastImageBytes = string(buf[:n])
	}
	return m.user, m.token, m.err
}

func (m *mockAuth) Login(_ context.Context, username, password string) (*models.User, string, error) {
	m.lastUsername = username
	m.lastPassword = password
	return m.user, m.token, m.err
}

func (m *mockAuth) Authorize(_ context.Context, header string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastHeader = header
	m.authorizeCalls++
	if header != "Bearer valid" {
		return nil, apperr.ErrUnauthenticated
	}
	if m.authorizeLimit > 0 && m.authorizeCalls > m.authorizeLimit {
		return nil, apperr.ErrUnauthenticated
	}
	return m.authUser, m.authErr
}

func (m *mockAuth) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authorizeCalls
}

type mockProfile struct {
	updated *models.User
	err     error
	lastIn  service.ProfileInput
	calls   int
}

func (m *mockProfile) Get(u *models.User) models.Profile {
	return models.Profile{Username: u.Username, DOB: u.DOB(), ImageRef: u.ImageRef, Destination: u.Destination}
}

func (m *mockProfile) Update(_ context.Context, _ *models.User, in service.ProfileInput) (*models.User, error) {
	m.calls++
	m.lastIn = in
	return m.updated, m.err
}

type mockExplorer struct {
	mu     sync.Mutex
	resp   []models.NearbyUser
	err    error
	calls  int
	lastID string
}

func (m *mockExplorer) Explore(_ context.Context, u *models.User) ([]models.NearbyUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastID = u.ID
	return m.resp, m.err
}

type mockCities struct {
	resp      []string
	lastQuery string
}

func (m *mockCities) Suggest(_ context.Context, query string) ([]string, error) {
	m.lastQuery = query
	return m.resp, nil
}

type mockActivity struct {
	resp     []models.AccountEvent
	err      error
	lastUser string
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockActivity) List(_ context.Context, userID string, f service.LogFilter) ([]models.AccountEvent, error) {
	m.lastUser = userID
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

type mockHealth struct {
	status models.StoreStatus
}

func (m *mockHealth) Run(context.Context, time.Duration) {}

func (m *mockHealth) Status(context.Context) models.StoreStatus { return m.status }

type mockLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (m *mockLimiter) Allow(_ context.Context, key string) (bool, error) {
	m.keys = append(m.keys, key)
	return m.allow, m.err
}

// ---- Shared Test Helpers ----

func testUser() *models.User {
	dob, _ := time.Parse(models.DateLayout, "1990-05-01")
	return &models.User{
		ID:          "u1",
		Username:    "alice",
		DateOfBirth: dob,
		Destination: "Paris",
		ImageRef:    "https://cdn.test/alice.png",
	}
}

func newTestRouter(s *service.Service, opts ...Option) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, opts...)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func withHeaders(req *http.Request, hdr http.Header) *http.Request {
	for k, vv := range hdr {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}
