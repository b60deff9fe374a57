package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"travro/internal/apperr"
	"travro/internal/blob"
	"travro/internal/geo"
	"travro/internal/models"
)

// fakeUsers is an in-memory repository.Users keyed by id.
type fakeUsers struct {
	mu    sync.Mutex
	order []string
	byID  map[string]models.User

	createErr error
	getErr    error
	listErr   error
	updateErr error
}

func newFakeUsers(users ...models.User) *fakeUsers {
	f := &fakeUsers{byID: map[string]models.User{}}
	for _, u := range users {
		f.order = append(f.order, u.ID)
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.Username == u.Username {
			return apperr.ErrUsernameTaken
		}
	}
	f.order = append(f.order, u.ID)
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) ListExcept(_ context.Context, id string) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.User
	for _, uid := range f.order {
		if uid != id {
			out = append(out, f.byID[uid])
		}
	}
	return out, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	if upd.Destination != nil {
		u.Destination = *upd.Destination
	}
	if upd.ImageRef != nil {
		u.ImageRef = *upd.ImageRef
	}
	f.byID[id] = u
	return &u, nil
}

// fakeEventRepo records appended events and serves List from a fixed slice.
type fakeEventRepo struct {
	mu        sync.Mutex
	appended  []models.AccountEvent
	appendErr error

	gotUser string
	gotFrom time.Time
	gotTo   time.Time
	gotType string
	events  []models.AccountEvent
	err     error
	calls   int
}

func (f *fakeEventRepo) Append(_ context.Context, e models.AccountEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, e)
	return nil
}

func (f *fakeEventRepo) List(_ context.Context, userID string, from, to time.Time, typ string) ([]models.AccountEvent, error) {
	f.calls++
	f.gotUser = userID
	f.gotFrom = from
	f.gotTo = to
	f.gotType = typ
	return f.events, f.err
}

func (f *fakeEventRepo) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.appended))
	for _, e := range f.appended {
		out = append(out, e.Type)
	}
	return out
}

// fakeBlobs hands out sequential URLs and remembers deletions.
type fakeBlobs struct {
	mu        sync.Mutex
	uploads   []string
	deleted   []string
	uploadErr error
}

func (f *fakeBlobs) Upload(_ context.Context, owner string, up blob.Upload) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	if up.Body != nil {
		_, _ = io.Copy(io.Discard, up.Body)
	}
	url := "https://cdn.test/" + owner + "/" + up.Filename
	f.uploads = append(f.uploads, url)
	return url, nil
}

func (f *fakeBlobs) Delete(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
	return nil
}

// failingLookup resolves nothing and reports a backend failure.
type failingLookup struct{}

func (failingLookup) Resolve(context.Context, string) (geo.Coordinates, error) {
	return geo.Coordinates{}, errors.New("geocoder down")
}

func (failingLookup) Suggest(context.Context, string, int) ([]string, error) {
	return nil, errors.New("geocoder down")
}

func testTable() *geo.Table {
	return geo.NewTable([]geo.City{
		{Name: "Paris", Country: "France", Lat: 48.8566, Lng: 2.3522},
		{Name: "Brussels", Country: "Belgium", Lat: 50.8503, Lng: 4.3517},
		{Name: "London", Country: "United Kingdom", Lat: 51.5074, Lng: -0.1278},
		{Name: "Tokyo", Country: "Japan", Lat: 35.6762, Lng: 139.6503},
		{Name: "Lyon", Country: "France", Lat: 45.7640, Lng: 4.8357},
	})
}

func pngUpload(name string) *blob.Upload {
	return &blob.Upload{Filename: name, ContentType: "image/png", Size: 3, Body: strings.NewReader("png")}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func mustDate(s string) time.Time {
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}
