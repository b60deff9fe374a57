package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"travro/internal/apperr"
	"travro/internal/service"
)

func multipartBody(t *testing.T, fields map[string]string, fileField, filename, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if fileField != "" {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", `form-data; name="`+fileField+`"; filename="`+filename+`"`)
		hdr.Set("Content-Type", contentType)
		part, err := mw.CreatePart(hdr)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		_, _ = part.Write([]byte(content))
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func registerFields() map[string]string {
	return map[string]string{
		"username":    "alice",
		"password":    "s3cr3t",
		"dob":         "1990-05-01",
		"destination": "Paris",
	}
}

func TestRegisterHandler_Success(t *testing.T) {
	auth := &mockAuth{user: testUser(), token: "tok123"}
	r := newTestRouter(&service.Service{Authorization: auth})

	body, ct := multipartBody(t, registerFields(), "image", "me.png", "image/png", "PNGDATA")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/register", body)
	req.Header.Set("Content-Type", ct)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("register status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		User struct {
			ID       string `json:"id"`
			Username string `json:"username"`
			DOB      string `json:"dob"`
			Password string `json:"password_hash"`
		} `json:"user"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Token != "tok123" || out.User.ID != "u1" || out.User.DOB != "1990-05-01" || out.User.Password != "" {
		t.Fatalf("unexpected response: %+v", out)
	}

	in := auth.lastRegister
	if in.Username != "alice" || in.Password != "s3cr3t" || in.DOB != "1990-05-01" || in.Destination != "Paris" {
		t.Fatalf("form fields not forwarded: %+v", in)
	}
	if in.Image == nil || in.Image.Filename != "me.png" || in.Image.ContentType != "image/png" {
		t.Fatalf("image not forwarded: %+v", in.Image)
	}
	if auth.lastImageBytes != "PNGDATA" {
		t.Fatalf("image body = %q", auth.lastImageBytes)
	}
}

func TestRegisterHandler_MissingImageForwardsNil(t *testing.T) {
	auth := &mockAuth{err: apperr.ErrInvalidInput}
	r := newTestRouter(&service.Service{Authorization: auth})

	body, ct := multipartBody(t, registerFields(), "", "", "", "")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/register", body)
	req.Header.Set("Content-Type", ct)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if auth.lastRegister.Image != nil {
		t.Fatalf("expected nil image")
	}
}

func TestRegisterHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"taken", apperr.ErrUsernameTaken, http.StatusBadRequest, "username already taken"},
		{"upstream", apperr.ErrUpstream, http.StatusBadGateway, "upstream service unavailable"},
		{"internal", errors.New("disk on fire"), http.StatusInternalServerError, "something went wrong"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Authorization: &mockAuth{err: tc.err}})
			body, ct := multipartBody(t, registerFields(), "image", "me.png", "image/png", "x")
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/register", body)
			req.Header.Set("Content-Type", ct)
			r.ServeHTTP(w, req)

			if w.Code != tc.code {
				t.Fatalf("status=%d, want %d", w.Code, tc.code)
			}
			var out errorResponse
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Error != tc.msg {
				t.Fatalf("error=%q, want %q", out.Error, tc.msg)
			}
		})
	}
}

func TestRegisterHandler_ImageTooLarge(t *testing.T) {
	auth := &mockAuth{user: testUser()}
	r := newTestRouter(&service.Service{Authorization: auth}, WithMaxUploadBytes(4))

	body, ct := multipartBody(t, registerFields(), "image", "me.png", "image/png", "0123456789")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/register", body)
	req.Header.Set("Content-Type", ct)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", w.Code, w.Body.String())
	}
	if auth.lastRegister.Username != "" {
		t.Fatalf("service should not be called")
	}
}

func TestLoginHandler(t *testing.T) {
	auth := &mockAuth{user: testUser(), token: "tok123"}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString(`{"username":"alice","password":"p"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["token"] != "tok123" {
		t.Fatalf("expected token tok123, got %v", m["token"])
	}
	if auth.lastUsername != "alice" || auth.lastPassword != "p" {
		t.Fatalf("credentials not forwarded: %q/%q", auth.lastUsername, auth.lastPassword)
	}

	// invalid body → 400
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString(`{"username":1}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", w.Code)
	}
}

func TestLoginHandler_InvalidCredentialsGeneric(t *testing.T) {
	auth := &mockAuth{err: apperr.ErrInvalidCredentials}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString(`{"username":"bob","password":"p"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w.Body.String() != `{"error":"invalid login credentials"}` {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestLoginHandler_RateLimited(t *testing.T) {
	auth := &mockAuth{user: testUser(), token: "t"}
	lim := &mockLimiter{allow: false}
	r := newTestRouter(&service.Service{Authorization: auth}, WithLoginLimiter(lim))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString(`{"username":"alice","password":"p"}`))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.7:5555"
	r.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if auth.lastUsername != "" {
		t.Fatalf("login must not run when throttled")
	}
	if len(lim.keys) != 1 || lim.keys[0] != "203.0.113.7" {
		t.Fatalf("limiter keyed by %v", lim.keys)
	}
}

func TestLoginHandler_LimiterErrorFailsOpen(t *testing.T) {
	auth := &mockAuth{user: testUser(), token: "t"}
	lim := &mockLimiter{err: errors.New("redis down")}
	r := newTestRouter(&service.Service{Authorization: auth}, WithLoginLimiter(lim))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString(`{"username":"alice","password":"p"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
