package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/application"
	appauth "github.com/Aravinsamy/ai-fake-image-video-detector/internal/application/auth"
	appdet "github.com/Aravinsamy/ai-fake-image-video-detector/internal/application/detections"
	domain "github.com/Aravinsamy/ai-fake-image-video-detector/internal/domain/analysis"
	domusers "github.com/Aravinsamy/ai-fake-image-video-detector/internal/domain/users"
)

// in-memory users repo
type memUsers struct {
	mu     sync.Mutex
	nextID int64
	byMail map[string]*domusers.User
}

func newMemUsers() *memUsers {
	return &memUsers{nextID: 1, byMail: make(map[string]*domusers.User)}
}

func (m *memUsers) Create(ctx context.Context, name, email, passwordHash string) (*domusers.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byMail[email]; ok {
		return nil, domusers.ErrEmailTaken
	}
	u := &domusers.User{ID: m.nextID, Name: name, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	m.nextID++
	m.byMail[email] = u
	return u, nil
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (*domusers.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byMail[email], nil
}

// in-memory history repo
type memHistory struct {
	mu   sync.Mutex
	recs []*domain.HistoryRecord
}

func (m *memHistory) Save(ctx context.Context, rec *domain.HistoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ID = int64(len(m.recs) + 1)
	m.recs = append(m.recs, rec)
	return nil
}

func (m *memHistory) LatestByUser(ctx context.Context, userID int64, limit int) ([]*domain.HistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.HistoryRecord
	for i := len(m.recs) - 1; i >= 0 && len(out) < limit; i-- {
		if m.recs[i].UserID == userID {
			out = append(out, m.recs[i])
		}
	}
	return out, nil
}

type fakeDetector struct {
	result *domain.Result
	err    error
}

func (d *fakeDetector) Detect(ctx context.Context, fileURL string, kind domain.Kind) (*domain.Result, error) {
	if d.err != nil {
		return nil, d.err
	}
	r := *d.result
	return &r, nil
}

type discardArtifacts struct{}

func (discardArtifacts) Upload(ctx context.Context, localPath, key string) (string, error) {
	return "http://artifacts.local/" + key, nil
}

func (discardArtifacts) UploadAndCleanup(ctx context.Context, localPath, key string) (string, error) {
	os.Remove(localPath)
	return "http://artifacts.local/" + key, nil
}

func newTestServer(t *testing.T, det domain.Detector) (*httptest.Server, *memHistory) {
	t.Helper()

	users := newMemUsers()
	hash, _ := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.MinCost)
	users.Create(context.Background(), "Demo User", "demo@test.com", string(hash))

	hist := &memHistory{}
	authSvc := appauth.NewService(users)
	detectSvc := &appdet.Service{
		Repo:      hist,
		Detector:  det,
		Artifacts: discardArtifacts{},
		Clock:     application.SystemClock{},
	}

	srv := httptest.NewServer(NewRouter(authSvc, detectSvc, 8<<20, nil))
	t.Cleanup(srv.Close)
	return srv, hist
}

func postJSON(t *testing.T, client *http.Client, url string, body any) *http.Response {
	t.Helper()
	payload, _ := json.Marshal(body)
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var out struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return out.Error
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, &fakeDetector{result: &domain.Result{}})

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", resp.StatusCode)
	}
	var out struct {
		Status string `json:"status"`
	}
	json.NewDecoder(resp.Body).Decode(&out)
	if out.Status != "ok" {
		t.Errorf("status = %q, want ok", out.Status)
	}
}

func TestLogin(t *testing.T) {
	srv, _ := newTestServer(t, &fakeDetector{result: &domain.Result{}})
	client := srv.Client()

	t.Run("valid credentials", func(t *testing.T) {
		resp := postJSON(t, client, srv.URL+"/api/login", map[string]string{
			"email": "demo@test.com", "password": "demo123",
		})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		var out struct {
			User domusers.User `json:"user"`
		}
		json.NewDecoder(resp.Body).Decode(&out)
		if out.User.Name != "Demo User" {
			t.Errorf("user name = %q", out.User.Name)
		}
		found := false
		for _, ck := range resp.Cookies() {
			if ck.Name == "session_token" && ck.Value != "" {
				found = true
			}
		}
		if !found {
			t.Error("login did not set session cookie")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := postJSON(t, client, srv.URL+"/api/login", map[string]string{
			"email": "demo@test.com", "password": "nope",
		})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
		if msg := decodeError(t, resp); msg != "Invalid credentials" {
			t.Errorf("error = %q", msg)
		}
	})

	t.Run("missing credentials", func(t *testing.T) {
		resp := postJSON(t, client, srv.URL+"/api/login", map[string]string{"email": "demo@test.com"})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
		resp.Body.Close()
	})
}

func TestRegister(t *testing.T) {
	srv, _ := newTestServer(t, &fakeDetector{result: &domain.Result{}})
	client := srv.Client()

	t.Run("short password", func(t *testing.T) {
		resp := postJSON(t, client, srv.URL+"/api/register", map[string]string{
			"name": "A", "email": "a@b.c", "password": "12345",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
		if msg := decodeError(t, resp); !strings.Contains(msg, "6 characters") {
			t.Errorf("error = %q", msg)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		resp := postJSON(t, client, srv.URL+"/api/register", map[string]string{
			"name": "Dup", "email": "demo@test.com", "password": "secret1",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
		if msg := decodeError(t, resp); msg != "Email already exists" {
			t.Errorf("error = %q", msg)
		}
	})

	t.Run("success", func(t *testing.T) {
		resp := postJSON(t, client, srv.URL+"/api/register", map[string]string{
			"name": "New", "email": "new@test.com", "password": "secret1",
		})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d", resp.StatusCode)
		}
	})
}

func analyzeUpload(t *testing.T, client *http.Client, url, filename string, content []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(content)
	mw.Close()

	req, err := http.NewRequest(http.MethodPost, url+"/api/analyze", &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

func TestAnalyze(t *testing.T) {
	det := &fakeDetector{result: &domain.Result{
		IsAI:       false,
		Confidence: 73.2,
		Verdict:    domain.VerdictReal,
		Details:    "CNN-based image classification result",
		Indicators: []domain.Indicator{
			{Name: "Noise Analysis", Score: 38.6, Suspicious: false, Description: "Camera noise present"},
		},
	}}
	srv, hist := newTestServer(t, det)
	client := srv.Client()

	t.Run("happy path", func(t *testing.T) {
		resp := analyzeUpload(t, client, srv.URL, "photo.jpg", jpegHeader)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}

		var res domain.Result
		if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
			t.Fatal(err)
		}
		if res.FileName != "photo.jpg" {
			t.Errorf("fileName = %q", res.FileName)
		}
		if float64(res.Confidence) != 73.2 {
			t.Errorf("confidence = %v", res.Confidence)
		}
		if res.FileSize == "" || !strings.HasSuffix(res.FileSize, "KB") {
			t.Errorf("fileSize = %q, want humanized KB string", res.FileSize)
		}
		if res.Timestamp == "" {
			t.Error("timestamp missing")
		}

		// persisted trace for the demo user
		recs, _ := hist.LatestByUser(context.Background(), 1, 10)
		if len(recs) != 1 || recs[0].FileName != "photo.jpg" {
			t.Errorf("history not persisted: %+v", recs)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		resp := analyzeUpload(t, client, srv.URL, "doc.pdf", []byte("%PDF-1.4"))
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
		if msg := decodeError(t, resp); msg != "Unsupported file type" {
			t.Errorf("error = %q", msg)
		}
	})

	t.Run("missing file field", func(t *testing.T) {
		resp, err := client.Post(srv.URL+"/api/analyze", "multipart/form-data; boundary=x", strings.NewReader("--x--"))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
		if msg := decodeError(t, resp); msg != "No file uploaded" {
			t.Errorf("error = %q", msg)
		}
	})

	t.Run("detector failure", func(t *testing.T) {
		det.err = errors.New("model unavailable")
		defer func() { det.err = nil }()

		resp := analyzeUpload(t, client, srv.URL, "photo2.jpg", jpegHeader)
		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", resp.StatusCode)
		}
		resp.Body.Close()
	})
}

func TestHistoryEndpoint(t *testing.T) {
	srv, hist := newTestServer(t, &fakeDetector{result: &domain.Result{Verdict: domain.VerdictAI, IsAI: true}})

	hist.Save(context.Background(), &domain.HistoryRecord{UserID: 1, FileName: "a.jpg", Verdict: domain.VerdictAI, Timestamp: time.Now()})
	hist.Save(context.Background(), &domain.HistoryRecord{UserID: 2, FileName: "other.jpg", Verdict: domain.VerdictReal, Timestamp: time.Now()})

	resp, err := http.Get(srv.URL + "/api/history")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out struct {
		History []*domain.HistoryRecord `json:"history"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	// unauthenticated requests act as the demo user (id 1)
	if len(out.History) != 1 || out.History[0].FileName != "a.jpg" {
		t.Errorf("history = %+v, want only user 1 records", out.History)
	}
}
