package test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"recruiting-portal/config"
	"recruiting-portal/internal/global/database"
	"recruiting-portal/internal/global/httpclient"
	"recruiting-portal/internal/global/jwt"
	"recruiting-portal/internal/global/storage"
	"recruiting-portal/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const ReportReceiver = "hiring@company.com"

// Env is a complete backend for one test: in-memory database, Redis, a fake
// email provider and a bucket that signs offline.
type Env struct {
	DB    *gorm.DB
	Redis *miniredis.Miniredis
	Mail  *Mailbox
}

// Setup installs a fresh Env into the global handles used by handlers.
func Setup(t *testing.T) *Env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mail := newMailbox(t)
	config.Set(&config.Config{
		Prefix: "api",
		AppURL: "http://portal.test",
		Mode:   config.Mode(gin.TestMode),
		JWT:    config.JWT{AccessSecret: "test-secret", AccessExpire: 3600},
		Email: config.Email{
			APIKey:         "re_test",
			BaseURL:        mail.server.URL,
			From:           "careers@company.com",
			ReportReceiver: ReportReceiver,
		},
		S3: config.S3{
			Endpoint:        "http://127.0.0.1:9000",
			Bucket:          "resumes-test",
			Region:          "us-east-1",
			AccessKey:       "test",
			SecretAccessKey: "test",
			Prefix:          "resumes",
			UsePathStyle:    true,
		},
		Log: config.Log{Level: "error"},
	})

	db, err := database.Open(sqlite.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))
	database.DB = db

	mr := miniredis.RunT(t)
	database.RDB = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	httpclient.Init()

	bucket, err := storage.New(context.Background(), config.Get().S3)
	require.NoError(t, err)
	storage.Set(bucket)

	return &Env{DB: db, Redis: mr, Mail: mail}
}

// Module is the part of module.Module an Engine needs.
type Module interface {
	Init()
	InitRouter(r *gin.RouterGroup)
}

// Engine initialises modules and mounts them under /api the way the server
// does.
func (e *Env) Engine(modules ...Module) *gin.Engine {
	r := gin.New()
	group := r.Group("/api")
	for _, m := range modules {
		m.Init()
		m.InitRouter(group)
	}
	return r
}

// CreateUser provisions an identity and a profile with role and returns a
// bearer token for it.
func (e *Env) CreateUser(t *testing.T, email string, role model.Role) (*model.Profile, string) {
	t.Helper()
	identity := &model.Identity{Email: email}
	require.NoError(t, e.DB.Create(identity).Error)
	profile := &model.Profile{IdentityID: identity.ID, Role: role, Identity: identity}
	require.NoError(t, e.DB.Omit("Identity").Create(profile).Error)
	token, err := jwt.CreateToken(identity.ID)
	require.NoError(t, err)
	return profile, token
}

// CreateEvent inserts an event directly.
func (e *Env) CreateEvent(t *testing.T, name string, active bool) *model.RecruitingEvent {
	t.Helper()
	ev := &model.RecruitingEvent{Name: name, IsActive: active}
	require.NoError(t, e.DB.Create(ev).Error)
	return ev
}

// Email is one message accepted by the fake provider.
type Email struct {
	Authorization string
	From          string   `json:"from"`
	To            []string `json:"to"`
	Subject       string   `json:"subject"`
	HTML          string   `json:"html"`
	Attachments   []struct {
		Filename string `json:"filename"`
		Content  string `json:"content"`
	} `json:"attachments"`
}

// Mailbox is an in-process stand-in for the email provider API.
type Mailbox struct {
	server *httptest.Server

	mu     sync.Mutex
	sent   []Email
	failed bool
}

func newMailbox(t *testing.T) *Mailbox {
	m := &Mailbox{}
	m.server = httptest.NewServer(http.HandlerFunc(m.handle))
	t.Cleanup(m.server.Close)
	return m
}

func (m *Mailbox) handle(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost || r.URL.Path != "/emails" {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"name":"not_found","message":"route not found"}`)
		return
	}
	if m.failed {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"name":"application_error","message":"provider unavailable"}`)
		return
	}

	var email Email
	if err := json.NewDecoder(r.Body).Decode(&email); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"name":"validation_error","message":"bad body"}`)
		return
	}
	email.Authorization = r.Header.Get("Authorization")
	m.sent = append(m.sent, email)
	_, _ = io.WriteString(w, `{"id":"email-`+uuid.NewString()+`"}`)
}

// Fail makes every following send return a provider error.
func (m *Mailbox) Fail(failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed = failed
}

func (m *Mailbox) Sent() []Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Email(nil), m.sent...)
}
