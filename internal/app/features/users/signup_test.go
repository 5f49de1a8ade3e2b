package users

import (
	"net/http"
	"testing"
	"time"

	"github.com/inspecthub/inspecthub/internal/app/system/auth"
	"github.com/inspecthub/inspecthub/internal/app/system/indexes"
	"github.com/inspecthub/inspecthub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	tokens, err := auth.NewTokenIssuer("test-secret-0123456789", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer failed: %v", err)
	}
	sm, err := auth.NewSessionManager("test-session-key-0123456789abcdef", "test-session", "", false, tokens, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return NewHandler(db, sm, tokens, zap.NewNop()), db
}

func TestHandleSignup(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	req := testutil.NewJSONRequest(http.MethodPost, "/users/signup",
		`{"name":"Ada Lovelace","email":"ada@example.com","password":"correct horse"}`)
	h.HandleSignup(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertContains(t, "Account created successfully!")
	rec.AssertContains(t, `"token"`)
	if len(rec.Result().Cookies()) == 0 {
		t.Error("signup should set a session cookie")
	}
}

func TestHandleSignup_Validation(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	req := testutil.NewJSONRequest(http.MethodPost, "/users/signup",
		`{"name":"Ada","email":"","password":"pw"}`)
	h.HandleSignup(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Name, email, and password are required")
}

func TestHandleSignup_DuplicateEmail(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `{"name":"Ada","email":"ada@example.com","password":"pw"}`
	rec := testutil.NewRecorder()
	h.HandleSignup(rec.ResponseRecorder, testutil.NewJSONRequest(http.MethodPost, "/users/signup", body))
	rec.AssertStatus(t, http.StatusCreated)

	rec = testutil.NewRecorder()
	h.HandleSignup(rec.ResponseRecorder, testutil.NewJSONRequest(http.MethodPost, "/users/signup", body))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "User already exists")
}

func TestHandleLogin(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.HandleSignup(rec.ResponseRecorder, testutil.NewJSONRequest(http.MethodPost, "/users/signup",
		`{"name":"Ada","email":"ada@example.com","password":"correct horse"}`))
	rec.AssertStatus(t, http.StatusCreated)

	// Right credentials
	rec = testutil.NewRecorder()
	h.HandleLogin(rec.ResponseRecorder, testutil.NewJSONRequest(http.MethodPost, "/users/login",
		`{"email":"ada@example.com","password":"correct horse"}`))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Welcome back, Ada!")

	// Wrong password and unknown email produce the same message.
	for _, body := range []string{
		`{"email":"ada@example.com","password":"wrong"}`,
		`{"email":"nobody@example.com","password":"correct horse"}`,
	} {
		rec = testutil.NewRecorder()
		h.HandleLogin(rec.ResponseRecorder, testutil.NewJSONRequest(http.MethodPost, "/users/login", body))
		rec.AssertStatus(t, http.StatusUnauthorized)
		rec.AssertContains(t, "Invalid email or password")
	}
}
