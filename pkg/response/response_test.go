package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cliptube/backend/pkg/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	handler(c)

	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v\n%s", err, w.Body.String())
	}
	return w, env
}

func TestOKEnvelope(t *testing.T) {
	w, env := perform(t, func(c *gin.Context) {
		OK(c, gin.H{"id": "123"}, "retrieved")
	})

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !env.Success || env.StatusCode != http.StatusOK || env.Message != "retrieved" {
		t.Errorf("envelope = %+v", env)
	}
	if env.Data == nil {
		t.Error("data should be present on success")
	}
}

func TestErrorEnvelopeNotFound(t *testing.T) {
	w, env := perform(t, func(c *gin.Context) {
		Error(c, apperror.ErrNotFoundOrForbidden)
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if env.Success || env.StatusCode != http.StatusNotFound {
		t.Errorf("envelope = %+v", env)
	}
	if env.Data != nil {
		t.Error("data should be null on failure")
	}
}

func TestErrorEnvelopeInternal(t *testing.T) {
	w, env := perform(t, func(c *gin.Context) {
		Error(c, assertAnError())
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if env.Success {
		t.Error("success should be false")
	}
}

func assertAnError() error {
	return apperror.New(0, "", errForTest{})
}

type errForTest struct{}

func (errForTest) Error() string { return "boom" }

func TestGetUserID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	if _, err := GetUserID(c); err == nil {
		t.Fatal("GetUserID without auth should fail")
	}

	want := uuid.Must(uuid.NewV7())
	c.Set("user_id", want.String())

	got, err := GetUserID(c)
	if err != nil {
		t.Fatalf("GetUserID() error = %v", err)
	}
	if got != want {
		t.Errorf("GetUserID() = %v, want %v", got, want)
	}

	c.Set("user_id", "not-a-uuid")
	if _, err := GetUserID(c); err == nil {
		t.Error("GetUserID with a malformed id should fail")
	}
}

func TestParseID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	if _, err := ParseID(c, "id"); err == nil {
		t.Fatal("ParseID should reject a malformed uuid")
	}

	want := uuid.Must(uuid.NewV7())
	c.Params = gin.Params{{Key: "id", Value: want.String()}}

	got, err := ParseID(c, "id")
	if err != nil {
		t.Fatalf("ParseID() error = %v", err)
	}
	if got != want {
		t.Errorf("ParseID() = %v, want %v", got, want)
	}
}
