package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Skufu/GlucoRisk/internal/accounts"
	"github.com/Skufu/GlucoRisk/internal/session"
)

type fakeStore struct {
	*accounts.MemoryStore
	err error
}

func (f fakeStore) Ping(ctx context.Context) error {
	return f.err
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return NewRouter(Options{
		Accounts:   accounts.NewMemoryStore(),
		Sessions:   session.NewManager([]byte("test-secret"), time.Hour),
		StaticRoot: ".",
	})
}

func doJSON(router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

const highRiskBody = `{
	"pregnancies": 2,
	"glucose": 150,
	"bloodPressure": 95,
	"skinThickness": 30,
	"insulin": 100,
	"bmi": 32,
	"age": 50,
	"immediateFamilyHistory": "yes",
	"extendedFamilyHistory": "no"
}`

func TestRouterHealthz(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, "GET", "/healthz", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestRouterReadyz(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ok := NewRouter(Options{Accounts: fakeStore{MemoryStore: accounts.NewMemoryStore()}})
	if w := doJSON(ok, "GET", "/readyz", "", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	down := NewRouter(Options{Accounts: fakeStore{MemoryStore: accounts.NewMemoryStore(), err: errors.New("connection refused")}})
	w := doJSON(down, "GET", "/readyz", "", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "connection refused") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	disabled := NewRouter(Options{})
	w = doJSON(disabled, "GET", "/readyz", "", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "disabled") {
		t.Fatalf("expected disabled db status, got %d %s", w.Code, w.Body.String())
	}
}

// Ensure limitBodySize middleware allows small payloads and blocks large ones.
func TestLimitBodySize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(limitBodySize(10))
	router.POST("/echo", func(c *gin.Context) {
		_, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "too large"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	t.Run("within limit", func(t *testing.T) {
		w := doJSON(router, "POST", "/echo", "12345", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("over limit", func(t *testing.T) {
		w := doJSON(router, "POST", "/echo", "01234567890", "")
		if w.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("expected 413, got %d", w.Code)
		}
	})
}

func TestPredictValidation(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, "POST", "/api/assessments/predict", `{
		"pregnancies": 1,
		"glucose": 30,
		"bloodPressure": 0,
		"skinThickness": 20,
		"insulin": 80,
		"bmi": 22,
		"age": 28
	}`, "")

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for validation failure, got %d", w.Code)
	}
	body := strings.ToLower(w.Body.String())
	if !strings.Contains(body, "validation_failed") || !strings.Contains(body, "blood pressure") {
		t.Fatalf("expected validation error response, got %s", w.Body.String())
	}

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Fields["glucose"] != "Glucose must be between 40 and 400 mg/dL" {
		t.Fatalf("unexpected glucose error: %q", resp.Fields["glucose"])
	}
	if len(resp.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %v", resp.Fields)
	}
}

func TestPredictRejectsUnknownFamilyHistory(t *testing.T) {
	router := newTestRouter(t)

	body := strings.Replace(highRiskBody, `"immediateFamilyHistory": "yes"`, `"immediateFamilyHistory": "maybe"`, 1)
	w := doJSON(router, "POST", "/api/assessments/predict", body, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPredictHighRisk(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, "POST", "/api/assessments/predict", highRiskBody, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		UserName    string   `json:"userName"`
		IsDiabetic  bool     `json:"isDiabetic"`
		Probability float64  `json:"probability"`
		RiskLevel   string   `json:"riskLevel"`
		RiskFactors []string `json:"riskFactors"`
		Feedback    []string `json:"feedback"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.IsDiabetic || resp.RiskLevel != "Very High" || resp.Probability != 99 {
		t.Fatalf("expected very high risk, got %+v", resp)
	}
	if len(resp.RiskFactors) != 5 || resp.RiskFactors[0] != "High glucose levels" {
		t.Fatalf("unexpected risk factors: %v", resp.RiskFactors)
	}
	if resp.UserName != "" {
		t.Fatalf("expected no user name without a session, got %q", resp.UserName)
	}
}

func TestPredictLowRiskHasEmptyFactorList(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, "POST", "/api/assessments/predict", `{
		"pregnancies": 1, "glucose": 85, "bloodPressure": 70, "skinThickness": 20,
		"insulin": 80, "bmi": 22, "age": 28
	}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"riskFactors":[]`) {
		t.Fatalf("expected empty risk factor list, got %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"riskLevel":"Low"`) {
		t.Fatalf("expected low risk, got %s", w.Body.String())
	}
}

func TestValidateEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, "POST", "/api/assessments/validate", `{"glucose": 500}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Valid  bool              `json:"valid"`
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Valid {
		t.Fatal("expected invalid profile")
	}
	if _, ok := resp.Errors["glucose"]; !ok {
		t.Fatalf("expected glucose error, got %v", resp.Errors)
	}
	if _, ok := resp.Errors["pregnancies"]; ok {
		t.Fatalf("pregnancies=0 is in range, got %v", resp.Errors)
	}
}

func TestAccountFlow(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, "POST", "/api/accounts", `{"name":"Ada","email":"Ada@Example.com"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(router, "POST", "/api/accounts", `{"name":"Ada Again","email":"ada@example.com"}`, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}

	w = doJSON(router, "POST", "/api/sessions", `{"email":"nobody@example.com"}`, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	w = doJSON(router, "POST", "/api/sessions", `{"email":"ada@example.com"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var signIn struct {
		Name  string `json:"name"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &signIn); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if signIn.Name != "Ada" || signIn.Token == "" {
		t.Fatalf("unexpected sign in response: %+v", signIn)
	}

	w = doJSON(router, "GET", "/api/me", "", signIn.Token)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"name":"Ada"`) {
		t.Fatalf("unexpected /api/me response: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(router, "POST", "/api/assessments/predict", highRiskBody, signIn.Token)
	if !strings.Contains(w.Body.String(), `"userName":"Ada"`) {
		t.Fatalf("expected greeting name in prediction, got %s", w.Body.String())
	}
}

func TestMeRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	if w := doJSON(router, "GET", "/api/me", "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if w := doJSON(router, "GET", "/api/me", "", "garbage"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestSignUpValidation(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, "POST", "/api/accounts", `{"name":"","email":"not-an-email"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
