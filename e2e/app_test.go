package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// E2ETestSuite exercises the running server over HTTP.
type E2ETestSuite struct {
	suite.Suite
	client *http.Client
	token  string
}

// SetupSuite runs once before all tests
func (suite *E2ETestSuite) SetupSuite() {
	suite.client = &http.Client{Timeout: 5 * time.Second}
}

// SetupTest logs in as the seeded admin before each test
func (suite *E2ETestSuite) SetupTest() {
	suite.token = suite.login(adminEmail, adminPassword)
}

// call sends body as JSON and decodes the response into out when non-nil.
func (suite *E2ETestSuite) call(method, path, token string, body, out any) int {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, appURL+path, &buf)
	require.NoError(suite.T(), err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := suite.client.Do(req)
	require.NoError(suite.T(), err, "%s %s failed", method, path)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(suite.T(), err)
	if out != nil && len(raw) > 0 && resp.StatusCode < 300 {
		require.NoError(suite.T(), json.Unmarshal(raw, out), "body: %s", raw)
	}
	return resp.StatusCode
}

func (suite *E2ETestSuite) login(email, password string) string {
	var resp struct {
		Token string `json:"token"`
	}
	status := suite.call(http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": email, "password": password}, &resp)
	require.Equal(suite.T(), http.StatusOK, status, "login as %s", email)
	require.NotEmpty(suite.T(), resp.Token)
	return resp.Token
}

func (suite *E2ETestSuite) TestCompleteUserFlow() {
	email := fmt.Sprintf("flow-%d@example.com", time.Now().UnixNano())

	// Register and log in as a fresh user
	status := suite.call(http.MethodPost, "/api/auth/register", "",
		map[string]string{"name": "Flow", "email": email, "password": "flowpass"}, nil)
	require.Equal(suite.T(), http.StatusOK, status, "register")
	token := suite.login(email, "flowpass")

	var me struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	}
	require.Equal(suite.T(), http.StatusOK, suite.call(http.MethodGet, "/api/v1/users/me", token, nil, &me))
	require.Equal(suite.T(), email, me.Email)

	// Create Expense
	var expense struct {
		ID       int64       `json:"id"`
		UserID   int64       `json:"userId"`
		Amount   json.Number `json:"amount"`
		Category string      `json:"category"`
	}
	status = suite.call(http.MethodPost, "/api/v1/expenses", token, map[string]any{
		"amount":        json.Number("12.50"),
		"category":      "Food",
		"description":   "Lunch Test",
		"date":          time.Now().Format("2006-01-02"),
		"frequency":     "ONE_TIME",
		"paymentMethod": "CARD",
	}, &expense)
	require.Equal(suite.T(), http.StatusCreated, status, "create expense")
	require.Equal(suite.T(), me.ID, expense.UserID)
	require.Equal(suite.T(), json.Number("12.5"), expense.Amount)

	// Pay it
	status = suite.call(http.MethodPost, "/api/v1/payments", token, map[string]any{
		"expenseId":   expense.ID,
		"name":        "Lunch",
		"status":      "PAID",
		"paymentDate": time.Now().Format("2006-01-02"),
	}, nil)
	require.Equal(suite.T(), http.StatusCreated, status, "create payment")

	// Verify in List
	var expenses []struct {
		ID int64 `json:"id"`
	}
	status = suite.call(http.MethodGet, fmt.Sprintf("/api/v1/expenses?userId=%d", me.ID), token, nil, &expenses)
	require.Equal(suite.T(), http.StatusOK, status)
	require.Len(suite.T(), expenses, 1)
	require.Equal(suite.T(), expense.ID, expenses[0].ID)

	// Activities record registration and login
	var activities []struct {
		ActivityType string `json:"activityType"`
	}
	status = suite.call(http.MethodGet, "/api/activities/recent", token, nil, &activities)
	require.Equal(suite.T(), http.StatusOK, status)
	require.Len(suite.T(), activities, 2)
}

func (suite *E2ETestSuite) TestRejectsMissingToken() {
	status := suite.call(http.MethodGet, "/api/v1/expenses", "", nil, nil)
	require.Equal(suite.T(), http.StatusUnauthorized, status)
}

func (suite *E2ETestSuite) TestMetricsExposed() {
	resp, err := suite.client.Get(appURL + "/metrics")
	require.NoError(suite.T(), err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	require.Contains(suite.T(), string(body), "finance_tracker_http_requests_total")
}

// TestE2ESuite runs the e2e test suite
func TestE2ESuite(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}
