// Package integration runs the HTTP API end to end against PostgreSQL and MySQL. Tests are
// skipped when the test databases are not reachable.
package integration

import (
	"bytes"
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/vetdesk/internal/app"
	assignmentDTO "github.com/allisson/vetdesk/internal/assignment/http/dto"
	authDomain "github.com/allisson/vetdesk/internal/auth/domain"
	authDTO "github.com/allisson/vetdesk/internal/auth/http/dto"
	"github.com/allisson/vetdesk/internal/config"
	permissionDTO "github.com/allisson/vetdesk/internal/permission/http/dto"
	supervisionDTO "github.com/allisson/vetdesk/internal/supervision/http/dto"
	"github.com/allisson/vetdesk/internal/testutil"
)

type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
	rootID    uuid.UUID
	rootToken string
	dbDriver  string
}

// makeRequest performs an HTTP request with an optional bearer token.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body any,
	token string,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	//nolint:gosec // controlled test environment with localhost URLs
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	_ = resp.Body.Close()

	return resp, respBody
}

// issueToken exchanges moderator credentials for a bearer token over HTTP.
func (ctx *integrationTestContext) issueToken(t *testing.T, moderatorID, secret string) string {
	t.Helper()

	resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/token", authDTO.IssueTokenRequest{
		ModeratorID: moderatorID,
		Secret:      secret,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var out authDTO.IssueTokenResponse
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := testutil.SetupDB(t, dbDriver)

	signingKey := make([]byte, 32)
	_, err := rand.Read(signingKey)
	require.NoError(t, err)

	cfg := &config.Config{
		DBDriver:             dbDriver,
		DBConnectionString:   testutil.DSN(dbDriver),
		DBMaxOpenConnections: 10,
		DBMaxIdleConnections: 5,
		DBConnMaxLifetime:    time.Hour,
		ServerHost:           "localhost",
		ServerPort:           8080,
		LogLevel:             "error",
		AuthTokenExpiration:  time.Hour,
		LockoutMaxAttempts:   5,
		LockoutDuration:      time.Minute,
		AuditSigningKey:      base64.StdEncoding.EncodeToString(signingKey),
		OutboxInterval:       time.Second,
		OutboxBatchSize:      10,
		OutboxMaxRetries:     3,
	}

	container := app.NewContainer(cfg)

	moderatorUseCase, err := container.ModeratorUseCase()
	require.NoError(t, err)

	root, err := moderatorUseCase.Create(context.Background(), &authDomain.CreateModeratorInput{
		Name:   "Integration Root",
		IsRoot: true,
	})
	require.NoError(t, err, "failed to create root moderator")

	tokenUseCase, err := container.TokenUseCase()
	require.NoError(t, err)

	token, err := tokenUseCase.Issue(context.Background(), &authDomain.IssueTokenInput{
		ModeratorID: root.ID,
		Secret:      root.PlainSecret,
	})
	require.NoError(t, err, "failed to issue root token")

	httpSrv, err := container.HTTPServer()
	require.NoError(t, err)

	testServer := httptest.NewServer(httpSrv.GetHandler())

	t.Cleanup(func() {
		testServer.Close()
		_ = container.Shutdown(context.Background())
		testutil.TeardownDB(t, db)
	})

	return &integrationTestContext{
		container: container,
		db:        db,
		server:    testServer,
		rootID:    root.ID,
		rootToken: token.PlainToken,
		dbDriver:  dbDriver,
	}
}

func TestIntegration(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql"} {
		t.Run(driver, func(t *testing.T) {
			testutil.SkipIfNoDB(t, driver)
			ctx := setupIntegrationTest(t, driver)

			var (
				moderatorID     string
				moderatorSecret string
				moderatorToken  string
				requestID       string
				farmID          string
			)

			t.Run("01_Health", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/ready", nil, "")
				assert.Equal(t, http.StatusOK, resp.StatusCode)
			})

			t.Run("02_CreateModerator", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/moderators", authDTO.CreateModeratorRequest{
					Name: "Field Desk",
				}, ctx.rootToken)
				require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

				var out authDTO.CreateModeratorResponse
				require.NoError(t, json.Unmarshal(body, &out))
				moderatorID = out.ID
				moderatorSecret = out.Secret
				moderatorToken = ctx.issueToken(t, moderatorID, moderatorSecret)
			})

			t.Run("03_NoGrantIsForbidden", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/v1/supervision-requests", nil, moderatorToken)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)

				resp, _ = ctx.makeRequest(t, http.MethodGet, "/v1/moderators", nil, moderatorToken)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			})

			t.Run("04_ReplaceGrant", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPut, "/v1/moderators/"+moderatorID+"/grant",
					permissionDTO.ReplaceGrantRequest{
						Capabilities: map[string]bool{"field_assignment": true},
						SubOptions:   map[string]bool{"supervision_requests": true},
					}, ctx.rootToken)
				require.Equal(t, http.StatusNoContent, resp.StatusCode, string(body))

				resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/me/permissions", nil, moderatorToken)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var out permissionDTO.EffectivePermissionsResponse
				require.NoError(t, json.Unmarshal(body, &out))
				assert.Contains(t, out.Permissions, "field_assignment")
				assert.Contains(t, out.Permissions, "supervision_requests")
				assert.NotContains(t, out.Permissions, "vet_assignment")
			})

			t.Run("05_UnknownGrantKeyRejected", func(t *testing.T) {
				enabled := true
				resp, _ := ctx.makeRequest(t, http.MethodPut,
					"/v1/moderators/"+moderatorID+"/grant/capabilities/flying",
					permissionDTO.SetEnabledRequest{Enabled: &enabled}, ctx.rootToken)
				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			})

			t.Run("06_SubmitRequest", func(t *testing.T) {
				testutil.CreateTestCandidate(t, ctx.db, ctx.dbDriver, "user-42", "supervisor", "Omar", "+201000000042")

				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/supervision-requests",
					supervisionDTO.SubmitRequest{
						Applicant: supervisionDTO.ApplicantRequest{
							UserID: "user-42",
							Name:   "Omar",
							Email:  "omar@example.com",
							Phone:  "+201000000042",
						},
						TargetFarm: supervisionDTO.TargetFarmRequest{
							Name:     "Nile Poultry",
							Location: "Giza",
						},
						RequestedRole: "supervision",
					}, "")
				require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

				var out supervisionDTO.SubmitResponse
				require.NoError(t, json.Unmarshal(body, &out))
				assert.Equal(t, "pending", out.Status)
				requestID = out.ID
			})

			t.Run("07_ApproveRequest", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost,
					"/v1/supervision-requests/"+requestID+"/approve", nil, moderatorToken)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var out supervisionDTO.RequestResponse
				require.NoError(t, json.Unmarshal(body, &out))
				assert.Equal(t, "approved", out.Status)
				assert.Equal(t, moderatorID, out.DecidedBy)
				require.NotEmpty(t, out.AssignedFarmID)
				farmID = out.AssignedFarmID

				resp, _ = ctx.makeRequest(t, http.MethodPost,
					"/v1/supervision-requests/"+requestID+"/reject", nil, moderatorToken)
				assert.Equal(t, http.StatusConflict, resp.StatusCode)
			})

			t.Run("08_AssignmentReflectsApproval", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/farms/"+farmID+"/assignment", nil, moderatorToken)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var out assignmentDTO.AssignmentResponse
				require.NoError(t, json.Unmarshal(body, &out))
				require.NotNil(t, out.Supervisor)
				assert.Equal(t, "user-42", out.Supervisor.ID)
				assert.Nil(t, out.Vet)
			})

			t.Run("09_VetAssignmentNeedsSubOption", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodPut, "/v1/farms/"+farmID+"/assignment/vet",
					assignmentDTO.AssignSlotRequest{CandidateID: "vet-1", Name: "Dr. Hala", Phone: "+201000000001"},
					moderatorToken)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			})

			t.Run("10_AuditLogsAreSigned", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/audit-logs", nil, ctx.rootToken)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var out authDTO.ListAuditLogsResponse
				require.NoError(t, json.Unmarshal(body, &out))
				require.NotEmpty(t, out.Data)
				for _, entry := range out.Data {
					assert.True(t, entry.Signed)
				}

				auditLogUseCase, err := ctx.container.AuditLogUseCase()
				require.NoError(t, err)

				report, err := auditLogUseCase.VerifyBatch(
					context.Background(),
					time.Now().Add(-time.Hour),
					time.Now().Add(time.Hour),
				)
				require.NoError(t, err)
				assert.Positive(t, report.TotalChecked)
				assert.Equal(t, report.TotalChecked, report.ValidCount)
				assert.Zero(t, report.InvalidCount)
			})

			t.Run("11_OutboxRecordsEvents", func(t *testing.T) {
				assert.Positive(t, testutil.CountRows(t, ctx.db, "outbox_events"))
			})

			t.Run("12_DeactivatedModeratorLosesAccess", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodDelete, "/v1/moderators/"+moderatorID, nil, ctx.rootToken)
				require.Equal(t, http.StatusNoContent, resp.StatusCode)

				resp, _ = ctx.makeRequest(t, http.MethodGet, "/v1/me/permissions", nil, moderatorToken)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})
		})
	}
}
