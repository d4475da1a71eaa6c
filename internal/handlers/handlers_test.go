package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anonto42/introhub/backend/internal/apperrors"
	"github.com/anonto42/introhub/backend/internal/cache"
	"github.com/anonto42/introhub/backend/internal/middleware"
	"github.com/anonto42/introhub/backend/internal/mocks"
	"github.com/anonto42/introhub/backend/internal/models"
	"github.com/anonto42/introhub/backend/internal/repositories"
	"github.com/anonto42/introhub/backend/internal/services"
	"github.com/anonto42/introhub/backend/internal/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testServer struct {
	e             *echo.Echo
	intros        *mocks.MockIntroductionRepository
	notifications *mocks.MockNotificationRepository
	companies     *mocks.MockCompanyRepository
	members       *mocks.MockCompanyMemberRepository
	users         *mocks.MockUserRepository
	storage       *mocks.MockStorage
}

var testUser = &models.User{ID: "u1", Email: "ada@example.com", FirstName: "Ada"}

func newTestServer(t *testing.T) *testServer {
	ctrl := gomock.NewController(t)
	s := &testServer{
		e:             echo.New(),
		intros:        mocks.NewMockIntroductionRepository(ctrl),
		notifications: mocks.NewMockNotificationRepository(ctrl),
		companies:     mocks.NewMockCompanyRepository(ctrl),
		members:       mocks.NewMockCompanyMemberRepository(ctrl),
		users:         mocks.NewMockUserRepository(ctrl),
		storage:       mocks.NewMockStorage(ctrl),
	}
	v := validators.NewValidator()
	s.e.Validator = v
	s.e.HTTPErrorHandler = ErrorHandler

	introSvc := services.NewIntroductionService(s.intros, s.companies, s.members, s.users, v)
	notifSvc := services.NewNotificationService(s.notifications, s.intros, s.users, v)
	companySvc := services.NewCompanyService(s.companies, s.members, s.storage,
		cache.New[[]models.Company](time.Minute, time.Hour), v)

	resolve := func(_ context.Context, token string) (*models.User, error) {
		if token == "good" {
			return testUser, nil
		}
		return nil, apperrors.Unauthorized("Invalid token")
	}

	api := s.e.Group("/api/v1")
	companyHandler := NewCompanyHandler(companySvc)
	companyHandler.RegisterPublicRoutes(api)

	protected := api.Group("", middleware.AuthMiddleware(resolve))
	NewIntroductionHandler(introSvc).RegisterIntroductionRoutes(protected)
	NewNotificationHandler(notifSvc).RegisterNotificationRoutes(protected)
	companyHandler.RegisterCompanyRoutes(protected)
	return s
}

func (s *testServer) do(method, target string, body io.Reader, contentType string) (*httptest.ResponseRecorder, Response) {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	req.Header.Set(echo.HeaderAuthorization, "Bearer good")
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var res Response
	_ = json.Unmarshal(rec.Body.Bytes(), &res)
	return rec, res
}

func (s *testServer) doJSON(method, target, body string) (*httptest.ResponseRecorder, Response) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	return s.do(method, target, r, echo.MIMEApplicationJSON)
}

func TestErrorHandlerEnvelope(t *testing.T) {
	e := echo.New()

	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"validation", apperrors.Validation(`"purpose" is required`), http.StatusBadRequest, `"purpose" is required`},
		{"not found", apperrors.NotFound("No introduction found"), http.StatusNotFound, "No introduction found"},
		{"conflict", apperrors.Conflict("Company already exists"), http.StatusConflict, "Company already exists"},
		{"plain error hides detail", errors.New("mongo: connection refused"), http.StatusInternalServerError, apperrors.SomethingWentWrong},
		{"echo error", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "Method Not Allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			ErrorHandler(tt.err, c)

			assert.Equal(t, tt.code, rec.Code)
			var res Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
			assert.False(t, res.Status)
			assert.Equal(t, tt.code, res.Code)
			assert.Equal(t, tt.message, res.Message)
		})
	}
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	s := newTestServer(t)
	rec, res := s.doJSON(http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.False(t, res.Status)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/introduction/list", nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing Authorization header")
}

func TestIntroductionRequestHandler(t *testing.T) {
	s := newTestServer(t)
	s.intros.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	rec, res := s.doJSON(http.MethodPost, "/api/v1/introduction/request", `{
		"introduction_type": "GENERAL",
		"purpose": "Hiring",
		"introduction_medium": "Email",
		"elaborate_purpose": "Looking for a backend lead",
		"value_offer": "Equity"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, res.Status)
	data := res.Data.(map[string]interface{})
	assert.NotEmpty(t, data["introduction_id"])
}

func TestIntroductionRequestHandlerValidation(t *testing.T) {
	s := newTestServer(t)

	rec, res := s.doJSON(http.MethodPost, "/api/v1/introduction/request", `{"introduction_type": "TARGET"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `"target_type" is required`, res.Message)

	rec, res = s.doJSON(http.MethodPost, "/api/v1/introduction/request", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request payload", res.Message)
}

func TestIntroductionListHandlerBindsQuery(t *testing.T) {
	s := newTestServer(t)
	s.intros.EXPECT().Find(gomock.Any(), repositories.IntroductionQuery{
		IndividualID: "u1",
		Status:       models.StatusRequested,
		Type:         models.IntroductionTarget,
		SortBy:       repositories.SortByCreatedAt,
	}).Return(nil, nil)

	rec, res := s.doJSON(http.MethodGet, "/api/v1/introduction/list?status=received&introduction_filter=company", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No introduction found", res.Message)
}

func TestIntroductionViewHandler(t *testing.T) {
	s := newTestServer(t)
	s.intros.EXPECT().GetByID(gomock.Any(), "i1").Return(&models.Introduction{
		IntroductionID: "i1", IndividualID: "u1", Status: models.StatusRequested,
	}, nil)

	rec, res := s.doJSON(http.MethodGet, "/api/v1/introduction/view/i1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := res.Data.(map[string]interface{})
	assert.Equal(t, "RECEIVED", data["status"])
}

func TestIntroductionUpdateHandler(t *testing.T) {
	s := newTestServer(t)
	s.intros.EXPECT().GetByID(gomock.Any(), "i1").Return(&models.Introduction{IntroductionID: "i1", Status: models.StatusRequested}, nil)
	s.intros.EXPECT().Update(gomock.Any(), "i1", gomock.Any()).Return(nil)

	rec, res := s.doJSON(http.MethodPut, "/api/v1/introduction/update", `{"introduction_id":"i1","status":"MATCHED"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, res.Status)
}

func TestNotificationHandlers(t *testing.T) {
	s := newTestServer(t)

	s.notifications.EXPECT().Find(gomock.Any(), repositories.NotificationQuery{ToUserID: "u1"}).Return([]models.Notification{
		{NotificationID: "n1", ToUserID: "u1", Type: models.NotificationGeneral},
	}, nil)
	s.notifications.EXPECT().CountUnread(gomock.Any(), "u1").Return(int64(1), nil)

	rec, res := s.doJSON(http.MethodGet, "/api/v1/notification/list?view_all=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := res.Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["unread_count"])

	s.notifications.EXPECT().MarkAllAsRead(gomock.Any(), "u1", gomock.Any()).Return(int64(1), nil)
	rec, res = s.doJSON(http.MethodPut, "/api/v1/notification/update", `{"mark_all_as_read": true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), res.Data.(map[string]interface{})["updated"])

	rec, res = s.doJSON(http.MethodPost, "/api/v1/notification/send", `{"to_user_id":"u2","notification_type":"INTRODUCTION_REQUEST"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `"object_id" is required`, res.Message)
}

func TestCompanyListIsPublic(t *testing.T) {
	s := newTestServer(t)
	s.companies.EXPECT().List(gomock.Any(), "acme").Return([]models.Company{{CompanyID: "c1", CompanyName: "Acme"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/company/list?search_text=acme", nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"company_name":"Acme"`)
}

func TestCompanyAddMultipart(t *testing.T) {
	s := newTestServer(t)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("company_name", "Acme"))
	require.NoError(t, w.WriteField("email", "hello@acme.test"))
	part, err := w.CreateFormFile("documents", "deck.pdf")
	require.NoError(t, err)
	_, _ = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, w.Close())

	s.companies.EXPECT().GetByName(gomock.Any(), "Acme").Return(nil, repositories.ErrNotFound)
	s.storage.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, key string, r io.Reader, _ string) (string, error) {
			content, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, "%PDF-1.4", string(content))
			return "https://cdn.test/" + key, nil
		})
	s.companies.EXPECT().CreateMany(gomock.Any(), gomock.Len(1)).Return(nil)

	rec, res := s.do(http.MethodPost, "/api/v1/company/add", &body, w.FormDataContentType())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, res.Status)
}

func TestCompanyMemberAddHandler(t *testing.T) {
	s := newTestServer(t)

	s.companies.EXPECT().GetByID(gomock.Any(), "c1").Return(&models.Company{CompanyID: "c1", Status: models.CompanyClaimed}, nil)
	s.members.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, m *models.CompanyMember) error {
			assert.Equal(t, "u1", m.UserID)
			return nil
		})

	rec, _ := s.doJSON(http.MethodPost, "/api/v1/company-member/add",
		`{"company_id":"c1","role":"CTO","about_me":"a","looking_for":"b"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	e := echo.New()

	up := NewHealthHandler(map[string]Pinger{
		"mongo":    PingFunc(func(context.Context) error { return nil }),
		"postgres": PingFunc(func(context.Context) error { return nil }),
	})
	rec := httptest.NewRecorder()
	require.NoError(t, up.HealthCheck(e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"healthy"`)

	down := NewHealthHandler(map[string]Pinger{
		"mongo": PingFunc(func(context.Context) error { return errors.New("no route") }),
	})
	rec = httptest.NewRecorder()
	require.NoError(t, down.HealthCheck(e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"mongo":"down"`)
}
