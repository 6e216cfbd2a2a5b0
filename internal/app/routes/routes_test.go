package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/csecl/interviewhub/internal/app/controllers"
	"github.com/csecl/interviewhub/internal/app/models/dto"
	"github.com/csecl/interviewhub/internal/app/repositories/inmemory"
	"github.com/csecl/interviewhub/internal/app/services"
	"github.com/csecl/interviewhub/internal/config"
	"github.com/csecl/interviewhub/internal/middleware"
	"github.com/csecl/interviewhub/internal/pkg/resultgate"
	"github.com/csecl/interviewhub/internal/pkg/validation"
	"github.com/csecl/interviewhub/internal/pkg/websocket"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	Data       json.RawMessage     `json:"data"`
	Pagination *dto.PaginationInfo `json:"pagination"`
	Error      *dto.ErrorDetail    `json:"error"`
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.RegisterBindingValidators()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTokenExpiration = "1h"
	cfg.JWT.Issuer = "interviewhub"
	cfg.Admin.Username = "admin"
	cfg.Admin.Password = "s3cret"
	cfg.Results.PassThreshold = 85
	cfg.Results.MaxScore = 100

	logger := zerolog.Nop()
	hub := websocket.NewHub(logger)
	go hub.Run()
	t.Cleanup(hub.Stop)

	svcs, err := services.NewServices(cfg, inmemory.NewRepositories(), resultgate.NewMemoryGate(), hub, logger)
	require.NoError(t, err)

	router := gin.New()
	SetupRouter(router, Controllers{
		Forum:         controllers.NewForumController(svcs.Engagement, logger),
		Notifications: controllers.NewNotificationController(svcs.Notifications, logger),
		Applications:  controllers.NewApplicationController(svcs.Applications, svcs.Results, logger),
		Admin:         controllers.NewAdminController(svcs.AdminAuth, svcs.Results, svcs.Notifications, logger),
		WebSocket:     websocket.NewHandler(hub, logger),
	}, middleware.NewAuthMiddleware(svcs.AdminAuth), Options{IssueUserIDs: true})

	return &testAPI{t: t, router: router}
}

func (a *testAPI) do(method, path, userID string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") != "" && bytes.HasPrefix(rec.Body.Bytes(), []byte("{")) {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (a *testAPI) login() {
	a.t.Helper()
	rec, env := a.do(http.MethodPost, "/api/v1/admin/auth/login", "", dto.LoginRequest{Username: "admin", Password: "s3cret"})
	require.Equal(a.t, http.StatusOK, rec.Code)

	var resp dto.LoginResponse
	require.NoError(a.t, json.Unmarshal(env.Data, &resp))
	require.NotEmpty(a.t, resp.AccessToken)
	a.token = resp.AccessToken
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func TestForum_PostCommentLikeAndFeed(t *testing.T) {
	api := newTestAPI(t)

	// anonymous authors receive an identity
	rec, env := api.do(http.MethodPost, "/api/v1/posts", "", dto.CreatePostRequest{Title: "Open day", Content: "When?"})
	require.Equal(t, http.StatusCreated, rec.Code)
	author := rec.Header().Get(middleware.UserIDHeader)
	require.NotEmpty(t, author)
	post := decode[dto.PostResponse](t, env)
	assert.Equal(t, author, post.UserID)

	rec, _ = api.do(http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/comments", post.ID), "reader",
		dto.CreateCommentRequest{Content: "Friday 3pm"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = api.do(http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", post.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[dto.PostResponse](t, env).CommentCount)

	rec, env = api.do(http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/like", post.ID), "reader", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[dto.ToggleLikeResponse](t, env).Liked)

	rec, env = api.do(http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/like", post.ID), "reader", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[dto.ToggleLikeResponse](t, env).Liked)

	// one reply plus one like notification
	rec, env = api.do(http.MethodGet, "/api/v1/notifications/unread-count", author, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2), decode[dto.UnreadCountResponse](t, env).UnreadCount)

	rec, env = api.do(http.MethodGet, "/api/v1/notifications?unreadOnly=true&pageSize=1", author, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, int64(2), env.Pagination.TotalItems)
	assert.Equal(t, 2, env.Pagination.TotalPages)
	feed := decode[[]dto.NotificationResponse](t, env)
	require.Len(t, feed, 1)

	rec, _ = api.do(http.MethodPost, fmt.Sprintf("/api/v1/notifications/%d/read", feed[0].ID), "reader", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = api.do(http.MethodPost, "/api/v1/notifications/read-all", author, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2), decode[dto.MarkAllReadResponse](t, env).Updated)

	_, env = api.do(http.MethodGet, "/api/v1/notifications/unread-count", author, nil)
	assert.Equal(t, int64(0), decode[dto.UnreadCountResponse](t, env).UnreadCount)
}

func TestForum_IdentityAndParams(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(http.MethodPost, "/api/v1/posts/1/like", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrorCodeMissingIdentity, env.Error.Code)

	rec, _ = api.do(http.MethodPost, "/api/v1/notifications/read-all", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env = api.do(http.MethodGet, "/api/v1/posts/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrorCodeBadRequest, env.Error.Code)

	rec, _ = api.do(http.MethodGet, "/api/v1/posts/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = api.do(http.MethodPost, "/api/v1/comments/999/like", "someone", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = api.do(http.MethodPost, "/api/v1/posts", "someone", map[string]string{"content": "no title"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "title", env.Error.Field)

	// anonymous feed is empty rather than an error
	rec, env = api.do(http.MethodGet, "/api/v1/notifications", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]dto.NotificationResponse](t, env))
}

func TestApplications_SubmitScoreAndQuery(t *testing.T) {
	api := newTestAPI(t)

	math, english := 130, 120
	req := dto.ApplicationRequest{
		Name:            "Li Hua",
		Number:          "2025001",
		Grade:           "2025",
		PhoneNumber:     "13800000000",
		GaokaoMath:      &math,
		GaokaoEnglish:   &english,
		FollowDirection: "backend",
	}

	rec, env := api.do(http.MethodPost, "/api/v1/applications", "", req)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[struct {
		ID int64 `json:"id"`
	}](t, env).ID

	rec, _ = api.do(http.MethodPost, "/api/v1/applications", "", req)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = api.do(http.MethodPost, "/api/v1/applications/result", "", dto.ResultQueryRequest{Number: "2025001"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "not_released", decode[struct {
		Status string `json:"status"`
	}](t, env).Status)

	rec, _ = api.do(http.MethodPost, "/api/v1/applications/result", "", dto.ResultQueryRequest{Number: "2099999"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = api.do(http.MethodPost, "/api/v1/admin/results/release", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	api.login()

	rec, _ = api.do(http.MethodPost, fmt.Sprintf("/api/v1/admin/applications/%d/score", id), "", dto.ScoreRequest{Score: "101"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = api.do(http.MethodPost, fmt.Sprintf("/api/v1/admin/applications/%d/score", id), "", dto.ScoreRequest{Score: "85"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = api.do(http.MethodPost, "/api/v1/admin/results/release", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = api.do(http.MethodGet, "/api/v1/admin/results/status", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[dto.ResultGateResponse](t, env).Released)

	rec, env = api.do(http.MethodGet, "/api/v1/admin/applications/result?number=2025001", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "passed", decode[struct {
		Status string `json:"status"`
	}](t, env).Status)

	rec, env = api.do(http.MethodGet, "/api/v1/admin/applications?direction=BACK", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), env.Pagination.TotalItems)

	rec, _ = api.do(http.MethodGet, "/api/v1/admin/applications/export", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxMIME, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "applications_")
	assert.NotZero(t, rec.Body.Len())
}

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func TestAdmin_AnnouncementAndModeration(t *testing.T) {
	api := newTestAPI(t)

	rec, _ := api.do(http.MethodPost, "/api/v1/admin/auth/login", "", dto.LoginRequest{Username: "admin", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env := api.do(http.MethodPost, "/api/v1/posts", "author", dto.CreatePostRequest{Title: "t", Content: "c"})
	require.Equal(t, http.StatusCreated, rec.Code)
	post := decode[dto.PostResponse](t, env)

	api.login()

	rec, env = api.do(http.MethodPost, "/api/v1/admin/announcements", "", dto.CreateAnnouncementRequest{Message: "Interviews start Monday"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, decode[dto.AnnouncementResponse](t, env).Created)

	_, env = api.do(http.MethodGet, "/api/v1/notifications", "anyone", nil)
	feed := decode[[]dto.NotificationResponse](t, env)
	require.Len(t, feed, 1)
	assert.True(t, feed[0].IsBroadcast)

	rec, env = api.do(http.MethodPost, fmt.Sprintf("/api/v1/admin/forum/posts/%d/pin", post.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[dto.ModerationResponse](t, env).IsSticky)

	rec, _ = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/admin/forum/posts/%d", post.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = api.do(http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", post.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
