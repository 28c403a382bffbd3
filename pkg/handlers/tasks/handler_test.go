package tasks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mission-control/core/pkg/catalog"
	"github.com/mission-control/core/pkg/logger"
	"github.com/mission-control/core/pkg/models/api"
	"github.com/mission-control/core/pkg/services"
	"github.com/mission-control/core/pkg/store"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	st, err := store.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "tasks.db"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cat, err := catalog.Default()
	require.NoError(t, err)

	return NewHandler(services.NewTaskService(st, cat, logger.Nop()), logger.Nop())
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/api/task", strings.NewReader(body)))
	return rec
}

func TestSubmitAndList(t *testing.T) {
	h := newTestHandler(t)

	rec := post(h.Task, `{"task":"Write the weekly report","priority":"high"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var created api.TaskSubmitResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.True(t, created.Success)
	assert.Equal(t, "Write the weekly report", created.Task.Task)
	assert.Equal(t, "pending", created.Task.Status)

	rec = httptest.NewRecorder()
	h.Task(rec, httptest.NewRequest(http.MethodGet, "/api/task", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var listed api.SubmittedTasksResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
	require.Len(t, listed.Tasks, 1)
	assert.Equal(t, created.Task.ID, listed.Tasks[0].ID)
}

func TestSubmit_Validation(t *testing.T) {
	h := newTestHandler(t)

	assert.Equal(t, http.StatusBadRequest, post(h.Task, `{"priority":"high"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(h.Task, `not json`).Code)

	rec := httptest.NewRecorder()
	h.Task(rec, httptest.NewRequest(http.MethodDelete, "/api/task", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestListEmpty(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Task(rec, httptest.NewRequest(http.MethodGet, "/api/task", nil))
	assert.JSONEq(t, `{"tasks":[]}`, rec.Body.String())
}

func TestBoard(t *testing.T) {
	h := newTestHandler(t)
	require.Equal(t, http.StatusOK, post(h.Task, `{"task":"Mine","priority":"low"}`).Code)

	rec := httptest.NewRecorder()
	h.Board(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Tasks []map[string]interface{} `json:"tasks"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Tasks, 11)
	assert.Equal(t, "Mine", body.Tasks[0]["title"])
	assert.Equal(t, "backlog", body.Tasks[0]["status"])
	assert.Equal(t, true, body.Tasks[0]["isUserTask"])
	assert.Nil(t, body.Tasks[0]["description"])
	assert.Equal(t, "sys-1", body.Tasks[1]["id"])
}

func TestNotifications(t *testing.T) {
	h := newTestHandler(t)
	require.Equal(t, http.StatusOK, post(h.Task, `{"task":"first","priority":"low"}`).Code)
	require.Equal(t, http.StatusOK, post(h.Task, `{"task":"second","priority":"high"}`).Code)

	rec := httptest.NewRecorder()
	h.Notifications(rec, httptest.NewRequest(http.MethodGet, "/api/notifications?limit=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body api.NotificationsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Notifications, 1)
	assert.Contains(t, body.Notifications[0].Message, "NEW TASK (high): second")

	rec = httptest.NewRecorder()
	h.Notifications(rec, httptest.NewRequest(http.MethodGet, "/api/notifications?limit=0", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
