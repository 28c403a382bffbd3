package ideas

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
	st, err := store.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "ideas.db"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cat, err := catalog.Default()
	require.NoError(t, err)

	return NewHandler(services.NewIdeaService(st, cat, logger.Nop()), logger.Nop())
}

func do(h http.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func listIdeas(t *testing.T, h *Handler) api.IdeasResponse {
	t.Helper()
	rec := do(h.Ideas, http.MethodGet, "/api/ideas", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body api.IdeasResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestListSeedsSamples(t *testing.T) {
	h := newTestHandler(t)

	body := listIdeas(t, h)
	require.Len(t, body.Ideas, 10)
	assert.Equal(t, "Invoice Generator", body.Ideas[0].Title)
	assert.Equal(t, "new", body.Ideas[0].Status)
}

func TestCreateIdea(t *testing.T) {
	h := newTestHandler(t)
	listIdeas(t, h)

	rec := do(h.Ideas, http.MethodPost, "/api/ideas", `{"idea":{"title":"Standup Summarizer","source":"r/startups"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var created api.IdeaResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	require.NotNil(t, created.Idea)
	assert.Equal(t, "standup-summarizer", created.Idea.Slug)

	body := listIdeas(t, h)
	require.Len(t, body.Ideas, 11)
	assert.Equal(t, created.Idea.ID, body.Ideas[0].ID)

	assert.Equal(t, http.StatusBadRequest, do(h.Ideas, http.MethodPost, "/api/ideas", `{"idea":{}}`).Code)
}

func TestBuildFlow(t *testing.T) {
	h := newTestHandler(t)
	listIdeas(t, h)

	rec := do(h.Build, http.MethodPost, "/api/ideas/build", `{"ideaId":"3"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var built api.IdeaResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&built))
	require.NotNil(t, built.Idea)
	assert.Equal(t, "building", built.Idea.Status)

	rec = do(h.Build, http.MethodGet, "/api/ideas/build", "")
	var queue api.BuildQueueResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&queue))
	require.Len(t, queue.Queue, 1)
	assert.Equal(t, "Subscription Tracker", queue.Queue[0].Title)
}

func TestBuildUnknownIs404(t *testing.T) {
	h := newTestHandler(t)

	assert.Equal(t, http.StatusNotFound, do(h.Build, http.MethodPost, "/api/ideas/build", `{"ideaId":"missing"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(h.Build, http.MethodPost, "/api/ideas/build", `{}`).Code)
}

func TestRemove(t *testing.T) {
	h := newTestHandler(t)
	listIdeas(t, h)

	rec := do(h.Remove, http.MethodPost, "/api/ideas/remove", `{"ideaId":"1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	body := listIdeas(t, h)
	assert.Equal(t, "removed", body.Ideas[0].Status)

	assert.Equal(t, http.StatusMethodNotAllowed, do(h.Remove, http.MethodGet, "/api/ideas/remove", "").Code)
}
