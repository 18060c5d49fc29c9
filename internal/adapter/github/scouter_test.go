package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	gh "github.com/google/go-github/v53/github"
	"github.com/stretchr/testify/assert"
)

// newTestScouter 把 go-github 客户端指到本地测试服务器
func newTestScouter(t *testing.T, serverURL string) *Scouter {
	client := gh.NewClient(nil)
	base, err := url.Parse(serverURL + "/")
	assert.NoError(t, err)
	client.BaseURL = base
	return &Scouter{client: client}
}

func TestScouter_ScoutRepos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/repositories", r.URL.Path)
		assert.Equal(t, "task manager", r.URL.Query().Get("q"))
		assert.Equal(t, "stars", r.URL.Query().Get("sort"))
		assert.Equal(t, "desc", r.URL.Query().Get("order"))
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"total_count": 2,
			"incomplete_results": false,
			"items": [
				{"full_name": "someone/taskpilot", "description": "task automation", "stargazers_count": 1200, "html_url": "https://github.com/someone/taskpilot"},
				{"full_name": "acme/todo", "description": "minimal todo", "stargazers_count": 300, "html_url": "https://github.com/acme/todo"}
			]
		}`))
	}))
	defer server.Close()

	results, err := newTestScouter(t, server.URL).ScoutRepos(context.Background(), "task manager")

	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, "someone/taskpilot", results[0].Title)
	assert.Equal(t, "task automation (⭐ 1200)", results[0].Snippet)
	assert.Equal(t, "https://github.com/someone/taskpilot", results[0].URL)
	assert.Equal(t, "github_api", results[0].Source)
}

func TestScouter_ScoutRepos_EmptyKeywords(t *testing.T) {
	// 空关键词直接短路，不发任何请求
	scouter := newTestScouter(t, "http://127.0.0.1:1")

	results, err := scouter.ScoutRepos(context.Background(), "")

	assert.NoError(t, err)
	assert.Nil(t, results)
}

func TestScouter_ScoutRepos_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total_count": 0, "incomplete_results": false, "items": []}`))
	}))
	defer server.Close()

	results, err := newTestScouter(t, server.URL).ScoutRepos(context.Background(), "q")

	assert.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 2, calls)
}
