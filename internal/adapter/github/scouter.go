package github

import (
	"context"
	"fmt"
	"time"

	"startup-judge/internal/common"
	"startup-judge/internal/domain"

	"github.com/google/go-github/v53/github"
	"golang.org/x/oauth2"
)

// Scouter 实现了 port.Scouter 接口
// 在 startups 阶段直查 GitHub 仓库库，补充 site:github.com 网页搜索的盲区
type Scouter struct {
	client *github.Client
}

// NewScouter 初始化 GitHub 客户端
// token: GitHub Personal Access Token (空字符串时匿名访问，限制 60次/小时)
func NewScouter(token string) *Scouter {
	var client *github.Client

	if token == "" {
		client = github.NewClient(nil)
	} else {
		ctx := context.Background()
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		tc := oauth2.NewClient(ctx, ts)
		client = github.NewClient(tc)
	}

	return &Scouter{client: client}
}

// ScoutRepos 按关键词搜索仓库，转换成打标前的 SearchResult
// URL 用仓库主页地址，这样编译阶段的 "github" 子集启发式能数到它们
func (s *Scouter) ScoutRepos(ctx context.Context, keywords string) ([]domain.SearchResult, error) {
	if keywords == "" {
		return nil, nil
	}

	opts := &github.SearchOptions{
		Sort:  "stars",
		Order: "desc",
		ListOptions: github.ListOptions{
			PerPage: 5, // 只取头部仓库，避免淹没网页搜索信号
		},
	}

	var result *github.RepositoriesSearchResult
	err := common.Do(ctx, func() error {
		var apiErr error
		result, _, apiErr = s.client.Search.Repositories(ctx, keywords, opts)
		return apiErr
	},
		common.WithMaxRetries(2),
		common.WithInitialDelay(500*time.Millisecond),
	)
	if err != nil {
		return nil, common.WrapError(common.ErrCodeGitHubAPI, "GitHub API 调用失败", err)
	}

	var results []domain.SearchResult
	for _, item := range result.Repositories {
		results = append(results, domain.SearchResult{
			Title:   item.GetFullName(),
			Snippet: fmt.Sprintf("%s (⭐ %d)", item.GetDescription(), item.GetStargazersCount()),
			URL:     item.GetHTMLURL(),
			Source:  "github_api",
		})
	}

	return results, nil
}
