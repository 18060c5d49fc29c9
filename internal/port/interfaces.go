package port

import (
	"context"

	"startup-judge/internal/domain"
)

// Searcher (搜索员): 把一条文本查询交给外部搜索后端
// 实现必须自己消化后端错误：失败时返回空列表即可，不允许让单条查询炸掉整轮调研
type Searcher interface {
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)

	// Source 返回生效的搜索源标签（比如 "Google (Serper)" 或 "DuckDuckGo"）
	Source() string
}

// Scouter (侦察兵): 直查 GitHub 仓库库，补充 startups 阶段的数据
type Scouter interface {
	// 比如：ScoutRepos(ctx, "task manager ai")
	ScoutRepos(ctx context.Context, keywords string) ([]domain.SearchResult, error)
}

// Appraiser (鉴定师): 把编译好的信号包变成一份完整的 Analysis
// LLM 实现可能失败（网络/解析），本地实现永远成功
type Appraiser interface {
	Appraise(ctx context.Context, sub *domain.ProjectSubmission, compiled *domain.CompiledSignals, industry string) (*domain.Analysis, error)
}

// Notifier (信使): 把评审结论推送出去（飞书卡片）
type Notifier interface {
	Notify(ctx context.Context, result *domain.EvaluationResult) error
}
