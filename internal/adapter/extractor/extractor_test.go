package extractor

import (
	"fmt"
	"testing"

	"startup-judge/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestExtractCompanyNames(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected []string
	}{
		{
			name:     "大写开头的候选名保留，常见大写词剔除",
			title:    "Asana vs Trello: The Best Tool",
			expected: []string{"Asana", "Trello", "Tool"},
		},
		{
			name:     "分隔符包括竖线和斜杠",
			title:    "Notion|Linear/Jira - Top Alternatives",
			expected: []string{"Notion", "Linear", "Jira", "Alternatives"},
		},
		{
			name:     "小写词和超短词不算",
			title:    "a to-do app by Me and others",
			expected: nil,
		},
		{
			name:     "符号剥掉后太短的剔除",
			title:    "A.I. Z9! Monday.com",
			expected: []string{"Mondaycom"},
		},
		{
			name:     "空标题",
			title:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractCompanyNames(tt.title))
		})
	}
}

func TestCompile_Competitors(t *testing.T) {
	results := []domain.SearchResult{
		{Title: "Asana vs Trello: The Best Tool", Category: domain.CategoryCompetitors},
		{Title: "Trello review", Category: domain.CategoryCompetitors},
	}

	compiled := Compile(results)

	// 去重保序：Trello 只出现一次
	assert.Equal(t, []string{"Asana", "Trello", "Tool"}, compiled.Competitors.Companies)
	assert.Equal(t, 3, compiled.Competitors.Count)
	assert.NotContains(t, compiled.Competitors.Companies, "The")
	assert.NotContains(t, compiled.Competitors.Companies, "Best")
	assert.Len(t, compiled.Competitors.Results, 2)
	assert.Equal(t, 2, compiled.TotalResults)
}

func TestCompile_MarketSize(t *testing.T) {
	results := []domain.SearchResult{
		{
			Title:    "Market report",
			Snippet:  "$1.2 billion market growing 15% annually, up from $800M",
			Category: domain.CategoryMarketSize,
		},
	}

	compiled := Compile(results)

	// 提取作用于小写化文本，所以结果是小写的
	assert.Contains(t, compiled.MarketSize.Numbers, "$1.2 billion")
	assert.Contains(t, compiled.MarketSize.Numbers, "$800m")
	assert.Contains(t, compiled.MarketSize.Growth, "15%")
}

func TestCompile_Trends(t *testing.T) {
	results := []domain.SearchResult{
		{
			Title:    "Industry outlook",
			Snippet:  "a growing and rapidly expanding sector",
			Category: domain.CategoryTrends,
		},
		{
			Title:    "Another take",
			Snippet:  "still growing",
			Category: domain.CategoryTrends,
		},
	}

	compiled := Compile(results)

	// 允许跨结果重复，发现顺序
	assert.Equal(t, []string{"growing", "expanding", "growing"}, compiled.Trends.Keywords)
}

func TestCompile_TrendSubstringMatch(t *testing.T) {
	// 子串包含即命中，不做分词
	results := []domain.SearchResult{
		{Title: "overexpanding empires", Category: domain.CategoryTrends},
	}

	compiled := Compile(results)
	assert.Equal(t, []string{"expanding"}, compiled.Trends.Keywords)
}

func TestCompile_ExactMatch(t *testing.T) {
	t.Run("合并文本超过50字符算找到", func(t *testing.T) {
		compiled := Compile([]domain.SearchResult{
			{
				Title:    "TaskPilot startup raises seed round",
				Snippet:  "an AI task manager founded last year",
				Category: domain.CategoryExactMatch,
			},
		})
		assert.True(t, compiled.ExactMatch.Found)
	})

	t.Run("短文本不算", func(t *testing.T) {
		compiled := Compile([]domain.SearchResult{
			{Title: "TaskPilot", Snippet: "", Category: domain.CategoryExactMatch},
		})
		assert.False(t, compiled.ExactMatch.Found)
	})
}

func TestCompile_Startups(t *testing.T) {
	results := []domain.SearchResult{
		{Title: "PH listing", URL: "https://www.producthunt.com/posts/x", Category: domain.CategoryStartups},
		{Title: "repo", URL: "https://github.com/a/b", Category: domain.CategoryStartups},
		{Title: "news", URL: "https://example.com", Category: domain.CategoryStartups},
	}

	compiled := Compile(results)

	assert.Len(t, compiled.Startups.Results, 3)
	assert.Len(t, compiled.Startups.ProductHunt, 1)
	assert.Len(t, compiled.Startups.Github, 1)
}

func TestCompile_Problem(t *testing.T) {
	long := ""
	for i := 0; i < 101; i++ {
		long += "x"
	}

	t.Run("长摘要验证通过", func(t *testing.T) {
		compiled := Compile([]domain.SearchResult{
			{Snippet: long, Category: domain.CategoryProblem},
		})
		assert.True(t, compiled.Problem.Validated)
	})

	t.Run("短摘要不通过", func(t *testing.T) {
		compiled := Compile([]domain.SearchResult{
			{Snippet: "short", Category: domain.CategoryProblem},
		})
		assert.False(t, compiled.Problem.Validated)
	})
}

func TestCompile_UniquenessStreaming(t *testing.T) {
	// 流式判定：前 3 条插入时计数 <3 就置真，第 4 条插入后也不回退
	var results []domain.SearchResult
	for i := 0; i < 4; i++ {
		results = append(results, domain.SearchResult{
			Title:    fmt.Sprintf("result %d", i),
			Category: domain.CategoryUniqueness,
		})
	}

	compiled := Compile(results)

	assert.Len(t, compiled.Uniqueness.Results, 4)
	assert.True(t, compiled.Uniqueness.Validated, "置真后即使最终超过 3 条也保持为真")
}

func TestCompile_Empty(t *testing.T) {
	compiled := Compile(nil)

	assert.Equal(t, 0, compiled.TotalResults)
	assert.Equal(t, 0, compiled.Competitors.Count)
	assert.False(t, compiled.ExactMatch.Found)
	assert.False(t, compiled.Problem.Validated)
	assert.False(t, compiled.Uniqueness.Validated)
}
