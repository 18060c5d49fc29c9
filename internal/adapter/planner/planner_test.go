package planner

import (
	"testing"

	"startup-judge/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "去停用词和短词后取前4个",
			input:    "An AI-powered task manager for busy remote teams everywhere",
			expected: "aipowered task manager busy",
		},
		{
			name:     "短词全部被丢弃",
			input:    "the a an and or to in on",
			expected: "",
		},
		{
			name:     "保留输入顺序而非词频",
			input:    "delivery platform delivery delivery food",
			expected: "delivery platform delivery delivery",
		},
		{
			name:     "符号被剥掉",
			input:    "crypto-wallet: secure & simple payments!",
			expected: "cryptowallet secure simple payments",
		},
		{
			name:     "空输入",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractKeywords(tt.input))
		})
	}
}

func TestDetectIndustry(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"AI 优先于其他类别", "AI powered health tracker", "AI/ML"},
		{"金融类", "simple payment splitting for roommates", "Fintech"},
		{"健康类", "fitness coach in your pocket", "Healthtech"},
		{"教育类", "course platform for students", "Edtech"},
		{"电商类", "online store builder", "E-commerce"},
		{"效率类", "team project dashboard", "Productivity"},
		{"社交类", "community for hikers", "Social"},
		{"创作者经济", "video editing for creators", "Creator Economy"},
		{"游戏类", "multiplayer gaming lobby", "Gaming"},
		{"餐饮类", "restaurant reservation helper", "FoodTech"},
		{"无命中落默认值", "quiet notebook for writers", "SaaS/Technology"},
		// "play" 在 Gaming 词表里，但 "pay" 先命中 Fintech——顺序即契约
		{"顺序决定优先级", "playful payment app", "Fintech"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectIndustry(tt.input))
		})
	}
}

func TestPlanner_Plan(t *testing.T) {
	sub := &domain.ProjectSubmission{
		ProjectTitle:   "TaskPilot",
		CoreIdea:       "AI-powered task manager",
		ProblemSolved:  "remote teams lose track of work",
		TargetAudience: "remote teams",
	}

	t.Run("没有独特性字段时 6 个批次 20 条查询", func(t *testing.T) {
		batches := NewPlanner().Plan(sub)

		assert.Len(t, batches, 6)

		categories := make([]string, 0, len(batches))
		total := 0
		for _, b := range batches {
			categories = append(categories, b.Category)
			total += len(b.Queries)
		}
		assert.Equal(t, []string{
			domain.CategoryCompetitors,
			domain.CategoryExactMatch,
			domain.CategoryMarketSize,
			domain.CategoryTrends,
			domain.CategoryStartups,
			domain.CategoryProblem,
		}, categories)
		assert.Equal(t, 20, total)

		// 每个批次的查询条数是固定契约
		assert.Len(t, batches[0].Queries, 4)
		assert.Len(t, batches[1].Queries, 3)
		assert.Len(t, batches[2].Queries, 4)
		assert.Len(t, batches[3].Queries, 3)
		assert.Len(t, batches[4].Queries, 3)
		assert.Len(t, batches[5].Queries, 3)
	})

	t.Run("填写独特性字段时追加第 7 批次共 22 条", func(t *testing.T) {
		withUnique := *sub
		withUnique.UniqueApproach = "on-device inference"

		batches := NewPlanner().Plan(&withUnique)

		assert.Len(t, batches, 7)
		last := batches[6]
		assert.Equal(t, domain.CategoryUniqueness, last.Category)
		assert.Len(t, last.Queries, 2)
		assert.Contains(t, last.Queries[1], "on-device inference")

		total := 0
		for _, b := range batches {
			total += len(b.Queries)
		}
		assert.Equal(t, 22, total)
	})

	t.Run("查询模板填入项目字段", func(t *testing.T) {
		batches := NewPlanner().Plan(sub)

		assert.Equal(t, "AI-powered task manager competitors", batches[0].Queries[0])
		assert.Equal(t, `"TaskPilot" startup`, batches[1].Queries[0])
		assert.Equal(t, "AI/ML market size 2024", batches[2].Queries[0])
		assert.Equal(t, "remote teams market opportunity billion", batches[2].Queries[2])
		assert.Equal(t, "site:producthunt.com aipowered task manager", batches[4].Queries[0])
		assert.Equal(t, "remote teams problems challenges pain points", batches[5].Queries[0])
	})

	t.Run("问题字段为空时用核心想法代替", func(t *testing.T) {
		noProblem := *sub
		noProblem.ProblemSolved = ""

		batches := NewPlanner().Plan(&noProblem)
		// problem 批次的第三条查询用 idea 的关键词
		assert.Equal(t, "aipowered task manager solution market need", batches[5].Queries[2])
	})
}
