package domain

import "time"

// ProjectSubmission 代表一份待评审的黑客松/创业项目提交
// 所有字段都是自由文本，必填校验在边界层（cmd）完成
type ProjectSubmission struct {
	ProjectTitle   string `json:"projectTitle"`
	CoreIdea       string `json:"coreIdea"`
	ProblemSolved  string `json:"problemSolved"`
	TargetAudience string `json:"targetAudience"`
	UniqueApproach string `json:"uniqueApproach"`
	BusinessModel  string `json:"businessModel"`
	MarketSize     string `json:"marketSize"`
	TeamExperience string `json:"teamExperience"`
	TechStack      string `json:"techStack"`
	GithubURL      string `json:"githubUrl"`
	DemoURL        string `json:"demoUrl"`
}

// SearchResult 搜索提供方返回的单条结果
// Category 和 Query 由编排器在收集时打标（复制后写入，不改动提供方的切片）
type SearchResult struct {
	Title    string `json:"title"`
	Snippet  string `json:"snippet"`
	URL      string `json:"url"`
	Source   string `json:"source"`
	Category string `json:"category,omitempty"`
	Query    string `json:"query,omitempty"`
}

// SearchLogEntry 每执行一条查询就追加一条日志，顺序 = 执行顺序
type SearchLogEntry struct {
	Query        string    `json:"query"`
	Category     string    `json:"category"`
	ResultsCount int       `json:"resultsCount"`
	Timestamp    time.Time `json:"timestamp"`
}

// 查询类别常量（打标用，与编译分桶一一对应）
const (
	CategoryCompetitors = "competitors"
	CategoryExactMatch  = "exact_match"
	CategoryMarketSize  = "market_size"
	CategoryTrends      = "trends"
	CategoryStartups    = "startups"
	CategoryProblem     = "problem"
	CategoryUniqueness  = "uniqueness"
)

// CompetitorSignals 竞品类信号：结果 + 候选公司名集合（保序去重）
type CompetitorSignals struct {
	Results   []SearchResult `json:"results"`
	Companies []string       `json:"companies"`
	Count     int            `json:"count"`
}

// ExactMatchSignals 同名产品检索信号
type ExactMatchSignals struct {
	Results []SearchResult `json:"results"`
	Found   bool           `json:"found"`
}

// MarketSizeSignals 市场规模信号：货币金额与增长百分比子串
type MarketSizeSignals struct {
	Results []SearchResult `json:"results"`
	Numbers []string       `json:"numbers"`
	Growth  []string       `json:"growth"`
}

// TrendSignals 趋势信号：固定 6 词表的命中（允许重复，发现顺序）
type TrendSignals struct {
	Results  []SearchResult `json:"results"`
	Keywords []string       `json:"keywords"`
}

// StartupSignals 创业数据库信号：ProductHunt / GitHub 子集
type StartupSignals struct {
	Results     []SearchResult `json:"results"`
	ProductHunt []SearchResult `json:"productHunt"`
	Github      []SearchResult `json:"github"`
}

// ProblemSignals 问题验证信号
type ProblemSignals struct {
	Results   []SearchResult `json:"results"`
	Validated bool           `json:"validated"`
}

// UniquenessSignals 独特性信号
// 注意：Validated 是流式判定（插入时刻该类别结果数 <3 即置真，置真后不回退），
// 不是对最终总数的判断，下游评分依赖这个行为
type UniquenessSignals struct {
	Results   []SearchResult `json:"results"`
	Validated bool           `json:"validated"`
}

// CompiledSignals 按类别汇总的信号包，评分器的唯一输入
type CompiledSignals struct {
	Competitors  CompetitorSignals `json:"competitors"`
	ExactMatch   ExactMatchSignals `json:"exactMatch"`
	MarketSize   MarketSizeSignals `json:"marketSize"`
	Trends       TrendSignals      `json:"trends"`
	Startups     StartupSignals    `json:"startups"`
	Problem      ProblemSignals    `json:"problem"`
	Uniqueness   UniquenessSignals `json:"uniqueness"`
	TotalResults int               `json:"totalResults"`
}

// ScorePoint 评分细项
type ScorePoint struct {
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

// Scoring 两个维度的评分拆解
type Scoring struct {
	InnovationBreakdown map[string]ScorePoint `json:"innovationBreakdown,omitempty"`
	MarketBreakdown     map[string]ScorePoint `json:"marketBreakdown,omitempty"`
}

// ScoreBreakdown 单维评分：分值 + 理由 + 改进建议
type ScoreBreakdown struct {
	Score        int                   `json:"score"`
	Reasoning    string                `json:"reasoning"`
	Improvements string                `json:"improvements"`
	Breakdown    map[string]ScorePoint `json:"breakdown,omitempty"`
}

// CompetitorDetail 单个竞品的威胁评估
type CompetitorDetail struct {
	Name       string `json:"name"`
	WhatTheyDo string `json:"whatTheyDo"`
	Threat     string `json:"threat"`
}

// ResearchSummary 调研汇总（LLM 回填或本地生成）
type ResearchSummary struct {
	TotalResultsAnalyzed int                `json:"totalResultsAnalyzed"`
	CompetitorsFound     []string           `json:"competitorsFound"`
	CompetitorDetails    []CompetitorDetail `json:"competitorDetails"`
	MarketSizeFound      string             `json:"marketSizeFound"`
	MarketGrowthRate     string             `json:"marketGrowthRate"`
	TrendSignals         []string           `json:"trendSignals"`
	SimilarOnProductHunt int                `json:"similarOnProductHunt"`
	SimilarOnGithub      int                `json:"similarOnGithub"`
	ProblemValidated     bool               `json:"problemValidated"`
}

// Thinking AI 思考过程的四个固定字段
type Thinking struct {
	WhatThisIs           string `json:"whatThisIs"`
	IsTheProblemReal     string `json:"isTheProblemReal"`
	CompetitorComparison string `json:"competitorComparison"`
	MarketTiming         string `json:"marketTiming"`
}

// Strength / Concern / NextStep 叙述性反馈条目
type Strength struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Concern struct {
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
}

type NextStep struct {
	Priority string `json:"priority"`
	Action   string `json:"action"`
	Impact   string `json:"impact"`
}

// Analysis 评分器（LLM 或本地）的统一输出契约
// 对应 LLM 的严格 JSON schema；字段缺失时由装配器补默认值
type Analysis struct {
	ResearchSummary *ResearchSummary `json:"researchSummary"`
	Thinking        *Thinking        `json:"thinking"`
	Scoring         *Scoring         `json:"scoring"`
	InnovationScore *ScoreBreakdown  `json:"innovationScore"`
	MarketScore     *ScoreBreakdown  `json:"marketScore"`
	Strengths       []Strength       `json:"strengths"`
	Concerns        []Concern        `json:"concerns"`
	NextSteps       []NextStep       `json:"nextSteps"`
	Verdict         string           `json:"verdict"`
	InvestorSignal  string           `json:"investorSignal"`
	Recommendation  string           `json:"recommendation"`
}

// SearchStats 搜索统计
type SearchStats struct {
	TotalQueries  int              `json:"totalQueries"`
	TotalResults  int              `json:"totalResults"`
	UniqueSources int              `json:"uniqueSources"`
	SearchLog     []SearchLogEntry `json:"searchLog"`
}

// Summary 项目回显摘要
type Summary struct {
	WhatItIs        string `json:"whatItIs"`
	WhoItsFor       string `json:"whoItsFor"`
	ProblemSolved   string `json:"problemSolved"`
	BusinessModel   string `json:"businessModel"`
	CompetitiveEdge string `json:"competitiveEdge"`
}

// OverallRating 总评
type OverallRating struct {
	Score              int    `json:"score"`
	Verdict            string `json:"verdict"`
	CompetitiveContext string `json:"competitiveContext"`
	InvestorSignal     string `json:"investorSignal"`
}

// WebResearch 面向展示的调研聚合
type WebResearch struct {
	CompetitorsFound      []string           `json:"competitorsFound"`
	CompetitorDetails     []CompetitorDetail `json:"competitorDetails"`
	MarketGrowth          string             `json:"marketGrowth"`
	MarketSizeValidation  string             `json:"marketSizeValidation"`
	TrendSignals          []string           `json:"trendSignals"`
	ExistingProductsFound int                `json:"existingProductsFound"`
	ProductHuntMatches    int                `json:"productHuntMatches"`
	GithubMatches         int                `json:"githubMatches"`
	TotalSearchQueries    int                `json:"totalSearchQueries"`
	TotalResultsAnalyzed  int                `json:"totalResultsAnalyzed"`
	SearchSource          string             `json:"searchSource"`
}

// EvaluationResult 一次评审的完整响应
type EvaluationResult struct {
	ProjectTitle         string           `json:"projectTitle"`
	ResearchSummary      *ResearchSummary `json:"researchSummary"`
	Scoring              *Scoring         `json:"scoring"`
	Recommendation       string           `json:"recommendation"`
	SearchStats          SearchStats      `json:"searchStats"`
	Thinking             *Thinking        `json:"thinking"`
	Summary              Summary          `json:"summary"`
	Strengths            []Strength       `json:"strengths"`
	Concerns             []Concern        `json:"concerns"`
	InnovationScore      ScoreBreakdown   `json:"innovationScore"`
	MarketPotentialScore ScoreBreakdown   `json:"marketPotentialScore"`
	OverallRating        OverallRating    `json:"overallRating"`
	NextSteps            []NextStep       `json:"nextSteps"`
	WebResearch          WebResearch      `json:"webResearch"`
}

// 裁决与投资信号的固定序数集
const (
	VerdictExceptional     = "EXCEPTIONAL"
	VerdictStrongPotential = "STRONG POTENTIAL"
	VerdictPromising       = "PROMISING"
	VerdictNeedsWork       = "NEEDS WORK"
	VerdictEarlyStage      = "EARLY STAGE"

	SignalHigh   = "HIGH"
	SignalMedium = "MEDIUM"
	SignalLow    = "LOW"
)

// VerdictFor 五档裁决阶梯（作用于两分取整后的平均分）
func VerdictFor(score int) string {
	switch {
	case score >= 80:
		return VerdictExceptional
	case score >= 70:
		return VerdictStrongPotential
	case score >= 60:
		return VerdictPromising
	case score >= 50:
		return VerdictNeedsWork
	default:
		return VerdictEarlyStage
	}
}

// InvestorSignalFor 由总分导出投资信号
func InvestorSignalFor(score int) string {
	switch {
	case score >= 75:
		return SignalHigh
	case score >= 60:
		return SignalMedium
	default:
		return SignalLow
	}
}

// ClampScore 把分值收敛到 [lo, hi]
func ClampScore(score, lo, hi int) int {
	if score < lo {
		return lo
	}
	if score > hi {
		return hi
	}
	return score
}
