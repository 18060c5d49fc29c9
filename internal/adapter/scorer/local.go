package scorer

import (
	"context"
	"fmt"
	"strings"

	"startup-judge/internal/domain"
)

// LocalAppraiser 确定性兜底评分器：纯算术，不出网，永不失败
// 与 LLM 评分器实现同一个 port.Appraiser 接口，可互换
type LocalAppraiser struct{}

func NewLocalAppraiser() *LocalAppraiser {
	return &LocalAppraiser{}
}

// 本地评分的基准分和收敛区间（采用研究代理变体：50 起步，收敛到 [25,90]）
const (
	baseScore = 50
	scoreMin  = 25
	scoreMax  = 90
)

// 被视为“向好”的趋势词
var positiveTrends = map[string]struct{}{
	"growing": {}, "booming": {}, "expanding": {}, "emerging": {},
}

// Appraise 对编译信号做规则打分并产出完整 Analysis
func (a *LocalAppraiser) Appraise(_ context.Context, sub *domain.ProjectSubmission, compiled *domain.CompiledSignals, industry string) (*domain.Analysis, error) {
	numCompetitors := compiled.Competitors.Count
	hasMarketData := len(compiled.MarketSize.Numbers) > 0
	hasSimilar := len(compiled.Startups.ProductHunt) + len(compiled.Startups.Github)

	isGrowing := false
	for _, kw := range compiled.Trends.Keywords {
		if _, ok := positiveTrends[kw]; ok {
			isGrowing = true
			break
		}
	}

	innovationScore := baseScore
	marketScore := baseScore

	// 创新分
	switch {
	case numCompetitors == 0:
		innovationScore += 25
	case numCompetitors < 3:
		innovationScore += 20
	case numCompetitors < 6:
		innovationScore += 12
	default:
		innovationScore += 5
	}
	if hasSimilar < 3 {
		innovationScore += 10
	}
	ideaHasAI := strings.Contains(strings.ToLower(sub.CoreIdea), "ai")
	if ideaHasAI {
		innovationScore += 18
	}

	// 市场分
	if hasMarketData {
		hasLargeMarket := false
		for _, n := range compiled.MarketSize.Numbers {
			lower := strings.ToLower(n)
			if strings.Contains(lower, "billion") || strings.Contains(lower, "b") {
				hasLargeMarket = true
				break
			}
		}
		if hasLargeMarket {
			marketScore += 25
		} else {
			marketScore += 15
		}
	}
	if isGrowing {
		marketScore += 10
	}
	if numCompetitors < 5 {
		marketScore += 15
	}
	if strings.Contains(sub.BusinessModel, "$") {
		marketScore += 20
	}

	innovationScore = domain.ClampScore(innovationScore, scoreMin, scoreMax)
	marketScore = domain.ClampScore(marketScore, scoreMin, scoreMax)

	overall := (innovationScore + marketScore + 1) / 2 // 取整平均

	topCompanies := headStrings(compiled.Competitors.Companies, 10)
	detailNames := headStrings(compiled.Competitors.Companies, 5)
	details := make([]domain.CompetitorDetail, 0, len(detailNames))
	threat := "medium"
	if numCompetitors > 5 {
		threat = "high"
	}
	for _, name := range detailNames {
		details = append(details, domain.CompetitorDetail{
			Name:       name,
			WhatTheyDo: "found in search results",
			Threat:     threat,
		})
	}

	marketSizeFound := "not specifically found"
	if len(compiled.MarketSize.Numbers) > 0 {
		marketSizeFound = compiled.MarketSize.Numbers[0]
	}
	growthRate := "not found"
	if len(compiled.MarketSize.Growth) > 0 {
		growthRate = compiled.MarketSize.Growth[0]
	}

	problemReal := "needs further validation"
	if compiled.Problem.Validated {
		problemReal = "yes, the problem appears real"
	}
	timing := "neutral - needs further research"
	if isGrowing {
		timing = "favorable - market is growing"
	}

	noveltyPoints := 10
	if numCompetitors < 3 {
		noveltyPoints = 20
	}
	techPoints := 10
	if ideaHasAI {
		techPoints = 18
	}
	marketSizePoints := 10
	if hasMarketData {
		marketSizePoints = 20
	}
	growthPoints := 5
	if isGrowing {
		growthPoints = 10
	}
	landscapePoints := 5
	if numCompetitors < 5 {
		landscapePoints = 15
	}
	modelPoints := 10
	if strings.Contains(sub.BusinessModel, "$") {
		modelPoints = 20
	}

	strengths := []domain.Strength{
		{Title: "Research done", Description: fmt.Sprintf("%d data points analyzed", compiled.TotalResults)},
	}
	if numCompetitors < 5 {
		strengths = append(strengths, domain.Strength{
			Title:       "Limited competition",
			Description: fmt.Sprintf("%d direct competitors", numCompetitors),
		})
	}

	var concerns []domain.Concern
	if numCompetitors > 5 {
		concerns = append(concerns, domain.Concern{
			Issue:      "Crowded market",
			Suggestion: "Focus on a niche",
		})
	}

	marketReasonPrefix := "Market"
	if len(compiled.MarketSize.Numbers) > 0 {
		marketReasonPrefix = compiled.MarketSize.Numbers[0]
	}
	trendWord := "stable"
	if isGrowing {
		trendWord = "growing"
	}

	return &domain.Analysis{
		ResearchSummary: &domain.ResearchSummary{
			TotalResultsAnalyzed: compiled.TotalResults,
			CompetitorsFound:     topCompanies,
			CompetitorDetails:    details,
			MarketSizeFound:      marketSizeFound,
			MarketGrowthRate:     growthRate,
			TrendSignals:         compiled.Trends.Keywords,
			SimilarOnProductHunt: len(compiled.Startups.ProductHunt),
			SimilarOnGithub:      len(compiled.Startups.Github),
			ProblemValidated:     compiled.Problem.Validated,
		},
		Thinking: &domain.Thinking{
			WhatThisIs:           sub.CoreIdea,
			IsTheProblemReal:     problemReal,
			CompetitorComparison: fmt.Sprintf("%d competitors found: %s", numCompetitors, strings.Join(headStrings(compiled.Competitors.Companies, 4), ", ")),
			MarketTiming:         timing,
		},
		Scoring: &domain.Scoring{
			InnovationBreakdown: map[string]domain.ScorePoint{
				"noveltyVsCompetitors": {Points: noveltyPoints, Reason: fmt.Sprintf("%d competitors", numCompetitors)},
				"technicalApproach":    {Points: techPoints, Reason: "tech analysis"},
				"differentiation":      {Points: 12, Reason: "baseline differentiation"},
			},
			MarketBreakdown: map[string]domain.ScorePoint{
				"marketSize":           {Points: marketSizePoints, Reason: marketSizeFound},
				"growthRate":           {Points: growthPoints, Reason: growthRate},
				"competitiveLandscape": {Points: landscapePoints, Reason: fmt.Sprintf("%d players", numCompetitors)},
				"businessModel":        {Points: modelPoints, Reason: "model analysis"},
			},
		},
		InnovationScore: &domain.ScoreBreakdown{
			Score:        innovationScore,
			Reasoning:    fmt.Sprintf("%d competitors, %d similar projects found", numCompetitors, hasSimilar),
			Improvements: "Strengthen differentiation",
		},
		MarketScore: &domain.ScoreBreakdown{
			Score:        marketScore,
			Reasoning:    fmt.Sprintf("%s with %s trend", marketReasonPrefix, trendWord),
			Improvements: "Validate with customers",
		},
		Strengths: strengths,
		Concerns:  concerns,
		NextSteps: []domain.NextStep{
			{Priority: "URGENT", Action: "Interview customers", Impact: "Validates demand"},
			{Priority: "URGENT", Action: "Build an MVP", Impact: "Proves execution"},
		},
		Verdict:        domain.VerdictFor(overall),
		InvestorSignal: domain.InvestorSignalFor(overall),
		Recommendation: fmt.Sprintf("Assessment based on %d search results. %d competitors found.", compiled.TotalResults, numCompetitors),
	}, nil
}

func headStrings(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[:n]
}
