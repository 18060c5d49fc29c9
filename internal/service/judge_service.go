package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"startup-judge/internal/adapter/extractor"
	"startup-judge/internal/adapter/planner"
	"startup-judge/internal/domain"
	"startup-judge/internal/port"
)

// 每条查询之间的固定间隔，避免触发搜索 API 限流
const defaultPace = 300 * time.Millisecond

// Config 显式配置对象：所有依赖在启动时装配好一次性传入，
// 不走包级单例（每次 Evaluate 自带独立的累加器，天然支持并发请求）
type Config struct {
	Searcher  port.Searcher
	Scouter   port.Scouter   // 可选：GitHub 直查补充
	Appraiser port.Appraiser // 可选：LLM 评分策略
	Fallback  port.Appraiser // 必填：确定性本地评分策略
	Notifier  port.Notifier  // 可选：评审结论推送
	Pace      time.Duration  // 0 表示用默认值；测试里可以设成极小值
}

// JudgeService 评审服务：顺序编排全部调研批次，编译信号，评分，装配响应
type JudgeService struct {
	planner   *planner.Planner
	searcher  port.Searcher
	scouter   port.Scouter
	appraiser port.Appraiser
	fallback  port.Appraiser
	notifier  port.Notifier
	pace      time.Duration
}

func NewJudgeService(cfg Config) *JudgeService {
	pace := cfg.Pace
	if pace <= 0 {
		pace = defaultPace
	}
	return &JudgeService{
		planner:   planner.NewPlanner(),
		searcher:  cfg.Searcher,
		scouter:   cfg.Scouter,
		appraiser: cfg.Appraiser,
		fallback:  cfg.Fallback,
		notifier:  cfg.Notifier,
		pace:      pace,
	}
}

// 阶段横幅，挨着批次顺序打
var phaseBanners = map[string]string{
	domain.CategoryCompetitors: "🔍 阶段 1: 竞品调研",
	domain.CategoryExactMatch:  "🔍 阶段 2: 同名产品检索",
	domain.CategoryMarketSize:  "🔍 阶段 3: 市场规模调研",
	domain.CategoryTrends:      "🔍 阶段 4: 趋势调研",
	domain.CategoryStartups:    "🔍 阶段 5: 创业数据库检索",
	domain.CategoryProblem:     "🔍 阶段 6: 问题验证",
	domain.CategoryUniqueness:  "🔍 阶段 7: 独特性验证",
}

// Evaluate 单入口：提交进，完整评审结果出
// 单条查询失败只记日志不终止；外部服务全挂时仍然返回完整结果（离线确定性路径）
func (s *JudgeService) Evaluate(ctx context.Context, sub *domain.ProjectSubmission) (*domain.EvaluationResult, error) {
	fmt.Println("\n🔥 评审调研开始")

	industry := planner.DetectIndustry(sub.CoreIdea)
	keywords := planner.ExtractKeywords(sub.CoreIdea)

	fmt.Printf("📋 项目: %s\n", sub.ProjectTitle)
	fmt.Printf("🏷️ 行业: %s\n", industry)
	fmt.Printf("🔑 关键词: %s\n", keywords)

	// 每次评审自己的累加器，请求之间零共享
	var allResults []domain.SearchResult
	var searchLog []domain.SearchLogEntry

	for _, batch := range s.planner.Plan(sub) {
		fmt.Println(phaseBanners[batch.Category])

		for _, query := range batch.Queries {
			results, err := s.searcher.Search(ctx, query)
			if err != nil {
				// 单条查询的失败贡献 0 条结果，继续跑
				log.Printf("[Judge] ⚠️ 查询失败: %q: %v", query, err)
				results = nil
			}

			searchLog = append(searchLog, domain.SearchLogEntry{
				Query:        query,
				Category:     batch.Category,
				ResultsCount: len(results),
				Timestamp:    time.Now(),
			})

			// 复制打标，不改动提供方返回的切片
			for _, r := range results {
				r.Category = batch.Category
				r.Query = query
				allResults = append(allResults, r)
			}

			fmt.Printf("   🔎 %q → %d 条结果\n", query, len(results))

			if err := s.sleep(ctx); err != nil {
				return nil, err
			}
		}

		// startups 阶段追加一次 GitHub 直查
		if batch.Category == domain.CategoryStartups && s.scouter != nil {
			query := "github:" + keywords
			repos, err := s.scouter.ScoutRepos(ctx, keywords)
			if err != nil {
				log.Printf("[Judge] ⚠️ GitHub 直查失败: %v", err)
				repos = nil
			}
			searchLog = append(searchLog, domain.SearchLogEntry{
				Query:        query,
				Category:     domain.CategoryStartups,
				ResultsCount: len(repos),
				Timestamp:    time.Now(),
			})
			for _, r := range repos {
				r.Category = domain.CategoryStartups
				r.Query = query
				allResults = append(allResults, r)
			}
			fmt.Printf("   🔎 GitHub 直查 → %d 个仓库\n", len(repos))
		}
	}

	// 编译信号
	compiled := extractor.Compile(allResults)

	fmt.Printf("\n📊 搜索统计: %d 条查询, %d 条结果\n", len(searchLog), len(allResults))

	// 评分：LLM 优先，任何失败静默落到本地策略
	analysis := s.appraise(ctx, sub, compiled, industry)

	result := s.buildResult(sub, analysis, compiled, industry, allResults, searchLog)

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, result); err != nil {
			log.Printf("[Judge] ⚠️ 推送评审结论失败: %v", err)
		}
	}

	fmt.Printf("🎉 评审完成: %s (%d/100)\n", result.OverallRating.Verdict, result.OverallRating.Score)
	return result, nil
}

func (s *JudgeService) appraise(ctx context.Context, sub *domain.ProjectSubmission, compiled *domain.CompiledSignals, industry string) *domain.Analysis {
	if s.appraiser != nil {
		fmt.Println("🧠 LLM 深度分析中...")
		analysis, err := s.appraiser.Appraise(ctx, sub, compiled, industry)
		if err == nil {
			return analysis
		}
		log.Printf("[Judge] ⚠️ LLM 分析失败，降级到本地评分: %v", err)
	}

	analysis, _ := s.fallback.Appraise(ctx, sub, compiled, industry) // 本地策略不会失败
	return analysis
}

// sleep 查询间歇，响应取消
func (s *JudgeService) sleep(ctx context.Context) error {
	timer := time.NewTimer(s.pace)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// buildResult 把提交回显、编译信号和评分输出合并成最终响应
// LLM 可能漏掉的每个可选字段在这里补字面默认值
func (s *JudgeService) buildResult(
	sub *domain.ProjectSubmission,
	analysis *domain.Analysis,
	compiled *domain.CompiledSignals,
	industry string,
	allResults []domain.SearchResult,
	searchLog []domain.SearchLogEntry,
) *domain.EvaluationResult {
	innovation := domain.ScoreBreakdown{Score: 50, Reasoning: "see breakdown", Improvements: "see recommendations"}
	if analysis.InnovationScore != nil {
		innovation = *analysis.InnovationScore
		if innovation.Reasoning == "" {
			innovation.Reasoning = "see breakdown"
		}
		if innovation.Improvements == "" {
			innovation.Improvements = "see recommendations"
		}
	}
	market := domain.ScoreBreakdown{Score: 50, Reasoning: "see breakdown", Improvements: "see recommendations"}
	if analysis.MarketScore != nil {
		market = *analysis.MarketScore
		if market.Reasoning == "" {
			market.Reasoning = "see breakdown"
		}
		if market.Improvements == "" {
			market.Improvements = "see recommendations"
		}
	}

	// 无论哪个策略产出的分数，最终契约都收敛到 [0,100]
	innovation.Score = domain.ClampScore(innovation.Score, 0, 100)
	market.Score = domain.ClampScore(market.Score, 0, 100)
	overall := (innovation.Score + market.Score + 1) / 2

	if analysis.Scoring != nil {
		innovation.Breakdown = analysis.Scoring.InnovationBreakdown
		market.Breakdown = analysis.Scoring.MarketBreakdown
	}

	verdict := analysis.Verdict
	if verdict == "" {
		verdict = domain.VerdictFor(overall)
	}
	signal := analysis.InvestorSignal
	if signal == "" {
		signal = domain.InvestorSignalFor(overall)
	}

	businessModel := sub.BusinessModel
	if businessModel == "" {
		businessModel = "TBD"
	}
	problemSolved := sub.ProblemSolved
	if problemSolved == "" {
		problemSolved = sub.CoreIdea
	}
	competitiveEdge := "see research"
	if analysis.Thinking != nil && analysis.Thinking.CompetitorComparison != "" {
		competitiveEdge = analysis.Thinking.CompetitorComparison
	}
	recommendation := analysis.Recommendation
	if recommendation == "" {
		recommendation = "see breakdown"
	}

	competitorsFound := headStrings(compiled.Competitors.Companies, 10)
	var competitorDetails []domain.CompetitorDetail
	if analysis.ResearchSummary != nil {
		if len(analysis.ResearchSummary.CompetitorsFound) > 0 {
			competitorsFound = analysis.ResearchSummary.CompetitorsFound
		}
		competitorDetails = analysis.ResearchSummary.CompetitorDetails
	}

	firstNumber := "see results"
	if len(compiled.MarketSize.Numbers) > 0 {
		firstNumber = compiled.MarketSize.Numbers[0]
	}
	trendLabel := "neutral"
	if len(compiled.Trends.Keywords) > 0 {
		trendLabel = strings.Join(compiled.Trends.Keywords, ", ")
	}
	marketSizeValidation := "needs further research"
	if analysis.ResearchSummary != nil && analysis.ResearchSummary.MarketSizeFound != "" {
		marketSizeValidation = analysis.ResearchSummary.MarketSizeFound
	} else if len(compiled.MarketSize.Numbers) > 0 {
		marketSizeValidation = compiled.MarketSize.Numbers[0]
	}

	return &domain.EvaluationResult{
		ProjectTitle:    sub.ProjectTitle,
		ResearchSummary: analysis.ResearchSummary,
		Scoring:         analysis.Scoring,
		Recommendation:  recommendation,
		SearchStats: domain.SearchStats{
			TotalQueries:  len(searchLog),
			TotalResults:  len(allResults),
			UniqueSources: countUniqueSources(allResults),
			SearchLog:     searchLog,
		},
		Thinking: analysis.Thinking,
		Summary: domain.Summary{
			WhatItIs:        sub.CoreIdea,
			WhoItsFor:       sub.TargetAudience,
			ProblemSolved:   problemSolved,
			BusinessModel:   businessModel,
			CompetitiveEdge: competitiveEdge,
		},
		Strengths:            analysis.Strengths,
		Concerns:             analysis.Concerns,
		InnovationScore:      innovation,
		MarketPotentialScore: market,
		OverallRating: domain.OverallRating{
			Score:              overall,
			Verdict:            verdict,
			CompetitiveContext: fmt.Sprintf("%d competitors found in %s", compiled.Competitors.Count, industry),
			InvestorSignal:     signal,
		},
		NextSteps: analysis.NextSteps,
		WebResearch: domain.WebResearch{
			CompetitorsFound:      competitorsFound,
			CompetitorDetails:     competitorDetails,
			MarketGrowth:          fmt.Sprintf("%s - %s", firstNumber, trendLabel),
			MarketSizeValidation:  marketSizeValidation,
			TrendSignals:          compiled.Trends.Keywords,
			ExistingProductsFound: len(compiled.ExactMatch.Results),
			ProductHuntMatches:    len(compiled.Startups.ProductHunt),
			GithubMatches:         len(compiled.Startups.Github),
			TotalSearchQueries:    len(searchLog),
			TotalResultsAnalyzed:  len(allResults),
			SearchSource:          s.searcher.Source(),
		},
	}
}

func countUniqueSources(results []domain.SearchResult) int {
	set := map[string]struct{}{}
	for _, r := range results {
		set[r.Source] = struct{}{}
	}
	return len(set)
}

func headStrings(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[:n]
}
