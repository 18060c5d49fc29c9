package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"startup-judge/internal/common"
	"startup-judge/internal/domain"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// 评审代理的系统指令：只允许基于搜到的资料下结论
const researchSystemPrompt = `You are a Research Agent for a startup judging system. Your job is to conduct web research to evaluate hackathon project submissions.

YOUR ROLE
You analyze web search results to understand:
- What competitors exist in this space
- What the actual market size is
- What industry trends are happening
- How novel/differentiated this idea really is

HOW TO SCORE BASED ON RESEARCH

For Innovation Score:
- No competitors found? +25 points
- Competitors exist but this is differentiated? +20 points
- Uses AI/ML differently than competitors? +18 points
- Some differentiation? +12 points
- Copycat idea? +5 points

For Market Potential Score:
- TAM > $1B from research? +25 points
- TAM $100M-$1B? +20 points
- TAM $10M-$100M? +15 points
- Clear monetization model (+20)
- No or few competitors (+20)
- Market growing 20%+ annually (+10)

IMPORTANT RULES
- Be specific: Use actual company names, products, market figures FROM THE SEARCH RESULTS
- Be honest: If market is crowded, say it
- Be thorough: Analyze ALL search results carefully
- Only use data you actually found - never make things up`

// GeminiAppraiser LLM 评分策略：渲染结构化 Prompt，解析固定 JSON 契约
// 任何失败都应由调用方静默降级到本地评分器
type GeminiAppraiser struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiAppraiser(ctx context.Context, apiKey string) (*GeminiAppraiser, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel("gemini-2.5-flash-lite")
	// 强制要求返回 JSON，降低解析错误的概率
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(4000)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(researchSystemPrompt)},
	}

	return &GeminiAppraiser{
		client: client,
		model:  model,
	}, nil
}

// Appraise 实现 port.Appraiser
func (g *GeminiAppraiser) Appraise(ctx context.Context, sub *domain.ProjectSubmission, compiled *domain.CompiledSignals, industry string) (*domain.Analysis, error) {
	prompt := buildPrompt(sub, compiled, industry)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, common.WrapError(common.ErrCodeAIProcessing, "AI 调用失败", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, common.NewError(common.ErrCodeAIProcessing, "AI 返回内容为空")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, common.NewError(common.ErrCodeAIProcessing, "AI 返回格式错误")
	}

	return parseAnalysis(string(text))
}

// parseAnalysis 智能寻找 JSON 的起止位置
// 即使 AI 返回 "```json { ... } ```"，也能精准抠出中间的 { ... }
func parseAnalysis(raw string) (*domain.Analysis, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, common.NewError(common.ErrCodeAIProcessing, fmt.Sprintf("无法提取 JSON, AI 原文: %s", raw))
	}

	var analysis domain.Analysis
	if err := json.Unmarshal([]byte(raw[start:end+1]), &analysis); err != nil {
		return nil, common.WrapError(common.ErrCodeAIProcessing, "JSON 解析失败", err)
	}

	return &analysis, nil
}

// buildPrompt 渲染评审 Prompt：项目字段 + 预先算好的计数 + 原文片段
// 计数都在这里写死进文本，不让模型自己去数
func buildPrompt(sub *domain.ProjectSubmission, compiled *domain.CompiledSignals, industry string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze this startup project based on the REAL search results below:\n\n")
	fmt.Fprintf(&b, "=== PROJECT INFO ===\n")
	fmt.Fprintf(&b, "Name: %s\n", sub.ProjectTitle)
	fmt.Fprintf(&b, "What it does: %s\n", sub.CoreIdea)
	fmt.Fprintf(&b, "Problem it solves: %s\n", orDefault(sub.ProblemSolved, "Not provided"))
	fmt.Fprintf(&b, "Target audience: %s\n", sub.TargetAudience)
	fmt.Fprintf(&b, "Unique approach: %s\n", orDefault(sub.UniqueApproach, "Not provided"))
	fmt.Fprintf(&b, "Business Model: %s\n", orDefault(sub.BusinessModel, "Not determined yet"))
	fmt.Fprintf(&b, "Tech Stack: %s\n", orDefault(sub.TechStack, "Not provided"))
	fmt.Fprintf(&b, "Demo URL: %s\n", orDefault(sub.DemoURL, "None"))

	fmt.Fprintf(&b, "\n=== SEARCH RESULTS (%d total) ===\n", compiled.TotalResults)
	writeSearchContext(&b, compiled)

	fmt.Fprintf(&b, `
=== ANALYSIS TASK ===
Return a JSON response with:

{
    "researchSummary": {
        "totalResultsAnalyzed": %d,
        "competitorsFound": ["List every REAL company name from the search results"],
        "competitorDetails": [
            {"name": "Company", "whatTheyDo": "What they do per the search result", "threat": "high/medium/low"}
        ],
        "marketSizeFound": "Exact figures from the search results or 'not found'",
        "marketGrowthRate": "Percentage from the search results or 'not found'",
        "trendSignals": ["List of trend keywords found"],
        "similarOnProductHunt": %d,
        "similarOnGithub": %d,
        "problemValidated": %t
    },
    "thinking": {
        "whatThisIs": "Description of the project",
        "isTheProblemReal": "Yes/No + explanation grounded in the search results",
        "competitorComparison": "Comparison against found competitors (name names!)",
        "marketTiming": "Is the timing right? Based on the trends"
    },
    "scoring": {
        "innovationBreakdown": {
            "noveltyVsCompetitors": {"points": 0, "reason": "Explanation"},
            "technicalApproach": {"points": 0, "reason": "Explanation"},
            "differentiation": {"points": 0, "reason": "Explanation"}
        },
        "marketBreakdown": {
            "marketSize": {"points": 0, "reason": "Based on the TAM found"},
            "growthRate": {"points": 0, "reason": "Based on the %% found"},
            "competitiveLandscape": {"points": 0, "reason": "Based on # of competitors"},
            "businessModel": {"points": 0, "reason": "Explanation"}
        }
    },
    "innovationScore": {
        "score": 65,
        "reasoning": "Detailed explanation referencing the search results",
        "improvements": "Concrete suggestions"
    },
    "marketScore": {
        "score": 60,
        "reasoning": "Detailed explanation referencing the search results",
        "improvements": "Concrete suggestions"
    },
    "strengths": [
        {"title": "Strength", "description": "Based on the research"}
    ],
    "concerns": [
        {"issue": "Concern", "suggestion": "Fix"}
    ],
    "nextSteps": [
        {"priority": "URGENT", "action": "Action", "impact": "Impact"}
    ],
    "verdict": "EXCEPTIONAL/STRONG POTENTIAL/PROMISING/NEEDS WORK/EARLY STAGE",
    "investorSignal": "HIGH/MEDIUM/LOW",
    "recommendation": "2-3 sentence conclusion"
}

IMPORTANT: Use ONLY information from the search results. Be specific with names and figures.`,
		compiled.TotalResults,
		len(compiled.Startups.ProductHunt),
		len(compiled.Startups.Github),
		compiled.Problem.Validated,
	)

	return b.String()
}

// writeSearchContext 把各类别的头部结果原文写进上下文
// 截取规则：竞品 8 条、公司名 15 个、市场/趋势/创业库各 5 条、问题验证 3 条
func writeSearchContext(b *strings.Builder, compiled *domain.CompiledSignals) {
	fmt.Fprintf(b, "\n--- COMPETITORS (%d results) ---\n", len(compiled.Competitors.Results))
	fmt.Fprintf(b, "Companies found: %s\n", strings.Join(head(compiled.Competitors.Companies, 15), ", "))
	for i, r := range headResults(compiled.Competitors.Results, 8) {
		fmt.Fprintf(b, "%d. %s\n   %s\n", i+1, r.Title, snippetSlice(r.Snippet))
	}

	fmt.Fprintf(b, "\n--- MARKET SIZE (%d results) ---\n", len(compiled.MarketSize.Results))
	fmt.Fprintf(b, "Figures found: %s\n", joinOr(head(compiled.MarketSize.Numbers, 5), "none"))
	fmt.Fprintf(b, "Growth rates: %s\n", joinOr(head(compiled.MarketSize.Growth, 5), "none"))
	for i, r := range headResults(compiled.MarketSize.Results, 5) {
		fmt.Fprintf(b, "%d. %s\n   %s\n", i+1, r.Title, snippetSlice(r.Snippet))
	}

	fmt.Fprintf(b, "\n--- TRENDS (%d results) ---\n", len(compiled.Trends.Results))
	fmt.Fprintf(b, "Trend signals: %s\n", joinOr(compiled.Trends.Keywords, "none"))
	for i, r := range headResults(compiled.Trends.Results, 5) {
		fmt.Fprintf(b, "%d. %s\n   %s\n", i+1, r.Title, snippetSlice(r.Snippet))
	}

	fmt.Fprintf(b, "\n--- STARTUP DATABASES ---\n")
	fmt.Fprintf(b, "ProductHunt matches: %d\n", len(compiled.Startups.ProductHunt))
	fmt.Fprintf(b, "GitHub matches: %d\n", len(compiled.Startups.Github))
	for i, r := range headResults(compiled.Startups.Results, 5) {
		tag := "other"
		if strings.Contains(r.URL, "producthunt") {
			tag = "PH"
		} else if strings.Contains(r.URL, "github") {
			tag = "GH"
		}
		fmt.Fprintf(b, "%d. %s (%s)\n", i+1, r.Title, tag)
	}

	fmt.Fprintf(b, "\n--- PROBLEM VALIDATION ---\n")
	validated := "UNCERTAIN"
	if compiled.Problem.Validated {
		validated = "YES"
	}
	fmt.Fprintf(b, "Problem validated: %s\n", validated)
	for i, r := range headResults(compiled.Problem.Results, 3) {
		fmt.Fprintf(b, "%d. %s\n", i+1, snippetSlice(r.Snippet))
	}
}

func head(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[:n]
}

func headResults(list []domain.SearchResult, n int) []domain.SearchResult {
	if len(list) <= n {
		return list
	}
	return list[:n]
}

func snippetSlice(s string) string {
	runes := []rune(s)
	if len(runes) <= 200 {
		return s
	}
	return string(runes[:200])
}

func joinOr(list []string, fallback string) string {
	if len(list) == 0 {
		return fallback
	}
	return strings.Join(list, ", ")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
