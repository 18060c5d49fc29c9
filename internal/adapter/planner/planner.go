package planner

import (
	"fmt"
	"regexp"
	"strings"

	"startup-judge/internal/domain"
)

// QueryBatch 一个调研阶段：类别标签 + 若干查询串
type QueryBatch struct {
	Category string
	Queries  []string
}

// Planner 把项目提交转换成固定的 7 个阶段查询批次
// 纯函数组件，无外部依赖
type Planner struct{}

func NewPlanner() *Planner {
	return &Planner{}
}

// 关键词提取的停用词表（含荷兰语条目）
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "for": {}, "to": {},
	"in": {}, "on": {}, "with": {}, "that": {}, "this": {}, "is": {}, "are": {},
	"de": {}, "het": {}, "een": {}, "en": {}, "van": {}, "voor": {},
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]`)

// ExtractKeywords 提取最多 4 个关键词：小写 → 去符号 → 分词 →
// 去停用词和长度 ≤3 的词 → 按输入顺序取前 4 个，用空格连接
func ExtractKeywords(text string) string {
	cleaned := nonAlnumRe.ReplaceAllString(strings.ToLower(text), "")
	var kept []string
	for _, w := range strings.Fields(cleaned) {
		if len(w) <= 3 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		kept = append(kept, w)
		if len(kept) == 4 {
			break
		}
	}
	return strings.Join(kept, " ")
}

// 行业匹配器：顺序即优先级，首个命中生效
var industryMatchers = []struct {
	re    *regexp.Regexp
	label string
}{
	{regexp.MustCompile(`ai|gpt|machine|automat|intelligent`), "AI/ML"},
	{regexp.MustCompile(`financ|pay|bank|crypto|invest|money`), "Fintech"},
	{regexp.MustCompile(`health|fit|medic|wellness|doctor`), "Healthtech"},
	{regexp.MustCompile(`learn|education|course|train|student`), "Edtech"},
	{regexp.MustCompile(`shop|store|ecommerce|retail|sell`), "E-commerce"},
	{regexp.MustCompile(`task|project|productiv|work|team`), "Productivity"},
	{regexp.MustCompile(`social|community|network|connect`), "Social"},
	{regexp.MustCompile(`video|content|creator|media`), "Creator Economy"},
	{regexp.MustCompile(`game|gaming|play`), "Gaming"},
	{regexp.MustCompile(`food|restaurant|delivery`), "FoodTech"},
}

// DetectIndustry 识别行业标签，无命中时落到 SaaS/Technology
func DetectIndustry(text string) string {
	t := strings.ToLower(text)
	for _, m := range industryMatchers {
		if m.re.MatchString(t) {
			return m.label
		}
	}
	return "SaaS/Technology"
}

// Plan 生成全部查询批次（20 条；填写了独特性字段时 22 条）
// 查询模板是外部契约的一部分，按字面保留
func (p *Planner) Plan(sub *domain.ProjectSubmission) []QueryBatch {
	idea := sub.CoreIdea
	problem := sub.ProblemSolved
	if problem == "" {
		problem = idea
	}
	audience := sub.TargetAudience
	uniqueness := sub.UniqueApproach
	industry := DetectIndustry(idea)
	keywords := ExtractKeywords(idea)
	problemKeywords := ExtractKeywords(problem)

	batches := []QueryBatch{
		{
			Category: domain.CategoryCompetitors,
			Queries: []string{
				fmt.Sprintf("%s competitors", idea),
				fmt.Sprintf("%s alternatives 2024", idea),
				fmt.Sprintf("best %s tools apps", keywords),
				fmt.Sprintf("%s vs comparison", keywords),
			},
		},
		{
			Category: domain.CategoryExactMatch,
			Queries: []string{
				fmt.Sprintf("%q startup", sub.ProjectTitle),
				fmt.Sprintf("%q", idea),
				fmt.Sprintf("%s app startup product", keywords),
			},
		},
		{
			Category: domain.CategoryMarketSize,
			Queries: []string{
				fmt.Sprintf("%s market size 2024", industry),
				fmt.Sprintf("%s TAM SAM SOM", industry),
				fmt.Sprintf("%s market opportunity billion", audience),
				fmt.Sprintf("%s industry revenue 2024", industry),
			},
		},
		{
			Category: domain.CategoryTrends,
			Queries: []string{
				fmt.Sprintf("%s trends 2024 2025", industry),
				fmt.Sprintf("%s growth forecast", industry),
				fmt.Sprintf("%s future outlook emerging", industry),
			},
		},
		{
			Category: domain.CategoryStartups,
			Queries: []string{
				fmt.Sprintf("site:producthunt.com %s", keywords),
				fmt.Sprintf("site:github.com %s", keywords),
				fmt.Sprintf("%s YC startup funding", keywords),
			},
		},
		{
			Category: domain.CategoryProblem,
			Queries: []string{
				fmt.Sprintf("%s problems challenges pain points", audience),
				fmt.Sprintf("why %s important needed", keywords),
				fmt.Sprintf("%s solution market need", problemKeywords),
			},
		},
	}

	if uniqueness != "" {
		batches = append(batches, QueryBatch{
			Category: domain.CategoryUniqueness,
			Queries: []string{
				fmt.Sprintf("%s %s", uniqueness, keywords),
				fmt.Sprintf("%s technology innovation", uniqueness),
			},
		})
	}

	return batches
}
