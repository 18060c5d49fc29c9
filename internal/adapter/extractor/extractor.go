package extractor

import (
	"regexp"
	"strings"

	"startup-judge/internal/domain"
)

// Compile 单次遍历全部打标结果，按类别分桶并抽取信号
// 这里的启发式刻意“粗糙”（公司名误报、子串匹配等），评分依赖这些精确的
// 计数行为，不要提高精度
func Compile(all []domain.SearchResult) *domain.CompiledSignals {
	compiled := &domain.CompiledSignals{}
	seen := map[string]struct{}{}

	for _, r := range all {
		text := strings.ToLower(r.Title + " " + r.Snippet)

		switch r.Category {
		case domain.CategoryCompetitors:
			compiled.Competitors.Results = append(compiled.Competitors.Results, r)
			for _, name := range ExtractCompanyNames(r.Title) {
				if _, dup := seen[name]; dup {
					continue
				}
				seen[name] = struct{}{}
				compiled.Competitors.Companies = append(compiled.Competitors.Companies, name)
			}

		case domain.CategoryExactMatch:
			compiled.ExactMatch.Results = append(compiled.ExactMatch.Results, r)
			if len(text) > 50 {
				compiled.ExactMatch.Found = true
			}

		case domain.CategoryMarketSize:
			compiled.MarketSize.Results = append(compiled.MarketSize.Results, r)
			compiled.MarketSize.Numbers = append(compiled.MarketSize.Numbers, currencyRe.FindAllString(text, -1)...)
			compiled.MarketSize.Growth = append(compiled.MarketSize.Growth, percentRe.FindAllString(text, -1)...)

		case domain.CategoryTrends:
			compiled.Trends.Results = append(compiled.Trends.Results, r)
			// 子串包含即命中（"expanding" 藏在长词里也算）
			for _, kw := range trendVocabulary {
				if strings.Contains(text, kw) {
					compiled.Trends.Keywords = append(compiled.Trends.Keywords, kw)
				}
			}

		case domain.CategoryStartups:
			compiled.Startups.Results = append(compiled.Startups.Results, r)
			if strings.Contains(r.URL, "producthunt") {
				compiled.Startups.ProductHunt = append(compiled.Startups.ProductHunt, r)
			}
			if strings.Contains(r.URL, "github") {
				compiled.Startups.Github = append(compiled.Startups.Github, r)
			}

		case domain.CategoryProblem:
			compiled.Problem.Results = append(compiled.Problem.Results, r)
			if len(r.Snippet) > 100 {
				compiled.Problem.Validated = true
			}

		case domain.CategoryUniqueness:
			compiled.Uniqueness.Results = append(compiled.Uniqueness.Results, r)
			// 流式判定：插入时刻累计 <3 条就置真，之后不回退
			if len(compiled.Uniqueness.Results) < 3 {
				compiled.Uniqueness.Validated = true
			}
		}
	}

	compiled.Competitors.Count = len(compiled.Competitors.Companies)
	compiled.TotalResults = len(all)
	return compiled
}

// 趋势词表：固定 6 词
var trendVocabulary = []string{"growing", "declining", "emerging", "booming", "shrinking", "expanding"}

// 货币金额 / 百分比（作用于小写化文本，所以提取结果是小写的）
var (
	currencyRe = regexp.MustCompile(`\$[\d,.]+\s*(billion|million|b|m|trillion|t)`)
	percentRe  = regexp.MustCompile(`\d+(\.\d+)?\s*%`)
)

// 公司名分词的分隔符和排除词表
var (
	companySplitRe  = regexp.MustCompile(`[\s\-\|:,/]+`)
	companyCleanRe  = regexp.MustCompile(`[^a-zA-Z0-9]`)
	companyExcluded = map[string]struct{}{
		"The": {}, "And": {}, "For": {}, "How": {}, "What": {}, "Best": {},
		"Top": {}, "New": {}, "Your": {}, "Why": {}, "Are": {}, "This": {},
		"That": {}, "With": {}, "From": {}, "Can": {}, "Will": {}, "All": {},
		"Get": {}, "Find": {}, "See": {}, "Our": {}, "Most": {}, "More": {},
		"One": {}, "Way": {}, "Use": {},
	}
)

// ExtractCompanyNames 从标题里挑出长得像公司名的词：
// 大写开头、长度在 (2,20)、去符号后仍长于 2、不在常见大写词排除表里。
// 误报是预期内的
func ExtractCompanyNames(title string) []string {
	var names []string
	for _, word := range companySplitRe.Split(title, -1) {
		if len(word) <= 2 || len(word) >= 20 {
			continue
		}
		if word[0] < 'A' || word[0] > 'Z' {
			continue
		}
		clean := companyCleanRe.ReplaceAllString(word, "")
		if len(clean) <= 2 {
			continue
		}
		if _, excluded := companyExcluded[clean]; excluded {
			continue
		}
		names = append(names, clean)
	}
	return names
}
