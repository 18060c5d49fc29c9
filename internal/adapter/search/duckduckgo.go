package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"startup-judge/internal/common"
	"startup-judge/internal/domain"
)

const defaultDuckDuckGoURL = "https://api.duckduckgo.com/"

// DuckDuckGoClient 免费的兜底搜索后端（Instant Answer API）
type DuckDuckGoClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewDuckDuckGoClient() *DuckDuckGoClient {
	return &DuckDuckGoClient{
		baseURL: defaultDuckDuckGoURL,
		httpClient: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
}

type ddgTopic struct {
	Text     string     `json:"Text"`
	FirstURL string     `json:"FirstURL"`
	Topics   []ddgTopic `json:"Topics"`
}

type ddgResponse struct {
	Heading       string     `json:"Heading"`
	AbstractText  string     `json:"AbstractText"`
	AbstractURL   string     `json:"AbstractURL"`
	RelatedTopics []ddgTopic `json:"RelatedTopics"`
}

// Search 提取摘要结果 + 最多 8 条相关主题（每条再取最多 3 条子主题）
// 标题截断到 80 字符
func (c *DuckDuckGoClient) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, common.WrapError(common.ErrCodeSearchAPI, "构造请求失败", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, common.WrapError(common.ErrCodeSearchAPI, "DuckDuckGo 请求失败", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, common.NewError(common.ErrCodeSearchAPI, fmt.Sprintf("DuckDuckGo 返回状态码 %d", resp.StatusCode))
	}

	var body ddgResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, common.WrapError(common.ErrCodeSearchAPI, "解析 DuckDuckGo 响应失败", err)
	}

	var results []domain.SearchResult
	if body.AbstractText != "" {
		title := body.Heading
		if title == "" {
			title = "DuckDuckGo Abstract"
		}
		results = append(results, domain.SearchResult{
			Title:   title,
			Snippet: body.AbstractText,
			URL:     body.AbstractURL,
			Source:  "duckduckgo_abstract",
		})
	}

	topics := body.RelatedTopics
	if len(topics) > 8 {
		topics = topics[:8]
	}
	for _, topic := range topics {
		if topic.Text != "" {
			results = append(results, domain.SearchResult{
				Title:   truncate(topic.Text, 80),
				Snippet: topic.Text,
				URL:     topic.FirstURL,
				Source:  "duckduckgo",
			})
		}
		// 只展开一层子主题
		subs := topic.Topics
		if len(subs) > 3 {
			subs = subs[:3]
		}
		for _, sub := range subs {
			if sub.Text == "" {
				continue
			}
			results = append(results, domain.SearchResult{
				Title:   truncate(sub.Text, 80),
				Snippet: sub.Text,
				URL:     sub.FirstURL,
				Source:  "duckduckgo_sub",
			})
		}
	}

	return results, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
