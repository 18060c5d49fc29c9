package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"startup-judge/internal/common"
	"startup-judge/internal/domain"
)

const defaultSerperURL = "https://google.serper.dev/search"

// SerperClient 主搜索后端（Serper 的 Google 搜索代理）
type SerperClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewSerperClient(apiKey string) *SerperClient {
	return &SerperClient{
		apiKey:  apiKey,
		baseURL: defaultSerperURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// serper 的响应结构（只取我们关心的字段）
type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"organic"`
	KnowledgeGraph *struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Website     string `json:"website"`
	} `json:"knowledgeGraph"`
}

// Search 执行一条查询，归一化为 SearchResult 列表
// 除了自然结果，还可能带回一条知识面板结果（source=google_kg）
func (c *SerperClient) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	payload, _ := json.Marshal(map[string]interface{}{
		"q":   query,
		"num": 10,
		"gl":  "us",
		"hl":  "en",
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, common.WrapError(common.ErrCodeSearchAPI, "构造请求失败", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, common.WrapError(common.ErrCodeSearchAPI, "Serper 请求失败", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, common.NewError(common.ErrCodeSearchAPI, fmt.Sprintf("Serper 返回状态码 %d", resp.StatusCode))
	}

	var body serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, common.WrapError(common.ErrCodeSearchAPI, "解析 Serper 响应失败", err)
	}

	var results []domain.SearchResult
	for _, r := range body.Organic {
		results = append(results, domain.SearchResult{
			Title:   r.Title,
			Snippet: r.Snippet,
			URL:     r.Link,
			Source:  "google",
		})
	}

	if kg := body.KnowledgeGraph; kg != nil {
		title := kg.Title
		if title == "" {
			title = "Knowledge Graph"
		}
		results = append(results, domain.SearchResult{
			Title:   title,
			Snippet: kg.Description,
			URL:     kg.Website,
			Source:  "google_kg",
		})
	}

	return results, nil
}
