package search

import (
	"context"
	"log"

	"startup-judge/internal/domain"
)

// Provider 两级搜索提供方：有 Serper key 时先走主后端，
// 任何错误都降级到 DuckDuckGo；两边都失败时返回空列表，绝不向调用方抛错。
// 主后端成功即短路，两个后端不会同时为同一条查询服务。
type Provider struct {
	primary  *SerperClient
	fallback *DuckDuckGoClient
}

// NewProvider 根据凭据是否存在决定主后端是否启用
func NewProvider(serperKey string) *Provider {
	p := &Provider{
		fallback: NewDuckDuckGoClient(),
	}
	if serperKey != "" {
		p.primary = NewSerperClient(serperKey)
	}
	return p
}

// Search 实现 port.Searcher；错误只记日志，返回值永远可用
func (p *Provider) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	if p.primary != nil {
		results, err := p.primary.Search(ctx, query)
		if err == nil {
			return results, nil
		}
		log.Printf("[Search] ⚠️ 主后端失败，降级到 DuckDuckGo: %v", err)
	}

	results, err := p.fallback.Search(ctx, query)
	if err != nil {
		log.Printf("[Search] ⚠️ DuckDuckGo 也失败了: %v", err)
		return nil, nil
	}
	return results, nil
}

// Source 返回生效的搜索源标签（按配置，不按单次查询的实际走向）
func (p *Provider) Source() string {
	if p.primary != nil {
		return "Google (Serper)"
	}
	return "DuckDuckGo"
}
