package main

import (
	"context"
	"fmt"
	"os"

	"startup-judge/internal/adapter/planner"
	"startup-judge/internal/adapter/search"
)

// 调试工具：对一条查询跑两档搜索后端，打印归一化后的结果
func main() {
	if len(os.Args) < 2 {
		fmt.Println("用法: debug <查询串>")
		return
	}
	query := os.Args[1]

	ctx := context.Background()

	fmt.Printf("🔍 调试模式：查询 %q\n", query)
	fmt.Printf("🔑 提取关键词: %q\n", planner.ExtractKeywords(query))
	fmt.Printf("🏷️ 行业识别: %s\n", planner.DetectIndustry(query))

	serperKey := os.Getenv("SERPER_API_KEY")
	provider := search.NewProvider(serperKey)
	fmt.Printf("🔧 生效搜索源: %s\n\n", provider.Source())

	results, err := provider.Search(ctx, query)
	if err != nil {
		fmt.Printf("❌ 搜索失败: %v\n", err)
		return
	}

	if len(results) == 0 {
		fmt.Println("📭 没有拿到任何结果")
		return
	}

	fmt.Printf("✅ 共 %d 条结果:\n\n", len(results))
	for i, r := range results {
		fmt.Printf("#%d [%s] %s\n", i+1, r.Source, r.Title)
		if r.Snippet != "" {
			snippet := r.Snippet
			if len(snippet) > 120 {
				snippet = snippet[:120] + "..."
			}
			fmt.Printf("    %s\n", snippet)
		}
		if r.URL != "" {
			fmt.Printf("    %s\n", r.URL)
		}
		fmt.Println()
	}
}
