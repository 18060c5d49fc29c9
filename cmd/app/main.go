package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"startup-judge/internal/adapter/feishu"
	"startup-judge/internal/adapter/gemini"
	"startup-judge/internal/adapter/github"
	"startup-judge/internal/adapter/scorer"
	"startup-judge/internal/adapter/search"
	"startup-judge/internal/domain"
	"startup-judge/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	// 1. 命令行参数
	input := flag.String("input", "", "项目提交 JSON 文件路径")
	paceMs := flag.Int("pace", 300, "查询间隔（毫秒）")
	timeoutMin := flag.Int("timeout", 3, "单次评审超时（分钟）")
	flag.Parse()

	// 2. 加载环境变量（.env 不存在也没关系）
	_ = godotenv.Load()

	if *input == "" {
		fmt.Println("⚠️ 请用 -input 指定提交文件")
		fmt.Println("例如: -input submission.json")
		fmt.Println(`文件格式: {"projectTitle": "...", "coreIdea": "...", "targetAudience": "...", ...}`)
		os.Exit(1)
	}

	sub, err := loadSubmission(*input)
	if err != nil {
		log.Fatalf("❌ 读取提交失败: %v", err)
	}
	if err := validateSubmission(sub); err != nil {
		log.Fatalf("❌ 提交内容不合法: %v", err)
	}

	// 3. 根据凭据装配组件（有 key 走 A 档，没有走 B 档）
	ctx := context.Background()

	searcher := search.NewProvider(os.Getenv("SERPER_API_KEY"))
	fmt.Printf("🔧 搜索源: %s\n", searcher.Source())

	cfg := service.Config{
		Searcher: searcher,
		Scouter:  github.NewScouter(os.Getenv("GITHUB_TOKEN")),
		Fallback: scorer.NewLocalAppraiser(),
		Pace:     time.Duration(*paceMs) * time.Millisecond,
	}

	if geminiKey := os.Getenv("GEMINI_API_KEY"); geminiKey != "" {
		appraiser, err := gemini.NewGeminiAppraiser(ctx, geminiKey)
		if err != nil {
			log.Printf("⚠️ AI 初始化失败，将使用本地评分: %v", err)
		} else {
			cfg.Appraiser = appraiser
		}
	} else {
		fmt.Println("🔧 未配置 GEMINI_API_KEY，使用本地确定性评分")
	}

	if webhook := os.Getenv("FEISHU_WEBHOOK"); webhook != "" {
		cfg.Notifier = feishu.NewNotifier(webhook)
	}

	// 4. 执行评审
	judge := service.NewJudgeService(cfg)

	evalCtx, cancel := context.WithTimeout(ctx, time.Duration(*timeoutMin)*time.Minute)
	defer cancel()

	result, err := judge.Evaluate(evalCtx, sub)
	if err != nil {
		log.Fatalf("❌ 评审失败: %v", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("❌ 序列化结果失败: %v", err)
	}
	fmt.Println(string(out))
}

// loadSubmission 从 JSON 文件读取提交
func loadSubmission(path string) (*domain.ProjectSubmission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sub domain.ProjectSubmission
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// validateSubmission 边界校验：三个必填字段非空即可，其余缺省按空串处理
func validateSubmission(sub *domain.ProjectSubmission) error {
	if sub.ProjectTitle == "" {
		return fmt.Errorf("projectTitle 不能为空")
	}
	if sub.CoreIdea == "" {
		return fmt.Errorf("coreIdea 不能为空")
	}
	if sub.TargetAudience == "" {
		return fmt.Errorf("targetAudience 不能为空")
	}
	return nil
}
