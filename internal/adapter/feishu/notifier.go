package feishu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"startup-judge/internal/common"
	"startup-judge/internal/domain"
)

type Notifier struct {
	webhookURL string
}

func NewNotifier(webhook string) *Notifier {
	if webhook == "" {
		log.Println("⚠️ 警告: 飞书 Webhook 为空，推送功能将无法工作！")
	}
	return &Notifier{webhookURL: webhook}
}

// Notify 把评审结论做成飞书卡片推送 (Schema 2.0)
func (n *Notifier) Notify(ctx context.Context, result *domain.EvaluationResult) error {
	if n.webhookURL == "" {
		return fmt.Errorf("Webhook URL 为空")
	}

	// 1. 准备标题
	title := fmt.Sprintf("🏆 评审完成: %s (%s)", result.ProjectTitle, result.OverallRating.Verdict)

	// 2. 构造 Markdown 内容
	mdContent := fmt.Sprintf(`**💡 创新分:** %d/100  |  **📈 市场分:** %d/100  |  **总分:** %d/100
**🎯 裁决:** %s  |  **💰 投资信号:** %s

**🔍 调研规模:** %d 条查询, %d 条结果

**🤖 结论:**
%s
`,
		result.InnovationScore.Score, result.MarketPotentialScore.Score, result.OverallRating.Score,
		result.OverallRating.Verdict, result.OverallRating.InvestorSignal,
		result.SearchStats.TotalQueries, result.SearchStats.TotalResults,
		result.Recommendation)

	// 3. 构造 Schema 2.0 JSON 结构
	payload := map[string]interface{}{
		"msg_type": "interactive",
		"card": map[string]interface{}{
			"schema": "2.0",
			"config": map[string]interface{}{
				"update_multi": true,
			},
			"header": map[string]interface{}{
				"title": map[string]interface{}{
					"tag":     "plain_text",
					"content": title,
				},
				"template": "blue",
			},
			"body": map[string]interface{}{
				"direction": "vertical",
				"elements": []map[string]interface{}{
					{
						"tag":       "markdown",
						"content":   mdContent,
						"text_size": "normal",
					},
				},
			},
		},
	}

	// 4. 发送请求 (带重试机制)
	body, _ := json.Marshal(payload)
	err := common.Do(ctx, func() error {
		resp, postErr := http.Post(n.webhookURL, "application/json", bytes.NewBuffer(body))
		if postErr != nil {
			return postErr
		}
		defer resp.Body.Close()

		if resp.StatusCode != 200 {
			return fmt.Errorf("飞书 API 报错: 状态码 %d", resp.StatusCode)
		}
		return nil
	},
		common.WithMaxRetries(3),
		common.WithInitialDelay(500*time.Millisecond),
	)
	if err != nil {
		return common.WrapError(common.ErrCodeNotification, "发送请求失败", err)
	}

	return nil
}
