package dialog

import (
	"context"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// SmartResponder produces a free-form, business-fact-scoped reply when
// no structured intent applies. Implementations must never fail upward;
// on any error they return a static apology.
type SmartResponder interface {
	Respond(ctx context.Context, message string) string
}

const smartFallbackApology = "ขออภัยค่ะ ขณะนี้ระบบขัดข้องชั่วคราว รบกวนสอบถามใหม่อีกครั้งนะคะ 🙏"

// OpenAISmartResponder answers with a second, tightly constrained
// generation request scoped to the business facts.
type OpenAISmartResponder struct {
	client *openai.Client
	model  string
	facts  string
}

func NewOpenAISmartResponder(client *openai.Client, model string, facts string) *OpenAISmartResponder {
	return &OpenAISmartResponder{client: client, model: model, facts: facts}
}

func (r *OpenAISmartResponder) Respond(ctx context.Context, message string) string {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var b strings.Builder
	b.WriteString("คุณเป็นแอดมินร้านกางเกงคนท้อง ตอบลูกค้าด้วยความสุภาพ ลงท้ายด้วยค่ะ\n")
	b.WriteString("ตอบโดยอ้างอิงจากข้อมูลธุรกิจต่อไปนี้เท่านั้น:\n")
	b.WriteString(r.facts)
	b.WriteString("\nถ้าคำถามไม่เกี่ยวกับร้านหรือสินค้า ให้ตอบว่า \"ขออภัยค่ะ แอดมินตอบได้เฉพาะเรื่องสินค้าของร้านนะคะ\"\n")
	b.WriteString("ตอบสั้นๆ ไม่เกิน 1-2 ประโยคเท่านั้น\n")

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.model,
		Temperature: 0.7,
		MaxTokens:   150,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: b.String()},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		return smartFallbackApology
	}
	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return smartFallbackApology
	}
	return reply
}
