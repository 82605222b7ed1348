package dialog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"mamafit-chatbot/internal/session"
)

// Classification is the classifier's candidate intent for one message.
// Produced fresh each turn, never persisted beyond the turn result.
type Classification struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// ClassifyInput carries the message plus the conversational context the
// model is allowed to see.
type ClassifyInput struct {
	Message    string
	LastIntent Intent
	History    []session.Turn
}

// Classifier resolves a candidate intent for a message. Implementations
// must degrade internally: any failure yields the "none" classification
// with confidence 0, never an error surfaced to the pipeline.
type Classifier interface {
	Classify(ctx context.Context, in ClassifyInput) Classification
}

// OpenAIClassifier classifies through a chat-completion call.
type OpenAIClassifier struct {
	client *openai.Client
	model  string
	table  ReplyTable
	facts  string
}

func NewOpenAIClassifier(client *openai.Client, model string, table ReplyTable, facts string) *OpenAIClassifier {
	return &OpenAIClassifier{client: client, model: model, table: table, facts: facts}
}

func (c *OpenAIClassifier) Classify(ctx context.Context, in ClassifyInput) Classification {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.3,
		MaxTokens:   200,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "คุณเป็น AI ที่ช่วยวิเคราะห์ intent ของข้อความ ตอบเป็น JSON เท่านั้น"},
			{Role: openai.ChatMessageRoleUser, Content: c.buildPrompt(in)},
		},
	})
	if err != nil {
		return degradedClassification(err)
	}
	if len(resp.Choices) == 0 {
		return degradedClassification(errors.New("no choices"))
	}
	return parseClassification(resp.Choices[0].Message.Content)
}

// buildPrompt embeds business facts, the available intents, the
// prior-turn hint and a compact transcript into a single prompt.
func (c *OpenAIClassifier) buildPrompt(in ClassifyInput) string {
	var b strings.Builder
	b.WriteString("คุณเป็น AI ที่ช่วยวิเคราะห์ความตั้งใจ (intent) ของข้อความลูกค้าในร้านกางเกงคนท้อง\n")
	if c.facts != "" {
		b.WriteString("\nข้อมูลธุรกิจ:\n")
		b.WriteString(c.facts)
		b.WriteString("\n")
	}
	b.WriteString("\nสีที่มีจำหน่าย: ดำ, ขาว, ครีม, ชมพู, ฟ้า, เทา, โกโก้, กรม\nไซส์ที่มี: M, L, XL, XXL\n")

	if in.LastIntent == IntentColorWithQuantity || in.LastIntent == IntentColorMultiple {
		fmt.Fprintf(&b, "\n🚨 บริบทสำคัญ: ลูกค้าเพิ่งแจ้งสี+จำนวนในข้อความก่อนหน้านี้แล้ว (intent: %s)\n", in.LastIntent)
		b.WriteString("ดังนั้นถ้าข้อความปัจจุบันเป็นไซส์เดียว (M, L, XL, XXL) ต้องเลือก size_after_color_quantity\n")
		b.WriteString("ห้ามเลือก size_only เด็ดขาด เพราะลูกค้าแจ้งจำนวนไปแล้ว\n")
	}

	if len(in.History) > 0 {
		b.WriteString("\nบทสนทนาก่อนหน้า (role: content):\n")
		history := in.History
		if len(history) > session.MaxHistory {
			history = history[len(history)-session.MaxHistory:]
		}
		for _, t := range history {
			content := strings.ReplaceAll(strings.TrimSpace(t.Content), "\n\n", "\n")
			fmt.Fprintf(&b, "%s: %s\n", strings.ToUpper(t.Role), content)
		}
	}

	fmt.Fprintf(&b, "\nข้อความจากลูกค้า: %q\n", in.Message)

	b.WriteString("\nIntent ที่มีอยู่:\n")
	descriptions := c.table.Descriptions()
	names := make([]string, 0, len(descriptions))
	for intent := range descriptions {
		names = append(names, string(intent))
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "- %s: %s\n", name, descriptions[Intent(name)])
	}

	b.WriteString(`
กรุณาวิเคราะห์และตอบกลับในรูปแบบ JSON เท่านั้น:
{
  "intent": "ชื่อ intent ที่ตรงที่สุด หรือ 'none' ถ้าไม่ตรงอะไรเลย",
  "confidence": ระดับความมั่นใจ 0.0-1.0,
  "reason": "เหตุผลสั้นๆ ที่เลือก intent นี้"
}

หลักเกณฑ์:
- ถ้าไม่แน่ใจให้ใส่ "none" และ confidence ต่ำ
- วิเคราะห์จากความหมายโดยรวม ไม่ใช่แค่คำเดียว
`)
	return b.String()
}

// parseClassification expects strict JSON, optionally wrapped in a
// fenced code block which is stripped before parsing.
func parseClassification(raw string) Classification {
	text := stripCodeFence(strings.TrimSpace(raw))
	var c Classification
	if err := json.Unmarshal([]byte(text), &c); err != nil {
		return degradedClassification(err)
	}
	if c.Intent == "" {
		return degradedClassification(errors.New("missing intent field"))
	}
	return c
}

func stripCodeFence(s string) string {
	switch {
	case strings.HasPrefix(s, "```json"):
		s = strings.TrimPrefix(s, "```json")
	case strings.HasPrefix(s, "```"):
		s = strings.TrimPrefix(s, "```")
	default:
		return s
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func degradedClassification(err error) Classification {
	return Classification{Intent: "none", Confidence: 0.0, Reason: "Error: " + err.Error()}
}
