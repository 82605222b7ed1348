package dialog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mamafit-chatbot/internal/session"
)

func TestParseClassification(t *testing.T) {
	t.Parallel()

	t.Run("plain JSON", func(t *testing.T) {
		got := parseClassification(`{"intent": "greeting", "confidence": 0.92, "reason": "ทักทาย"}`)
		assert.Equal(t, "greeting", got.Intent)
		assert.InDelta(t, 0.92, got.Confidence, 0.001)
		assert.Equal(t, "ทักทาย", got.Reason)
	})

	t.Run("json fenced block", func(t *testing.T) {
		raw := "```json\n{\"intent\": \"price\", \"confidence\": 0.8, \"reason\": \"ถามราคา\"}\n```"
		got := parseClassification(raw)
		assert.Equal(t, "price", got.Intent)
	})

	t.Run("bare fenced block", func(t *testing.T) {
		raw := "```\n{\"intent\": \"color\", \"confidence\": 0.7, \"reason\": \"สี\"}\n```"
		got := parseClassification(raw)
		assert.Equal(t, "color", got.Intent)
	})

	t.Run("malformed JSON degrades to none", func(t *testing.T) {
		got := parseClassification("ขอโทษค่ะ ไม่สามารถวิเคราะห์ได้")
		assert.Equal(t, "none", got.Intent)
		assert.Zero(t, got.Confidence)
		assert.True(t, strings.HasPrefix(got.Reason, "Error: "))
	})

	t.Run("missing intent field degrades", func(t *testing.T) {
		got := parseClassification(`{"confidence": 0.9, "reason": "x"}`)
		assert.Equal(t, "none", got.Intent)
		assert.Zero(t, got.Confidence)
	})
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	table := ReplyTable{
		IntentFallback: {Description: "สำรอง", Reply: "ขอบคุณค่ะ"},
		IntentGreeting: {Description: "ทักทาย", Reply: "สวัสดีค่ะ"},
	}
	c := NewOpenAIClassifier(nil, "gpt-4o-mini", table, "ร้านกางเกงคนท้อง MamaFit")

	t.Run("prior color turn adds continuation hint", func(t *testing.T) {
		prompt := c.buildPrompt(ClassifyInput{
			Message:    "M",
			LastIntent: IntentColorWithQuantity,
		})
		assert.Contains(t, prompt, "size_after_color_quantity")
		assert.Contains(t, prompt, "ห้ามเลือก size_only")
	})

	t.Run("no hint without color context", func(t *testing.T) {
		prompt := c.buildPrompt(ClassifyInput{Message: "M", LastIntent: IntentGreeting})
		assert.NotContains(t, prompt, "ห้ามเลือก size_only")
	})

	t.Run("includes facts history and intents", func(t *testing.T) {
		prompt := c.buildPrompt(ClassifyInput{
			Message: "สนใจค่ะ",
			History: []session.Turn{
				{Role: "user", Content: "สวัสดี"},
				{Role: "assistant", Content: "สวัสดีค่ะ"},
			},
		})
		assert.Contains(t, prompt, "MamaFit")
		assert.Contains(t, prompt, "USER: สวัสดี")
		assert.Contains(t, prompt, "- greeting: ทักทาย")
		require.NotContains(t, prompt, "- fallback:")
	})
}
