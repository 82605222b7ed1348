package dialog

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"mamafit-chatbot/internal/session"
)

// DefaultConfidenceThreshold gates whether the classifier's intent is
// trusted at all for a turn.
const DefaultConfidenceThreshold = 0.45

// TurnResult is the outcome of one processed customer message.
type TurnResult struct {
	DetectedIntent  string            `json:"detected_intent"`
	Confidence      float64           `json:"confidence"`
	Reason          string            `json:"reason"`
	UsedIntent      Intent            `json:"used_intent"`
	Reply           string            `json:"reply,omitempty"`
	OriginalMessage string            `json:"original_message"`
	OrderInfo       session.OrderInfo `json:"order_info"`
	ImageURL        string            `json:"image_url,omitempty"`
	ManualMode      bool              `json:"manual_mode,omitempty"`
}

// Engine resolves customer intent per turn: classifier first, then the
// deterministic override pipeline, then reply rendering.
type Engine struct {
	classifier Classifier
	responder  SmartResponder
	sessions   *session.Store
	replies    ReplyTable
	images     ProductImages
	threshold  float64
}

func NewEngine(classifier Classifier, responder SmartResponder, sessions *session.Store, replies ReplyTable, images ProductImages, threshold float64) *Engine {
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	return &Engine{
		classifier: classifier,
		responder:  responder,
		sessions:   sessions,
		replies:    replies,
		images:     images,
		threshold:  threshold,
	}
}

// ProcessTurn runs one turn for a user. The session lock is held for
// the whole turn so messages from the same user are strictly serialized.
// Nothing escapes: collaborator failures degrade and internal panics
// become a turn-level fallback result.
func (e *Engine) ProcessTurn(ctx context.Context, message, userID string) (result TurnResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[turn] recovered processing message for %s: %v", userID, r)
			result = TurnResult{
				DetectedIntent:  "none",
				Reason:          fmt.Sprintf("Error: %v", r),
				UsedIntent:      IntentFallback,
				Reply:           e.replies.Reply(IntentFallback),
				OriginalMessage: message,
			}
		}
	}()

	sess := e.sessions.GetOrCreate(userID)
	sess.Lock()
	defer sess.Unlock()

	if sess.ManualMode {
		return TurnResult{
			DetectedIntent:  string(IntentManualMode),
			Confidence:      1.0,
			Reason:          "user is in manual mode - admin handling required",
			UsedIntent:      IntentManualMode,
			OriginalMessage: message,
			OrderInfo:       sess.OrderSnapshot(),
			ManualMode:      true,
		}
	}

	classified := e.classifier.Classify(ctx, ClassifyInput{
		Message:    message,
		LastIntent: Intent(sess.LastIntent),
		History:    sess.RecentHistory(),
	})

	used := IntentSmartFallback
	if classified.Confidence >= e.threshold && classified.Intent != "none" {
		used = Intent(classified.Intent)
	}

	used = e.runPipeline(message, sess, used, classified)
	used = e.persistOrderState(message, sess, used)

	reply := e.renderReply(ctx, used, message, sess)
	imageURL := e.resolveImage(used, message)

	sess.AppendTurn(session.Turn{Role: "user", Content: message, Intent: string(used)})
	if reply != "" {
		sess.AppendTurn(session.Turn{Role: "bot", Content: reply, Intent: string(used)})
	}
	sess.LastIntent = string(used)
	sess.LastMessage = message

	return TurnResult{
		DetectedIntent:  classified.Intent,
		Confidence:      classified.Confidence,
		Reason:          classified.Reason,
		UsedIntent:      used,
		Reply:           reply,
		OriginalMessage: message,
		OrderInfo:       sess.OrderSnapshot(),
		ImageURL:        imageURL,
	}
}

// runPipeline applies the override stages in order; the last effective
// replacement wins. An image match suppresses the address stage for the
// turn.
func (e *Engine) runPipeline(message string, sess *session.Session, used Intent, classified Classification) Intent {
	skipAddress := false
	for _, st := range pipelineStages {
		if st.name == "address-continuation" && skipAddress {
			continue
		}
		out := st.run(turnContext{
			message:    message,
			current:    used,
			lastIntent: Intent(sess.LastIntent),
			classified: classified,
		})
		if out.skipAddress {
			skipAddress = true
		}
		if out.replace {
			used = out.intent
			applyPatch(sess, out.patch)
		}
	}
	return used
}

func applyPatch(sess *session.Session, p statePatch) {
	if p.setColors {
		sess.Order.Colors = p.colors
		sess.Order.TotalQuantity = p.totalQty
	}
	if p.size != "" {
		sess.Order.Size = p.size
	}
	if p.address != nil {
		sess.Order.AddressInfo = p.address
	}
}

// persistOrderState applies intent-specific persistence after the
// pipeline settles. A bare size with a quantity already on file is
// promoted to a confirmed order.
func (e *Engine) persistOrderState(message string, sess *session.Session, used Intent) Intent {
	switch used {
	case IntentColorWithQuantity, IntentColorMultiple:
		info := ExtractColorQuantity(message)
		sess.Order.Colors = info.Colors
		sess.Order.TotalQuantity = info.TotalQuantity
	case IntentSizeAfterColorQuantity:
		if size := ExtractSize(message); size != "" {
			sess.Order.Size = size
		}
	case IntentSizeOnly:
		if size := ExtractSize(message); size != "" {
			sess.Order.Size = size
			if sess.Order.TotalQuantity > 0 {
				return IntentOrderConfirm
			}
		}
	case IntentAddressReceived:
		if sess.Order.AddressInfo == nil {
			info := ExtractAddress(message)
			sess.Order.AddressInfo = &info
		}
	}
	return used
}

func (e *Engine) renderReply(ctx context.Context, used Intent, message string, sess *session.Session) string {
	if used == IntentSmartFallback {
		return e.responder.Respond(ctx, message)
	}
	reply := e.replies.Reply(used)
	switch used {
	case IntentOrderConfirm, IntentSizeAfterColorQuantity:
		price := CalculatePrice(sess.Order.TotalQuantity)
		reply = strings.ReplaceAll(reply, "[สี]", formatColors(sess.Order.Colors))
		reply = strings.ReplaceAll(reply, "[ไซส์]", sess.Order.Size)
		reply = strings.ReplaceAll(reply, "[จำนวน]", strconv.Itoa(sess.Order.TotalQuantity))
		reply = strings.ReplaceAll(reply, "[ยอด]", strconv.Itoa(price.Total))
	case IntentAddressReceived:
		if ai := sess.Order.AddressInfo; ai != nil {
			reply = strings.ReplaceAll(reply, "[ชื่อ]", ai.Name)
			reply = strings.ReplaceAll(reply, "[ที่อยู่]", ai.Address)
			reply = strings.ReplaceAll(reply, "[เบอร์]", ai.Phone)
		}
	case IntentSizeRecommendation:
		suggestion := "💡 กรุณาแจ้งรอบเอวปัจจุบันของคุณ จะได้แนะนำไซส์ที่เหมาะสมค่ะ"
		if waist, ok := ExtractWaist(message); ok {
			suggestion = SuggestSizeByWaist(waist)
		}
		reply = strings.ReplaceAll(reply, "[size_suggestion]", suggestion)
	}
	return reply
}

func formatColors(colors []session.ColorQuantity) string {
	parts := make([]string, 0, len(colors))
	for _, c := range colors {
		parts = append(parts, fmt.Sprintf("%s %d ตัว", c.Color, c.Quantity))
	}
	return strings.Join(parts, ", ")
}

// resolveImage picks the image URL for intents flagged image_required.
func (e *Engine) resolveImage(used Intent, message string) string {
	tmpl, ok := e.replies[used]
	if !ok || !tmpl.ImageRequired {
		return ""
	}
	switch tmpl.ImageType {
	case "product_catalog":
		return e.images.ProductCatalog
	case "size_chart":
		return e.images.SizeChart
	}
	switch used {
	case IntentShowProductImage:
		for _, color := range colorTokens {
			if strings.Contains(message, color) {
				if url, ok := e.images.ByColor[color]; ok {
					return url
				}
			}
		}
		if len(e.images.ByColor) > 0 {
			keys := make([]string, 0, len(e.images.ByColor))
			for k := range e.images.ByColor {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			return e.images.ByColor[keys[0]]
		}
	case IntentShowSizeChart:
		return e.images.SizeChart
	case IntentShowCatalog:
		return e.images.ProductCatalog
	}
	return ""
}

// ResetManualMode clears the manual flag; false when no session exists.
func (e *Engine) ResetManualMode(userID string) bool {
	return e.sessions.ResetManualMode(userID)
}

// ManualModeStatus reports the manual flag for a user.
func (e *Engine) ManualModeStatus(userID string) bool {
	return e.sessions.ManualModeStatus(userID)
}
