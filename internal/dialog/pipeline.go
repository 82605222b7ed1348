package dialog

import "mamafit-chatbot/internal/session"

// turnContext is the immutable view a stage operates on: the raw
// message, the intent as resolved so far, the prior-turn intent and the
// raw classifier output.
type turnContext struct {
	message    string
	current    Intent
	lastIntent Intent
	classified Classification
}

// statePatch is an order-state mutation requested by a stage. Colors
// and total quantity are applied together, as a wholesale overwrite.
type statePatch struct {
	setColors bool
	colors    []session.ColorQuantity
	totalQty  int
	size      string
	address   *session.AddressInfo
}

type stageOutcome struct {
	replace     bool
	intent      Intent
	patch       statePatch
	skipAddress bool
}

func noChange() stageOutcome { return stageOutcome{} }

func replaceWith(intent Intent) stageOutcome {
	return stageOutcome{replace: true, intent: intent}
}

type overrideStage struct {
	name string
	run  func(tc turnContext) stageOutcome
}

// lowConfidence gates the stage-5 keyword cascade: below it the
// classifier's opinion is not trusted against plain keyword evidence.
const lowConfidence = 0.5

// pipelineStages run in this exact order; a later stage's replacement
// always overrides an earlier one. The address stage is additionally
// skipped for the turn when an image stage matched.
var pipelineStages = []overrideStage{
	{"context-continuation", stageContextContinuation},
	{"completeness-promotion", stageCompletenessPromotion},
	{"size-recommendation", stageSizeRecommendation},
	{"price-inquiry", stagePriceInquiry},
	{"payment-resolution", stagePaymentResolution},
	{"greeting", stageGreeting},
	{"image-intent", stageImageIntent},
	{"address-continuation", stageAddressContinuation},
}

// A bare size right after a color+quantity turn continues the order
// instead of starting a new size-only exchange.
func stageContextContinuation(tc turnContext) stageOutcome {
	if tc.lastIntent != IntentColorWithQuantity && tc.lastIntent != IntentColorMultiple {
		return noChange()
	}
	if tc.current != IntentSizeOnly || !HasSizeToken(tc.message) {
		return noChange()
	}
	return replaceWith(IntentSizeAfterColorQuantity)
}

// Re-extracts entities from the raw message: color+quantity+size all in
// one message is a complete order regardless of what the classifier
// said, color+quantity without size stays at color_with_quantity.
func stageCompletenessPromotion(tc turnContext) stageOutcome {
	if tc.current != IntentColorWithQuantity && tc.current != IntentOrderConfirm {
		return noChange()
	}
	info := ExtractColorQuantity(tc.message)
	if info.TotalQuantity <= 0 {
		return noChange()
	}
	size := ExtractSize(tc.message)
	if size != "" {
		out := replaceWith(IntentOrderConfirm)
		out.patch = statePatch{setColors: true, colors: info.Colors, totalQty: info.TotalQuantity, size: size}
		return out
	}
	return replaceWith(IntentColorWithQuantity)
}

func stageSizeRecommendation(tc turnContext) stageOutcome {
	if containsAny(tc.message, usageContextPhrases) {
		return noChange()
	}
	_, hasWaist := ExtractWaist(tc.message)
	hasHeight := heightPattern.MatchString(tc.message)
	if !hasWaist && !hasHeight && !containsAny(tc.message, sizeAdvicePhrases) {
		return noChange()
	}
	return replaceWith(IntentSizeRecommendation)
}

func stagePriceInquiry(tc turnContext) stageOutcome {
	if !containsAny(tc.message, priceAskPhrases) {
		return noChange()
	}
	if hasColorToken(tc.message) || HasSizeToken(tc.message) {
		return noChange()
	}
	return replaceWith(IntentPrice)
}

// Payment resolution, in sub-order: exact politeness-suffixed replies
// win unconditionally, then the COD-surcharge inquiry, then a keyword
// cascade applied only when the classifier was not trusted anyway.
func stagePaymentResolution(tc turnContext) stageOutcome {
	switch {
	case containsAny(tc.message, codReplyPhrases):
		return replaceWith(IntentPaymentCOD)
	case containsAny(tc.message, transferReplyPhrases):
		return replaceWith(IntentPaymentTransfer)
	case containsAny(tc.message, codSurchargePhrases) && containsAny(tc.message, codWords):
		return replaceWith(IntentCODInquiry)
	case tc.current == IntentSmartFallback || tc.classified.Confidence < lowConfidence:
		fabricOrLength := containsAny(tc.message, lengthWords) || containsAny(tc.message, fabricWords)
		switch {
		case containsAny(tc.message, codWords):
			return replaceWith(IntentPaymentCOD)
		case containsAnyFold(tc.message, transferWords):
			return replaceWith(IntentPaymentTransfer)
		case containsAny(tc.message, orderEditWords):
			return replaceWith(IntentOrderEdit)
		case countColorTokens(tc.message) >= 2 && !fabricOrLength:
			return replaceWith(IntentColorMultiple)
		case countColorTokens(tc.message) == 1 && !fabricOrLength:
			return replaceWith(IntentColor)
		case containsAny(tc.message, lengthWords):
			return replaceWith(IntentProductLength)
		case containsAny(tc.message, fabricWords):
			return replaceWith(IntentFabricQuality)
		}
	}
	return noChange()
}

func stageGreeting(tc turnContext) stageOutcome {
	if !containsAnyFold(tc.message, greetingWords) {
		return noChange()
	}
	if containsAny(tc.message, productPriceWords) {
		return noChange()
	}
	return replaceWith(IntentGreeting)
}

// Three disjoint keyword sets; the first matching set wins and the
// address stage is skipped for this turn.
func stageImageIntent(tc turnContext) stageOutcome {
	var intent Intent
	switch {
	case containsAny(tc.message, productImagePhrases):
		intent = IntentShowProductImage
	case containsAny(tc.message, sizeChartPhrases):
		intent = IntentShowSizeChart
	case containsAny(tc.message, catalogPhrases):
		intent = IntentShowCatalog
	default:
		return noChange()
	}
	out := replaceWith(intent)
	out.skipAddress = true
	return out
}

// After the COD choice the next message is expected to carry shipping
// details; partial details ask the customer to complete them.
func stageAddressContinuation(tc turnContext) stageOutcome {
	if tc.lastIntent != IntentPaymentCOD {
		return noChange()
	}
	info := ExtractAddress(tc.message)
	if !info.HasPhone && !info.HasAddress && !info.HasName {
		return noChange()
	}
	if info.HasName && info.HasAddress && info.HasPhone {
		out := replaceWith(IntentAddressReceived)
		out.patch = statePatch{address: &info}
		return out
	}
	return replaceWith(IntentAddressIncomplete)
}
