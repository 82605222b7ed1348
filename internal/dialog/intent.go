package dialog

// Intent is a closed-set label describing what the customer wants from
// a message. The reply table is validated against this set at load time.
type Intent string

const (
	IntentGreeting               Intent = "greeting"
	IntentColor                  Intent = "color"
	IntentColorWithQuantity      Intent = "color_with_quantity"
	IntentColorMultiple          Intent = "color_multiple"
	IntentSizeOnly               Intent = "size_only"
	IntentSizeMultiple           Intent = "size_multiple"
	IntentSizeAfterColorQuantity Intent = "size_after_color_quantity"
	IntentQuantityOnly           Intent = "quantity_only"
	IntentOrderConfirm           Intent = "order_confirm"
	IntentOrderEdit              Intent = "order_edit"
	IntentPaymentTransfer        Intent = "payment_transfer"
	IntentPaymentCOD             Intent = "payment_cod"
	IntentCODInquiry             Intent = "cod_inquiry"
	IntentAddressReceived        Intent = "address_received"
	IntentAddressIncomplete      Intent = "address_incomplete"
	IntentPrice                  Intent = "price"
	IntentSizeRecommendation     Intent = "size_recommendation"
	IntentProductInfo            Intent = "product_info"
	IntentProductLength          Intent = "product_length"
	IntentFabricQuality          Intent = "fabric_quality"
	IntentShowProductImage       Intent = "show_product_image"
	IntentShowSizeChart          Intent = "show_size_chart"
	IntentShowCatalog            Intent = "show_catalog"
	IntentSmartFallback          Intent = "smart_fallback"
	IntentFallback               Intent = "fallback"
	IntentManualMode             Intent = "manual_mode"
)

var knownIntents = map[Intent]struct{}{
	IntentGreeting:               {},
	IntentColor:                  {},
	IntentColorWithQuantity:      {},
	IntentColorMultiple:          {},
	IntentSizeOnly:               {},
	IntentSizeMultiple:           {},
	IntentSizeAfterColorQuantity: {},
	IntentQuantityOnly:           {},
	IntentOrderConfirm:           {},
	IntentOrderEdit:              {},
	IntentPaymentTransfer:        {},
	IntentPaymentCOD:             {},
	IntentCODInquiry:             {},
	IntentAddressReceived:        {},
	IntentAddressIncomplete:      {},
	IntentPrice:                  {},
	IntentSizeRecommendation:     {},
	IntentProductInfo:            {},
	IntentProductLength:          {},
	IntentFabricQuality:          {},
	IntentShowProductImage:       {},
	IntentShowSizeChart:          {},
	IntentShowCatalog:            {},
	IntentSmartFallback:          {},
	IntentFallback:               {},
	IntentManualMode:             {},
}

// Valid reports whether i is a member of the closed intent set.
func (i Intent) Valid() bool {
	_, ok := knownIntents[i]
	return ok
}
