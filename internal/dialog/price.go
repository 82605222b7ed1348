package dialog

import "fmt"

// PriceBreakdown is the computed price for a quantity.
type PriceBreakdown struct {
	Price    int    `json:"price"`
	Shipping int    `json:"shipping"`
	Total    int    `json:"total"`
	Note     string `json:"note"`
}

// CalculatePrice maps an order quantity onto the fixed pricing tiers:
// three or more pieces 490 baht with free shipping, two pieces 340+30,
// one piece 180+30.
func CalculatePrice(quantity int) PriceBreakdown {
	switch {
	case quantity >= 3:
		return PriceBreakdown{
			Price:    490,
			Shipping: 0,
			Total:    490,
			Note:     fmt.Sprintf("ตัวละ %d บาท + ส่งฟรี", 490/quantity),
		}
	case quantity == 2:
		return PriceBreakdown{
			Price:    340,
			Shipping: 30,
			Total:    370,
			Note:     "ตัวละ 170 บาท",
		}
	default:
		return PriceBreakdown{
			Price:    180,
			Shipping: 30,
			Total:    210,
			Note:     "ตัวละ 180 บาท",
		}
	}
}

// SuggestSizeByWaist renders the waist-banded size recommendation.
func SuggestSizeByWaist(waist int) string {
	switch {
	case waist <= 32:
		return "🎯 แนะนำไซส์ M (เอว 28-36) เหมาะสำหรับคุณค่ะ"
	case waist <= 36:
		return "🎯 แนะนำไซส์ M หรือ L ก็ได้ค่ะ\n• M (เอว 28-36) - พอดี\n• L (เอว 32-40) - หลวมสบาย"
	case waist <= 40:
		return "🎯 แนะนำไซส์ L หรือ XL ก็ได้ค่ะ\n• L (เอว 32-40) - พอดี\n• XL (เอว 36-42) - หลวมสบาย"
	case waist <= 42:
		return "🎯 แนะนำไซส์ XL (เอว 36-42) เหมาะสำหรับคุณค่ะ"
	case waist <= 50:
		return "🎯 แนะนำไซส์ XXL (เอว 40-50) เหมาะสำหรับคุณค่ะ"
	default:
		return "🎯 รอบเอวของคุณใหญ่กว่าไซส์ที่มี (XXL เอว 40-50)\nแนะนำให้ปรึกษาแอดมินก่อนสั่งค่ะ"
	}
}
