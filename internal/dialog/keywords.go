package dialog

import (
	"regexp"
	"strings"
)

// Keyword vocabularies driving the override stages. These are fixed
// domain constants, not configuration.

var heightPattern = regexp.MustCompile(`สูง\s*(\d+)`)

var sizeAdvicePhrases = []string{
	"ไซส์ไหนดี", "ใส่ไซส์ไหน", "แนะนำไซส์", "ควรเลือกไซส์", "ใส่ไซส์อะไร", "ไซส์อะไรดี", "ใส่ได้ไหม",
}

// Usage-context questions mention where the pants will be worn; those
// are not size-recommendation requests.
var usageContextPhrases = []string{
	"ใส่ทำงาน", "ใส่ไปทำงาน", "ใส่นอน", "ใส่อยู่บ้าน", "ใส่ออกข้างนอก", "ใส่ไปเที่ยว", "ใส่เที่ยว",
}

var priceAskPhrases = []string{
	"ราคาเท่าไหร่", "ราคาเท่าไร", "เท่าไหร่", "เท่าไร", "กี่บาท", "ราคา",
}

// Politeness-suffixed payment replies force the payment intent
// unconditionally.
var codReplyPhrases = []string{
	"ปลายทางค่ะ", "ปลายทางจ้า", "ปลายทางครับ", "ปลายทางคะ",
	"เก็บปลายทางค่ะ", "เก็บปลายทางจ้า", "เก็บปลายทางครับ",
	"CODค่ะ", "CODจ้า", "codค่ะ", "codจ้า",
}

var transferReplyPhrases = []string{
	"โอนค่ะ", "โอนจ้า", "โอนครับ", "โอนคะ",
	"ธนาคารค่ะ", "ธนาคารจ้า", "ธนาคารครับ",
}

var codSurchargePhrases = []string{
	"บวกเพิ่ม", "ค่าธรรมเนียม", "ค่าบวก", "เพิ่มค่า", "บวกค่า", "ค่าส่งเพิ่ม", "เพิ่ม", "บวก",
}

var codWords = []string{"ปลายทาง", "เก็บปลายทาง", "COD", "cod"}

var transferWords = []string{"โอน", "ธนาคาร", "PromptPay", "promptpay", "พร้อมเพย์", "บัญชี"}

var orderEditWords = []string{
	"เปลี่ยนสี", "เปลี่ยนไซส์", "เปลี่ยนจำนวน", "แก้ออเดอร์", "แก้รายการ", "ขอเปลี่ยน", "ขอแก้", "ยกเลิก",
}

var lengthWords = []string{"ความยาว", "ยาวกี่", "ยาวเท่าไหร่", "ขายาว", "ขาสั้น", "กี่นิ้ว"}

var fabricWords = []string{"เนื้อผ้า", "ผ้าอะไร", "ผ้าหนา", "ผ้าบาง", "ผ้ายืด", "ระคาย", "คันไหม", "ผ้า"}

var greetingWords = []string{"สวัสดี", "หวัดดี", "hello", "hi", "ฮาย", "ฮัลโหล", "เฮ้ย", "สบายดี", "สนใจ"}

// productPriceWords suppress the greeting stage: a message that talks
// about the product is not a bare greeting.
var productPriceWords = []string{
	"ราคา", "สี", "ไซส์", "กางเกง", "บาท", "ตัว", "เท่าไหร่", "สั่ง", "ซื้อ", "โปร",
}

var productImagePhrases = []string{"ขอดูสี", "ดูสี", "ดูรูป", "ขอดูรูป", "รูปสี", "รูปกางเกง"}

var sizeChartPhrases = []string{"ตารางไซส์", "ตารางขนาด", "ดูไซส์", "ขอดูไซส์"}

var catalogPhrases = []string{"แคตตาล็อก", "แคตาล็อค", "แคตตะล็อก", "ดูสินค้าทั้งหมด", "สินค้าทั้งหมด"}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func containsAnyFold(s string, needles []string) bool {
	lower := strings.ToLower(s)
	for _, n := range needles {
		if strings.Contains(lower, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
