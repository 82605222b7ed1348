package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mamafit-chatbot/internal/session"
)

func TestExtractColorQuantity(t *testing.T) {
	t.Parallel()

	t.Run("single color with quantity", func(t *testing.T) {
		got := ExtractColorQuantity("ดำ 3 ตัว")
		require.Len(t, got.Colors, 1)
		assert.Equal(t, session.ColorQuantity{Color: "ดำ", Quantity: 3}, got.Colors[0])
		assert.Equal(t, 3, got.TotalQuantity)
	})

	t.Run("concatenated color and digit", func(t *testing.T) {
		got := ExtractColorQuantity("ดำ2")
		require.Len(t, got.Colors, 1)
		assert.Equal(t, 2, got.TotalQuantity)
	})

	t.Run("multiple colors with quantities", func(t *testing.T) {
		got := ExtractColorQuantity("ดำ2 ขาว1 ครีม3")
		require.Len(t, got.Colors, 3)
		assert.Equal(t, 6, got.TotalQuantity)
	})

	t.Run("long color form not recounted through prefix", func(t *testing.T) {
		got := ExtractColorQuantity("โกโก้ 2")
		require.Len(t, got.Colors, 1)
		assert.Equal(t, "โกโก้", got.Colors[0].Color)
		assert.Equal(t, 2, got.TotalQuantity)
	})

	t.Run("digits without color token become bare total", func(t *testing.T) {
		got := ExtractColorQuantity("เอา 33")
		assert.Empty(t, got.Colors)
		assert.Equal(t, 33, got.TotalQuantity)
	})

	t.Run("colors without digits count one each", func(t *testing.T) {
		got := ExtractColorQuantity("ดำ ขาว ครีม")
		require.Len(t, got.Colors, 3)
		assert.Equal(t, 3, got.TotalQuantity)
		for _, c := range got.Colors {
			assert.Equal(t, 1, c.Quantity)
		}
	})

	t.Run("bare long color counts once", func(t *testing.T) {
		got := ExtractColorQuantity("โกโก้")
		require.Len(t, got.Colors, 1)
		assert.Equal(t, "โกโก้", got.Colors[0].Color)
		assert.Equal(t, 1, got.TotalQuantity)
	})

	t.Run("no color no digit yields nothing", func(t *testing.T) {
		got := ExtractColorQuantity("สนใจค่ะ")
		assert.Empty(t, got.Colors)
		assert.Zero(t, got.TotalQuantity)
	})
}

func TestExtractSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		message string
		want    string
	}{
		{"M", "M"},
		{"ไซส์ xl ค่ะ", "XL"},
		{"XXL", "XXL"},
		{"เอา xxl นะคะ", "XXL"},
		{"L ค่ะ", "L"},
		{"สวัสดีค่ะ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractSize(tt.message), "message %q", tt.message)
	}
}

func TestExtractWaist(t *testing.T) {
	t.Parallel()

	waist, ok := ExtractWaist("เอว 45 ใส่ไซส์ไหนดีคะ")
	require.True(t, ok)
	assert.Equal(t, 45, waist)

	waist, ok = ExtractWaist("รอบเอว 30")
	require.True(t, ok)
	assert.Equal(t, 30, waist)

	_, ok = ExtractWaist("ไซส์ไหนดีคะ")
	assert.False(t, ok)
}

func TestExtractAddress(t *testing.T) {
	t.Parallel()

	t.Run("complete address", func(t *testing.T) {
		msg := "คุณสมศรี ใจดี 123/45 หมู่ 6 ถนนสุขุมวิท ตำบลบางนา อำเภอเมือง จังหวัดสมุทรปราการ 10270 โทร 081-234-5678"
		got := ExtractAddress(msg)
		assert.True(t, got.HasName)
		assert.True(t, got.HasAddress)
		assert.True(t, got.HasPhone)
		assert.Equal(t, "คุณสมศรี ใจดี", got.Name)
		assert.Equal(t, "0812345678", got.Phone)
		assert.Contains(t, got.Address, "หมู่ 6")
		assert.NotContains(t, got.Address, "081-234-5678")
	})

	t.Run("name and phone without address", func(t *testing.T) {
		got := ExtractAddress("สมศรี 0812345678")
		assert.True(t, got.HasName)
		assert.True(t, got.HasPhone)
		assert.False(t, got.HasAddress)
		assert.Equal(t, "สมศรี", got.Name)
		assert.Equal(t, "0812345678", got.Phone)
	})

	t.Run("phone label variants", func(t *testing.T) {
		tests := []struct {
			message string
			want    string
		}{
			{"โทร. 0812345678", "0812345678"},
			{"Tel: 02-123-4567", "021234567"},
			{"081-234-5678", "0812345678"},
			{"(02) 123-4567", "021234567"},
		}
		for _, tt := range tests {
			got := ExtractAddress(tt.message)
			require.True(t, got.HasPhone, "message %q", tt.message)
			assert.Equal(t, tt.want, got.Phone, "message %q", tt.message)
		}
	})

	t.Run("honorific name", func(t *testing.T) {
		got := ExtractAddress("นางสาวมาลี สวยงาม บ้านเลขที่ 99 ซอย 5 โทร 0898765432")
		assert.Equal(t, "นางสาวมาลี สวยงาม", got.Name)
		assert.True(t, got.HasAddress)
	})

	t.Run("plain question has no address or phone", func(t *testing.T) {
		got := ExtractAddress("สอบถามหน่อยค่ะ")
		assert.False(t, got.HasAddress)
		assert.False(t, got.HasPhone)
	})
}
