package lms

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	var v struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"abc","b":42,"c":null}`), &v))
	assert.Equal(t, ID("abc"), v.A)
	assert.Equal(t, ID("42"), v.B)
	assert.Empty(t, v.C)

	assert.Error(t, json.Unmarshal([]byte(`{"a":true}`), &v))
}

func TestIdentifierFallbacks(t *testing.T) {
	assert.Equal(t, "d1", Discount{DiscountID: "d1", ID: "2", Code: "C"}.Identifier())
	assert.Equal(t, "2", Discount{ID: "2", Code: "C"}.Identifier())
	assert.Equal(t, "C", Discount{Code: "C"}.Identifier())
	assert.Equal(t, "c1", Course{ID: "c1"}.Identifier())
	assert.Equal(t, "s1", Section{SectionID: "s1", ID: "x"}.Identifier())
	assert.Equal(t, "l1", Lesson{ID: "l1"}.Identifier())
}

func TestDiscountLookup_EchoedCode(t *testing.T) {
	assert.Equal(t, "TOP", DiscountLookup{Discount: Discount{Code: "TOP"}}.EchoedCode())
	assert.Equal(t, "IN", DiscountLookup{Discount: Discount{Code: "TOP"}, DiscountCode: &Discount{Code: "IN"}}.EchoedCode())
	assert.Empty(t, DiscountLookup{}.EchoedCode())
}

func TestDiscountPage_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		want   int
		wantOK bool
	}{
		{name: "массив", data: `[{"code":"A","discountValue":"10.00"},{"code":"B"}]`, want: 2, wantOK: true},
		{name: "объект", data: `{"discountCodes":[{"code":"A"}],"pagination":{"total":1}}`, want: 1, wantOK: true},
		{name: "пустой массив", data: `[]`, want: 0, wantOK: true},
		{name: "discountCodes не массив", data: `{"discountCodes":{"code":"A"}}`},
		{name: "без discountCodes", data: `{"rows":[]}`},
		{name: "строка", data: `"n/a"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var page DiscountPage
			require.NoError(t, json.Unmarshal([]byte(tt.data), &page))
			n, ok := page.Count()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, n)
		})
	}

	var nilPage *DiscountPage
	_, ok := nilPage.Count()
	assert.False(t, ok)
}

func TestDiscount_IgnoresDecimalStrings(t *testing.T) {
	var d Discount
	require.NoError(t, json.Unmarshal([]byte(`{"discountId":5,"code":"X","discountValue":"20.00","minPurchaseAmount":"0.00"}`), &d))
	assert.Equal(t, "5", d.Identifier())
}
