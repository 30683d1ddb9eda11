package cart_fetch

import (
	"testing"

	"github.com/cartlab/cart-fetch/clients/cartapi"
	"github.com/stretchr/testify/assert"
)

func TestDecodeCartValidPayload(t *testing.T) {
	items, err := decodeCart([]byte(`[{"name":"apple","quantity":2},{"name":"milk","quantity":0}]`))

	assert.NoError(t, err)
	assert.Equal(t, []cartapi.CartItem{
		{Name: "apple", Quantity: 2},
		{Name: "milk", Quantity: 0},
	}, items)
}

func TestDecodeCartEmptyCart(t *testing.T) {
	items, err := decodeCart([]byte(`[]`))

	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestDecodeCartRejectsBadPayloads(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", `<html>502 Bad Gateway</html>`},
		{"not an array", `{"items": []}`},
		{"record not an object", `["apple"]`},
		{"missing name", `[{"quantity": 2}]`},
		{"empty name", `[{"name": "", "quantity": 2}]`},
		{"name wrong type", `[{"name": 5, "quantity": 2}]`},
		{"missing quantity", `[{"name": "apple"}]`},
		{"quantity wrong type", `[{"name": "apple", "quantity": "two"}]`},
		{"fractional quantity", `[{"name": "apple", "quantity": 1.5}]`},
		{"negative quantity", `[{"name": "apple", "quantity": -1}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items, err := decodeCart([]byte(tc.body))
			assert.Error(t, err)
			assert.Nil(t, items)
		})
	}
}
