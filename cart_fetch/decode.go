package cart_fetch

import (
	"fmt"

	"github.com/cartlab/cart-fetch/clients/cartapi"
	"github.com/tidwall/gjson"
)

// decodeCart parses the raw payload into cart items. The expected shape is a
// JSON array of records, each with a non-empty "name" string and an integer
// "quantity". Anything else is a parsing defect, not a transport failure.
func decodeCart(body []byte) ([]cartapi.CartItem, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("payload is not valid JSON")
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("payload is not a JSON array")
	}

	items := []cartapi.CartItem{}
	for i, record := range parsed.Array() {
		if !record.IsObject() {
			return nil, fmt.Errorf("record %d is not an object", i)
		}

		name := record.Get("name")
		if name.Type != gjson.String || name.String() == "" {
			return nil, fmt.Errorf("record %d is missing an item name", i)
		}

		quantity := record.Get("quantity")
		if quantity.Type != gjson.Number || quantity.Num != float64(quantity.Int()) || quantity.Int() < 0 {
			return nil, fmt.Errorf("record %d has an invalid quantity", i)
		}

		items = append(items, cartapi.CartItem{
			Name:     name.String(),
			Quantity: int(quantity.Int()),
		})
	}

	return items, nil
}
