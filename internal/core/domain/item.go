package domain

import "errors"

var ErrUnknownItem = errors.New("unknown item")

// ItemType is one of the eight catalog products. Values are the product names.
type ItemType string

const (
	ItemSmallSquid         ItemType = "小花枝"
	ItemBigSquid           ItemType = "大花枝"
	ItemCuttlefishBallMed  ItemType = "花枝丸(中)"
	ItemCuttlefishBallHigh ItemType = "花枝丸(高)"
	ItemCuttlefishBallMax  ItemType = "花枝丸(最高)"
	ItemSquidMedium        ItemType = "透抽(中卷)"
	ItemOctopus            ItemType = "章魚"
	ItemSoftCuttlefish     ItemType = "軟絲"
)

var allItems = [...]ItemType{
	ItemSmallSquid,
	ItemBigSquid,
	ItemCuttlefishBallMed,
	ItemCuttlefishBallHigh,
	ItemCuttlefishBallMax,
	ItemSquidMedium,
	ItemOctopus,
	ItemSoftCuttlefish,
}

// AllItems returns the catalog in display order. The slice is a fresh copy.
func AllItems() []ItemType {
	items := make([]ItemType, len(allItems))
	copy(items, allItems[:])
	return items
}

func (i ItemType) Valid() bool {
	for _, it := range allItems {
		if it == i {
			return true
		}
	}
	return false
}

// ParseItem accepts a product name and reports ErrUnknownItem for anything
// outside the catalog.
func ParseItem(s string) (ItemType, error) {
	it := ItemType(s)
	if !it.Valid() {
		return "", ErrUnknownItem
	}
	return it, nil
}

func (i ItemType) String() string {
	return string(i)
}
