package pantry

import (
	"strings"

	"smart-chef/internal/core/text"
)

// Decrement 對單一庫存品項套用扣減並回傳變化紀錄。
// 解析出的單位與品項單位一致（不分大小寫）時 delta = qty × scale，
// 否則退回「一個單位」扣減 delta = 1.0 × scale（刻意簡化，不做單位換算）。
// 數量下限為 0；hitZero 僅在由正數跨越到 0 時為真（原本就是 0 不算）
func Decrement(item *InventoryItem, parsedQty float64, parsedUnit string, servingsScale float64) (CookChange, bool) {
	current := item.Quantity
	invUnit := strings.ToLower(strings.TrimSpace(item.Unit))

	delta := 1.0 * servingsScale
	if parsedUnit != "" && invUnit != "" && unitsEqual(parsedUnit, invUnit) {
		delta = parsedQty * servingsScale
	}

	next := current - delta
	if next < 0 {
		next = 0
	}
	item.Quantity = next

	change := CookChange{
		Name:  item.Name,
		Prev:  current,
		New:   next,
		Delta: -delta,
		Unit:  invUnit,
	}
	return change, current > 0 && next == 0
}

// unitsEqual 比較兩單位是否等價；庫存單位若是已知同義字會先標準化
func unitsEqual(parsedUnit, invUnit string) bool {
	if parsedUnit == invUnit {
		return true
	}
	if canon, ok := text.CanonicalUnit(invUnit); ok {
		return parsedUnit == canon
	}
	return false
}
