package pantry

import (
	"testing"
	"time"
)

func testDate() time.Time {
	return time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
}

func TestDecrementUnitMatch(t *testing.T) {
	item := InventoryItem{Name: "rice", Quantity: 3, Unit: "cups"}

	change, hitZero := Decrement(&item, 2, "cup", 1)
	if item.Quantity != 1 {
		t.Errorf("quantity = %v, want 1", item.Quantity)
	}
	if hitZero {
		t.Error("hitZero = true, want false")
	}
	if change.Prev != 3 || change.New != 1 || change.Delta != -2 {
		t.Errorf("change = %+v", change)
	}
}

func TestDecrementUnitMismatchFallsBackToOne(t *testing.T) {
	item := InventoryItem{Name: "flour", Quantity: 500, Unit: "g"}

	// 單位不一致時不做換算，扣「一個單位」
	change, _ := Decrement(&item, 2, "cup", 1)
	if item.Quantity != 499 {
		t.Errorf("quantity = %v, want 499", item.Quantity)
	}
	if change.Delta != -1 {
		t.Errorf("delta = %v, want -1", change.Delta)
	}
}

func TestDecrementFloorsAtZero(t *testing.T) {
	item := InventoryItem{Name: "rice", Quantity: 1, Unit: "cups"}

	change, hitZero := Decrement(&item, 5, "cup", 1)
	if item.Quantity != 0 {
		t.Errorf("quantity = %v, want 0", item.Quantity)
	}
	if !hitZero {
		t.Error("hitZero = false, want true")
	}
	if change.New != 0 {
		t.Errorf("change.New = %v, want 0", change.New)
	}
}

func TestDecrementAlreadyZeroNotHitZero(t *testing.T) {
	item := InventoryItem{Name: "rice", Quantity: 0, Unit: "cups"}

	_, hitZero := Decrement(&item, 1, "cup", 1)
	if hitZero {
		t.Error("hitZero for already empty item, want false")
	}
	if item.Quantity != 0 {
		t.Errorf("quantity = %v, want 0", item.Quantity)
	}
}

func TestDecrementServingsScale(t *testing.T) {
	item := InventoryItem{Name: "rice", Quantity: 4, Unit: "cups"}

	Decrement(&item, 1, "cup", 2.0)
	if item.Quantity != 2 {
		t.Errorf("quantity = %v, want 2", item.Quantity)
	}
}

func TestHaveSoonSets(t *testing.T) {
	now := testDate()
	soonDate := now.AddDate(0, 0, 3)
	okDate := now.AddDate(0, 0, 30)

	items := []InventoryItem{
		{Name: "Chicken Breast", Quantity: 2, ExpiresOn: &soonDate},
		{Name: "rice", Quantity: 3, ExpiresOn: &okDate},
		{Name: "basil", Quantity: 0},
		{Name: "", Quantity: 5},
	}

	have, soon := HaveSoonSets(items, now)
	if _, ok := have["chicken breast"]; !ok {
		t.Error("have missing chicken breast")
	}
	if _, ok := have["rice"]; !ok {
		t.Error("have missing rice")
	}
	if _, ok := have["basil"]; ok {
		t.Error("zero quantity item included in have")
	}
	if _, ok := soon["chicken breast"]; !ok {
		t.Error("soon missing chicken breast")
	}
	if _, ok := soon["rice"]; ok {
		t.Error("far expiry item included in soon")
	}
}
