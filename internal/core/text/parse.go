package text

import (
	"strconv"
	"strings"
)

// unitSynonyms 固定單位表：同義字 → 標準單位鍵
var unitSynonyms = map[string]string{
	"g":           "g",
	"gram":        "g",
	"grams":       "g",
	"kg":          "kg",
	"kilogram":    "kg",
	"kilograms":   "kg",
	"oz":          "oz",
	"ounce":       "oz",
	"ounces":      "oz",
	"lb":          "lb",
	"lbs":         "lb",
	"pound":       "lb",
	"pounds":      "lb",
	"ml":          "ml",
	"milliliter":  "ml",
	"milliliters": "ml",
	"l":           "l",
	"liter":       "l",
	"liters":      "l",
	"litre":       "l",
	"litres":      "l",
	"cup":         "cup",
	"cups":        "cup",
	"tbsp":        "tbsp",
	"tablespoon":  "tbsp",
	"tablespoons": "tbsp",
	"tsp":         "tsp",
	"teaspoon":    "tsp",
	"teaspoons":   "tsp",
}

// CanonicalUnit 把單位同義字對應到標準單位鍵
func CanonicalUnit(tok string) (string, bool) {
	u, ok := unitSynonyms[strings.ToLower(strings.TrimSpace(tok))]
	return u, ok
}

// ParsedLine 食材行解析結果
type ParsedLine struct {
	Qty  float64 // 無數量前綴時預設 1.0
	Unit string  // 標準單位鍵；無法辨識時為空字串
	Name string  // 食材名稱
}

// ParseLine 從自由文字食材行擷取數量、單位與名稱。
// 依序嘗試：整數／小數、分數 num/den、單位 token、其餘為名稱。
// 數量與單位從原始小寫 token 解析（正規化會把小數點換成空白），
// 名稱一律經過正規化。這是盡力而為的啟發式解析：
// 數量已解析但後續 token 不是已知單位時，整行正規化文字作為名稱
// （不只取 token 之後的殘餘）；格式錯誤的行退化為 qty=1、無單位、
// 整行為名稱，不回傳錯誤。
func ParseLine(line string) ParsedLine {
	norm := Normalize(line)
	parsed := ParsedLine{Qty: 1.0, Name: norm}

	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return parsed
	}

	i := 0
	hasQty := false

	// 分數寫成三個 token 的 "num / den"，需在整數前綴前檢查
	if len(fields) >= 3 && fields[1] == "/" {
		nv, nok := parseDecimal(fields[0])
		dv, dok := parseDecimal(fields[2])
		if nok && dok && dv != 0 {
			parsed.Qty = nv / dv
			hasQty = true
			i = 3
		}
	}

	// 整數或小數前綴
	if !hasQty {
		if v, ok := parseDecimal(fields[i]); ok {
			parsed.Qty = v
			hasQty = true
			i++
		}
	}

	// 分數 token "num/den"；接在整數後為帶分數（1 1/2 = 1.5）
	if i < len(fields) {
		if n, d, ok := parseFraction(fields[i]); ok {
			if hasQty {
				parsed.Qty += n / d
			} else {
				parsed.Qty = n / d
			}
			hasQty = true
			i++
		}
	}

	// 單位 token
	if i < len(fields) {
		if u, ok := CanonicalUnit(fields[i]); ok {
			parsed.Unit = u
			parsed.Name = Normalize(strings.Join(fields[i+1:], " "))
			return parsed
		}
	}

	// 後續 token 不是已知單位：整行為名稱
	parsed.Name = norm
	return parsed
}

func parseDecimal(tok string) (float64, bool) {
	if tok == "" || tok[0] < '0' || tok[0] > '9' {
		return 0, false
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseFraction(tok string) (num, den float64, ok bool) {
	parts := strings.SplitN(tok, "/", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	n, nok := parseDecimal(parts[0])
	d, dok := parseDecimal(parts[1])
	if !nok || !dok || d == 0 {
		return 0, 0, false
	}
	return n, d, true
}
