// Package text 提供食材名稱正規化、模糊比對與食材行解析
package text

import (
	"strings"
)

// Normalize 正規化食材／商品名稱以便比較：
// 轉小寫、把 ()[].,;: 換成空白、壓縮連續空白、去除前後空白，
// 最後做簡易單數化（去尾端 "es"，否則去尾端 "s"，"ss" 結尾除外）。
// 單數化結果若會被再次單數化（如 cheese → chees → chee）則保留原字，
// 確保冪等：Normalize(Normalize(s)) == Normalize(s)。
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch r {
		case '(', ')', '[', ']', '.', ',', ';', ':':
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	out := strings.Join(strings.Fields(b.String()), " ")

	stripped := singularize(out)
	if singularize(stripped) != stripped {
		return out
	}
	return stripped
}

func singularize(s string) string {
	switch {
	case strings.HasSuffix(s, "es"):
		return s[:len(s)-2]
	case strings.HasSuffix(s, "s") && !strings.HasSuffix(s, "ss"):
		return s[:len(s)-1]
	}
	return s
}

// Tokenize 先正規化，再以非字母數字邊界切出 token 集合（去除空 token）
func Tokenize(s string) map[string]struct{} {
	norm := Normalize(s)
	set := make(map[string]struct{})
	fields := strings.FieldsFunc(norm, func(r rune) bool {
		return !isAlphanumeric(r)
	})
	for _, f := range fields {
		if f != "" {
			set[f] = struct{}{}
		}
	}
	return set
}

func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
