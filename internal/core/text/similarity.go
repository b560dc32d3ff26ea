package text

// Jaccard 計算兩組 token 集合的 Jaccard 指數，任一集合為空時回傳 0
func Jaccard(a, b string) float64 {
	A, B := Tokenize(a), Tokenize(b)
	if len(A) == 0 || len(B) == 0 {
		return 0
	}
	inter := 0
	for t := range A {
		if _, ok := B[t]; ok {
			inter++
		}
	}
	union := len(A) + len(B) - inter
	return float64(inter) / float64(union)
}

// SequenceRatio 計算字元層級的序列相似度：2M/T，
// M 為最長匹配區塊遞迴累計的匹配字元數，T 為兩字串長度總和。
// 兩字串皆空時回傳 1。
func SequenceRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	matched := matchingBlockSize(ra, rb)
	return 2 * float64(matched) / float64(total)
}

// matchingBlockSize 遞迴累計最長公共連續片段左右兩側的匹配量
func matchingBlockSize(a, b []rune) int {
	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingBlockSize(a[:ai], b[:bi]) +
		matchingBlockSize(a[ai+size:], b[bi+size:])
}

// longestMatch 找出最長公共連續片段；同長度時取最早出現者，確保結果穩定
func longestMatch(a, b []rune) (int, int, int) {
	bestI, bestJ, bestSize := 0, 0, 0
	j2len := make(map[int]int)
	for i := range a {
		next := make(map[int]int)
		for j := range b {
			if a[i] == b[j] {
				k := j2len[j-1] + 1
				next[j] = k
				if k > bestSize {
					bestI, bestJ, bestSize = i-k+1, j-k+1, k
				}
			}
		}
		j2len = next
	}
	return bestI, bestJ, bestSize
}

// Similarity 回傳兩名稱的相似度 [0,1]：
// token Jaccard 與正規化字串序列相似度取較大者
func Similarity(a, b string) float64 {
	j := Jaccard(a, b)
	r := SequenceRatio(Normalize(a), Normalize(b))
	if j > r {
		return j
	}
	return r
}

// DefaultMatchThreshold 預設模糊比對門檻
const DefaultMatchThreshold = 0.52

// BestMatch 對 names 做線性掃描，回傳與 query 相似度最高且達門檻的索引與分數。
// 同分時取先出現者；無一達門檻時 ok 為 false。
func BestMatch(names []string, query string, threshold float64) (int, float64, bool) {
	queryNorm := Normalize(query)
	bestIdx, bestScore := -1, 0.0
	for i, name := range names {
		if s := Similarity(name, queryNorm); s > bestScore {
			bestIdx, bestScore = i, s
		}
	}
	if bestIdx < 0 || bestScore < threshold {
		return -1, 0, false
	}
	return bestIdx, bestScore, true
}
