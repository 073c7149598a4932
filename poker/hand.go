package poker

import (
	"bytes"
)

// 按面值计数表示的一手牌, 每个面值一个非负计数
type Hand [NumRank]int

// 牌的总张数
func (h Hand) Sum() int {
	sum := 0
	for _, n := range h {
		sum += n
	}
	return sum
}

// 某面值的张数
func (h Hand) Count(r Rank) int {
	if !r.Valid() {
		return 0
	}
	return h[r]
}

// 判断是否为空手牌
func (h Hand) Empty() bool { return h.Sum() == 0 }

// 增加 n 张面值为 r 的牌
func (h *Hand) Add(r Rank, n int) {
	if r.Valid() {
		h[r] += n
	}
}

// 判断是否包含另一手牌
func (h Hand) Contains(sub Hand) bool {
	for r, n := range sub {
		if n > h[r] {
			return false
		}
	}
	return true
}

// 减去一手牌, 被减的必须是当前手牌的子集, 否则返回 false
func (h *Hand) Remove(sub Hand) bool {
	if !h.Contains(sub) {
		return false
	}
	for r, n := range sub {
		h[r] -= n
	}
	return true
}

// 最小非零面值, 空手牌返回 NoRank
func (h Hand) MinRank() Rank {
	for r, n := range h {
		if n > 0 {
			return Rank(r)
		}
	}
	return NoRank
}

// 展开成升序的面值列表
func (h Hand) Ranks() []Rank {
	ranks := make([]Rank, 0, h.Sum())
	for r, n := range h {
		for i := 0; i < n; i++ {
			ranks = append(ranks, Rank(r))
		}
	}
	return ranks
}

func (h Hand) String() string {
	var buf bytes.Buffer
	buf.WriteByte('[')
	count := 0
	for r, n := range h {
		for i := 0; i < n; i++ {
			if count > 0 {
				buf.WriteByte(',')
			}
			count++
			buf.WriteString(Rank(r).String())
		}
	}
	buf.WriteByte(']')
	return buf.String()
}

// 手牌的盒状字符画, 调试和人机交互用
func (h Hand) Format() string {
	return FormatRanks(h.Ranks())
}
