package rule

import (
	"fmt"

	"github.com/gopherd/shangyou/poker"
)

// 牌型: 主干的宽和高, 比如
// 单张的 width=1, height=1
// 对子的 width=1, height=2
// 334455 的 width=3, height=2
// 宽度大于 1 的牌型要求面值连续且不超过 A
type Pattern struct {
	width, height int8
}

// 两副牌时单个面值最多 8 张
const maxHeight = 8

// 顺子可用的面值区间 3..A 共 12 个
const numChainRank = int(poker.MaxChainRank) + 1

func NewPattern(width, height int) Pattern {
	return Pattern{width: int8(width), height: int8(height)}
}

func (p Pattern) Width() int  { return int(p.width) }
func (p Pattern) Height() int { return int(p.height) }

// 牌型包含的总张数
func (p Pattern) Size() int { return int(p.width) * int(p.height) }

// 是否要求面值连续
func (p Pattern) Contiguous() bool { return p.width > 1 }

func (p Pattern) Valid() bool {
	if p.width < 1 || p.height < 1 || p.height > maxHeight {
		return false
	}
	if p.width > 1 && int(p.width) > numChainRank {
		return false
	}
	return true
}

// 牌型名, 如 "1x1", "3x2"
func (p Pattern) Name() string {
	return fmt.Sprintf("%dx%d", p.width, p.height)
}

func (p Pattern) String() string { return p.Name() }

// 按名字查找牌型, 形如 "WxH"
// 查找是纯函数, 同一名字总是得到同一形状
func Lookup(name string) (Pattern, bool) {
	var w, h int
	if n, err := fmt.Sscanf(name, "%dx%d", &w, &h); n != 2 || err != nil {
		return Pattern{}, false
	}
	p := NewPattern(w, h)
	if !p.Valid() {
		return Pattern{}, false
	}
	return p, true
}

// 一组启用的牌型
type Moveset []Pattern

// 默认牌型组: 单张, 对子, 三张, 顺子, 连对, 连三
var Moveset1 = Moveset{
	NewPattern(1, 1),
	NewPattern(1, 2),
	NewPattern(1, 3),
	NewPattern(5, 1),
	NewPattern(3, 2),
	NewPattern(2, 3),
}

func (ms Moveset) Contains(p Pattern) bool {
	for _, q := range ms {
		if q == p {
			return true
		}
	}
	return false
}

// 按名字在牌型组内查找
func (ms Moveset) Lookup(name string) (Pattern, bool) {
	p, ok := Lookup(name)
	if !ok || !ms.Contains(p) {
		return Pattern{}, false
	}
	return p, true
}

func (ms Moveset) Clone() Moveset {
	ret := make(Moveset, len(ms))
	copy(ret, ms)
	return ret
}
