package rule

import (
	"errors"

	"github.com/gopherd/shangyou/poker"
)

// 一次具体的出牌选择: 与手牌同形的计数向量
type Choice = poker.Hand

// 一个备选出牌: 牌型, 具体的牌和代表面值(主干最小面值)
type Candidate struct {
	Pattern Pattern
	Choice  Choice
	Rank    poker.Rank
}

// 交互输入校验失败的原因
var (
	ErrBadPattern  = errors.New("rule: pattern not in moveset")
	ErrBadShape    = errors.New("rule: cards do not form the pattern")
	ErrUnavailable = errors.New("rule: cards not available in hand")
	ErrOutranked   = errors.New("rule: cards do not beat the leading rank")
)

// 牌型主干从 start 开始时是否能在 hand 中凑齐
func fits(hand poker.Hand, p Pattern, start poker.Rank) bool {
	end := start + poker.Rank(p.width)
	if p.Contiguous() && end > poker.MaxChainRank+1 {
		return false
	}
	if end > poker.NumRank {
		return false
	}
	for r := start; r < end; r++ {
		if hand.Count(r) < int(p.height) {
			return false
		}
	}
	return true
}

// 从 start 开始构造牌型对应的计数向量
func makeChoice(p Pattern, start poker.Rank) Choice {
	var c Choice
	for i := 0; i < int(p.width); i++ {
		c[start+poker.Rank(i)] = int(p.height)
	}
	return c
}

// 在手牌中寻找牌型 p 的最小合法出牌
// leading 不为 NoRank 时要求代表面值严格大于 leading
// 找不到是正常结果, 由第三个返回值表示, 不是错误
func FindSmallestChoice(hand poker.Hand, p Pattern, leading poker.Rank) (Choice, poker.Rank, bool) {
	if !p.Valid() {
		return Choice{}, poker.NoRank, false
	}
	for start := poker.R3; start < poker.NumRank; start++ {
		if leading != poker.NoRank && start <= leading {
			continue
		}
		if fits(hand, p, start) {
			return makeChoice(p, start), start, true
		}
	}
	return Choice{}, poker.NoRank, false
}

// 升序枚举牌型 p 在手牌中的所有合法出牌, 最多 limit 个
func Choices(hand poker.Hand, p Pattern, leading poker.Rank, limit int) []Candidate {
	var ret []Candidate
	if !p.Valid() {
		return ret
	}
	for start := poker.R3; start < poker.NumRank; start++ {
		if leading != poker.NoRank && start <= leading {
			continue
		}
		if !fits(hand, p, start) {
			continue
		}
		ret = append(ret, Candidate{Pattern: p, Choice: makeChoice(p, start), Rank: start})
		if limit > 0 && len(ret) >= limit {
			break
		}
	}
	return ret
}

// 自由出牌时枚举整个牌型组的合法出牌, 最多 limit 个
func AllChoices(hand poker.Hand, ms Moveset, limit int) []Candidate {
	var ret []Candidate
	for _, p := range ms {
		for _, c := range Choices(hand, p, poker.NoRank, limit-len(ret)) {
			ret = append(ret, c)
		}
		if limit > 0 && len(ret) >= limit {
			break
		}
	}
	return ret
}

// 校验一个具体出牌选择:
// 形状必须与牌型一致, 手牌必须够用, 且代表面值压过 leading
// 交互策略与自动策略共用这一套合法性判定
func Validate(choice Choice, hand poker.Hand, p Pattern, leading poker.Rank) (poker.Rank, error) {
	start := choice.MinRank()
	if !p.Valid() || start == poker.NoRank {
		return poker.NoRank, ErrBadShape
	}
	if start+poker.Rank(p.width) > poker.NumRank {
		return poker.NoRank, ErrBadShape
	}
	if choice != makeChoice(p, start) {
		return poker.NoRank, ErrBadShape
	}
	if p.Contiguous() && start+poker.Rank(p.width) > poker.MaxChainRank+1 {
		return poker.NoRank, ErrBadShape
	}
	if !hand.Contains(choice) {
		return poker.NoRank, ErrUnavailable
	}
	if leading != poker.NoRank && start <= leading {
		return poker.NoRank, ErrOutranked
	}
	return start, nil
}
