package game

import (
	"math/rand"

	"github.com/gopherd/log"

	"github.com/gopherd/shangyou/poker"
	"github.com/gopherd/shangyou/rule"
)

// 一次成功的出牌
type Move struct {
	Pattern rule.Pattern
	Choice  rule.Choice
	Rank    poker.Rank
}

// 玩家策略: 给定当前生效的牌型和领先面值给出一次出牌
// 返回 false 表示过牌, 过牌是正常结果, 不是错误
type Player interface {
	Move(pattern rule.Pattern, leading poker.Rank) (Move, bool)
	Hand() *poker.Hand
	Free() bool
	SetFree(bool)
}

// 贪心的自动策略: 自由出牌时随机打乱牌型组,
// 取第一个能凑出的牌型的最小出牌; 跟牌时取能压过的最小出牌
type naivePlayer struct {
	hand    poker.Hand
	moveset rule.Moveset
	free    bool
	rng     *rand.Rand
}

func NewNaivePlayer(hand poker.Hand, ms rule.Moveset, rng *rand.Rand) Player {
	return &naivePlayer{hand: hand, moveset: ms.Clone(), rng: rng}
}

func (p *naivePlayer) Hand() *poker.Hand { return &p.hand }
func (p *naivePlayer) Free() bool        { return p.free }
func (p *naivePlayer) SetFree(free bool) { p.free = free }

func (p *naivePlayer) Move(pattern rule.Pattern, leading poker.Rank) (Move, bool) {
	var (
		choice rule.Choice
		rank   poker.Rank
		found  bool
	)
	if p.free {
		p.free = false
		p.rng.Shuffle(len(p.moveset), func(i, j int) {
			p.moveset[i], p.moveset[j] = p.moveset[j], p.moveset[i]
		})
		for _, q := range p.moveset {
			choice, rank, found = rule.FindSmallestChoice(p.hand, q, poker.NoRank)
			if found {
				pattern = q
				break
			}
		}
	} else {
		choice, rank, found = rule.FindSmallestChoice(p.hand, pattern, leading)
	}
	if !found {
		return Move{}, false
	}
	p.hand.Remove(choice)
	log.Debug().Any("pattern", pattern).Any("choice", choice).Print("naive play")
	return Move{Pattern: pattern, Choice: choice, Rank: rank}, true
}
