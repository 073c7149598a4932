package game

import (
	"math/rand"

	"github.com/gopherd/log"

	"github.com/gopherd/shangyou/poker"
	"github.com/gopherd/shangyou/rule"
)

// 出牌前由 Env 喂入全信息快照的策略实现这个接口
type observer interface {
	observe(hands []poker.Hand, seat int, pattern rule.Pattern, leading poker.Rank, skips int)
}

const (
	searchCParam   = 30
	maxSearchCount = 1000
)

// 基于蒙特卡洛树搜索的全信息策略, 用作更强的轨迹生成器
// 没有快照时退化成贪心策略
type searchPlayer struct {
	hand    poker.Hand
	moveset rule.Moveset
	free    bool
	rng     *rand.Rand

	state  simState
	hasObs bool
}

func NewSearchPlayer(hand poker.Hand, ms rule.Moveset, rng *rand.Rand) Player {
	return &searchPlayer{hand: hand, moveset: ms.Clone(), rng: rng}
}

func (p *searchPlayer) Hand() *poker.Hand { return &p.hand }
func (p *searchPlayer) Free() bool        { return p.free }
func (p *searchPlayer) SetFree(free bool) { p.free = free }

func (p *searchPlayer) observe(hands []poker.Hand, seat int, pattern rule.Pattern, leading poker.Rank, skips int) {
	hs := make([]poker.Hand, len(hands))
	copy(hs, hands)
	p.state = simState{
		hands:   hs,
		pattern: pattern,
		leading: leading,
		skips:   skips,
		next:    seat,
		free:    p.free,
	}
	p.hasObs = true
}

func (p *searchPlayer) Move(pattern rule.Pattern, leading poker.Rank) (Move, bool) {
	free := p.free
	p.free = false
	if !p.hasObs {
		return p.greedy(free, pattern, leading)
	}
	p.hasObs = false

	n := len(p.state.hands)
	num := 0
	for _, h := range p.state.hands {
		num += h.Sum()
	}
	// 搜索次数随剩余牌数缩放
	maxcnt := num*num*2 + 100
	if maxcnt > maxSearchCount {
		maxcnt = maxSearchCount
	}
	prev := (p.state.next + n - 1) % n
	root := newNode(nil, simAction{player: prev}, p.state)
	best := root.search(p.moveset, p.rng, p.state.next, searchCParam, maxcnt)
	log.Debug().Any("maxcnt", maxcnt).Any("children", len(root.children)).Print("search play")

	if best == nil || !best.action.played {
		return Move{}, false
	}
	mv := best.action.mv
	p.hand.Remove(mv.Choice)
	return mv, true
}

// 与自动策略同样的贪心出牌, 但不打乱牌型顺序
func (p *searchPlayer) greedy(free bool, pattern rule.Pattern, leading poker.Rank) (Move, bool) {
	if free {
		for _, q := range p.moveset {
			if choice, rank, ok := rule.FindSmallestChoice(p.hand, q, poker.NoRank); ok {
				p.hand.Remove(choice)
				return Move{Pattern: q, Choice: choice, Rank: rank}, true
			}
		}
		return Move{}, false
	}
	choice, rank, ok := rule.FindSmallestChoice(p.hand, pattern, leading)
	if !ok {
		return Move{}, false
	}
	p.hand.Remove(choice)
	return Move{Pattern: pattern, Choice: choice, Rank: rank}, true
}
