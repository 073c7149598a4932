package game

import (
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/gopherd/log"

	"github.com/gopherd/shangyou/poker"
	"github.com/gopherd/shangyou/rule"
)

// 计分策略: played 表示该步是否成功出牌, remainder 为出牌后剩余张数
// 可以整体替换而不影响回合逻辑
type RewardFunc func(played bool, remainder int) float64

// 默认计分: 打空手牌 10, 成功出牌 0.1, 过牌 -0.1
func DefaultReward(played bool, remainder int) float64 {
	if played && remainder == 0 {
		return 10
	}
	if played {
		return 0.1
	}
	return -0.1
}

// 给某个座位构造玩家策略
type PlayerFactory func(seat int, hand poker.Hand, ms rule.Moveset, rng *rand.Rand) Player

type Option func(*Env)

// 替换计分策略
func WithReward(fn RewardFunc) Option {
	return func(e *Env) { e.reward = fn }
}

// 替换交互策略的输入输出, 测试时注入确定的输入序列
func WithUserIO(in io.Reader, out io.Writer) Option {
	return func(e *Env) { e.userIn, e.userOut = in, out }
}

// 替换玩家构造, 测试时注入脚本化策略
func WithPlayerFactory(fn PlayerFactory) Option {
	return func(e *Env) { e.factory = fn }
}

// 限制一局的最大步数, 0 表示不限制
func WithMaxSteps(n int) Option {
	return func(e *Env) { e.maxSteps = n }
}

// 一局游戏: 独占持有所有玩家手牌和回合状态, 不跨局共享
type Env struct {
	cfg      Config
	moveset  rule.Moveset
	rng      *rand.Rand
	players  []Player
	history  History
	reward   RewardFunc
	factory  PlayerFactory
	userIn   io.Reader
	userOut  io.Writer
	maxSteps int
}

func NewEnv(cfg Config, opts ...Option) (*Env, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	ms, err := cfg.moveset()
	if err != nil {
		return nil, err
	}
	e := &Env{
		cfg:     cfg,
		moveset: ms,
		reward:  DefaultReward,
		userIn:  os.Stdin,
		userOut: os.Stdout,
	}
	e.factory = e.defaultFactory
	for _, opt := range opts {
		opt(e)
	}
	e.Reset(cfg.Seed)
	return e, nil
}

func (e *Env) defaultFactory(seat int, hand poker.Hand, ms rule.Moveset, rng *rand.Rand) Player {
	// 人控座位固定在最后, 搜索策略固定在 0 号
	if e.cfg.Human && seat == e.cfg.Players-1 {
		return NewUserPlayer(hand, ms, e.userIn, e.userOut)
	}
	if e.cfg.Search && seat == 0 {
		return NewSearchPlayer(hand, ms, rng)
	}
	return NewNaivePlayer(hand, ms, rng)
}

// 重新开局, 随机源只在这里重置
func (e *Env) Reset(seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e.rng = rand.New(rand.NewSource(seed))
	hands := e.deal()
	e.players = make([]Player, e.cfg.Players)
	for i, hand := range hands {
		e.players[i] = e.factory(i, hand, e.moveset, e.rng)
	}
	e.history = nil
	log.Info().
		Any("players", e.cfg.Players).
		Any("decks", e.cfg.Decks).
		Any("seed", seed).
		Print("new game")
}

// 随机把牌发成若干堆, 最后一人拿走剩余, 再随机轮转堆的归属
func (e *Env) deal() []poker.Hand {
	freq := poker.Deck(e.cfg.Decks)
	quota := cardsPerPlayer[e.cfg.dealKey()]
	n := e.cfg.Players
	hands := make([]poker.Hand, n)
	for p := 0; p < n-1; p++ {
		for c := 0; c < quota[p]; c++ {
			for {
				r := poker.Rank(e.rng.Intn(poker.NumRank))
				if freq[r] > 0 {
					freq[r]--
					hands[p][r]++
					break
				}
			}
		}
	}
	hands[n-1] = freq
	off := e.rng.Intn(n)
	return append(hands[off:], hands[:off]...)
}

// 各玩家当前手牌的快照
func (e *Env) Hands() []poker.Hand {
	hands := make([]poker.Hand, len(e.players))
	for i, p := range e.players {
		hands[i] = *p.Hand()
	}
	return hands
}

func (e *Env) History() History { return e.history }

func (e *Env) snapshot(curr int) State {
	return State{
		CurrPlayer: curr,
		Hands:      e.Hands(),
		Free:       e.players[curr].Free(),
	}
}

// 出牌循环, 打到有人出完为止, 返回胜者座位和整局轨迹
// 提前达到步数上限时胜者为 -1
func (e *Env) Play() (int, History) {
	n := e.cfg.Players
	curr := e.rng.Intn(n)
	e.players[curr].SetFree(true)
	log.Info().Any("start", curr).Print("first player")

	var pattern rule.Pattern
	leading := poker.NoRank
	skips := 0
	for step := 0; e.maxSteps == 0 || step < e.maxSteps; step++ {
		state := e.snapshot(curr)
		player := e.players[curr]
		if o, ok := player.(observer); ok {
			o.observe(state.Hands, curr, pattern, leading, skips)
		}

		mv, played := player.Move(pattern, leading)
		// 自由出牌权在本回合用掉, 过牌也不保留
		player.SetFree(false)
		if played {
			skips = 0
			pattern = mv.Pattern
			leading = mv.Rank
		} else {
			skips++
		}

		remainder := player.Hand().Sum()
		action := Action{
			Player:          curr,
			ContainsPattern: played,
			LeadingRank:     leading,
		}
		if played {
			action.Pattern = mv.Pattern.Name()
			action.Choice = mv.Choice
		}
		e.history = append(e.history, Step{
			State:    state,
			Action:   action,
			NewState: e.snapshot(curr),
			Reward:   e.reward(played, remainder),
		})
		log.Debug().
			Any("player", curr).
			Any("played", played).
			Any("skips", skips).
			Any("remainder", remainder).
			Print("step")

		if played && remainder == 0 {
			log.Info().Any("winner", curr).Print("game over")
			return curr, e.history
		}
		if !played && skips == n-1 {
			// 其他人全过, 下一个玩家自由出牌
			skips = 0
			pattern = rule.Pattern{}
			leading = poker.NoRank
			e.players[(curr+1)%n].SetFree(true)
		}
		curr = (curr + 1) % n
	}
	return -1, e.history
}
