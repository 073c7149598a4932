package game

import (
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopherd/shangyou/poker"
	"github.com/gopherd/shangyou/rule"
)

func TestNewEnvConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"default", DefaultConfig(), true},
		{"two decks", Config{Players: 4, Decks: 2, WinMode: "individual"}, true},
		{"three players", Config{Players: 3, Decks: 1, WinMode: "individual"}, false},
		{"three decks", Config{Players: 4, Decks: 3, WinMode: "individual"}, false},
		{"pairs mode", Config{Players: 4, Decks: 1, WinMode: "pairs"}, false},
		{"bad pattern", Config{Players: 4, Decks: 1, WinMode: "individual", Moveset: []string{"9x9"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.Seed = 1
			_, err := NewEnv(cfg)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrUnsupportedConfig)
			}
		})
	}
}

func totalHands(hands []poker.Hand) poker.Hand {
	var total poker.Hand
	for _, h := range hands {
		for r, n := range h {
			total[r] += n
		}
	}
	return total
}

func TestDeal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	env, err := NewEnv(cfg)
	require.NoError(t, err)

	hands := env.Hands()
	require.Len(t, hands, 4)
	sizes := make(map[int]int)
	for _, h := range hands {
		sizes[h.Sum()]++
	}
	assert.Equal(t, 3, sizes[13])
	assert.Equal(t, 1, sizes[15])
	// 所有手牌合起来恰好是一副完整的牌
	assert.Equal(t, poker.Deck(1), totalHands(hands))

	cfg.Decks = 2
	env, err = NewEnv(cfg)
	require.NoError(t, err)
	for _, h := range env.Hands() {
		assert.Equal(t, 27, h.Sum())
	}
	assert.Equal(t, poker.Deck(2), totalHands(env.Hands()))
}

func TestPlayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 42
	env, err := NewEnv(cfg)
	require.NoError(t, err)

	t.Logf("> Start")
	for i, h := range env.Hands() {
		t.Logf("%d:\n%s", i, h.Format())
	}

	winner, history := env.Play()
	require.GreaterOrEqual(t, winner, 0)
	require.Less(t, winner, 4)
	require.NotEmpty(t, history)

	// 胜者手牌为空, 最后一步拿到胜利奖励
	last := history[len(history)-1]
	assert.Equal(t, winner, last.Action.Player)
	assert.True(t, last.Action.ContainsPattern)
	assert.Equal(t, float64(10), last.Reward)
	assert.True(t, last.NewState.Hands[winner].Empty())

	deck := poker.Deck(1)
	played := poker.Hand{}
	for i, step := range history {
		// 守恒: 任意时刻各家手牌加上已出的牌等于整副牌
		before := totalHands(step.State.Hands)
		for r, n := range played {
			before[r] += n
		}
		assert.Equal(t, deck, before, "step %d", i)

		if step.Action.ContainsPattern {
			for r, n := range step.Action.Choice {
				played[r] += n
			}
		}
		if i == len(history)-1 {
			assert.Equal(t, float64(10), step.Reward)
		} else if step.Action.ContainsPattern {
			assert.Equal(t, float64(0.1), step.Reward, "step %d", i)
		} else {
			assert.Equal(t, float64(-0.1), step.Reward, "step %d", i)
		}

		// 出牌只动自己的手牌
		diff := 0
		for p := range step.State.Hands {
			d := step.State.Hands[p].Sum() - step.NewState.Hands[p].Sum()
			diff += d
			if p != step.Action.Player {
				assert.Zero(t, d, "step %d player %d", i, p)
			}
		}
		assert.Equal(t, step.Action.Choice.Sum(), diff, "step %d", i)
	}
}

func TestSeedReproducible(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 9
	env1, err := NewEnv(cfg)
	require.NoError(t, err)
	env2, err := NewEnv(cfg)
	require.NoError(t, err)

	w1, h1 := env1.Play()
	w2, h2 := env2.Play()
	assert.Equal(t, w1, w2)
	assert.Equal(t, h1, h2)
}

// 连续三家过牌后轮转座位重获自由出牌权, 领先面值被清空
func TestSkipResetFreesNextPlayer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 3
	singles := rule.Moveset{rule.NewPattern(1, 1)}
	env, err := NewEnv(cfg, WithMaxSteps(8), WithPlayerFactory(
		func(seat int, hand poker.Hand, ms rule.Moveset, rng *rand.Rand) Player {
			var h poker.Hand
			h.Add(poker.R3, 2)
			return NewNaivePlayer(h, singles, rng)
		}))
	require.NoError(t, err)

	winner, history := env.Play()
	require.Len(t, history, 5)

	// 首家出一张 3
	first := history[0]
	assert.True(t, first.State.Free)
	assert.True(t, first.Action.ContainsPattern)
	assert.Equal(t, poker.R3, first.Action.LeadingRank)

	// 其余三家跟不上, 连续过牌
	for i := 1; i <= 3; i++ {
		step := history[i]
		assert.False(t, step.State.Free, "step %d", i)
		assert.False(t, step.Action.ContainsPattern, "step %d", i)
		assert.Equal(t, float64(-0.1), step.Reward, "step %d", i)
	}

	// 第三次过牌后首家重新自由出牌, 领先面值清空后 3 可以再次打出
	last := history[4]
	assert.Equal(t, first.Action.Player, last.Action.Player)
	assert.True(t, last.State.Free)
	assert.True(t, last.Action.ContainsPattern)
	assert.Equal(t, poker.R3, last.Action.LeadingRank)
	assert.Equal(t, float64(10), last.Reward)
	assert.Equal(t, first.Action.Player, winner)
}

func TestMaxSteps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 5
	// 所有人都永远过不了牌: 空牌型组
	env, err := NewEnv(cfg, WithMaxSteps(10), WithPlayerFactory(
		func(seat int, hand poker.Hand, ms rule.Moveset, rng *rand.Rand) Player {
			return NewNaivePlayer(hand, rule.Moveset{}, rng)
		}))
	require.NoError(t, err)

	winner, history := env.Play()
	assert.Equal(t, -1, winner)
	assert.Len(t, history, 10)
}

// 人控座位由注入的输入驱动, 输入耗尽时一直过牌, 游戏依然能打完
func TestHumanSeatScripted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 17
	cfg.Human = true
	env, err := NewEnv(cfg, WithUserIO(strings.NewReader(""), io.Discard))
	require.NoError(t, err)

	winner, history := env.Play()
	require.GreaterOrEqual(t, winner, 0)
	assert.NotEqual(t, 3, winner)
	assert.NotEmpty(t, history)
}

func TestCustomReward(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 11
	env, err := NewEnv(cfg, WithReward(func(played bool, remainder int) float64 {
		if played && remainder == 0 {
			return 100
		}
		return 0
	}))
	require.NoError(t, err)

	_, history := env.Play()
	last := history[len(history)-1]
	assert.Equal(t, float64(100), last.Reward)
	for _, step := range history[:len(history)-1] {
		assert.Zero(t, step.Reward)
	}
}
