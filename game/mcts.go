package game

import (
	"math"
	"math/rand"

	"github.com/gopherd/shangyou/poker"
	"github.com/gopherd/shangyou/rule"
)

// 模拟推演用的全信息对局状态
type simState struct {
	hands   []poker.Hand
	pattern rule.Pattern
	leading poker.Rank
	skips   int
	next    int
	// next 是否自由出牌
	free bool
}

func (s simState) clone() simState {
	hands := make([]poker.Hand, len(s.hands))
	copy(hands, s.hands)
	s.hands = hands
	return s
}

func (s simState) winner() int {
	for i, h := range s.hands {
		if h.Empty() {
			return i
		}
	}
	return -1
}

func (s simState) gameover() bool { return s.winner() >= 0 }

// 推演动作: 某个玩家出牌或过牌
type simAction struct {
	player int
	played bool
	mv     Move
	// 先验概率
	prob float64
}

// 从状态 s 执行动作, 返回执行后的新状态
// 回合推进规则与 Env.Play 一致
func (a simAction) do(s simState) simState {
	to := s.clone()
	n := len(to.hands)
	if a.played {
		to.hands[a.player].Remove(a.mv.Choice)
		to.pattern = a.mv.Pattern
		to.leading = a.mv.Rank
		to.skips = 0
		to.free = false
	} else {
		to.skips++
		if to.skips == n-1 {
			to.skips = 0
			to.pattern = rule.Pattern{}
			to.leading = poker.NoRank
			to.free = true
		}
	}
	to.next = (a.player + 1) % n
	return to
}

const maxSimActions = 64

// 枚举当前状态下 next 玩家的所有合法动作
// 自由出牌时只有无牌可出才会过牌
func legalActions(s simState, ms rule.Moveset) []simAction {
	var actions []simAction
	hand := s.hands[s.next]
	var candidates []rule.Candidate
	if s.free {
		candidates = rule.AllChoices(hand, ms, maxSimActions)
	} else {
		candidates = rule.Choices(hand, s.pattern, s.leading, maxSimActions)
	}
	for _, c := range candidates {
		actions = append(actions, simAction{
			player: s.next,
			played: true,
			mv:     Move{Pattern: c.Pattern, Choice: c.Choice, Rank: c.Rank},
		})
	}
	if !s.free || len(actions) == 0 {
		actions = append(actions, simAction{player: s.next})
	}
	prob := 1 / float64(len(actions))
	for i := range actions {
		actions[i].prob = prob
	}
	return actions
}

// 蒙特卡洛搜索树状态节点
type node struct {
	parent   *node
	children []*node

	state  simState
	action simAction
	depth  int

	n float64 // 节点访问次数
	q float64 // 动作奖励
	u float64 // 置信上限
	p float64 // 先验概率
}

func newNode(parent *node, action simAction, state simState) *node {
	nd := &node{
		parent: parent,
		state:  state,
		action: action,
		u:      action.prob,
		p:      action.prob,
	}
	if parent != nil {
		nd.depth = parent.depth + 1
	}
	return nd
}

// 在次数限制内执行蒙特卡洛树搜索, 返回访问次数最多的子节点
func (nd *node) search(ms rule.Moveset, rng *rand.Rand, self int, cparam float64, maxcnt int) *node {
	for i := 0; i < maxcnt; i++ {
		// Select: 沿 q+u 最大的子节点下行到叶子
		leaf := nd.traverse(self)
		// Expand
		leaf = leaf.expand(ms, rng)
		// Evaluate
		value := rollout(leaf, ms, rng, self)
		// Backup
		leaf.backup(nd, value, cparam)
	}
	if len(nd.children) == 0 {
		return nil
	}
	maxi := 0
	maxn := float64(0)
	for i, child := range nd.children {
		n := child.n + rng.Float64()
		if i == 0 || n > maxn {
			maxi = i
			maxn = n
		}
	}
	return nd.children[maxi]
}

func (nd *node) traverse(self int) *node {
	curr := nd
	for !curr.state.gameover() {
		if len(curr.children) == 0 {
			break
		}
		next := curr.selectChild(self)
		if next == nil {
			break
		}
		curr = next
	}
	return curr
}

// 选取 q+u 最大的子节点, 其他玩家的节点视为对抗方取反
func (nd *node) selectChild(self int) *node {
	var (
		maxi = -1
		maxv float64
	)
	for i, child := range nd.children {
		if child.n < 1 {
			return nil
		}
		q := child.q
		u := child.u
		if child.action.player != self {
			q = -q
			u = -u
		}
		if v := q + u; maxi < 0 || v > maxv {
			maxi = i
			maxv = v
		}
	}
	if maxi < 0 {
		return nil
	}
	return nd.children[maxi]
}

// 扩展子节点并优先返回未访问过的子节点
func (nd *node) expand(ms rule.Moveset, rng *rand.Rand) *node {
	if nd.state.gameover() {
		return nd
	}
	if len(nd.children) == 0 {
		for _, action := range legalActions(nd.state, ms) {
			nd.children = append(nd.children, newNode(nd, action, action.do(nd.state)))
		}
	}
	unvisited := 0
	for _, child := range nd.children {
		if child.n < 1 {
			unvisited++
		}
	}
	if unvisited == 0 {
		return nd.children[rng.Intn(len(nd.children))]
	}
	k := rng.Intn(unvisited)
	for _, child := range nd.children {
		if child.n < 1 {
			if k == 0 {
				return child
			}
			k--
		}
	}
	return nd.children[0]
}

const maxRolloutSteps = 4096

// 随机推演到终局, self 获胜返回 1, 否则 -1
func rollout(leaf *node, ms rule.Moveset, rng *rand.Rand, self int) float64 {
	state := leaf.state.clone()
	for i := 0; i < maxRolloutSteps; i++ {
		if state.gameover() {
			if state.winner() == self {
				return 1
			}
			return -1
		}
		actions := legalActions(state, ms)
		state = actions[rng.Intn(len(actions))].do(state)
	}
	return 0
}

// 反向迭代更新节点统计数据(n,q,u)
func (nd *node) backup(root *node, value, cparam float64) {
	curr := nd
	for curr != nil && curr != root {
		curr.update(value, cparam, false)
		curr = curr.parent
	}
	if root != nil {
		root.update(value, cparam, true)
	}
}

func (nd *node) update(value, cparam float64, isRoot bool) {
	nd.n += 1
	nd.q += (value - nd.q) / nd.n
	if !isRoot && nd.parent != nil {
		nd.u = cparam * nd.p * math.Sqrt(nd.parent.n) / (1 + nd.n)
	}
}
