package game

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gopherd/doge/graphviz"

	"github.com/gopherd/shangyou/poker"
)

// 某一步前后的全量状态快照
type State struct {
	CurrPlayer int          `json:"curr_player"`
	Hands      []poker.Hand `json:"hands"`
	Free       bool         `json:"free"`
}

func (s State) String() string {
	ret := fmt.Sprintf("{player: %d, free: %v, hands:", s.CurrPlayer, s.Free)
	for _, h := range s.Hands {
		ret += " " + h.String()
	}
	return ret + "}"
}

// 玩家的一次动作, 过牌时 contains_pattern 为 false
type Action struct {
	Player          int        `json:"player"`
	ContainsPattern bool       `json:"contains_pattern"`
	Pattern         string     `json:"pattern"`
	Choice          poker.Hand `json:"choice"`
	LeadingRank     poker.Rank `json:"leading_rank"`
}

func (a Action) String() string {
	if !a.ContainsPattern {
		return fmt.Sprintf("{player: %d, skip}", a.Player)
	}
	return fmt.Sprintf("{player: %d, pattern: %s, choice: %v, leading: %v}",
		a.Player, a.Pattern, a.Choice, a.LeadingRank)
}

// 不可变的轨迹条目, 记录之后不再修改
type Step struct {
	State    State   `json:"state"`
	Action   Action  `json:"action"`
	NewState State   `json:"new_state"`
	Reward   float64 `json:"reward"`
}

// 一局完整的轨迹, 按回合顺序追加
type History []Step

// 保存成字段名稳定的 json 文件, 供外部训练器读取
func (h History) Save(path string) error {
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func LoadHistory(path string) (History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, err
	}
	return h, nil
}

// 逐步回放打印
func (h History) Replay(w io.Writer) {
	for _, step := range h {
		fmt.Fprintf(w, "Player %d action:\n", step.Action.Player)
		fmt.Fprintf(w, "State: %v\n", step.State)
		fmt.Fprintf(w, "Action: %v\n", step.Action)
		fmt.Fprintf(w, "New State: %v\n", step.NewState)
		fmt.Fprintf(w, "Reward: %v\n", step.Reward)
		fmt.Fprintln(w)
	}
}

// 把一局轨迹画成 .dot 链
// 在 http://viz-js.com/ 中粘贴文件内容即可可视化查看
func (h History) WriteDot(name, path string) error {
	graph := graphviz.New(name, graphviz.Directed)
	prev := graphviz.NewEntity("s_0", `[shape=box,label="start"]`)
	for i, step := range h {
		var (
			attr  = ""
			label string
		)
		if step.Action.ContainsPattern {
			attr = "[color=red]"
			label = fmt.Sprintf("player: %d\\lpattern: %s\\lchoice: %v\\lreward: %.2g\\l",
				step.Action.Player, step.Action.Pattern, step.Action.Choice, step.Reward)
		} else {
			label = fmt.Sprintf("player: %d\\lskip\\lreward: %.2g\\l", step.Action.Player, step.Reward)
		}
		next := graphviz.NewEntity(fmt.Sprintf("s_%d", i+1),
			fmt.Sprintf("[shape=box,label=\"%s\"]", label))
		graph.Add(prev, next, attr)
		prev = next
	}
	return graph.WriteFile(path)
}
