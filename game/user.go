package game

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gopherd/shangyou/poker"
	"github.com/gopherd/shangyou/rule"
)

// 人机交互策略: 从注入的 reader 读取出牌, 合法性判定与自动策略共用
// 非法输入重新提问, 输入结束(EOF)当作过牌, 空行表示主动过牌
type userPlayer struct {
	hand    poker.Hand
	moveset rule.Moveset
	free    bool
	in      *bufio.Scanner
	out     io.Writer
}

func NewUserPlayer(hand poker.Hand, ms rule.Moveset, in io.Reader, out io.Writer) Player {
	return &userPlayer{
		hand:    hand,
		moveset: ms.Clone(),
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

func (p *userPlayer) Hand() *poker.Hand { return &p.hand }
func (p *userPlayer) Free() bool        { return p.free }
func (p *userPlayer) SetFree(free bool) { p.free = free }

func (p *userPlayer) Move(pattern rule.Pattern, leading poker.Rank) (Move, bool) {
	fmt.Fprintf(p.out, "Hand: %s\n%s\n", p.hand, p.hand.Format())
	for {
		if p.free {
			leading = poker.NoRank
			fmt.Fprintln(p.out, "FREE TO MOVE")
			line, ok := p.prompt("Enter the pattern: ")
			if !ok {
				return Move{}, false
			}
			q, found := p.moveset.Lookup(strings.TrimSpace(line))
			if !found {
				fmt.Fprintln(p.out, "Invalid pattern. Please try again.")
				continue
			}
			pattern = q
		}

		line, ok := p.prompt("Enter your move: ")
		if !ok {
			return Move{}, false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return Move{}, false
		}

		choice, err := parseCards(line)
		if err == nil {
			var rank poker.Rank
			rank, err = rule.Validate(choice, p.hand, pattern, leading)
			if err == nil {
				p.free = false
				p.hand.Remove(choice)
				return Move{Pattern: pattern, Choice: choice, Rank: rank}, true
			}
		}
		fmt.Fprintf(p.out, "Invalid card selection (%v). Please try again.\n", err)
	}
}

func (p *userPlayer) prompt(msg string) (string, bool) {
	fmt.Fprint(p.out, msg)
	if !p.in.Scan() {
		return "", false
	}
	return p.in.Text(), true
}

// 把 "334455" 这样的记号串解析成计数向量
func parseCards(s string) (rule.Choice, error) {
	var c rule.Choice
	for i := 0; i < len(s); i++ {
		r, ok := poker.ParseRank(s[i])
		if !ok {
			return rule.Choice{}, fmt.Errorf("unknown card token %q", s[i])
		}
		c[r]++
	}
	return c, nil
}
