package poker

import (
	"bytes"
)

// 牌的面值(不区分花色), 按出牌时的大小排序:
// 3 < 4 < ... < K < A < 2 < 小王 < 大王
type Rank int8

const (
	NoRank Rank = -1

	R3      Rank = 0
	R4      Rank = 1
	R5      Rank = 2
	R6      Rank = 3
	R7      Rank = 4
	R8      Rank = 5
	R9      Rank = 6
	R10     Rank = 7
	RJ      Rank = 8
	RQ      Rank = 9
	RK      Rank = 10
	RA      Rank = 11
	R2      Rank = 12
	RJoker1 Rank = 13
	RJoker2 Rank = 14
)

// 面值总数
const NumRank = 15

// 顺子(宽度大于 1 的牌型)允许的最大面值: 2 和王不入顺
const MaxChainRank = RA

// 每个面值对应一个字符记号, 用于人机输入输出
var tokens = [NumRank]byte{
	'3', '4', '5', '6', '7', '8', '9', 'X', 'J', 'Q', 'K', 'A', '2', '#', '$',
}

// 单副牌中各面值的张数
var deckFreq = [NumRank]int{
	4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 1, 1,
}

// 单副牌总张数
const CardsPerDeck = 54

func (r Rank) Valid() bool { return r >= 0 && r < NumRank }

func (r Rank) String() string {
	if !r.Valid() {
		return "-"
	}
	return string(tokens[r])
}

// 字符记号解析成面值
func ParseRank(token byte) (Rank, bool) {
	for i, t := range tokens {
		if t == token {
			return Rank(i), true
		}
	}
	return NoRank, false
}

// 单副牌中某面值的张数
func Freq(r Rank) int {
	if !r.Valid() {
		return 0
	}
	return deckFreq[r]
}

// n 副牌的完整面值频次表
func Deck(decks int) Hand {
	var h Hand
	for r := range h {
		h[r] = deckFreq[r] * decks
	}
	return h
}

func FormatRanks(ranks []Rank) string {
	var head bytes.Buffer
	var body bytes.Buffer
	var foot bytes.Buffer
	head.WriteString("┏")
	body.WriteString("┃")
	foot.WriteString("┗")
	for i := range ranks {
		if i > 0 {
			head.WriteString("┳")
			body.WriteString("┃")
			foot.WriteString("┻")
		}
		head.WriteString("━")
		body.WriteString(ranks[i].String())
		foot.WriteString("━")
	}
	head.WriteString("┓")
	body.WriteString("┃")
	foot.WriteString("┛")
	return head.String() + "\n" + body.String() + "\n" + foot.String()
}
