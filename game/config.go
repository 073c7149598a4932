package game

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/gopherd/shangyou/rule"
)

// 不支持的对局配置在构造时立即报错
var ErrUnsupportedConfig = errors.New("game: unsupported config")

// 对局配置
type Config struct {
	// 玩家数, 目前只支持 4
	Players int `mapstructure:"players" json:"players"`
	// 牌的副数, 1 或 2
	Decks int `mapstructure:"decks" json:"decks"`
	// 胜负模式, 目前只支持 individual
	WinMode string `mapstructure:"win_mode" json:"win_mode"`
	// 启用的牌型名, 空表示默认牌型组
	Moveset []string `mapstructure:"moveset" json:"moveset"`
	// 最后一个座位是否由人控制
	Human bool `mapstructure:"human" json:"human"`
	// 0 号座位是否使用搜索策略
	Search bool `mapstructure:"search" json:"search"`
	// 随机种子, 0 表示按时间取
	Seed int64 `mapstructure:"seed" json:"seed"`
}

func DefaultConfig() Config {
	return Config{
		Players: 4,
		Decks:   1,
		WinMode: "individual",
	}
}

// 从 yaml 文件加载配置, 未出现的字段保持默认值
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// 各种支持的玩家数和副数组合下每人的发牌张数
// 最后一个座位拿走剩下的所有牌
var cardsPerPlayer = map[string][]int{
	"4_1": {13, 13, 13, 15},
	"4_2": {27, 27, 27, 27},
}

func (c Config) dealKey() string {
	return fmt.Sprintf("%d_%d", c.Players, c.Decks)
}

func (c Config) validate() error {
	if _, ok := cardsPerPlayer[c.dealKey()]; !ok {
		return fmt.Errorf("%w: %d players with %d deck(s)", ErrUnsupportedConfig, c.Players, c.Decks)
	}
	if c.WinMode != "individual" {
		return fmt.Errorf("%w: win mode %q", ErrUnsupportedConfig, c.WinMode)
	}
	return nil
}

// 解析启用的牌型组
func (c Config) moveset() (rule.Moveset, error) {
	if len(c.Moveset) == 0 {
		return rule.Moveset1.Clone(), nil
	}
	ms := make(rule.Moveset, 0, len(c.Moveset))
	for _, name := range c.Moveset {
		p, ok := rule.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: pattern %q", ErrUnsupportedConfig, name)
		}
		ms = append(ms, p)
	}
	return ms, nil
}
