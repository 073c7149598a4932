package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gopherd/shangyou/game"
)

var (
	flagConfig = flag.String("config", "", "yaml config file")
	flagSeed   = flag.Int64("seed", 0, "random seed, 0 picks one from the clock")
	flagDecks  = flag.Int("decks", 0, "number of decks, overrides the config file")
	flagHuman  = flag.Bool("human", false, "control the last seat interactively")
	flagSearch = flag.Bool("search", false, "seat 0 uses the mcts policy")
	flagSave   = flag.String("save", "", "write the game history to this file")
	flagReplay = flag.String("replay", "", "replay a saved history file and exit")
	flagDot    = flag.String("dot", "", "write the game history as a graphviz .dot file")
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func main() {
	flag.Parse()

	if *flagReplay != "" {
		history, err := game.LoadHistory(*flagReplay)
		if err != nil {
			fatal(err)
		}
		history.Replay(os.Stdout)
		return
	}

	cfg := game.DefaultConfig()
	if *flagConfig != "" {
		var err error
		cfg, err = game.LoadConfig(*flagConfig)
		if err != nil {
			fatal(err)
		}
	}
	if *flagSeed != 0 {
		cfg.Seed = *flagSeed
	}
	if *flagDecks != 0 {
		cfg.Decks = *flagDecks
	}
	if *flagHuman {
		cfg.Human = true
	}
	if *flagSearch {
		cfg.Search = true
	}

	env, err := game.NewEnv(cfg)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("New game with %d players and %d deck(s) of cards.\n", cfg.Players, cfg.Decks)
	winner, history := env.Play()
	fmt.Printf("Game over. Winner is player %d\n", winner)

	if *flagSave != "" {
		if err := history.Save(*flagSave); err != nil {
			fatal(err)
		}
	}
	if *flagDot != "" {
		if err := history.WriteDot("game", *flagDot); err != nil {
			fatal(err)
		}
	}
}
