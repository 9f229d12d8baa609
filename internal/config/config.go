// Package config holds the server settings.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/benbeisheim/minimax-chess/internal/search"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const maxSearchDepth = 6

type Config struct {
	Addr          string // listen address
	AllowedOrigin string // CORS origin of the browser client
	SearchDepth   int    // plies searched by the engine
	Seed          uint64 // 0 seeds from the clock
	Perspective   string // leaf scoring, "side" or "root"
}

func Default() Config {
	return Config{
		Addr:          ":3000",
		AllowedOrigin: "http://localhost:5173",
		SearchDepth:   search.DefaultDepth,
		Seed:          0,
		Perspective:   search.RootColor.String(),
	}
}

// Load starts from Default, applies CHESS_* environment variables and then
// command-line flags, and validates the result.
func Load(args []string) (Config, error) {
	cfg := Default()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.AllowedOrigin, "origin", cfg.AllowedOrigin, "allowed CORS origin")
	fs.IntVar(&cfg.SearchDepth, "depth", cfg.SearchDepth, "engine search depth in plies")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "seed for engine tie-breaking (0 = random)")
	fs.StringVar(&cfg.Perspective, "perspective", cfg.Perspective, "score leaves for the side to move (side) or the engine (root)")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("CHESS_ADDR"); ok {
		c.Addr = v
	}
	if v, ok := lookup("CHESS_ALLOWED_ORIGIN"); ok {
		c.AllowedOrigin = v
	}
	if v, ok := lookup("CHESS_SEARCH_DEPTH"); ok {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: CHESS_SEARCH_DEPTH=%q", ErrInvalidConfig, v)
		}
		c.SearchDepth = depth
	}
	if v, ok := lookup("CHESS_PERSPECTIVE"); ok {
		c.Perspective = v
	}
	if v, ok := lookup("CHESS_SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: CHESS_SEED=%q", ErrInvalidConfig, v)
		}
		c.Seed = seed
	}
	return nil
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	}
	if c.SearchDepth < 1 || c.SearchDepth > maxSearchDepth {
		return fmt.Errorf("%w: search depth %d outside 1..%d", ErrInvalidConfig, c.SearchDepth, maxSearchDepth)
	}
	if _, err := search.ParsePerspective(c.Perspective); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// SearchPerspective returns the validated Perspective.
func (c Config) SearchPerspective() search.Perspective {
	p, _ := search.ParsePerspective(c.Perspective)
	return p
}
