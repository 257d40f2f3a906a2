package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"papertrader/internal/application/port"
	"papertrader/internal/domain"
)

// Store persists the portfolio as a single JSON file:
// {"cash": n, "positions": {"SYM": {"buyPrice","sellPrice","quantity"}}}.
// The format round-trips exactly under reload.
type Store struct {
	path        string
	initialCash float64
}

func New(path string, initialCash float64) *Store {
	return &Store{path: path, initialCash: initialCash}
}

// Load reads the persisted state. A missing or unreadable file is the
// recovery path: it yields a fresh portfolio with the initial cash.
func (s *Store) Load(ctx context.Context) (*domain.Portfolio, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", s.path).Msg("portfolio state unreadable, starting fresh")
		}
		return domain.NewPortfolio(s.initialCash), nil
	}

	var pf domain.Portfolio
	if err := json.Unmarshal(data, &pf); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("portfolio state corrupt, starting fresh")
		return domain.NewPortfolio(s.initialCash), nil
	}
	if pf.Positions == nil {
		pf.Positions = make(map[string]domain.Position)
	}
	for sym, pos := range pf.Positions {
		pos.Symbol = sym
		pf.Positions[sym] = pos
	}
	return &pf, nil
}

// Save serializes the portfolio to a temp file in the same directory and
// renames it over the target, so a crash mid-write cannot leave a partial
// state file behind.
func (s *Store) Save(ctx context.Context, pf *domain.Portfolio) error {
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(pf, "", "  ")
	if err != nil {
		return fmt.Errorf("encode portfolio: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".portfolio-*.json")
	if err != nil {
		return fmt.Errorf("create temp state: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp state: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

var _ port.PortfolioRepository = (*Store)(nil)
