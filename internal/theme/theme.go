// Package theme persists the light/dark display preference.
package theme

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Key is the store key holding the theme.
const Key = "theme"

func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}

	return Dark
}

// Load returns the stored theme, or Light when none or an unknown value is
// stored.
func Load(ctx context.Context, store ledger.Store) (Theme, error) {
	v, ok, err := store.Get(ctx, Key)
	if err != nil {
		return Light, &ledger.PersistenceError{Op: "get", Key: Key, Err: err}
	}

	if ok && Theme(v) == Dark {
		return Dark, nil
	}

	return Light, nil
}

func Save(ctx context.Context, store ledger.Store, t Theme) error {
	if t != Light && t != Dark {
		return fmt.Errorf("unknown theme %q", t)
	}

	if err := store.Set(ctx, Key, string(t)); err != nil {
		return &ledger.PersistenceError{Op: "set", Key: Key, Err: err}
	}

	return nil
}
