package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mathquest/internal/cue"
)

// ShopEntry is a catalog item with its ownership for the current player.
type ShopEntry struct {
	ShopItem
	Owned      bool
	Affordable bool
}

func (s *Service) ShopEntries() []ShopEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := ShopItems()
	out := make([]ShopEntry, 0, len(items))
	for _, it := range items {
		out = append(out, ShopEntry{
			ShopItem:   it,
			Owned:      s.rec.Owns(it.ID),
			Affordable: s.rec.Coins >= it.Cost,
		})
	}
	return out
}

// Purchase buys an item. Owned items and short balances leave the record
// untouched.
func (s *Service) Purchase(ctx context.Context, itemID int) (ShopItem, error) {
	it, ok := ItemByID(itemID)
	if !ok {
		return ShopItem{}, fmt.Errorf("%w: %d", ErrUnknownItem, itemID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rec.Owns(it.ID) {
		return it, ErrAlreadyOwned
	}
	if s.rec.Coins < it.Cost {
		return it, InsufficientCoinsError{Item: it.Name, Cost: it.Cost, Coins: s.rec.Coins}
	}

	prev := s.rec.Clone()
	s.rec.Coins -= it.Cost
	s.rec.Inventory = append(s.rec.Inventory, it.ID)
	if err := s.commit(ctx, prev); err != nil {
		return it, err
	}
	s.log.Info("purchase", zap.String("item", it.Name), zap.Int("cost", it.Cost), zap.Int("coins_left", s.rec.Coins))
	s.play(cue.Purchase)
	return it, nil
}
