package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/cart/pkg/response"
	"github.com/Alturino/storefront/internal/log"
)

// Slot is the durable local cart storage, one key holding the serialized
// product-with-quantity entries. Absent, empty or unparseable content loads as
// an empty cart, the slot self heals on the next successful store.
type Slot interface {
	Load(c context.Context) ([]response.CartItem, error)
	Store(c context.Context, items []response.CartItem) error
	Clear(c context.Context) error
}

// FileSlot keeps the cart in a single json file, the localStorage analog.
type FileSlot struct {
	dir string
	key string
}

func NewFileSlot(dir, key string) *FileSlot {
	return &FileSlot{dir: dir, key: key}
}

func (s *FileSlot) path() string {
	return filepath.Join(s.dir, s.key+".json")
}

func (s *FileSlot) Load(c context.Context) ([]response.CartItem, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "FileSlot Load").
		Logger()

	raw, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		err = fmt.Errorf("failed reading cart slot with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	items := []response.CartItem{}
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Warn().
			Err(err).
			Msg("cart slot content is malformed, treating as empty cart")
		return nil, nil
	}
	return items, nil
}

func (s *FileSlot) Store(c context.Context, items []response.CartItem) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "FileSlot Store").
		Int(log.KeyCartItems, len(items)).
		Logger()

	if items == nil {
		items = []response.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		err = fmt.Errorf("failed marshaling cart slot with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		err = fmt.Errorf("failed creating state dir with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	// rename keeps a reload from ever observing a half written slot
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		err = fmt.Errorf("failed writing cart slot with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if err := os.Rename(tmp, s.path()); err != nil {
		err = fmt.Errorf("failed replacing cart slot with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Debug().Msg("stored cart slot")
	return nil
}

func (s *FileSlot) Clear(c context.Context) error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed clearing cart slot with error=%w", err)
	}
	return nil
}
