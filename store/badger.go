package store

import (
	"encoding/json"
	"fmt"
	"strings"

	badger "github.com/dgraph-io/badger/v2"
	"github.com/gloworm-vision/gloworm-io/device"
	"github.com/gloworm-vision/gloworm-io/gpio"
)

type badgerDB struct {
	db *badger.DB
}

const (
	badgerDevicePrefix = "devices/"
	badgerChipKey      = "chip"
)

// OpenBadgerDB opens a badger DB with the given options as a config store.
func OpenBadgerDB(options badger.Options) (Store, error) {
	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("unable to open badger db: %w", err)
	}

	return &badgerDB{db: db}, nil
}

func (b *badgerDB) Close() error {
	return b.db.Close()
}

func (b *badgerDB) DeviceConfig(name string) (device.Config, error) {
	var c device.Config

	err := b.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(badgerDevicePrefix + name))
		if err == badger.ErrKeyNotFound {
			return ErrNotExist
		}
		if err != nil {
			return fmt.Errorf("couldn't get raw device config: %w", err)
		}

		err = item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &c); err != nil {
				return fmt.Errorf("couldn't unmarshal device config JSON: %w", err)
			}

			return nil
		})
		if err != nil {
			return fmt.Errorf("couldn't get device config value: %w", err)
		}

		return nil
	})
	if err != nil {
		return c, fmt.Errorf("unable to get device config %q: %w", name, err)
	}

	return c, nil
}

func (b *badgerDB) ListDeviceConfigs() ([]string, error) {
	names := make([]string, 0)

	err := b.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(badgerDevicePrefix)

		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			names = append(names, strings.TrimPrefix(key, badgerDevicePrefix))
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to list device configs: %w", err)
	}

	return names, nil
}

func (b *badgerDB) PutDeviceConfig(name string, c device.Config) error {
	configJSON, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("unable to marshal device config: %w", err)
	}

	err = b.db.Update(func(tx *badger.Txn) error {
		return tx.Set([]byte(badgerDevicePrefix+name), configJSON)
	})
	if err != nil {
		return fmt.Errorf("unable to put device config %q: %w", name, err)
	}

	return nil
}

func (b *badgerDB) DeleteDeviceConfig(name string) error {
	err := b.db.Update(func(tx *badger.Txn) error {
		key := []byte(badgerDevicePrefix + name)

		if _, err := tx.Get(key); err == badger.ErrKeyNotFound {
			return ErrNotExist
		}

		return tx.Delete(key)
	})
	if err != nil {
		return fmt.Errorf("unable to delete device config %q: %w", name, err)
	}

	return nil
}

func (b *badgerDB) ChipConfig() (gpio.Config, error) {
	var c gpio.Config

	err := b.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(badgerChipKey))
		if err == badger.ErrKeyNotFound {
			return ErrNotExist
		}
		if err != nil {
			return fmt.Errorf("couldn't get raw chip config: %w", err)
		}

		err = item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &c); err != nil {
				return fmt.Errorf("couldn't unmarshal chip config JSON: %w", err)
			}

			return nil
		})
		if err != nil {
			return fmt.Errorf("couldn't get chip config value: %w", err)
		}

		return nil
	})
	if err != nil {
		return c, fmt.Errorf("unable to get chip config: %w", err)
	}

	return c, nil
}

func (b *badgerDB) PutChipConfig(c gpio.Config) error {
	chipJSON, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("unable to marshal chip config: %w", err)
	}

	err = b.db.Update(func(tx *badger.Txn) error {
		return tx.Set([]byte(badgerChipKey), chipJSON)
	})
	if err != nil {
		return fmt.Errorf("unable to put chip config: %w", err)
	}

	return nil
}
