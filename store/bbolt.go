package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gloworm-vision/gloworm-io/device"
	"github.com/gloworm-vision/gloworm-io/gpio"
	"go.etcd.io/bbolt"
)

type BBolt struct {
	db *bbolt.DB
}

const (
	bboltGlowormBucket      = "gloworm-io"
	bboltDeviceConfigBucket = "device-configs" // child of gloworm-io

	// gloworm-io keys
	bboltChipKey = "chip"
)

// OpenBBolt opens a BBoltDB database at the given path and creates the needed
// buckets if they don't exist.
func OpenBBolt(path string, mode os.FileMode, options *bbolt.Options) (Store, error) {
	db, err := bbolt.Open(path, mode, options)
	if err != nil {
		return nil, fmt.Errorf("unable to open bbolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		glowormBucket, err := tx.CreateBucketIfNotExists([]byte(bboltGlowormBucket))
		if err != nil {
			return fmt.Errorf("unable to create bucket %q: %w", bboltGlowormBucket, err)
		}

		_, err = glowormBucket.CreateBucketIfNotExists([]byte(bboltDeviceConfigBucket))
		if err != nil {
			return fmt.Errorf("unable to create bucket %q: %w", bboltDeviceConfigBucket, err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create bbolt buckets: %w", err)
	}

	return &BBolt{
		db: db,
	}, nil
}

func (b *BBolt) Close() error {
	return b.db.Close()
}

func (b *BBolt) DeviceConfig(name string) (device.Config, error) {
	var c device.Config
	err := b.db.View(func(tx *bbolt.Tx) error {
		glowormBucket := tx.Bucket([]byte(bboltGlowormBucket))
		configBucket := glowormBucket.Bucket([]byte(bboltDeviceConfigBucket))

		configJSON := configBucket.Get([]byte(name))
		if configJSON == nil {
			return ErrNotExist
		}

		if err := json.Unmarshal(configJSON, &c); err != nil {
			return fmt.Errorf("unable to unmarshal device config JSON: %w", err)
		}

		return nil
	})
	if err != nil {
		return c, fmt.Errorf("unable to get device config %q: %w", name, err)
	}

	return c, nil
}

func (b *BBolt) ListDeviceConfigs() ([]string, error) {
	names := make([]string, 0)

	err := b.db.View(func(tx *bbolt.Tx) error {
		glowormBucket := tx.Bucket([]byte(bboltGlowormBucket))
		configBucket := glowormBucket.Bucket([]byte(bboltDeviceConfigBucket))

		err := configBucket.ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
		if err != nil {
			return fmt.Errorf("unable to iterate over config bucket: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to list device configs: %w", err)
	}

	return names, nil
}

func (b *BBolt) PutDeviceConfig(name string, c device.Config) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		configJSON, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("unable to marshal device config: %w", err)
		}

		glowormBucket := tx.Bucket([]byte(bboltGlowormBucket))
		configBucket := glowormBucket.Bucket([]byte(bboltDeviceConfigBucket))
		if err := configBucket.Put([]byte(name), configJSON); err != nil {
			return fmt.Errorf("unable to put device config %q: %w", name, err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("unable to update device config: %w", err)
	}

	return nil
}

func (b *BBolt) DeleteDeviceConfig(name string) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		glowormBucket := tx.Bucket([]byte(bboltGlowormBucket))
		configBucket := glowormBucket.Bucket([]byte(bboltDeviceConfigBucket))

		if configBucket.Get([]byte(name)) == nil {
			return ErrNotExist
		}

		return configBucket.Delete([]byte(name))
	})
	if err != nil {
		return fmt.Errorf("unable to delete device config %q: %w", name, err)
	}

	return nil
}

func (b *BBolt) ChipConfig() (gpio.Config, error) {
	var c gpio.Config
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bboltGlowormBucket))
		chipJSON := bucket.Get([]byte(bboltChipKey))
		if chipJSON == nil {
			return ErrNotExist
		}

		if err := json.Unmarshal(chipJSON, &c); err != nil {
			return fmt.Errorf("unable to unmarshal chip config JSON: %w", err)
		}

		return nil
	})
	if err != nil {
		return c, fmt.Errorf("unable to get chip config: %w", err)
	}

	return c, nil
}

func (b *BBolt) PutChipConfig(c gpio.Config) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		chipJSON, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("unable to marshal chip config: %w", err)
		}

		bucket := tx.Bucket([]byte(bboltGlowormBucket))
		if err := bucket.Put([]byte(bboltChipKey), chipJSON); err != nil {
			return fmt.Errorf("unable to put chip config: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("unable to update chip config: %w", err)
	}

	return nil
}
