package badger

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/helios-eng/helios/core"
	"github.com/helios-eng/helios/storage"
)

// MaterialRepository implements storage.MaterialRepository for BadgerDB.
type MaterialRepository struct {
	backend *Backend
}

var _ storage.MaterialRepository = (*MaterialRepository)(nil)

// NewMaterialRepository creates a new MaterialRepository.
func NewMaterialRepository(backend *Backend) (*MaterialRepository, error) {
	return &MaterialRepository{
		backend: backend,
	}, nil
}

// Close releases resources. MaterialRepository has no resources to release.
func (r *MaterialRepository) Close() error {
	return nil
}

// FindSimilar delegates to the backend.
func (r *MaterialRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]core.ScoredResult, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// AddMaterials adds one or more material records to storage.
func (r *MaterialRepository) AddMaterials(ctx context.Context, records ...*core.MaterialRecord) ([]*core.MaterialRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if err := core.ValidateMaterialRecord(record); err != nil {
				return err
			}

			// Material names are the natural key
			if record.Id == 0 {
				record.Id = core.IDFromContent(record.Name)
			}

			if record.InsertedAt.IsZero() {
				record.InsertedAt = time.Now().UTC()
			}
			record.UpdatedAt = record.InsertedAt

			// Store primary record
			key := makeMaterialKey(record.Id)
			value := storage.MarshalMaterialRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Store name index
			nameKey := makeMaterialNameKey(record.Name)
			if err := tx.Set(nameKey, storage.MarshalID(record.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// UpdateMaterials updates existing material records.
func (r *MaterialRepository) UpdateMaterials(ctx context.Context, records ...*core.MaterialRecord) ([]*core.MaterialRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			key := makeMaterialKey(record.Id)

			// Read old record to detect name changes
			old, err := readMaterial(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			record.UpdatedAt = time.Now().UTC()

			value := storage.MarshalMaterialRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			if old.Name != record.Name {
				if err := tx.Delete(makeMaterialNameKey(old.Name)); err != nil {
					return err
				}
				if err := tx.Set(makeMaterialNameKey(record.Name), storage.MarshalID(record.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// GetMaterial retrieves a single material record by ID.
func (r *MaterialRepository) GetMaterial(ctx context.Context, id core.ID) (*core.MaterialRecord, error) {
	var record *core.MaterialRecord

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		record, err = readMaterial(tx, makeMaterialKey(id))
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, storage.ErrNotFound
	}

	return record, nil
}

// GetMaterialByName retrieves a material record by its unique name.
func (r *MaterialRepository) GetMaterialByName(ctx context.Context, name string) (*core.MaterialRecord, error) {
	var id core.ID

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeMaterialNameKey(name))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}

	return r.GetMaterial(ctx, id)
}

// ListMaterials retrieves all material records, ordered by name.
func (r *MaterialRepository) ListMaterials(ctx context.Context) ([]*core.MaterialRecord, error) {
	var records []*core.MaterialRecord

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(materialRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.MaterialRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalMaterialRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if record != nil {
				records = append(records, record)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(records, func(a, b *core.MaterialRecord) int {
		return strings.Compare(a.Name, b.Name)
	})

	return records, nil
}

// Count returns the number of stored material records.
func (r *MaterialRepository) Count(ctx context.Context) (int, error) {
	count := 0

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(materialRecordPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// readMaterial reads and unmarshals a material record within a transaction.
// Returns nil without error if the key does not exist.
func readMaterial(tx *badger.Txn, key []byte) (*core.MaterialRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var record *core.MaterialRecord
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalMaterialRecord(val)
		return err
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}
