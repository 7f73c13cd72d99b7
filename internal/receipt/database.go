package receipt

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.etcd.io/bbolt"

	"github.com/efekanoption-hub/FisTaray-c/internal/extraction"
)

const (
	profileBucketName = "profiles"
	receiptBucketName = "receipts" // one nested bucket per profile
)

// DB defines the interface for database operations
type DB interface {
	// SaveProfile creates or replaces a profile
	SaveProfile(profile *Profile) error

	// GetProfile retrieves a profile by ID
	GetProfile(id string) (*Profile, error)

	// ListProfiles returns all profiles, oldest first
	ListProfiles() ([]*Profile, error)

	// DeleteProfile removes a profile and its whole receipt history
	DeleteProfile(id string) error

	// SaveReceipt puts a receipt at the head of a profile's history
	SaveReceipt(profileID string, receipt *extraction.Receipt) error

	// GetReceipt retrieves a receipt by ID
	GetReceipt(profileID string, id int64) (*extraction.Receipt, error)

	// ListReceipts returns a profile's history, newest first
	ListReceipts(profileID string) ([]*extraction.Receipt, error)

	// DeleteReceipt removes a receipt from a profile's history
	DeleteReceipt(profileID string, id int64) error

	// Close closes the database connection
	Close() error
}

// BoltDB implements the DB interface using BoltDB. Receipts are keyed by
// their big-endian id so a reverse cursor walk yields newest first.
type BoltDB struct {
	db  *bbolt.DB
	now func() time.Time
}

// NewBoltDB opens the database and makes sure the default profile exists
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	b := &BoltDB{db: db, now: time.Now}
	err = db.Update(func(tx *bbolt.Tx) error {
		profiles, err := tx.CreateBucketIfNotExists([]byte(profileBucketName))
		if err != nil {
			return err
		}
		receipts, err := tx.CreateBucketIfNotExists([]byte(receiptBucketName))
		if err != nil {
			return err
		}
		if profiles.Get([]byte(DefaultProfileID)) != nil {
			return nil
		}
		return putProfile(profiles, receipts, &Profile{
			ID:        DefaultProfileID,
			Name:      defaultProfileName,
			CreatedAt: b.now(),
		})
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return b, nil
}

func putProfile(profiles, receipts *bbolt.Bucket, profile *Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}
	if err := profiles.Put([]byte(profile.ID), data); err != nil {
		return err
	}
	_, err = receipts.CreateBucketIfNotExists([]byte(profile.ID))
	return err
}

// SaveProfile saves a profile to the database
func (b *BoltDB) SaveProfile(profile *Profile) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return putProfile(
			tx.Bucket([]byte(profileBucketName)),
			tx.Bucket([]byte(receiptBucketName)),
			profile,
		)
	})
}

// GetProfile retrieves a profile by ID
func (b *BoltDB) GetProfile(id string) (*Profile, error) {
	var profile *Profile
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(profileBucketName)).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrProfileNotFound, id)
		}
		return json.Unmarshal(data, &profile)
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// ListProfiles returns all profiles in creation order
func (b *BoltDB) ListProfiles() ([]*Profile, error) {
	profiles := make([]*Profile, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(profileBucketName)).ForEach(func(k, v []byte) error {
			var profile Profile
			if err := json.Unmarshal(v, &profile); err != nil {
				return fmt.Errorf("unmarshaling profile: %w", err)
			}
			profiles = append(profiles, &profile)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(profiles, func(p, q *Profile) int {
		return p.CreatedAt.Compare(q.CreatedAt)
	})
	return profiles, nil
}

// DeleteProfile removes a profile together with all of its receipts
func (b *BoltDB) DeleteProfile(id string) error {
	if id == DefaultProfileID {
		return ErrDefaultProfile
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		profiles := tx.Bucket([]byte(profileBucketName))
		if profiles.Get([]byte(id)) == nil {
			return fmt.Errorf("%w: %s", ErrProfileNotFound, id)
		}
		if err := profiles.Delete([]byte(id)); err != nil {
			return err
		}
		err := tx.Bucket([]byte(receiptBucketName)).DeleteBucket([]byte(id))
		if err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
			return fmt.Errorf("deleting receipt history: %w", err)
		}
		return nil
	})
}

// history returns the receipt bucket of a profile
func history(tx *bbolt.Tx, profileID string) (*bbolt.Bucket, error) {
	bucket := tx.Bucket([]byte(receiptBucketName)).Bucket([]byte(profileID))
	if bucket == nil {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, profileID)
	}
	return bucket, nil
}

func receiptKey(id int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}

// SaveReceipt saves a receipt to a profile's history
func (b *BoltDB) SaveReceipt(profileID string, receipt *extraction.Receipt) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := history(tx, profileID)
		if err != nil {
			return err
		}
		data, err := json.Marshal(receipt)
		if err != nil {
			return fmt.Errorf("marshaling receipt: %w", err)
		}
		return bucket.Put(receiptKey(receipt.ID), data)
	})
}

// GetReceipt retrieves a receipt by ID
func (b *BoltDB) GetReceipt(profileID string, id int64) (*extraction.Receipt, error) {
	var receipt *extraction.Receipt
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket, err := history(tx, profileID)
		if err != nil {
			return err
		}
		data := bucket.Get(receiptKey(id))
		if data == nil {
			return fmt.Errorf("%w: %d", ErrReceiptNotFound, id)
		}
		return json.Unmarshal(data, &receipt)
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// ListReceipts returns a profile's receipts, newest first
func (b *BoltDB) ListReceipts(profileID string) ([]*extraction.Receipt, error) {
	receipts := make([]*extraction.Receipt, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket, err := history(tx, profileID)
		if err != nil {
			return err
		}
		c := bucket.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var receipt extraction.Receipt
			if err := json.Unmarshal(v, &receipt); err != nil {
				return fmt.Errorf("unmarshaling receipt: %w", err)
			}
			receipts = append(receipts, &receipt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipts, nil
}

// DeleteReceipt removes a receipt from the database
func (b *BoltDB) DeleteReceipt(profileID string, id int64) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := history(tx, profileID)
		if err != nil {
			return err
		}
		key := receiptKey(id)
		if bucket.Get(key) == nil {
			return fmt.Errorf("%w: %d", ErrReceiptNotFound, id)
		}
		return bucket.Delete(key)
	})
}

// Close closes the database connection
func (b *BoltDB) Close() error {
	return b.db.Close()
}
