package repositories

import (
	"aptos-board/contract"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// VisitedKey marks that the onboarding panel has already been shown once.
const VisitedKey = "aptos-board-visited"

const preferencePrefix = "preference:"

// PreferenceRepository keeps small flags across runs.
type PreferenceRepository struct {
	db  *badger.DB
	log *slog.Logger
}

var _ contract.Preferences = (*PreferenceRepository)(nil)

func NewPreferenceRepository(db *badger.DB, log *slog.Logger) *PreferenceRepository {
	return &PreferenceRepository{db: db, log: log}
}

func (r PreferenceRepository) GetBool(key string) (bool, bool, error) {
	var value wrapperspb.BoolValue
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(preferenceKey(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return proto.Unmarshal(val, &value)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("read preference %q: %w", key, err)
	}
	return value.GetValue(), true, nil
}

func (r PreferenceRepository) SetBool(key string, value bool) error {
	bytes, err := proto.Marshal(wrapperspb.Bool(value))
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(preferenceKey(key), bytes)
	})
}

func preferenceKey(key string) []byte {
	return []byte(preferencePrefix + key)
}

// FirstVisit reports whether the visited flag was absent, and records it when it was.
// A failing store counts as a returning visitor so onboarding never blocks the board.
func FirstVisit(prefs contract.Preferences, log *slog.Logger) bool {
	visited, found, err := prefs.GetBool(VisitedKey)
	if err != nil {
		log.Warn("Cannot read onboarding flag", "error", err)
		return false
	}
	if found && visited {
		return false
	}
	if err := prefs.SetBool(VisitedKey, true); err != nil {
		log.Warn("Cannot record onboarding flag", "error", err)
	}
	return true
}
