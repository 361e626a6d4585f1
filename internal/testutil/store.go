package testutil

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/seventv/tracker/data/model"
)

// MemoryStore is an in-memory log store and account directory.
type MemoryStore struct {
	mx       sync.Mutex
	seq      int
	entries  []model.LogEntry
	accounts []model.Account

	// When set, the matching operations fail with this error
	ReadErr   error
	AppendErr error

	AppendCalls int
}

func NewMemoryStore(accounts ...model.Account) *MemoryStore {
	return &MemoryStore{
		accounts: accounts,
	}
}

// Seed appends entries without going through AppendEntries.
func (s *MemoryStore) Seed(entries ...model.LogEntry) {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.insert(entries)
}

func (s *MemoryStore) insert(entries []model.LogEntry) {
	for i := range entries {
		s.seq++
		entries[i].ID = strconv.Itoa(s.seq)

		if entries[i].InsertedAt.IsZero() {
			entries[i].InsertedAt = time.Unix(entries[i].LastSeen, 0).UTC()
		}

		s.entries = append(s.entries, entries[i])
	}
}

// Entries returns an account's log in insertion order.
func (s *MemoryStore) Entries(accountID int64) []model.LogEntry {
	s.mx.Lock()
	defer s.mx.Unlock()

	result := []model.LogEntry{}

	for _, e := range s.entries {
		if e.AccountID == accountID {
			result = append(result, e)
		}
	}

	return result
}

func (s *MemoryStore) Len() int {
	s.mx.Lock()
	defer s.mx.Unlock()

	return len(s.entries)
}

func (s *MemoryStore) AppendEntries(ctx context.Context, entries []model.LogEntry) error {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.AppendCalls++

	if s.AppendErr != nil {
		return s.AppendErr
	}

	s.insert(entries)

	return nil
}

func (s *MemoryStore) LastEntryPerAccount(ctx context.Context, ids []int64) (map[int64]model.LogEntry, error) {
	return s.LastEntrySince(ctx, ids, 0)
}

func (s *MemoryStore) LastEntrySince(ctx context.Context, ids []int64, since int64) (map[int64]model.LogEntry, error) {
	s.mx.Lock()
	defer s.mx.Unlock()

	if s.ReadErr != nil {
		return nil, s.ReadErr
	}

	want := idSet(ids)
	result := make(map[int64]model.LogEntry)

	for _, e := range s.entries {
		if _, ok := want[e.AccountID]; !ok || e.LastSeen < since {
			continue
		}

		result[e.AccountID] = e
	}

	return result, nil
}

func (s *MemoryStore) EntriesInRange(ctx context.Context, ids []int64, from, to int64) ([]model.LogEntry, error) {
	s.mx.Lock()
	defer s.mx.Unlock()

	if s.ReadErr != nil {
		return nil, s.ReadErr
	}

	want := idSet(ids)
	result := []model.LogEntry{}

	for _, e := range s.entries {
		if _, ok := want[e.AccountID]; !ok || e.LastSeen < from || e.LastSeen > to {
			continue
		}

		result = append(result, e)
	}

	return result, nil
}

func (s *MemoryStore) LoggedAccountIDs(ctx context.Context) ([]int64, error) {
	s.mx.Lock()
	defer s.mx.Unlock()

	if s.ReadErr != nil {
		return nil, s.ReadErr
	}

	seen := make(map[int64]struct{})
	result := []int64{}

	for _, e := range s.entries {
		if _, ok := seen[e.AccountID]; ok {
			continue
		}

		seen[e.AccountID] = struct{}{}
		result = append(result, e.AccountID)
	}

	return result, nil
}

func (s *MemoryStore) Accounts(ctx context.Context, filter model.AccountFilter) ([]model.Account, error) {
	s.mx.Lock()
	defer s.mx.Unlock()

	if s.ReadErr != nil {
		return nil, s.ReadErr
	}

	q := strings.ToLower(filter.Query)
	result := []model.Account{}

	for _, a := range s.accounts {
		if q != "" && !strings.Contains(strings.ToLower(a.Name()), q) {
			continue
		}

		result = append(result, a)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	if filter.Skip > 0 {
		if filter.Skip >= len(result) {
			return []model.Account{}, nil
		}

		result = result[filter.Skip:]
	}

	if filter.Take > 0 && filter.Take < len(result) {
		result = result[:filter.Take]
	}

	return result, nil
}

func (s *MemoryStore) AccountByID(ctx context.Context, id int64) (model.Account, error) {
	s.mx.Lock()
	defer s.mx.Unlock()

	if s.ReadErr != nil {
		return model.Account{}, s.ReadErr
	}

	for _, a := range s.accounts {
		if a.ID == id {
			return a, nil
		}
	}

	return model.Account{}, model.ErrAccountNotFound()
}

func (s *MemoryStore) TrackedAccountIDs(ctx context.Context) ([]int64, error) {
	accounts, err := s.Accounts(ctx, model.AccountFilter{})
	if err != nil {
		return nil, err
	}

	result := make([]int64, len(accounts))
	for i, a := range accounts {
		result[i] = a.ID
	}

	return result, nil
}

func idSet(ids []int64) map[int64]struct{} {
	m := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}

	return m
}

// FakeSource is a presence source returning canned snapshots.
type FakeSource struct {
	mx        sync.Mutex
	Snapshots []model.Snapshot
	Err       error
	Calls     int
}

func (f *FakeSource) FetchSnapshots(ctx context.Context, ids []int64) ([]model.Snapshot, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	f.Calls++

	if f.Err != nil {
		return nil, f.Err
	}

	return f.Snapshots, nil
}
