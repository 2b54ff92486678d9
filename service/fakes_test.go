package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	dmn "github.com/beka-birhanu/vinom-carver/domain"
	"github.com/beka-birhanu/vinom-carver/service/i"
	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

type memMazeRepo struct {
	records map[uuid.UUID]*dmn.MazeRecord
	saveErr error
	sync.Mutex
}

func newMemMazeRepo() *memMazeRepo {
	return &memMazeRepo{records: make(map[uuid.UUID]*dmn.MazeRecord)}
}

func (r *memMazeRepo) Save(_ context.Context, record *dmn.MazeRecord) error {
	r.Lock()
	defer r.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.records[record.ID] = record
	return nil
}

func (r *memMazeRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	r.Lock()
	defer r.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, dmn.ErrMazeNotFound
	}
	return record, nil
}

type memLayoutCache struct {
	layouts map[string][]byte
	builds  int
}

func (c *memLayoutCache) GetOrCreate(_ context.Context, key string, build func() ([]byte, error)) ([]byte, error) {
	if layout, ok := c.layouts[key]; ok {
		return layout, nil
	}
	layout, err := build()
	if err != nil {
		return nil, err
	}
	c.builds++
	c.layouts[key] = layout
	return layout, nil
}

type memSortedQueue struct {
	scores     map[string]float64
	enqueueErr error
}

var _ i.SortedQueue = &memSortedQueue{}

func (q *memSortedQueue) Enqueue(_ context.Context, _ string, score float64, member string) error {
	if q.enqueueErr != nil {
		return q.enqueueErr
	}
	q.scores[member] = score
	return nil
}

func (q *memSortedQueue) Latest(_ context.Context, _ string, n int64) ([]string, error) {
	members := make([]string, 0, len(q.scores))
	for m := range q.scores {
		members = append(members, m)
	}
	sort.Slice(members, func(a, b int) bool { return q.scores[members[a]] > q.scores[members[b]] })
	if int64(len(members)) > n {
		members = members[:n]
	}
	return members, nil
}

type memUserRepo struct {
	users map[string]*dmn.User
}

func (r *memUserRepo) Save(user *dmn.User) error {
	r.users[user.Username] = user
	return nil
}

func (r *memUserRepo) ByID(id uuid.UUID) (*dmn.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, dmn.ErrUserNotFound
}

func (r *memUserRepo) ByUsername(username string) (*dmn.User, error) {
	if u, ok := r.users[username]; ok {
		return u, nil
	}
	return nil, dmn.ErrUserNotFound
}

var errBoom = errors.New("boom")
