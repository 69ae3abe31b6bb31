package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"agrisathi/internal/apperr"
	"agrisathi/model"
)

// fakeStore is an in-memory QueryStore with the same revision CAS semantics
// as the Mongo repository.
type fakeStore struct {
	mu      sync.Mutex
	docs    map[bson.ObjectID]model.Query
	deleted []bson.ObjectID

	failCreate error
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: map[bson.ObjectID]model.Query{}}
}

func (f *fakeStore) Create(ctx context.Context, q model.Query) (model.Query, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate != nil {
		return model.Query{}, f.failCreate
	}
	if q.Question == "" {
		return model.Query{}, apperr.Validation("question is required")
	}
	q.ID = bson.NewObjectID()
	q.Status = model.StatusNormal
	q.Revision = 1
	q.SyncEscalationMirror()
	f.docs[q.ID] = q
	return q, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id bson.ObjectID) (model.Query, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.docs[id]
	if !ok {
		return model.Query{}, apperr.NotFound("query not found")
	}
	return q, nil
}

func (f *fakeStore) GetOwned(ctx context.Context, id, ownerID bson.ObjectID) (model.Query, error) {
	q, err := f.GetByID(ctx, id)
	if err != nil || q.OwnerID != ownerID {
		return model.Query{}, apperr.NotFound("query not found")
	}
	return q, nil
}

func (f *fakeStore) FindByOwner(ctx context.Context, ownerID bson.ObjectID, limit, offset int64) ([]model.Query, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Query
	for _, q := range f.docs {
		if q.OwnerID == ownerID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset < int64(len(out)) {
		out = out[offset:]
	} else {
		out = nil
	}
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) FindEscalated(ctx context.Context, resolvedFilter *bool) ([]model.Query, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Query
	for _, q := range f.docs {
		if !q.Escalated {
			continue
		}
		if resolvedFilter != nil && q.Resolved != *resolvedFilter {
			continue
		}
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].EscalatedAt, out[j].EscalatedAt
		if a == nil || b == nil {
			return b == nil
		}
		return a.After(*b)
	})
	return out, nil
}

func (f *fakeStore) FindByOfficer(ctx context.Context, officerID bson.ObjectID) ([]model.Query, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Query
	for _, q := range f.docs {
		if q.OfficerID != nil && *q.OfficerID == officerID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeStore) ApplyLifecycle(ctx context.Context, q model.Query, fromRevision int64) (model.Query, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.docs[q.ID]
	if !ok {
		return model.Query{}, apperr.NotFound("query not found")
	}
	if cur.Revision != fromRevision {
		return model.Query{}, apperr.Conflict("query %s was modified concurrently", q.ID.Hex())
	}
	q.Revision = fromRevision + 1
	f.docs[q.ID] = q
	return q, nil
}

func (f *fakeStore) StaleIDs(ctx context.Context, ownerID bson.ObjectID, keep int64) ([]bson.ObjectID, error) {
	all, err := f.FindByOwner(ctx, ownerID, 1<<30, keep)
	if err != nil {
		return nil, err
	}
	ids := make([]bson.ObjectID, 0, len(all))
	for _, q := range all {
		ids = append(ids, q.ID)
	}
	return ids, nil
}

func (f *fakeStore) DeleteMany(ctx context.Context, ids []bson.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.docs, id)
		f.deleted = append(f.deleted, id)
	}
	return nil
}

// fakeAdvisor returns a canned answer or a failure.
type fakeAdvisor struct {
	answer string
	err    error
	calls  int
}

func (f *fakeAdvisor) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", apperr.AiUnavailable(f.err)
	}
	return f.answer, nil
}

var errAdvisorDown = errors.New("connection refused")
