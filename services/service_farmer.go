// Package services orchestrates handlers, the lifecycle state machine and
// the stores. Services hold their collaborators by interface so tests can
// substitute fakes.
package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"agrisathi/internal/advisor"
	"agrisathi/internal/classify"
	"agrisathi/internal/lifecycle"
	"agrisathi/model"
)

// QueryStore is the persistence contract consumed by the query services.
// Implemented by repository.QueryRepository.
type QueryStore interface {
	Create(ctx context.Context, q model.Query) (model.Query, error)
	GetByID(ctx context.Context, id bson.ObjectID) (model.Query, error)
	GetOwned(ctx context.Context, id, ownerID bson.ObjectID) (model.Query, error)
	FindByOwner(ctx context.Context, ownerID bson.ObjectID, limit, offset int64) ([]model.Query, error)
	FindEscalated(ctx context.Context, resolvedFilter *bool) ([]model.Query, error)
	FindByOfficer(ctx context.Context, officerID bson.ObjectID) ([]model.Query, error)
	ApplyLifecycle(ctx context.Context, q model.Query, fromRevision int64) (model.Query, error)
	StaleIDs(ctx context.Context, ownerID bson.ObjectID, keep int64) ([]bson.ObjectID, error)
	DeleteMany(ctx context.Context, ids []bson.ObjectID) error
}

type FarmerService struct {
	store    QueryStore
	advisor  advisor.Generator
	log      *zap.Logger
	keep     int64
	now      func() time.Time
	pruneCtx func() (context.Context, context.CancelFunc)
}

func NewFarmerService(store QueryStore, gen advisor.Generator, keep int64, log *zap.Logger) *FarmerService {
	return &FarmerService{
		store:   store,
		advisor: gen,
		log:     log,
		keep:    keep,
		now:     func() time.Time { return time.Now().UTC() },
		pruneCtx: func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 15*time.Second)
		},
	}
}

// Ask obtains advice from the AI collaborator, classifies the question and
// persists the new query. If the collaborator fails nothing is stored.
// Retention pruning runs in the background after a successful create.
func (s *FarmerService) Ask(ctx context.Context, ownerID bson.ObjectID, question, language string) (model.Query, error) {
	answer, err := s.advisor.Generate(ctx, advisor.BuildPrompt(question, language))
	if err != nil {
		return model.Query{}, err
	}

	q, err := s.store.Create(ctx, model.Query{
		OwnerID:  ownerID,
		Question: question,
		Answer:   answer,
		Category: classify.Categorize(question),
		Language: language,
	})
	if err != nil {
		return model.Query{}, err
	}

	go s.prune(ownerID)

	s.log.Info("query created",
		zap.String("query_id", q.ID.Hex()),
		zap.String("owner_id", ownerID.Hex()),
		zap.String("category", q.Category))
	return q, nil
}

// prune drops the owner's queries beyond the newest keep. Best effort: a
// failed prune is logged and retried implicitly on the next ask.
func (s *FarmerService) prune(ownerID bson.ObjectID) {
	ctx, cancel := s.pruneCtx()
	defer cancel()

	ids, err := s.store.StaleIDs(ctx, ownerID, s.keep)
	if err != nil {
		s.log.Warn("retention scan failed", zap.String("owner_id", ownerID.Hex()), zap.Error(err))
		return
	}
	if len(ids) == 0 {
		return
	}
	if err := s.store.DeleteMany(ctx, ids); err != nil {
		s.log.Warn("retention prune failed", zap.String("owner_id", ownerID.Hex()), zap.Error(err))
		return
	}
	s.log.Info("retention prune",
		zap.String("owner_id", ownerID.Hex()),
		zap.Int("deleted", len(ids)))
}

func (s *FarmerService) ListRecent(ctx context.Context, ownerID bson.ObjectID, limit int64) ([]model.Query, error) {
	return s.store.FindByOwner(ctx, ownerID, limit, 0)
}

// MarkResolved closes the farmer's own query, optionally attaching a rating.
func (s *FarmerService) MarkResolved(ctx context.Context, ownerID, queryID bson.ObjectID, rating *int) (model.Query, error) {
	q, err := s.store.GetOwned(ctx, queryID, ownerID)
	if err != nil {
		return model.Query{}, err
	}
	next, err := lifecycle.FarmerResolve(q, ownerID, rating, s.now())
	if err != nil {
		return model.Query{}, err
	}
	return s.store.ApplyLifecycle(ctx, next, q.Revision)
}

// Escalate requests officer help on the farmer's own query.
func (s *FarmerService) Escalate(ctx context.Context, ownerID, queryID bson.ObjectID, reason, notes string) (model.Query, error) {
	q, err := s.store.GetOwned(ctx, queryID, ownerID)
	if err != nil {
		return model.Query{}, err
	}
	next, err := lifecycle.Escalate(q, ownerID, reason, notes, s.now())
	if err != nil {
		return model.Query{}, err
	}
	return s.store.ApplyLifecycle(ctx, next, q.Revision)
}
