package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"agrisathi/internal/apperr"
	"agrisathi/model"
)

type QueryRepository struct {
	col *mongo.Collection
}

func NewQueryRepository(db *mongo.Database) *QueryRepository {
	return &QueryRepository{col: db.Collection("queries")}
}

// Create inserts a new query in its initial state.
func (r *QueryRepository) Create(ctx context.Context, q model.Query) (model.Query, error) {
	if strings.TrimSpace(q.Question) == "" {
		return model.Query{}, apperr.Validation("question is required")
	}

	now := time.Now().UTC()
	q.ID = bson.NewObjectID()
	q.Status = model.StatusNormal
	q.Resolved = false
	q.Escalated = false
	q.CreatedAt = now
	q.UpdatedAt = now
	q.Revision = 1
	q.SyncEscalationMirror()

	if _, err := r.col.InsertOne(ctx, q); err != nil {
		return model.Query{}, apperr.Storage(err)
	}
	return q, nil
}

func (r *QueryRepository) GetByID(ctx context.Context, id bson.ObjectID) (model.Query, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetOwned fetches a query only when ownerID owns it. A query that exists
// but belongs to someone else is reported as NotFound, not Forbidden, so the
// API does not leak other farmers' query ids.
func (r *QueryRepository) GetOwned(ctx context.Context, id, ownerID bson.ObjectID) (model.Query, error) {
	return r.findOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
}

func (r *QueryRepository) findOne(ctx context.Context, filter bson.M) (model.Query, error) {
	var q model.Query
	if err := r.col.FindOne(ctx, filter).Decode(&q); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Query{}, apperr.NotFound("query not found")
		}
		return model.Query{}, apperr.Storage(err)
	}
	return q, nil
}

// FindByOwner returns the owner's queries newest first, paginated.
func (r *QueryRepository) FindByOwner(ctx context.Context, ownerID bson.ObjectID, limit, offset int64) ([]model.Query, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)
	return r.findAll(ctx, bson.M{"owner_id": ownerID}, opts)
}

// FindEscalated returns escalated queries for officer dashboards, most
// recently escalated first. resolvedFilter nil means both open and handled.
func (r *QueryRepository) FindEscalated(ctx context.Context, resolvedFilter *bool) ([]model.Query, error) {
	filter := bson.M{"escalated": true}
	if resolvedFilter != nil {
		filter["resolved"] = *resolvedFilter
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "escalated_at", Value: -1}, {Key: "created_at", Value: -1}})
	return r.findAll(ctx, filter, opts)
}

func (r *QueryRepository) FindByOfficer(ctx context.Context, officerID bson.ObjectID) ([]model.Query, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "officer_updated_at", Value: -1}})
	return r.findAll(ctx, bson.M{"officer_id": officerID}, opts)
}

func (r *QueryRepository) findAll(ctx context.Context, filter bson.M, opts *options.FindOptionsBuilder) ([]model.Query, error) {
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer cursor.Close(ctx)

	queries := []model.Query{}
	if err := cursor.All(ctx, &queries); err != nil {
		return nil, apperr.Storage(err)
	}
	return queries, nil
}

// ApplyLifecycle persists the outcome of a lifecycle transition with a
// compare-and-swap on the revision the transition was computed from. Every
// lifecycle-owned field, the nested mirror included, lands in one document
// write so concurrent readers never observe a half-applied state.
func (r *QueryRepository) ApplyLifecycle(ctx context.Context, q model.Query, fromRevision int64) (model.Query, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": q.ID, "revision": fromRevision},
		bson.M{
			"$set": bson.M{
				"status":             q.Status,
				"resolved":           q.Resolved,
				"resolved_by":        q.ResolvedBy,
				"resolved_at":        q.ResolvedAt,
				"escalated":          q.Escalated,
				"escalation_status":  q.EscalationStatus,
				"escalation_reason":  q.EscalationReason,
				"escalation_notes":   q.EscalationNotes,
				"escalated_at":       q.EscalatedAt,
				"officer_id":         q.OfficerID,
				"officer_response":   q.OfficerResponse,
				"officer_updated_at": q.OfficerUpdatedAt,
				"rating":             q.Rating,
				"escalation":         q.Escalation,
				"updated_at":         q.UpdatedAt,
			},
			"$inc": bson.M{"revision": 1},
		})
	if err != nil {
		return model.Query{}, apperr.Storage(err)
	}
	if res.MatchedCount == 0 {
		// Either the document is gone or someone moved the revision first.
		if _, err := r.GetByID(ctx, q.ID); err != nil {
			return model.Query{}, err
		}
		return model.Query{}, apperr.Conflict("query %s was modified concurrently", q.ID.Hex())
	}
	q.Revision = fromRevision + 1
	return q, nil
}

// StaleIDs lists the ids of an owner's queries beyond the keep newest ones.
func (r *QueryRepository) StaleIDs(ctx context.Context, ownerID bson.ObjectID, keep int64) ([]bson.ObjectID, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(keep).
		SetProjection(bson.M{"_id": 1})
	cursor, err := r.col.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID bson.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperr.Storage(err)
	}
	ids := make([]bson.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

// DeleteMany removes the given queries. Used by retention pruning only;
// callers treat failures as non-fatal.
func (r *QueryRepository) DeleteMany(ctx context.Context, ids []bson.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return apperr.Storage(err)
	}
	return nil
}
