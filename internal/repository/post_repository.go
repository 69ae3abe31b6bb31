package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"agrisathi/internal/apperr"
	"agrisathi/internal/cursor"
	"agrisathi/model"
)

type PostRepository struct {
	posts    *mongo.Collection
	comments *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{
		posts:    db.Collection("posts"),
		comments: db.Collection("comments"),
	}
}

func (r *PostRepository) Create(ctx context.Context, userID bson.ObjectID, text, category string) (model.Post, error) {
	p := model.Post{
		ID:        bson.NewObjectID(),
		UserID:    userID,
		Text:      text,
		Category:  category,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.posts.InsertOne(ctx, p); err != nil {
		return model.Post{}, apperr.Storage(err)
	}
	return p, nil
}

// ListNewestFirst pages the feed with a (createdAt, _id) cursor.
func (r *PostRepository) ListNewestFirst(ctx context.Context, curStr string, limit int64) ([]model.Post, *string, error) {
	filter := bson.M{}
	if curStr != "" {
		at, id, err := cursor.Decode(curStr)
		if err != nil {
			return nil, nil, apperr.Validation("invalid cursor")
		}
		filter["$or"] = bson.A{
			bson.M{"created_at": bson.M{"$lt": at}},
			bson.M{"created_at": at, "_id": bson.M{"$lt": id}},
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit + 1)
	cur, err := r.posts.Find(ctx, filter, opts)
	if err != nil {
		return nil, nil, apperr.Storage(err)
	}
	defer cur.Close(ctx)

	var items []model.Post
	if err := cur.All(ctx, &items); err != nil {
		return nil, nil, apperr.Storage(err)
	}

	var next *string
	if int64(len(items)) > limit {
		items = items[:limit]
		last := items[len(items)-1]
		s := cursor.Encode(last.CreatedAt, last.ID)
		next = &s
	}
	return items, next, nil
}

func (r *PostRepository) AddComment(ctx context.Context, postID, userID bson.ObjectID, text string) (model.Comment, error) {
	// Confirm the post exists before writing the comment.
	if err := r.posts.FindOne(ctx, bson.M{"_id": postID}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Comment{}, apperr.NotFound("post not found")
		}
		return model.Comment{}, apperr.Storage(err)
	}

	c := model.Comment{
		ID:        bson.NewObjectID(),
		PostID:    postID,
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.comments.InsertOne(ctx, c); err != nil {
		return model.Comment{}, apperr.Storage(err)
	}
	_, _ = r.posts.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$inc": bson.M{"comment_count": 1}})
	return c, nil
}

func (r *PostRepository) ListComments(ctx context.Context, postID bson.ObjectID, limit int64) ([]model.Comment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(limit)
	cur, err := r.comments.Find(ctx, bson.M{"post_id": postID}, opts)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer cur.Close(ctx)

	comments := []model.Comment{}
	if err := cur.All(ctx, &comments); err != nil {
		return nil, apperr.Storage(fmt.Errorf("decode comments: %w", err))
	}
	return comments, nil
}
