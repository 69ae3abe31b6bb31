package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"agrisathi/internal/apperr"
	"agrisathi/model"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

func (r *UserRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	u.ID = bson.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	if _, err := r.col.InsertOne(ctx, u); err != nil {
		var we mongo.WriteException
		if errors.As(err, &we) && len(we.WriteErrors) > 0 && we.WriteErrors[0].Code == 11000 {
			return model.User{}, apperr.Validation("phone number already registered")
		}
		return model.User{}, apperr.Storage(err)
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id bson.ObjectID) (model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (model.User, error) {
	return r.findOne(ctx, bson.M{"phone": phone})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (model.User, error) {
	var u model.User
	if err := r.col.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.User{}, apperr.NotFound("user not found")
		}
		return model.User{}, apperr.Storage(err)
	}
	return u, nil
}
