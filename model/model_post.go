package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Post is a community forum entry. Farmers and officers share one feed.
type Post struct {
	ID           bson.ObjectID `json:"id"           bson:"_id,omitempty"`
	UserID       bson.ObjectID `json:"userId"       bson:"user_id"`
	Text         string        `json:"text"         bson:"text"`
	Category     string        `json:"category"     bson:"category"`
	CreatedAt    time.Time     `json:"createdAt"    bson:"created_at"`
	CommentCount int           `json:"commentCount" bson:"comment_count"`
}

type Comment struct {
	ID        bson.ObjectID `json:"id"        bson:"_id,omitempty"`
	PostID    bson.ObjectID `json:"postId"    bson:"post_id"`
	UserID    bson.ObjectID `json:"userId"    bson:"user_id"`
	Text      string        `json:"text"      bson:"text"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
}
