package dto

import "agrisathi/model"

type CreatePostReq struct {
	Text     string `json:"text"     validate:"required,min=1,max=5000"`
	Category string `json:"category" validate:"omitempty,max=50"`
}

type CreateCommentReq struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

type FeedResp struct {
	Posts      []model.Post `json:"posts"`
	NextCursor *string      `json:"next_cursor"`
	HasMore    bool         `json:"has_more"`
}

type CommentListResp struct {
	Comments []model.Comment `json:"comments"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
