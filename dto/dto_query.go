package dto

import "agrisathi/model"

type AskReq struct {
	Question string `json:"question" validate:"required,min=3,max=2000"`
	Language string `json:"language" validate:"omitempty,bcp47_language_tag"`
}

type ResolveReq struct {
	Rating *int `json:"rating" validate:"omitempty,min=1,max=5"`
}

type EscalateReq struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
	Notes  string `json:"notes"  validate:"omitempty,max=2000"`
}

type OfficerRespondReq struct {
	Reply        string `json:"reply"        validate:"required,min=1,max=4000"`
	MarkResolved bool   `json:"markResolved"`
	Notes        string `json:"notes"        validate:"omitempty,max=2000"`
}

type ForceResolveReq struct {
	Notes string `json:"notes" validate:"omitempty,max=2000"`
}

// QueryView decorates a query with the derived client-facing label.
type QueryView struct {
	model.Query
	StatusLabel string `json:"statusLabel"`
}

func NewQueryView(q model.Query) QueryView {
	return QueryView{Query: q, StatusLabel: q.StatusLabel()}
}

type QueryResp struct {
	Query QueryView `json:"query"`
}

type QueryListResp struct {
	Queries []QueryView `json:"queries"`
}

func NewQueryListResp(qs []model.Query) QueryListResp {
	views := make([]QueryView, 0, len(qs))
	for _, q := range qs {
		views = append(views, NewQueryView(q))
	}
	return QueryListResp{Queries: views}
}
