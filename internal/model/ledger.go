package model

type GetPointTransactionsRequest struct{}

type GetPointTransactionsResponse struct {
	Balance      int64              `json:"balance"`
	Transactions []PointTransaction `json:"transactions"`
}
