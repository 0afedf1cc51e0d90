package dto

import "time"

// CreateAliasRequest body para POST /api/aliases.
type CreateAliasRequest struct {
	Alias    string `json:"alias" validate:"required,max=60"`
	ItemName string `json:"item_name" validate:"required,max=100"`
}

// AliasDTO alias global.
type AliasDTO struct {
	Alias     string    `json:"alias"`
	ItemName  string    `json:"item_name"`
	CreatedAt time.Time `json:"created_at"`
}
