package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Card represents a purchasable catalog card in the cards table.
// The ID is the stable identifier assigned by the external card-data API.
type Card struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	ImageURL    string          `json:"image_url,omitempty"`
	Rarity      string          `json:"rarity,omitempty"`
	Types       []string        `json:"types,omitempty"`
	SetName     string          `json:"set_name,omitempty"`
	SetID       string          `json:"set_id,omitempty"`
	HP          int             `json:"hp,omitempty"`
	Stage       string          `json:"stage,omitempty"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Attacks []Attack `json:"attacks,omitempty"`
}

// Attack is one row of card_attacks belonging to a card.
type Attack struct {
	Name   string `json:"name"`
	Damage string `json:"damage,omitempty"`
	Effect string `json:"effect,omitempty"`
}

// CardFilter narrows ListCards results. Zero values mean "no filter".
type CardFilter struct {
	Type    string
	Rarity  string
	Set     string
	Name    string
	InStock bool
}

// StockStatus reports availability for one requested card id.
// Unknown ids come back with Available false and Stock 0.
type StockStatus struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Available bool   `json:"available"`
	Stock     int    `json:"stock"`
}
