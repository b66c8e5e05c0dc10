// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

var ErrInvalidRecipe = errors.New("recipe must be an ingredient object or a list of ingredients")

// Domain types

type Ingredient struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color" validate:"required"`
	Parts int    `json:"parts" validate:"required,min=1"`
}

type Drink struct {
	ID     uint         `gorm:"primaryKey" json:"id"`
	Title  string       `gorm:"size:80;uniqueIndex;not null" json:"title"`
	Recipe []Ingredient `gorm:"type:text;serializer:json;not null" json:"recipe"`
}

// ShortIngredient hides the ingredient name from the public menu
type ShortIngredient struct {
	Color string `json:"color"`
	Parts int    `json:"parts"`
}

type DrinkShort struct {
	ID     uint              `json:"id"`
	Title  string            `json:"title"`
	Recipe []ShortIngredient `json:"recipe"`
}

// Short is the public representation of a drink
func (d Drink) Short() DrinkShort {
	recipe := make([]ShortIngredient, 0, len(d.Recipe))
	for _, r := range d.Recipe {
		recipe = append(recipe, ShortIngredient{Color: r.Color, Parts: r.Parts})
	}
	return DrinkShort{ID: d.ID, Title: d.Title, Recipe: recipe}
}

// Long is the barista representation of a drink
func (d Drink) Long() Drink {
	if d.Recipe == nil {
		d.Recipe = []Ingredient{}
	}
	return d
}

// DefaultDrink is inserted by db.Seed into an empty drinks table
var DefaultDrink = Drink{
	Title:  "water",
	Recipe: []Ingredient{{Name: "water", Color: "blue", Parts: 1}},
}

// ParseRecipe accepts a single ingredient object or a list of them and
// always returns a list. Empty input yields nil.
func ParseRecipe(raw json.RawMessage) ([]Ingredient, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	switch raw[0] {
	case '[':
		var recipe []Ingredient
		if err := json.Unmarshal(raw, &recipe); err != nil {
			return nil, ErrInvalidRecipe
		}
		return recipe, nil
	case '{':
		var one Ingredient
		if err := json.Unmarshal(raw, &one); err != nil {
			return nil, ErrInvalidRecipe
		}
		return []Ingredient{one}, nil
	default:
		return nil, ErrInvalidRecipe
	}
}

// Request types

type DrinkRequest struct {
	Title  string          `json:"title"`
	Recipe json.RawMessage `json:"recipe"`
}

// Response types

type DrinksShortResponse struct {
	Success bool         `json:"success"`
	Drinks  []DrinkShort `json:"drinks"`
}

type DrinksLongResponse struct {
	Success bool    `json:"success"`
	Drinks  []Drink `json:"drinks"`
}

type DeleteDrinkResponse struct {
	Success bool `json:"success"`
	Delete  uint `json:"delete"`
}
