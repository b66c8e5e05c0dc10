// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecipe(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []Ingredient
		wantErr bool
	}{
		{
			name: "list",
			raw:  `[{"name":"milk","color":"grey","parts":1},{"name":"coffee","color":"brown","parts":3}]`,
			want: []Ingredient{{Name: "milk", Color: "grey", Parts: 1}, {Name: "coffee", Color: "brown", Parts: 3}},
		},
		{
			name: "single object becomes a list",
			raw:  ` {"name":"water","color":"blue","parts":1}`,
			want: []Ingredient{{Name: "water", Color: "blue", Parts: 1}},
		},
		{name: "empty", raw: ``, want: nil},
		{name: "null", raw: `null`, want: nil},
		{name: "string", raw: `"water"`, wantErr: true},
		{name: "bad list", raw: `[1,2]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRecipe(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRecipe)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDrink_ShortHidesNames(t *testing.T) {
	d := Drink{ID: 3, Title: "latte", Recipe: []Ingredient{{Name: "milk", Color: "white", Parts: 2}}}

	short := d.Short()
	assert.Equal(t, DrinkShort{ID: 3, Title: "latte", Recipe: []ShortIngredient{{Color: "white", Parts: 2}}}, short)

	body, err := json.Marshal(short)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "milk")

	assert.Equal(t, d, d.Long())
	assert.NotNil(t, Drink{}.Long().Recipe)
}

func TestFlexID_Unmarshal(t *testing.T) {
	var c QuizCategory

	require.NoError(t, json.Unmarshal([]byte(`{"id": 4, "type": "History"}`), &c))
	require.NotNil(t, c.ID)
	assert.EqualValues(t, 4, *c.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": "5"}`), &c))
	assert.EqualValues(t, 5, *c.ID)

	assert.Error(t, json.Unmarshal([]byte(`{"id": "five"}`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"id": true}`), &c))
}

func TestQuizRequest_MissingFields(t *testing.T) {
	var req QuizRequest
	require.NoError(t, json.Unmarshal([]byte(`{"quiz_category": {"type": "Science"}}`), &req))

	assert.Nil(t, req.PreviousQuestions)
	require.NotNil(t, req.QuizCategory)
	assert.Nil(t, req.QuizCategory.ID)
}

func TestShow_IsUpcoming(t *testing.T) {
	now := time.Date(2025, 5, 1, 20, 0, 0, 0, time.UTC)

	assert.True(t, Show{StartTime: now}.IsUpcoming(now))
	assert.True(t, Show{StartTime: now.Add(time.Hour)}.IsUpcoming(now))
	assert.False(t, Show{StartTime: now.Add(-time.Second)}.IsUpcoming(now))
}

func TestHasVoter(t *testing.T) {
	voters := []User{{ID: 1}, {ID: 4}}

	assert.True(t, HasVoter(voters, 4))
	assert.False(t, HasVoter(voters, 2))
	assert.False(t, HasVoter(nil, 1))
}

func TestUser_JSONHidesSecrets(t *testing.T) {
	body, err := json.Marshal(User{ID: 9, Username: "kim", Password: "$2a$10$hash", Email: "kim@example.com"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"username":"kim","email":"kim@example.com"}`, string(body))
}
