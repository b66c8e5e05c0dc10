// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shkim9348/FSND/cliparse"
	"github.com/shkim9348/FSND/models"
	"github.com/shkim9348/FSND/testutil"
)

// setupTrivia returns a handler over six categories and count questions
// spread round-robin across them
func setupTrivia(t *testing.T, count int) (*TriviaHandler, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t, cliparse.AppTrivia)
	categories := testutil.CreateCategories(t, db)
	for i := 0; i < count; i++ {
		category := categories[i%len(categories)]
		testutil.CreateTriviaQuestion(t, db, fmt.Sprintf("question %d", i+1), category.ID)
	}
	return NewTriviaHandler(db, testutil.GetTestConfig(cliparse.AppTrivia)), db
}

func TestListCategories(t *testing.T) {
	handler, _ := setupTrivia(t, 0)

	w := serve(t, handler.ListCategories, "GET", "/categories", nil, nil)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.CategoriesResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Len(t, resp.Categories, 6)
	assert.Equal(t, "Science", resp.Categories[1])
	assert.Equal(t, "Sports", resp.Categories[6])
}

func TestListQuestions(t *testing.T) {
	handler, _ := setupTrivia(t, 19)

	tests := []struct {
		name            string
		query           string
		expectedStatus  int
		wantQuestions   int
		wantTotal       int64
		wantCurrentType string
	}{
		{"first page", "", http.StatusOK, 10, 19, ""},
		{"second page", "?page=2", http.StatusOK, 9, 19, ""},
		{"custom page size", "?page=4&per_page=5", http.StatusOK, 4, 19, ""},
		{"category filter", "?category_id=1", http.StatusOK, 4, 4, "Science"},
		{"page beyond end", "?page=500", http.StatusNotFound, 0, 0, ""},
		{"page zero", "?page=0", http.StatusNotFound, 0, 0, ""},
		{"huge page", "?page=1844674407370955162", http.StatusNotFound, 0, 0, ""},
		{"non numeric page", "?page=two", http.StatusBadRequest, 0, 0, ""},
		{"non numeric category", "?category_id=art", http.StatusBadRequest, 0, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, handler.ListQuestions, "GET", "/questions"+tt.query, nil, nil)

			if tt.expectedStatus != http.StatusOK {
				testutil.AssertError(t, w, tt.expectedStatus)
				return
			}

			testutil.AssertStatus(t, w, http.StatusOK)
			var resp models.QuestionsResponse
			testutil.AssertJSON(t, w, &resp)

			assert.Len(t, resp.Questions, tt.wantQuestions)
			assert.Equal(t, tt.wantTotal, resp.TotalQuestions)
			assert.Len(t, resp.Categories, 6)
			if tt.wantCurrentType == "" {
				assert.Nil(t, resp.CurrentCategory)
			} else {
				require.NotNil(t, resp.CurrentCategory)
				assert.Equal(t, tt.wantCurrentType, *resp.CurrentCategory)
			}
		})
	}
}

func TestListQuestions_NewestFirst(t *testing.T) {
	handler, _ := setupTrivia(t, 3)

	w := serve(t, handler.ListQuestions, "GET", "/questions", nil, nil)
	var resp models.QuestionsResponse
	testutil.AssertJSON(t, w, &resp)

	require.Len(t, resp.Questions, 3)
	assert.Equal(t, "question 3", resp.Questions[0].Question)
	assert.Equal(t, "question 1", resp.Questions[2].Question)
}

func TestDeleteTriviaQuestion(t *testing.T) {
	handler, db := setupTrivia(t, 2)

	w := serve(t, handler.DeleteQuestion, "DELETE", "/questions/1", nil, id(1))
	testutil.AssertStatus(t, w, http.StatusOK)
	assert.JSONEq(t, `{"id":1}`, w.Body.String())

	var count int64
	require.NoError(t, db.Model(&models.TriviaQuestion{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	w = serve(t, handler.DeleteQuestion, "DELETE", "/questions/1", nil, id(1))
	testutil.AssertError(t, w, http.StatusNotFound)
}

func TestCreateTriviaQuestion(t *testing.T) {
	handler, db := setupTrivia(t, 0)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{
			name:           "valid question",
			body:           map[string]interface{}{"question": "Who?", "answer": "Me", "category": 2, "difficulty": 3},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing answer",
			body:           map[string]interface{}{"question": "Who?", "category": 2, "difficulty": 3},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "difficulty too high",
			body:           map[string]interface{}{"question": "Who?", "answer": "Me", "category": 2, "difficulty": 6},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown category",
			body:           map[string]interface{}{"question": "Who?", "answer": "Me", "category": 42, "difficulty": 1},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "empty body",
			body:           "",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, handler.CreateQuestion, "POST", "/questions", tt.body, nil)
			if tt.expectedStatus != http.StatusCreated {
				testutil.AssertError(t, w, tt.expectedStatus)
				return
			}

			testutil.AssertStatus(t, w, http.StatusCreated)
			var q models.TriviaQuestion
			testutil.AssertJSON(t, w, &q)
			assert.NotZero(t, q.ID)
			assert.EqualValues(t, 2, q.Category)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.TriviaQuestion{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSearchQuestions(t *testing.T) {
	handler, db := setupTrivia(t, 0)
	testutil.CreateTriviaQuestion(t, db, "What is the title of the 1990 fantasy directed by Tim Burton?", 5)
	testutil.CreateTriviaQuestion(t, db, "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", 4)
	testutil.CreateTriviaQuestion(t, db, "Which is the only team to play in every soccer World Cup?", 6)

	tests := []struct {
		term string
		want int
	}{
		{"title", 2},
		{"TITLE", 2},
		{"world cup", 1},
		{"_", 0},
		{"", 0},
		{"penguin", 0},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			w := serve(t, handler.SearchQuestions, "POST", "/questions/search", map[string]string{"searchTerm": tt.term}, nil)
			testutil.AssertStatus(t, w, http.StatusOK)

			var resp models.QuestionsResponse
			testutil.AssertJSON(t, w, &resp)
			assert.Len(t, resp.Questions, tt.want)
			assert.EqualValues(t, tt.want, resp.TotalQuestions)
		})
	}
}

func TestCategoryQuestions(t *testing.T) {
	handler, _ := setupTrivia(t, 12)

	w := serve(t, handler.CategoryQuestions, "GET", "/categories/3/questions", nil, id(3))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.QuestionsResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Len(t, resp.Questions, 2)
	for _, q := range resp.Questions {
		assert.EqualValues(t, 3, q.Category)
	}
	require.NotNil(t, resp.CurrentCategory)
	assert.Equal(t, "Geography", *resp.CurrentCategory)

	w = serve(t, handler.CategoryQuestions, "GET", "/categories/99/questions", nil, id(99))
	testutil.AssertError(t, w, http.StatusNotFound)
}

func TestPlayQuiz(t *testing.T) {
	handler, _ := setupTrivia(t, 12)

	t.Run("draws until exhausted", func(t *testing.T) {
		seen := map[uint]bool{}
		previous := []uint{}
		for i := 0; i < 2; i++ {
			body := map[string]interface{}{
				"previous_questions": previous,
				"quiz_category":      map[string]interface{}{"id": 2, "type": "Art"},
			}
			w := serve(t, handler.PlayQuiz, "POST", "/quizzes", body, nil)
			testutil.AssertStatus(t, w, http.StatusOK)

			var resp models.QuizResponse
			testutil.AssertJSON(t, w, &resp)
			require.NotNil(t, resp.Question)
			assert.EqualValues(t, 2, resp.Question.Category)
			assert.False(t, seen[resp.Question.ID], "question repeated")
			seen[resp.Question.ID] = true
			previous = append(previous, resp.Question.ID)
		}

		body := map[string]interface{}{
			"previous_questions": previous,
			"quiz_category":      map[string]interface{}{"id": 2, "type": "Art"},
		}
		w := serve(t, handler.PlayQuiz, "POST", "/quizzes", body, nil)
		testutil.AssertStatus(t, w, http.StatusOK)
		assert.JSONEq(t, `{"question":null}`, w.Body.String())
	})

	t.Run("all categories with string id", func(t *testing.T) {
		body := map[string]interface{}{
			"previous_questions": []uint{1, 2, 3},
			"quiz_category":      map[string]interface{}{"id": "0", "type": "click"},
		}
		w := serve(t, handler.PlayQuiz, "POST", "/quizzes", body, nil)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.QuizResponse
		testutil.AssertJSON(t, w, &resp)
		require.NotNil(t, resp.Question)
		assert.Greater(t, resp.Question.ID, uint(3))
	})

	badBodies := map[string]interface{}{
		"missing previous questions": map[string]interface{}{"quiz_category": map[string]interface{}{"id": 1}},
		"missing quiz category":      map[string]interface{}{"previous_questions": []uint{}},
		"missing category id":        map[string]interface{}{"previous_questions": []uint{}, "quiz_category": map[string]interface{}{"type": "Art"}},
		"non numeric category id":    map[string]interface{}{"previous_questions": []uint{}, "quiz_category": map[string]interface{}{"id": "art"}},
	}
	for name, body := range badBodies {
		t.Run(name, func(t *testing.T) {
			w := serve(t, handler.PlayQuiz, "POST", "/quizzes", body, nil)
			testutil.AssertError(t, w, http.StatusBadRequest)
		})
	}
}
