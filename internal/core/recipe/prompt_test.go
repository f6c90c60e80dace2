package recipe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func float(v float64) *float64 { return &v }

func TestUserPrompt(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{
			name: "budget and ingredients",
			req:  Request{Budget: float(100), Ingredients: []string{"pasta", "tomato"}},
			want: "I have a budget of 100 DKK. I have these ingredients: pasta, tomato",
		},
		{
			name: "budget only",
			req:  Request{Budget: float(75.5)},
			want: "I have a budget of 75.5 DKK",
		},
		{
			name: "ingredients only",
			req:  Request{Ingredients: []string{"rice"}},
			want: "I have these ingredients: rice",
		},
		{
			name: "nothing given",
			req:  Request{},
			want: "Create a healthy recipe for me.",
		},
		{
			name: "zero budget and empty list fall back",
			req:  Request{Budget: float(0), Ingredients: []string{}},
			want: "Create a healthy recipe for me.",
		},
		{
			name: "surprise wins over budget and ingredients",
			req:  Request{Budget: float(50), Ingredients: []string{"egg"}, SurpriseMe: true},
			want: surprisePrompt,
		},
		{
			name: "surprise alone",
			req:  Request{SurpriseMe: true},
			want: surprisePrompt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserPrompt(tt.req))
		})
	}
}

func TestSurprisePromptTargetsYoungPeople(t *testing.T) {
	assert.Contains(t, surprisePrompt, "young person")
	assert.Contains(t, surprisePrompt, "healthy")
}

func TestSystemPromptRules(t *testing.T) {
	p := SystemPrompt()

	for _, field := range []string{"dishName", "heroEmoji", "funIntro", "ingredients", "lidlProductName", "price", "onSale", "checked", "steps", "totalCost", "savings"} {
		assert.Contains(t, p, field)
	}
	for _, brand := range brandNames {
		assert.Contains(t, p, brand)
	}
	assert.Contains(t, p, "5-7")
	assert.Contains(t, p, "2-3")
	assert.Contains(t, p, "4-6")
	assert.Contains(t, p, "25%")
	assert.Contains(t, p, "DKK")
	assert.Contains(t, p, "Stay under budget")
	assert.True(t, strings.Contains(p, "NEVER output markdown"))
}

func TestFormatBudget(t *testing.T) {
	assert.Equal(t, "100", FormatBudget(100))
	assert.Equal(t, "12.5", FormatBudget(12.5))
	assert.Equal(t, "0.25", FormatBudget(0.25))
}
