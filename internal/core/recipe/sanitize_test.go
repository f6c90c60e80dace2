package recipe

import (
	"testing"

	"budget-recipe-api/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRecipe = `{"dishName":"Grøn pasta","heroEmoji":"🍝","funIntro":"Hurtigt og sundt!","ingredients":[{"name":"Pasta","lidlProductName":"Combino Fusilli","price":9.95,"onSale":true,"checked":true}],"steps":["Kog pasta"],"totalCost":9.95,"savings":2.5}`

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"no newline after tag", "```json{\"a\":1}```", `{"a":1}`},
		{"surrounding whitespace", "  \n{\"a\":1}\n  ", `{"a":1}`},
		{"plain", `{"a":1}`, `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFences(tt.in))
		})
	}
}

func TestParseRecipeFenced(t *testing.T) {
	result, err := ParseRecipe("```json\n" + sampleRecipe + "\n```")
	require.NoError(t, err)

	assert.JSONEq(t, sampleRecipe, string(result.Raw))
	assert.True(t, result.Typed)
	assert.Equal(t, "Grøn pasta", result.Summary.DishName)
	require.Len(t, result.Summary.Ingredients, 1)
	assert.Equal(t, "Combino Fusilli", result.Summary.Ingredients[0].LidlProductName)
	assert.True(t, result.Summary.Ingredients[0].OnSale)
}

func TestParseRecipePassesThroughUnexpectedShape(t *testing.T) {
	// 欄位型別錯誤仍原樣回傳
	raw := `{"dishName":42,"extra":"kept"}`
	result, err := ParseRecipe(raw)
	require.NoError(t, err)

	assert.JSONEq(t, raw, string(result.Raw))
	assert.False(t, result.Typed)
}

func TestParseRecipeMalformed(t *testing.T) {
	for _, in := range []string{"", "Here is your recipe!", "```json\n{\"dishName\":\n```", `{"a":1} trailing`} {
		_, err := ParseRecipe(in)
		require.Error(t, err, in)
		assert.ErrorIs(t, err, common.ErrMalformedOutput)
		assert.Equal(t, common.ErrCodeMalformedOutput, common.ErrorCode(err))
	}
}
