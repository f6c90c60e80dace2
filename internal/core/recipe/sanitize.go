package recipe

import (
	"encoding/json"
	"regexp"
	"strings"

	"budget-recipe-api/internal/pkg/common"
)

var (
	languageFencePattern = regexp.MustCompile("```json\\n?")
	bareFencePattern     = regexp.MustCompile("```\\n?")
)

// StripCodeFences 移除 ```json 與 ``` 標記後去除前後空白
func StripCodeFences(text string) string {
	text = languageFencePattern.ReplaceAllString(text, "")
	text = bareFencePattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// ParseRecipe 先清理再解析。任何合法 JSON 都原樣接受，不做欄位驗證；
// Summary 盡力解碼，失敗不影響結果。
func ParseRecipe(text string) (*Result, error) {
	cleaned := StripCodeFences(text)

	var raw json.RawMessage
	if err := common.ParseJSON(cleaned, &raw); err != nil {
		return nil, common.ErrMalformedOutput.Wrap(err)
	}

	result := &Result{Raw: raw}
	if err := json.Unmarshal(raw, &result.Summary); err == nil {
		result.Typed = true
	}
	return result, nil
}
