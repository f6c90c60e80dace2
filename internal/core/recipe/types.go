package recipe

import "encoding/json"

// Request 使用者的預算、食材與驚喜偏好，三者皆可省略
type Request struct {
	Budget      *float64 `json:"budget,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	SurpriseMe  bool     `json:"surpriseMe,omitempty"`
}

// HasBudget 預算存在且非零
func (r Request) HasBudget() bool {
	return r.Budget != nil && *r.Budget != 0
}

// Ingredient 食譜中的一項 Lidl 商品
type Ingredient struct {
	Name            string  `json:"name"`
	LidlProductName string  `json:"lidlProductName"`
	Price           float64 `json:"price"`
	OnSale          bool    `json:"onSale"`
	Checked         bool    `json:"checked"`
}

// Recipe 模型被要求輸出的結構
type Recipe struct {
	DishName    string       `json:"dishName"`
	HeroEmoji   string       `json:"heroEmoji"`
	FunIntro    string       `json:"funIntro"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []string     `json:"steps"`
	TotalCost   float64      `json:"totalCost"`
	Savings     float64      `json:"savings"`
}

// Result 解析結果。Raw 原樣回傳給呼叫端，Summary 只供日誌使用
type Result struct {
	Raw     json.RawMessage
	Summary Recipe
	// Typed 表示 Raw 可完整解碼為 Recipe
	Typed bool
}
