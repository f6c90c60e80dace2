package recipe

import (
	"strconv"
	"strings"
)

const (
	surprisePrompt = "Surprise me with a healthy, budget-friendly recipe that would appeal to a young person trying to eat better!"
	fallbackPrompt = "Create a healthy recipe for me."
)

// brandNames 虛構的 Lidl 自有品牌，用作商品名稱前綴
var brandNames = []string{"Favorit", "Pikok", "Milbona", "Combino", "Fairglobe"}

// SystemPrompt 固定的系統指令：角色、僅輸出 JSON、欄位結構與生成規則
func SystemPrompt() string {
	var sb strings.Builder
	sb.WriteString("You are a JSON-only recipe API for young people shopping at Lidl in Denmark. ")
	sb.WriteString("NEVER output markdown, code blocks (no backticks), or explanations.\n")
	sb.WriteString("Return ONLY raw JSON with exactly these fields:\n")
	sb.WriteString("- dishName: string (Danish recipe name)\n")
	sb.WriteString("- heroEmoji: one food emoji only\n")
	sb.WriteString("- funIntro: string (max 15 words, encouraging)\n")
	sb.WriteString("- ingredients: array of 5-7 objects with name (string), lidlProductName (string), price (number), onSale (boolean), checked (true)\n")
	sb.WriteString("- steps: array of 4-6 instruction strings\n")
	sb.WriteString("- totalCost: number (sum of ingredient prices)\n")
	sb.WriteString("- savings: number (approx 25% of the value of sale items)\n")
	sb.WriteString("\nRules:\n")
	sb.WriteString("- Use realistic Danish prices in DKK.\n")
	sb.WriteString("- Mark 2-3 ingredients as onSale.\n")
	sb.WriteString("- Prefix lidlProductName with one of the fictional Lidl brands: ")
	sb.WriteString(strings.Join(brandNames, ", "))
	sb.WriteString(".\n")
	sb.WriteString("- Always healthy recipes.\n")
	sb.WriteString("- Use provided ingredients where possible.\n")
	sb.WriteString("- Stay under budget if given.\n")
	return sb.String()
}

// UserPrompt 依優先順序組出使用者指令：驚喜 > 預算/食材 > 預設
func UserPrompt(req Request) string {
	if req.SurpriseMe {
		return surprisePrompt
	}

	parts := make([]string, 0, 2)
	if req.HasBudget() {
		parts = append(parts, "I have a budget of "+FormatBudget(*req.Budget)+" DKK")
	}
	if len(req.Ingredients) > 0 {
		parts = append(parts, "I have these ingredients: "+strings.Join(req.Ingredients, ", "))
	}
	if len(parts) == 0 {
		return fallbackPrompt
	}
	return strings.Join(parts, ". ")
}

// FormatBudget 以最短的十進位表示輸出預算（100、12.5）
func FormatBudget(budget float64) string {
	return strconv.FormatFloat(budget, 'f', -1, 64)
}
