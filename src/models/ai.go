package models

type BudgetAdvice struct {
	Tips              []string `json:"tips"`
	Concerns          []string `json:"concerns"`
	SavingsStrategies []string `json:"savings_strategies"`
	Encouragement     string   `json:"encouragement"`
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}
