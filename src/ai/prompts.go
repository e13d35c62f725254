package ai

import "fmt"

const (
	adviceSystem  = "You are a helpful financial advisor focused on practical, actionable advice for everyday Americans. Be encouraging and realistic."
	hintSystem    = "You are a patient, encouraging financial education tutor. Help students learn by guiding them to discover answers themselves."
	quizSystem    = "You are a financial education expert creating quiz questions. Focus on practical, real-world scenarios."
	advisorSystem = "You're a friendly and helpful retirement advisor."
)

func advicePrompt(monthlyIncome, spendingJSON, goalsJSON string) string {
	return fmt.Sprintf(`You are a financial advisor helping a user with their budget. Here's their financial information:

Budget: $%s monthly income
Spending: %s
Goals: %s

Please provide:
1. 2-3 specific, actionable budget tips
2. Identify any concerning spending patterns
3. Suggest realistic savings strategies
4. Keep advice practical and encouraging for someone in Middle America

Format your response as JSON with this structure:
{
  "tips": ["tip1", "tip2", "tip3"],
  "concerns": ["concern1", "concern2"],
  "savings_strategies": ["strategy1", "strategy2"],
  "encouragement": "motivational message"
}
`, monthlyIncome, spendingJSON, goalsJSON)
}

func hintPrompt(lessonContent, question, difficulty string) string {
	return fmt.Sprintf(`You are a financial education tutor. A student is working on this lesson:

%s

They asked: %q

Difficulty level: %s

Provide a helpful hint that:
1. Guides them toward the answer without giving it away
2. Explains the concept in simple terms
3. Uses relatable examples for everyday Americans
4. Is encouraging and supportive

Keep your response under 200 words.
`, lessonContent, question, difficulty)
}

func quizPrompt(topic, difficulty string, numQuestions int) string {
	return fmt.Sprintf(`Generate %d multiple choice quiz questions about %s for %s level.

Each question should:
- Be practical and relevant to everyday Americans
- Have 4 answer choices (A, B, C, D)
- Include a brief explanation for the correct answer
- Be clear and unambiguous

Format as JSON:
{
  "questions": [
    {
      "question": "Question text?",
      "options": ["A) Option 1", "B) Option 2", "C) Option 3", "D) Option 4"],
      "correct_answer": "A",
      "explanation": "Why this answer is correct"
    }
  ]
}
`, numQuestions, topic, difficulty)
}
