package api

import (
	"database/sql"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/s155003/Budgetly/src/ai"
	"github.com/s155003/Budgetly/src/cache"
	"github.com/s155003/Budgetly/src/config"
	"github.com/s155003/Budgetly/src/handlers"
	"github.com/s155003/Budgetly/src/middleware"
	"github.com/s155003/Budgetly/src/util"
	"go.uber.org/zap"
)

func NewRouter(cfg config.Config, conn *sql.DB, tokens *util.TokenIssuer, c *cache.Cache, advisor *ai.Advisor, log *zap.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.DemoModeMiddleware(cfg.DemoMode))

	r.Get("/health", handlers.Liveness())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health(conn))

		r.Post("/auth/register", handlers.Register(conn, tokens))
		r.Post("/auth/login", handlers.Login(conn, tokens))

		// Retirement calculators are public
		r.Post("/retirement/plan", handlers.RetirementPlan())
		r.Get("/retirement/articles", handlers.RetirementArticles())

		// Protected routes
		r.With(middleware.JWTAuthMiddleware(tokens)).Group(func(r chi.Router) {
			// Profile
			r.Get("/auth/profile", handlers.GetProfile(conn))
			r.Put("/auth/profile", handlers.UpdateProfile(conn))
			r.Delete("/auth/profile", handlers.DeleteProfile(conn, c))
			r.Post("/auth/change-password", handlers.ChangePassword(conn))

			// Budget
			r.Route("/budget", func(r chi.Router) {
				r.Post("/", handlers.CreateBudget(conn))
				r.Get("/", handlers.GetBudget(conn))
				r.Put("/", handlers.UpdateBudget(conn))
				r.Get("/history", handlers.GetBudgetHistory(conn))

				r.Post("/transactions", handlers.CreateTransaction(conn))
				r.Get("/transactions", handlers.GetTransactions(conn))
				r.Delete("/transactions/{transaction_id}", handlers.DeleteTransaction(conn))

				r.Get("/summary", handlers.GetMonthlySummary(conn))
				r.Get("/summary/chart", handlers.GetSummaryChart(conn))

				r.Post("/goals", handlers.CreateGoal(conn))
				r.Get("/goals", handlers.GetGoals(conn))
				r.Post("/goals/{goal_id}/contributions", handlers.ContributeToGoal(conn))
				r.Delete("/goals/{goal_id}", handlers.DeleteGoal(conn))

				r.Get("/categories", handlers.GetCategories(conn, c))
				r.Post("/categories", handlers.CreateCategory(conn, c))
				r.Delete("/categories/{category_id}", handlers.DeleteCategory(conn, c))
			})

			// Lessons
			r.Get("/lessons", handlers.GetLessons(conn))
			r.Get("/lessons/{lesson_id}", handlers.GetLesson(conn, c))
			r.Post("/lessons/{lesson_id}/progress", handlers.SaveProgress(conn, c))
			r.Get("/progress", handlers.GetProgress(conn, c))

			// AI
			r.Post("/ai/advice", handlers.GetBudgetAdvice(conn, advisor))
			r.Post("/ai/lesson-hint", handlers.GetLessonHint(conn, c, advisor))
			r.Post("/ai/quiz-questions", handlers.GenerateQuizQuestions(advisor))
			r.Post("/ai/ask-advisor", handlers.AskAdvisor(advisor))

			r.Get("/dashboard", handlers.GetDashboard(conn))
		})
	})

	return r
}
