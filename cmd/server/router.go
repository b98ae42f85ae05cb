package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dverdin/gymplan-api/internal/api"
	apiMiddleware "github.com/dverdin/gymplan-api/internal/api/middleware"
	"github.com/dverdin/gymplan-api/internal/service/auth"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Role guards follow the platform's access rules: coaches
// own plans, athletes only see and progress their assignments, and the
// sport reference data is administered centrally.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenValidator)

	sportHandler := api.NewSportHandler(app.sportService, app.logger)
	exerciseHandler := api.NewExerciseHandler(app.exerciseService, app.logger)
	routineHandler := api.NewRoutineHandler(app.routineService, app.logger)
	goalHandler := api.NewGoalHandler(app.goalService, app.logger)
	assignmentHandler := api.NewAssignmentHandler(app.assignmentService, app.logger)
	coachHandler := api.NewCoachHandler(app.studentService, app.logger)

	coachOnly := apiMiddleware.RequireRole(auth.RoleCoach)
	adminOnly := apiMiddleware.RequireRole(auth.RoleAdmin)
	athleteOnly := apiMiddleware.RequireRole(auth.RoleAthlete)
	coachOrAthlete := apiMiddleware.RequireRole(auth.RoleCoach, auth.RoleAthlete)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Route("/sports", func(r chi.Router) {
			// Reads are open to every authenticated role so coaches can
			// pick a sport when building routines.
			r.Get("/", sportHandler.List)
			r.Get("/{id}", sportHandler.Get)
			r.With(adminOnly).Post("/", sportHandler.Create)
			r.With(adminOnly).Put("/{id}", sportHandler.Update)
			r.With(adminOnly).Delete("/{id}", sportHandler.Delete)
		})

		r.Route("/exercises", func(r chi.Router) {
			r.Get("/", exerciseHandler.List)
			r.Get("/{id}", exerciseHandler.Get)
		})

		r.Route("/routines", func(r chi.Router) {
			r.With(coachOnly).Post("/", routineHandler.Create)
			r.With(coachOnly).Get("/", routineHandler.List)
			r.With(coachOrAthlete).Get("/{id}", routineHandler.Get)
			r.With(coachOnly).Put("/{id}", routineHandler.Update)
			r.With(coachOnly).Delete("/{id}", routineHandler.Delete)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Use(coachOnly)
			r.Post("/", goalHandler.Create)
			r.Get("/", goalHandler.List)
			r.Get("/{id}", goalHandler.Get)
			r.Put("/{id}", goalHandler.Update)
			r.Delete("/{id}", goalHandler.Delete)
		})

		r.Route("/assignments", func(r chi.Router) {
			r.With(coachOnly).Post("/", assignmentHandler.Create)
			r.With(athleteOnly).Get("/me", assignmentHandler.ListMine)
			r.With(coachOrAthlete).Patch("/{id}", assignmentHandler.UpdateStatus)
			r.With(coachOnly).Delete("/{id}", assignmentHandler.Delete)
		})

		r.Route("/coach", func(r chi.Router) {
			r.With(coachOnly).Get("/students", coachHandler.Students)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
