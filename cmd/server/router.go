package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kmazurek/teachme-api/internal/api"
	apiMiddleware "github.com/kmazurek/teachme-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	lessonHandler := api.NewLessonHandler(app.catalogService, app.logger)
	questionHandler := api.NewQuestionHandler(app.questionService, app.logger)
	settingsHandler := api.NewSettingsHandler(app.preferenceService, app.logger)
	sessionHandler := api.NewSessionHandler(app.sessionService, app.logger)
	streamHandler := api.NewStreamHandler(app.eventEmitter, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Live catalog snapshots
		r.Get("/events", streamHandler.StreamEvents)

		// Lesson catalog
		r.Get("/lessons", lessonHandler.ListLessons)
		r.Post("/lessons", lessonHandler.CreateLesson)
		r.Delete("/lessons/{id}", lessonHandler.DeleteLesson)
		r.Post("/lessons/{id}/complete", lessonHandler.CompleteLesson)
		r.Get("/lessons/{id}/questions", questionHandler.ListLessonQuestions)

		// Question bank
		r.Post("/questions", questionHandler.CreateQuestion)
		r.Delete("/questions/{id}", questionHandler.DeleteQuestion)

		// Settings
		r.Get("/settings/notifications", settingsHandler.GetNotificationSetting)
		r.Put("/settings/notifications", settingsHandler.UpdateNotificationSetting)

		// Quiz sessions
		r.Post("/sessions", sessionHandler.OpenSession)
		r.Get("/sessions/{id}", sessionHandler.GetSession)
		r.Post("/sessions/{id}/answer", sessionHandler.Answer)
		r.Post("/sessions/{id}/back", sessionHandler.Back)
		r.Delete("/sessions/{id}", sessionHandler.CloseSession)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
