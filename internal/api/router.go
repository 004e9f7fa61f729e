package api

import (
	"net/http"
	"os"

	"github.com/accordo-app/accordo/internal/model"
	"github.com/accordo-app/accordo/internal/service"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type RouterDeps struct {
	Auth         *AuthHandler
	Teachers     *TeacherHandler
	Instruments  *InstrumentHandler
	Profile      *ProfileHandler
	Availability *AvailabilityHandler
	Lessons      *LessonHandler
	Ratings      *RatingHandler
	Admin        *AdminHandler
	AuthService  *service.AuthService
}

// NewRouter собирает все маршруты: публичные, защищённые токеном
// и админские
func NewRouter(deps RouterDeps) http.Handler {
	r := mux.NewRouter()

	// Публичные маршруты
	r.HandleFunc("/api/auth/register", deps.Auth.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", deps.Auth.Login).Methods("POST")
	r.HandleFunc("/api/teachers", deps.Teachers.List).Methods("GET")
	r.HandleFunc("/api/teachers/{id:[0-9]+}", deps.Teachers.Info).Methods("GET")
	r.HandleFunc("/api/teachers/{id:[0-9]+}/schedule.png", deps.Teachers.SchedulePNG).Methods("GET")
	r.HandleFunc("/api/instruments", deps.Instruments.List).Methods("GET")

	// Маршруты под токеном
	authed := r.PathPrefix("/api").Subrouter()
	authed.Use(AuthMiddleware(deps.AuthService))

	authed.HandleFunc("/profile", deps.Profile.Get).Methods("GET")
	authed.HandleFunc("/profile", deps.Profile.Update).Methods("PUT")
	authed.HandleFunc("/profile/picture", deps.Profile.Picture).Methods("GET")
	authed.HandleFunc("/account", deps.Profile.DeleteAccount).Methods("DELETE")

	authed.HandleFunc("/availability", deps.Availability.Replace).Methods("PUT")
	authed.HandleFunc("/availability/template", deps.Availability.ApplyTemplate).Methods("PUT")
	authed.HandleFunc("/availability/{id:[0-9]+}", deps.Availability.ListForTeacher).Methods("GET")

	authed.HandleFunc("/lessons", deps.Lessons.Book).Methods("POST")
	authed.HandleFunc("/lessons", deps.Lessons.List).Methods("GET")
	authed.HandleFunc("/lessons/{id:[0-9]+}", deps.Lessons.Cancel).Methods("DELETE")

	authed.HandleFunc("/ratings", deps.Ratings.Create).Methods("POST")
	authed.HandleFunc("/ratings/{id:[0-9]+}/eligibility", deps.Ratings.Eligibility).Methods("GET")

	// Админские маршруты
	admin := authed.PathPrefix("/admin").Subrouter()
	admin.Use(RequireRole(model.RoleAdmin))
	admin.HandleFunc("/users", deps.Admin.ListUsers).Methods("GET")
	admin.HandleFunc("/lessons", deps.Admin.ListLessons).Methods("GET")
	admin.HandleFunc("/users/{id:[0-9]+}", deps.Admin.DeleteUser).Methods("DELETE")
	admin.HandleFunc("/lessons/{id:[0-9]+}", deps.Admin.DeleteLesson).Methods("DELETE")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	return handlers.LoggingHandler(os.Stdout, cors(r))
}
