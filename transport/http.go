package transport

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	callapp "github.com/jfcarod/convocations-api/application/call"
	convocationapp "github.com/jfcarod/convocations-api/application/convocation"
	scraperapp "github.com/jfcarod/convocations-api/application/scraper"
	userapp "github.com/jfcarod/convocations-api/application/user"
	"github.com/jfcarod/convocations-api/constant"
	"github.com/jfcarod/convocations-api/utils/errors"
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	defaultSkip  = 0
	defaultLimit = 10
)

type RestHandler struct {
	ConvocationApp convocationapp.ConvocationApp
	UserApp        userapp.UserApp
	CallApp        callapp.CallApp
	ScraperApp     scraperapp.ScraperApp
}

func NewTransport(convocationApp convocationapp.ConvocationApp, userApp userapp.UserApp, callApp callapp.CallApp, scrApp scraperapp.ScraperApp) http.Handler {
	mux := mux.NewRouter()

	rh := &RestHandler{
		ConvocationApp: convocationApp,
		UserApp:        userApp,
		CallApp:        callApp,
		ScraperApp:     scrApp,
	}

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Auth
	mux.HandleFunc("/login", rh.Login).Methods(http.MethodPost)

	// Convocations
	mux.HandleFunc("/convocations/", rh.CreateConvocation).Methods(http.MethodPost)
	mux.HandleFunc("/convocations/", rh.ListConvocations).Methods(http.MethodGet)
	mux.HandleFunc("/convocations/{id}", rh.GetConvocation).Methods(http.MethodGet)
	mux.HandleFunc("/convocations/{id}", rh.UpdateConvocation).Methods(http.MethodPut)
	mux.HandleFunc("/convocations/{id}", rh.DeleteConvocation).Methods(http.MethodDelete)

	// Users
	mux.HandleFunc("/users/", rh.CreateUser).Methods(http.MethodPost)
	mux.HandleFunc("/users/", rh.ListUsers).Methods(http.MethodGet)
	mux.HandleFunc("/users/{id}", rh.GetUser).Methods(http.MethodGet)
	mux.HandleFunc("/users/{id}", rh.UpdateUser).Methods(http.MethodPut)
	mux.HandleFunc("/users/{id}", rh.DeleteUser).Methods(http.MethodDelete)

	// Calls
	mux.HandleFunc("/calls/", rh.CreateCall).Methods(http.MethodPost)
	mux.HandleFunc("/calls/", rh.ListCalls).Methods(http.MethodGet)
	mux.HandleFunc("/calls/{id}", rh.GetCall).Methods(http.MethodGet)
	mux.HandleFunc("/calls/{id}", rh.UpdateCall).Methods(http.MethodPut)
	mux.HandleFunc("/calls/{id}", rh.DeleteCall).Methods(http.MethodDelete)

	// Scraper trigger (session required)
	mux.HandleFunc("/scrape", rh.Scrape).Methods(http.MethodPost)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(AuthMiddleware(userApp))

	return mux
}

// parseIDParam reads the positive-integer {id} path variable.
func parseIDParam(r *http.Request) (uint64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return id, nil
}

// parsePagination reads skip/limit query params with defaults 0 and 10.
func parsePagination(r *http.Request) (int, int) {
	skip, limit := defaultSkip, defaultLimit

	if raw := r.URL.Query().Get("skip"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			skip = n
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	return skip, limit
}
