package handlers

import (
	"net/http"
	"time"

	"recipes_backend/logger"
	"recipes_backend/metrics"
	"recipes_backend/store"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// Options tunes the router.
type Options struct {
	// ImageClient fetches recipe images. Defaults to a client with a 10s timeout.
	ImageClient *http.Client
}

// NewRouter registers every route against the given store.
func NewRouter(st store.Store, opts Options) *mux.Router {
	if opts.ImageClient == nil {
		opts.ImageClient = &http.Client{Timeout: 10 * time.Second}
	}

	r := mux.NewRouter()
	logger.AddRequestID(r)
	r.Use(metrics.Middleware)

	r.HandleFunc("/", Hello).Methods("GET")
	r.HandleFunc("/healthz", Healthz).Methods("GET")
	r.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		Readyz(st, w, r)
	}).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	r.HandleFunc("/recipes-by-cuisine", func(w http.ResponseWriter, r *http.Request) {
		GetRecipesByCuisine(st, w, r)
	}).Methods("GET")

	r.HandleFunc("/my-recipes", func(w http.ResponseWriter, r *http.Request) {
		GetMyRecipes(st, w, r)
	}).Methods("GET")

	r.HandleFunc("/all-recipes", func(w http.ResponseWriter, r *http.Request) {
		GetRecipes(st, w, r)
	}).Methods("GET")

	r.HandleFunc("/all-recipes/{id}", func(w http.ResponseWriter, r *http.Request) {
		GetRecipe(st, w, r)
	}).Methods("GET")

	r.HandleFunc("/recipes", func(w http.ResponseWriter, r *http.Request) {
		CreateRecipe(st, w, r)
	}).Methods("POST")

	r.HandleFunc("/all-recipes/{id}", func(w http.ResponseWriter, r *http.Request) {
		UpdateRecipe(st, w, r)
	}).Methods("PATCH")

	r.HandleFunc("/all-recipes/{id}", func(w http.ResponseWriter, r *http.Request) {
		DeleteRecipe(st, w, r)
	}).Methods("DELETE")

	r.HandleFunc("/all-recipes/{id}/like", func(w http.ResponseWriter, r *http.Request) {
		LikeRecipe(st, w, r)
	}).Methods("PATCH")

	r.HandleFunc("/all-recipes/{id}/image", func(w http.ResponseWriter, r *http.Request) {
		RecipeImage(st, opts.ImageClient, w, r)
	}).Methods("GET")

	return r
}

// Wrap adds CORS for all origins, response compression and panic recovery.
func Wrap(h http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", logger.RequestIDHeader},
		ExposedHeaders: []string{logger.RequestIDHeader},
	})

	recovery := ghandlers.RecoveryHandler(
		ghandlers.RecoveryLogger(logrus.StandardLogger()),
		ghandlers.PrintRecoveryStack(true),
	)
	return c.Handler(ghandlers.CompressHandler(recovery(h)))
}
