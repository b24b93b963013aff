package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wayfarer/docs" //this is required to generate swagger docs
	"wayfarer/internal/auth"
	"wayfarer/internal/domain/storage"
	"wayfarer/internal/ratelimiter"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         *storage.Container
	logger        *zap.SugaredLogger
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.MetricsMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	if app.config.rateLimiter.Enabled {
		r.Use(app.RateLimiterMiddleware)
	}

	//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
	r.Use(middleware.Timeout(60 * time.Second))

	r.With(app.BasicAuthMiddleware()).Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		// Public routes
		r.Route("/auth", func(r chi.Router) {
			if app.config.authRateLimit > 0 {
				r.Use(httprate.LimitByIP(app.config.authRateLimit, time.Minute))
			}
			r.Post("/register", app.registerUserHandler)
			r.Post("/login", app.loginHandler)
		})

		r.Get("/search", app.searchPlacesHandler)
		r.Get("/categories", app.listCategoriesHandler)
		r.Get("/cities", app.listCitiesHandler)

		r.Route("/places", func(r chi.Router) {
			r.Get("/", app.browsePlacesHandler)
			r.Route("/{placeID}", func(r chi.Router) {
				r.Get("/", app.getPlaceHandler)
				r.Get("/reviews", app.getPlaceReviewsHandler)
				r.With(app.AuthTokenMiddleware).Post("/reviews", app.createReviewHandler)
				r.With(app.AuthTokenMiddleware).Post("/photos", app.createPhotoHandler)
			})
		})

		r.Route("/reviews/{reviewID}", func(r chi.Router) {
			r.Get("/comments", app.listReviewCommentsHandler)
			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.Put("/", app.updateReviewHandler)
				r.Delete("/", app.deleteReviewHandler)
				r.Post("/comments", app.createCommentHandler)
			})
		})

		r.Route("/comments/{commentID}", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Put("/", app.updateCommentHandler)
			r.Delete("/", app.deleteCommentHandler)
		})

		r.With(app.AuthTokenMiddleware).Delete("/photos/{photoID}", app.deletePhotoHandler)

		r.Route("/bookmarks/{placeID}", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Post("/", app.addBookmarkHandler)
			r.Put("/", app.updateBookmarkHandler)
			r.Delete("/", app.removeBookmarkHandler)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Get("/profile", app.getProfileHandler)
			r.Put("/profile", app.updateProfileHandler)
			r.Get("/reviews", app.getUserReviewsHandler)
			r.Get("/comments", app.getUserCommentsHandler)
			r.Get("/bookmarks", app.getUserBookmarksHandler)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)

			r.With(app.RequireRole(auth.RoleAdmin, auth.RoleModerator)).
				Put("/reviews/{reviewID}/status", app.moderateReviewHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.RequireRole(auth.RoleAdmin))
				r.Get("/users", app.listUsersHandler)
				r.Post("/places", app.createPlaceHandler)
				r.Put("/places/{placeID}", app.updatePlaceHandler)
				r.Delete("/places/{placeID}", app.deletePlaceHandler)
			})
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
