package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"

	"github.com/vivahmilan/backend/internal/authz"
	"github.com/vivahmilan/backend/internal/config"
	"github.com/vivahmilan/backend/internal/handlers"
	appMiddleware "github.com/vivahmilan/backend/internal/middleware"
	"github.com/vivahmilan/backend/internal/services"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	client, db, err := services.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer client.Disconnect(ctx)

	imageStore, err := services.NewS3ImageStore(ctx, cfg.AWSRegion, cfg.S3Bucket)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize image store")
	}

	mailer := services.NewSendGridMailer(cfg.SendGridAPIKey, cfg.MailFromName, cfg.MailFromEmail, cfg.SupportEmail)

	// Services
	userService := services.NewUserService(ctx, db)
	profileService := services.NewProfileService(ctx, db)
	paymentService := services.NewPaymentService(ctx, db)
	adService := services.NewAdService(db)
	inboxService := services.NewInboxService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, mailer, cfg.JWTSecret, cfg.JWTExpiration, cfg.OTPExpiry)
	profileHandler := handlers.NewProfileHandler(profileService, imageStore, cfg.MaxUploadSizeMB, cfg.MaxImagesPerUpload)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	adHandler := handlers.NewAdHandler(adService, imageStore, cfg.MaxUploadSizeMB)
	inboxHandler := handlers.NewInboxHandler(inboxService, mailer)
	userAdminHandler := handlers.NewUserAdminHandler(userService)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	authenticate := appMiddleware.Authenticate(userService, cfg.JWTSecret)

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Post("/forgot-password", authHandler.ForgotPassword)
			r.Post("/verify-otp", authHandler.VerifyOTP)
			r.Post("/reset-password", authHandler.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Get("/me", authHandler.Me)
			})
		})

		r.Get("/ads/{page}", adHandler.ListForPage)
		r.Post("/contacts", inboxHandler.CreateContact)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Route("/profiles", func(r chi.Router) {
				r.Post("/profile", profileHandler.Upsert)
				r.Get("/my-profile", profileHandler.MyProfile)
				r.Get("/profile/completion", profileHandler.Completion)
				r.Put("/update", profileHandler.Update)
				r.Get("/", profileHandler.List)

				r.Group(func(r chi.Router) {
					r.Use(appMiddleware.Require(authz.ModerateProfiles))
					r.Post("/admin-create", profileHandler.AdminCreate)
					r.Post("/admin-create-profile", profileHandler.AdminCreateProfile)
					r.Put("/{id}/verify", profileHandler.Verify)
					r.Delete("/{id}", profileHandler.Delete)
				})

				r.Get("/{id}", profileHandler.GetByID)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Post("/", paymentHandler.Create)
				r.Get("/my-payments", paymentHandler.MyPayments)
				r.Get("/{id}", paymentHandler.GetByID)

				r.Group(func(r chi.Router) {
					r.Use(appMiddleware.Require(authz.ManagePayments))
					r.Get("/", paymentHandler.ListAll)
					r.Patch("/{id}/status", paymentHandler.UpdateStatus)
					r.Delete("/{id}", paymentHandler.Delete)
				})
			})

			// Admin ad management lives under /ads/admin so the public
			// /ads/{page} route keeps its own parameter name.
			r.Group(func(r chi.Router) {
				r.Use(appMiddleware.Require(authz.ManageAds))
				r.Post("/ads", adHandler.Create)
				r.Get("/ads/admin", adHandler.ListAdmin)
				r.Put("/ads/admin/{id}", adHandler.Update)
				r.Put("/ads/admin/{id}/toggle", adHandler.Toggle)
				r.Delete("/ads/admin/{id}", adHandler.Delete)
			})

			r.Route("/messages", func(r chi.Router) {
				r.Post("/", inboxHandler.CreateMessage)

				r.Group(func(r chi.Router) {
					r.Use(appMiddleware.Require(authz.ReadInbox))
					r.Get("/", inboxHandler.ListMessages)
				})
			})

			r.Route("/contacts", func(r chi.Router) {
				r.Use(appMiddleware.Require(authz.ReadInbox))
				r.Get("/", inboxHandler.ListContacts)
				r.Delete("/{id}", inboxHandler.DeleteContact)
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(appMiddleware.Require(authz.ManageUsers))
				r.Get("/", userAdminHandler.List)
				r.Put("/{id}/verify", userAdminHandler.Verify)
				r.Put("/{id}/payment-status", userAdminHandler.SetPaymentStatus)
				r.Delete("/{id}", userAdminHandler.Delete)
			})
		})
	})

	log.WithField("addr", cfg.ServerAddress).Info("VivahMilan API server starting")
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		log.WithError(err).Fatal("Server failed to start")
	}
}
