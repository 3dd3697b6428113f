package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"spacecityrentals/internal/api"
	"spacecityrentals/internal/auth"
	"spacecityrentals/internal/config"
	"spacecityrentals/internal/repository"
	"spacecityrentals/internal/repository/memory"
	"spacecityrentals/internal/repository/postgres"
	"spacecityrentals/internal/service"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	store := openStore(cfg)

	// Payment gateway: Stripe when configured, otherwise the whole hold
	// flow is bypassed and bookings are created directly.
	var gateway service.PaymentGateway
	if cfg.PaymentsEnabled() {
		gateway = service.NewStripeService(cfg.StripeSecretKey)
	} else {
		log.Println("STRIPE_SECRET_KEY not set; running with payments disabled")
	}

	notifySvc := service.NewNotifyService(cfg)
	bookingSvc := service.NewBookingService(store, notifySvc, cfg.BookingLocation)
	vehicleSvc := service.NewVehicleService(store.Vehicles)
	availabilitySvc := service.NewAvailabilityService(store.Bookings, cfg.BookingLocation)
	adminAuthSvc := service.NewAdminAuthService(store.Admins, cfg.JWTSecret)

	bookingHandler := api.NewBookingHandler(bookingSvc, cfg.PaymentsEnabled())
	vehicleHandler := api.NewVehicleHandler(vehicleSvc, availabilitySvc)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/vehicles", vehicleHandler.ListVehicles).Methods("GET")
	r.HandleFunc("/api/vehicles/{slug}", vehicleHandler.GetVehicle).Methods("GET")
	r.HandleFunc("/api/availability", vehicleHandler.CheckAvailability).Methods("GET")
	r.HandleFunc("/api/bookings", bookingHandler.CreateBooking).Methods("POST")
	r.HandleFunc("/api/bookings", bookingHandler.ListBookingsByEmail).Methods("GET").Queries("email", "{email}")
	r.HandleFunc("/api/bookings/code/{code}", bookingHandler.GetBookingByCode).Methods("GET")

	// Admin endpoints (protected)
	settlementSvc := service.NewSettlementService(store, gateway)
	adminHandler := api.NewAdminHandler(bookingSvc, settlementSvc, vehicleSvc)

	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware(cfg.JWTSecret))
	admin.HandleFunc("/bookings", adminHandler.ListBookings).Methods("GET")
	admin.HandleFunc("/stats", adminHandler.Stats).Methods("GET")
	admin.HandleFunc("/bookings/{id}/status", adminHandler.UpdateBookingStatus).Methods("PUT")
	admin.HandleFunc("/bookings/{id}/events", adminHandler.ListPaymentEvents).Methods("GET")
	admin.HandleFunc("/bookings/{id}/capture", adminHandler.CapturePayment).Methods("POST")
	admin.HandleFunc("/bookings/{id}/refund", adminHandler.RefundPayment).Methods("POST")
	admin.HandleFunc("/bookings/{id}/cancel-hold", adminHandler.CancelHold).Methods("POST")
	admin.HandleFunc("/vehicles", adminHandler.CreateVehicle).Methods("POST")
	admin.HandleFunc("/vehicles/{id}", adminHandler.UpdateVehicle).Methods("PUT")
	admin.HandleFunc("/vehicles/{id}", adminHandler.DeactivateVehicle).Methods("DELETE")

	// Payment flow endpoints only exist when Stripe is configured.
	if cfg.PaymentsEnabled() {
		paymentSvc := service.NewPaymentService(store, gateway, cfg.SecurityDepositCents)
		paymentHandler := api.NewPaymentHandler(paymentSvc, bookingSvc)
		r.HandleFunc("/api/payments/hold", paymentHandler.CreateHold).Methods("POST")
		r.HandleFunc("/api/payments/confirm", paymentHandler.ConfirmBooking).Methods("POST")

		jobSvc := service.NewJobService(store, gateway)
		if cfg.StripeWebhookSecret != "" {
			webhookHandler := api.NewStripeWebhookHandler(cfg.StripeWebhookSecret, jobSvc)
			r.HandleFunc("/api/stripe/webhook", webhookHandler.HandleWebhook).Methods("POST")
		}

		c := cron.New()
		if _, err := c.AddFunc("@hourly", func() {
			if err := jobSvc.ReconcileAuthorizedHolds(); err != nil {
				log.Printf("Reconcile job failed: %v", err)
			}
		}); err != nil {
			log.Fatalf("Failed to schedule reconcile job: %v", err)
		}
		c.Start()
		defer c.Stop()
	}

	corsMiddleware := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsMiddleware(handlers.LoggingHandler(os.Stdout, r))))
}

// openStore selects the backing store once at startup: Postgres when a
// DATABASE_URL is configured, the seeded in-memory fixtures otherwise.
func openStore(cfg *config.Config) repository.Store {
	if cfg.DemoMode() {
		log.Println("DATABASE_URL not set; running in demo mode with fixture data")
		return memory.NewSeededStore().AsStore()
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	return repository.Store{
		Vehicles:      postgres.NewVehicleRepository(db),
		Bookings:      postgres.NewBookingRepository(db),
		PaymentEvents: postgres.NewPaymentEventRepository(db),
		Admins:        postgres.NewAdminRepository(db),
	}
}
