package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	authsvc "stayhub/internal/app/auth"
	hostappsvc "stayhub/internal/app/hostapps"
	listingsvc "stayhub/internal/app/listings"
	appoutbox "stayhub/internal/app/outbox"
	reservationsvc "stayhub/internal/app/reservations"
	domainauth "stayhub/internal/domain/auth"
	"stayhub/internal/domain/hostapp"
	"stayhub/internal/domain/listing"
	"stayhub/internal/domain/reservation"
	domainuser "stayhub/internal/domain/user"
	"stayhub/internal/infra/broker/kafka"
	"stayhub/internal/infra/config"
	mongodb "stayhub/internal/infra/db/mongo"
	ginserver "stayhub/internal/infra/http/gin"
	"stayhub/internal/infra/obs"
	"stayhub/internal/infra/outbox"
	"stayhub/internal/infra/security"
	"stayhub/internal/infra/storage/memory"
	"stayhub/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	stores, closeStores, err := buildStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("storage init failed", "error", err)
		os.Exit(1)
	}
	defer closeStores()

	outboxStore := outbox.NewStore()
	app := buildApplication(cfg, logger, stores, outboxStore)

	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			logger.Error("kafka connect failed", "error", err)
			os.Exit(1)
		}
		defer producer.Close()

		worker := &outbox.Worker{
			Store:       outboxStore,
			Producer:    producer,
			Interval:    cfg.OutboxPollInterval,
			TopicPrefix: cfg.KafkaTopicPrefix,
			Backoff:     cfg.RetryBackoff,
		}
		go func() {
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
		logger.Info("outbox worker started", "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka not configured, events stay in outbox")
	}

	server := ginserver.NewServer(cfg, logger, obs.HealthHandlers{DB: stores.pinger}, app)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type stores struct {
	listings     listing.Repository
	reservations reservation.Repository
	users        domainuser.Repository
	sessions     domainauth.SessionStore
	applications hostapp.Repository
	pinger       obs.Pinger
}

// buildStores wires MongoDB when MONGO_URI is set and falls back to the
// in-memory stores otherwise.
func buildStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (stores, func(), error) {
	if cfg.MongoURI == "" {
		logger.Info("mongo not configured, using in-memory storage")
		return stores{
			listings:     memory.NewListingRepository(),
			reservations: memory.NewReservationRepository(),
			users:        memory.NewUserRepository(),
			sessions:     memory.NewSessionStore(),
			applications: memory.NewHostApplicationRepository(),
		}, func() {}, nil
	}

	client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return stores{}, nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		return stores{}, nil, err
	}

	users := mongodb.NewUserRepository(client.DB)
	if err := users.EnsureIndexes(ctx); err != nil {
		return stores{}, nil, err
	}
	sessions := mongodb.NewSessionStore(client.DB)
	if err := sessions.EnsureIndexes(ctx); err != nil {
		return stores{}, nil, err
	}

	logger.Info("mongo connected", "database", cfg.MongoDB)
	closeFn := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Close(closeCtx); err != nil {
			logger.Warn("mongo disconnect failed", "error", err)
		}
	}
	return stores{
		listings:     mongodb.NewListingRepository(client.DB),
		reservations: mongodb.NewReservationRepository(client.DB),
		users:        users,
		sessions:     sessions,
		applications: mongodb.NewHostApplicationRepository(client.DB),
		pinger:       client,
	}, closeFn, nil
}

func buildApplication(cfg config.Config, logger *slog.Logger, st stores, box appoutbox.Outbox) ginserver.Handlers {
	var uploader s3.Uploader = s3.NoopUploader{}
	if cfg.S3Endpoint != "" {
		client, err := s3.NewClient(s3.Options{
			Endpoint:       cfg.S3Endpoint,
			PublicEndpoint: cfg.S3PublicEndpoint,
			AccessKey:      cfg.S3AccessKey,
			SecretKey:      cfg.S3SecretKey,
			Bucket:         cfg.S3Bucket,
			UseSSL:         cfg.S3UseSSL,
		}, logger)
		if err != nil {
			logger.Warn("s3 init failed, photo upload disabled", "error", err)
		} else {
			uploader = client
		}
	}

	authService := &authsvc.Service{
		Users:      st.users,
		Sessions:   st.sessions,
		Passwords:  security.NewBcryptHasher(cfg.BcryptCost),
		Tokens:     security.NewRandomTokenGenerator(32),
		SessionTTL: cfg.SessionTTL,
		Logger:     logger,
	}
	reservationService := &reservationsvc.Service{
		Reservations: st.reservations,
		Listings:     st.listings,
		Locks:        memory.NewListingLocks(),
		Outbox:       box,
	}
	listingService := &listingsvc.Service{
		Listings:     st.listings,
		Reservations: reservationService,
		Photos:       uploader,
		Outbox:       box,
	}
	hostappService := &hostappsvc.Service{
		Applications: st.applications,
		Users:        st.users,
		Outbox:       box,
	}

	return ginserver.Handlers{
		Auth: ginserver.AuthHandler{Service: authService, Logger: logger},
		Listing: ginserver.ListingHandler{
			Listings:     listingService,
			Reservations: reservationService,
			Logger:       logger,
		},
		HostListing: ginserver.HostListingHandler{
			Listings:        listingService,
			ReservationsSvc: reservationService,
			Currency:        cfg.Currency,
			Logger:          logger,
		},
		Reservation: ginserver.ReservationHandler{Service: reservationService, Logger: logger},
		HostApplication: ginserver.HostApplicationHandler{Service: hostappService, Logger: logger},
		Admin: ginserver.AdminHandler{
			ListingsSvc:     listingService,
			ReservationsSvc: reservationService,
			ApplicationsSvc: hostappService,
			Auth:            authService,
			Logger:          logger,
		},
		AuthMiddleware: ginserver.AuthMiddleware{Service: authService, Logger: logger}.Handle,
	}
}
