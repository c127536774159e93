// Command server runs the membership backend. main only wires dependencies
// and owns the server lifecycle; business logic lives in the internal
// packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/prometheus/client_golang/prometheus"

	"guild/internal/files"
	"guild/internal/identity"
	memberhandler "guild/internal/member/handler"
	membermetrics "guild/internal/member/metrics"
	"guild/internal/member/models"
	"guild/internal/member/service"
	"guild/internal/member/store"
	"guild/internal/platform/config"
	"guild/internal/platform/httpserver"
	"guild/internal/platform/logger"
	"guild/internal/platform/metrics"
	"guild/internal/storage"
	httptransport "guild/internal/transport/http"
	"guild/pkg/platform/tx"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Env)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	registry := prometheus.NewRegistry()
	httpMetrics := metrics.New(registry)
	memberMetrics := membermetrics.New(registry)

	stores, err := buildStores(cfg, log)
	if err != nil {
		return err
	}
	defer stores.close()

	identitySvc := identity.NewService(stores.accounts, []byte(cfg.JWTSigningKey))
	tokens := identity.NewTokenService([]byte(cfg.JWTSigningKey), "guild", cfg.AccessTokenTTL)

	opts := []service.Option{service.WithMetrics(memberMetrics)}
	if cfg.Minio.Endpoint != "" {
		blobs, err := buildBlobStore(cfg.Minio)
		if err != nil {
			return err
		}
		opts = append(opts, service.WithBlobStore(blobs))
		log.Info("document storage enabled", "endpoint", cfg.Minio.Endpoint, "bucket", cfg.Minio.Bucket)
	}

	svc := service.New(
		stores.people, stores.members, stores.educations, stores.experiences, stores.institutions,
		identitySvc, stores.runner, log, opts...,
	)

	handler := memberhandler.New(svc, identitySvc, tokens, cfg.AccessTokenTTL, log, httpMetrics)
	router := httptransport.NewRouter(handler, registry)
	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", cfg.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

// stores carries the wired repositories and the matching transaction runner.
type stores struct {
	people       *storage.Repository[*models.Person]
	members      *storage.Repository[*models.Member]
	educations   *storage.Repository[*models.Education]
	experiences  *storage.Repository[*models.WorkExperience]
	institutions *storage.Repository[*models.Institution]
	accounts     *storage.Repository[*identity.Account]
	runner       tx.Runner
	close        func()
}

// buildStores selects the Postgres backend when a database URL is configured
// and the in-memory backend otherwise. Both pair with the transaction runner
// that can actually roll their writes back.
func buildStores(cfg config.Config, log *slog.Logger) (*stores, error) {
	if cfg.DatabaseURL == "" {
		log.Warn("no database configured, using in-memory storage")
		return buildMemoryStores(), nil
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &stores{
		people:       storage.NewRepository[*models.Person](storage.NewPostgres(db, store.PersonCodec())),
		members:      storage.NewRepository[*models.Member](storage.NewPostgres(db, store.MemberCodec())),
		educations:   storage.NewRepository[*models.Education](storage.NewPostgres(db, store.EducationCodec())),
		experiences:  storage.NewRepository[*models.WorkExperience](storage.NewPostgres(db, store.WorkExperienceCodec())),
		institutions: storage.NewRepository[*models.Institution](storage.NewPostgres(db, store.InstitutionCodec())),
		accounts:     storage.NewRepository[*identity.Account](storage.NewPostgres(db, identity.AccountCodec())),
		runner:       storage.NewPostgresTx(db),
		close:        func() { _ = db.Close() },
	}, nil
}

func buildMemoryStores() *stores {
	people := storage.NewMemory(storage.WithUniqueKey("people_active_email", func(p *models.Person) string {
		if !p.IsActive() {
			return ""
		}
		return p.Email
	}))
	members := storage.NewMemory[*models.Member]()
	educations := storage.NewMemory[*models.Education]()
	experiences := storage.NewMemory[*models.WorkExperience]()
	institutions := storage.NewMemory[*models.Institution]()
	accounts := storage.NewMemory(storage.WithUniqueKey("accounts_active_username", func(a *identity.Account) string {
		if !a.IsActive() {
			return ""
		}
		return a.Username
	}))

	return &stores{
		people:       storage.NewRepository[*models.Person](people),
		members:      storage.NewRepository[*models.Member](members),
		educations:   storage.NewRepository[*models.Education](educations),
		experiences:  storage.NewRepository[*models.WorkExperience](experiences),
		institutions: storage.NewRepository[*models.Institution](institutions),
		accounts:     storage.NewRepository[*identity.Account](accounts),
		runner:       storage.NewMemoryTx(people, members, educations, experiences, institutions, accounts),
		close:        func() {},
	}
}

func buildBlobStore(cfg config.MinioConfig) (files.BlobStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return files.NewMinioStore(context.Background(), client, cfg.Bucket)
}
