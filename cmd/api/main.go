package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/application"
	appauth "github.com/Aravinsamy/ai-fake-image-video-detector/internal/application/auth"
	appdet "github.com/Aravinsamy/ai-fake-image-video-detector/internal/application/detections"
	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/config"
	domain "github.com/Aravinsamy/ai-fake-image-video-detector/internal/domain/analysis"
	domusers "github.com/Aravinsamy/ai-fake-image-video-detector/internal/domain/users"
	mysqlp "github.com/Aravinsamy/ai-fake-image-video-detector/internal/infra/db/mysql"
	postgresp "github.com/Aravinsamy/ai-fake-image-video-detector/internal/infra/db/postgres"
	oadetector "github.com/Aravinsamy/ai-fake-image-video-detector/internal/infra/detector/openai"
	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/infra/httpserver"
	minioStore "github.com/Aravinsamy/ai-fake-image-video-detector/internal/infra/storage"
	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect database (mysql default, postgres optional)
	var (
		db          *sql.DB
		userRepo    domusers.Repository
		historyRepo domain.HistoryRepository
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		if err := postgresp.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("postgres schema error: %v", err)
		}
		userRepo = postgresp.NewUserRepository(db)
		historyRepo = postgresp.NewHistoryRepository(db)
	default:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		if err := mysqlp.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("mysql schema error: %v", err)
		}
		userRepo = mysqlp.NewUserRepository(db)
		historyRepo = mysqlp.NewHistoryRepository(db)
	}
	defer db.Close()

	// seed demo account
	if err := seedDemoUser(ctx, userRepo); err != nil {
		log.Printf("demo user seed error: %v", err)
	}

	// init minio
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatalf("minio init error: %v", err)
	}

	// init detector
	detector := oadetector.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)

	// init services
	authSvc := appauth.NewService(userRepo)
	detectSvc := &appdet.Service{
		Repo:      historyRepo,
		Detector:  detector,
		Artifacts: store,
		Clock:     application.SystemClock{},
	}

	// init router
	checkers := map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}
	handler := httpserver.NewRouter(authSvc, detectSvc, cfg.Server.MaxUploadBytes, checkers)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Minute, // video uploads are slow
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// seedDemoUser mirrors the original backend's bootstrap account
func seedDemoUser(ctx context.Context, repo domusers.Repository) error {
	existing, err := repo.FindByEmail(ctx, "demo@test.com")
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = repo.Create(ctx, "Demo User", "demo@test.com", string(hash))
	return err
}
