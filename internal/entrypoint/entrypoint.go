package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booksales/internal/audit"
	"github.com/mrlokans/booksales/internal/config"
	"github.com/mrlokans/booksales/internal/database"
	"github.com/mrlokans/booksales/internal/database/sales"
	http_controllers "github.com/mrlokans/booksales/internal/http"
	"github.com/mrlokans/booksales/internal/scheduler"
	"github.com/mrlokans/booksales/internal/seed"
	"github.com/mrlokans/booksales/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for SIGINT or SIGTERM, then give in-flight requests the
	// configured timeout to finish.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Book Sales v%s", version)

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	loader := seed.NewLoader(db.DB)
	auditor := audit.NewAuditor(cfg.Audit.Dir)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(tasksDatabasePath(cfg), taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewLoadSeedQueue(loader, auditor))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	seedSync := scheduler.NewSeedSyncScheduler(cfg.SeedSync, cfg.Seed.File, seedLoadFunc(taskClient, loader, auditor))
	schedCtx, schedCancel := context.WithCancel(context.Background())
	defer schedCancel()
	if err := seedSync.Start(schedCtx); err != nil {
		log.Fatalf("Failed to start seed sync scheduler: %v", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:   db,
		Sales:      sales.NewRepository(db.DB),
		SeedFile:   cfg.Seed.File,
		TaskClient: taskClient,
		SeedSync:   seedSync,
		Version:    version,
	})

	onShutdown := func(ctx context.Context) {
		seedSync.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}

// seedLoadFunc enqueues scheduled loads when the task queue runs and
// loads inline otherwise.
func seedLoadFunc(taskClient *tasks.Client, loader *seed.Loader, auditor *audit.Auditor) scheduler.LoadFunc {
	if taskClient != nil {
		return func(ctx context.Context, path string) error {
			_, err := taskClient.Add(tasks.LoadSeedTask{Path: path, Trigger: "schedule"}).Save()
			return err
		}
	}
	process := tasks.LoadSeedProcessor(loader, auditor)
	return func(ctx context.Context, path string) error {
		return process(ctx, tasks.LoadSeedTask{Path: path, Trigger: "schedule"})
	}
}

func tasksDatabasePath(cfg *config.Config) string {
	if cfg.Tasks.DatabasePath != "" {
		return cfg.Tasks.DatabasePath
	}
	if cfg.Database.Driver == config.DriverSQLite && cfg.Database.Path != "" {
		return tasks.DatabasePathFor(cfg.Database.Path)
	}
	return config.DefaultTasksDatabasePath
}
