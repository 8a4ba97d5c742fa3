package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docslot/config"
	_ "docslot/docs"
	"docslot/internal/domain"
	"docslot/internal/notify"
	"docslot/internal/repository"
	"docslot/internal/service"
	"docslot/internal/storage"
	"docslot/internal/transport/rest"
	"docslot/internal/transport/websocket"
	"docslot/pkg/database"
	"docslot/pkg/logger"
)

// @title DocSlot API
// @version 1.0
// @description API правил доступности специалистов и записи клиентов на слоты

// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "docslot",
		Short:        "Сервис расписаний специалистов и записи на слоты",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Путь к config.yaml")

	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(migrateCmd(&configPath))
	rootCmd.AddCommand(tokenCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.NewConfig(path)
	if err != nil {
		return nil, nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	log, err := logger.NewLogger(cfg.Environment, cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("не удалось создать логгер: %w", err)
	}

	return cfg, log, nil
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP сервер",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, cfg, log)
		},
	}
}

func runServer(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	var repos *repository.Repositories
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := database.NewPostgresDB(ctx, cfg.Postgres, log)
		if err != nil {
			return fmt.Errorf("не удалось подключиться к БД: %w", err)
		}
		defer db.Close()

		if err := database.RunMigrations(cfg.Postgres.URL("pgx5"), log); err != nil {
			return fmt.Errorf("ошибка при выполнении миграций: %w", err)
		}
		repos = repository.NewRepositories(db)
	default:
		log.Warn("используется хранилище в памяти, данные не сохраняются между запусками")
		repos = repository.NewMemoryRepositories()
	}

	var fileStorage storage.FileStorage
	if cfg.S3.Endpoint != "" {
		s3Storage, err := storage.NewS3Storage(ctx, cfg.S3, log)
		if err != nil {
			return fmt.Errorf("не удалось инициализировать S3 хранилище: %w", err)
		}
		fileStorage = s3Storage
		log.Info("S3 хранилище инициализировано", zap.String("endpoint", cfg.S3.Endpoint))
	} else {
		log.Warn("S3 хранилище не настроено, выгрузки хранятся в памяти")
		fileStorage = storage.NewMemoryStorage(cfg.S3.Bucket)
	}

	hub := websocket.NewNotificationHub(
		service.NewAuthService(cfg.JWT, log),
		service.NewProfileService(repos.Profile, log),
		log,
	)
	go hub.Run(ctx)

	var notifier service.Notifier
	if cfg.Redis.Addr != "" {
		rdb, err := notify.NewRedisClient(ctx, cfg.Redis, log)
		if err != nil {
			return err
		}
		defer rdb.Close()

		redisNotifier := notify.NewRedisNotifier(rdb, cfg.Redis.Channel, hub, log)
		go func() {
			if err := redisNotifier.Listen(ctx); err != nil {
				log.Error("подписка на события остановлена", zap.Error(err))
			}
		}()
		notifier = redisNotifier
	} else {
		log.Warn("Redis не настроен, уведомления доставляются только в пределах процесса")
		notifier = notify.NewLocalNotifier(hub, log)
	}

	services := service.NewServices(service.Deps{
		Repos:       repos,
		Logger:      log,
		Config:      cfg,
		FileStorage: fileStorage,
		Notifier:    notifier,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	rest.NewHandler(services, log, cfg, hub).InitRoutes(router)

	srv := &http.Server{
		Addr:           ":" + cfg.HTTP.Port,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderMB << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Info("Сервер запущен", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage.Driver))

	select {
	case err := <-errCh:
		return fmt.Errorf("ошибка запуска сервера: %w", err)
	case <-ctx.Done():
	}

	log.Info("Выключение сервера...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка при остановке сервера: %w", err)
	}

	log.Info("Сервер успешно остановлен")
	return nil
}

func migrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Управление миграциями базы данных",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Применить все миграции",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()

			return database.RunMigrations(cfg.Postgres.URL("pgx5"), log)
		},
	})

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Откатить миграции",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")

			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()

			return database.RollbackMigrations(cfg.Postgres.URL("pgx5"), steps, log)
		},
	}
	downCmd.Flags().Int("steps", 1, "Количество откатываемых миграций")
	cmd.AddCommand(downCmd)

	return cmd
}

// tokenCmd issues access tokens for local development against the
// configured signing key.
func tokenCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Выпустить access token для разработки",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetInt64("user-id")
			roleStr, _ := cmd.Flags().GetString("role")

			role := domain.UserRole(roleStr)
			if userID <= 0 || !role.IsValid() {
				return fmt.Errorf("нужны --user-id > 0 и --role client|practitioner|admin")
			}

			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()

			token, err := service.NewAuthService(cfg.JWT, log).IssueToken(userID, role)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().Int64("user-id", 0, "ID пользователя")
	cmd.Flags().String("role", string(domain.UserRoleClient), "Роль: client, practitioner, admin")

	return cmd
}
