package container

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-membership-directory/config"
	repo "github.com/oksasatya/gym-membership-directory/internal/domain/repository"
	"github.com/oksasatya/gym-membership-directory/internal/infrastructure/identity"
	"github.com/oksasatya/gym-membership-directory/internal/infrastructure/kvstore"
	"github.com/oksasatya/gym-membership-directory/internal/infrastructure/notify"
	"github.com/oksasatya/gym-membership-directory/internal/infrastructure/postgres"
	"github.com/oksasatya/gym-membership-directory/internal/infrastructure/rediskv"
	"github.com/oksasatya/gym-membership-directory/internal/infrastructure/search"
	"github.com/oksasatya/gym-membership-directory/internal/infrastructure/storage"
	"github.com/oksasatya/gym-membership-directory/pkg/helpers"
)

// Container holds the infrastructure shared by the HTTP modules and the CLI
// tools. Optional services (Index, Photos, Notifier) stay nil when they are
// not configured; Redis is nil when rate limiting has no backend.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Redis    *redis.Client
	Store    kvstore.Store
	Members  repo.MemberRepository
	Profiles repo.ProfileRepository

	Identity repo.IdentityProvider
	// Local is set when IDENTITY_DRIVER=local; it can also sign in and mint tokens.
	Local *identity.Local

	Index    repo.MemberIndex
	Photos   repo.PhotoStore
	Notifier repo.Notifier

	pgPool    *pgxpool.Pool
	sqlDB     *sql.DB
	gcsClient *gcs.Client
	rabbitPub *helpers.RabbitPublisher
}

// Build connects every configured backend. Required backends (the store and
// the identity provider) fail the build; optional ones are logged and skipped.
func Build(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}
	ok := false
	defer func() {
		if !ok {
			c.Close()
		}
	}()

	if err := c.connectRedis(ctx); err != nil {
		return nil, err
	}
	if err := c.buildStore(ctx); err != nil {
		return nil, err
	}
	c.Members = kvstore.NewMemberRepository(c.Store)
	c.Profiles = kvstore.NewProfileRepository(c.Store)

	if err := c.buildIdentity(); err != nil {
		return nil, err
	}
	c.buildIndex()
	c.buildPhotos(ctx)
	c.buildNotifier()

	ok = true
	return c, nil
}

func (c *Container) connectRedis(ctx context.Context) error {
	cfg := c.Config
	required := cfg.StoreDriver == config.StoreRedis
	if cfg.RedisAddr == "" {
		if required {
			return fmt.Errorf("STORE_DRIVER=redis requires REDIS_ADDR")
		}
		c.Logger.Warn("REDIS_ADDR not set; rate limiting disabled")
		return nil
	}

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		if required {
			return fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.WithError(err).Warn("redis unavailable; rate limiting disabled")
		return nil
	}
	c.Redis = rdb
	return nil
}

func (c *Container) buildStore(ctx context.Context) error {
	cfg := c.Config
	switch cfg.StoreDriver {
	case config.StoreRedis:
		c.Store = rediskv.NewKVStore(c.Redis)
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
			DSN:         cfg.PostgresDSN(),
			MaxConns:    cfg.DBMaxConns,
			MinConns:    cfg.DBMinConns,
			MaxConnLife: cfg.DBMaxConnLife,
		})
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		c.pgPool = pool
		c.sqlDB = postgres.SQLDB(pool)
		if err := postgres.RunMigrations(c.sqlDB, cfg.MigrationsDir, c.Logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		c.Store = postgres.NewKVStore(pool)
	case config.StoreMemory:
		c.Logger.Warn("using in-memory store; data is lost on restart")
		c.Store = kvstore.NewMemory()
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	c.Logger.WithField("driver", cfg.StoreDriver).Info("key-value store ready")
	return nil
}

func (c *Container) buildIdentity() error {
	cfg := c.Config
	switch cfg.IdentityDriver {
	case config.IdentityGoTrue:
		if cfg.SupabaseURL == "" || cfg.SupabaseServiceRoleKey == "" {
			return fmt.Errorf("IDENTITY_DRIVER=gotrue requires SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY")
		}
		c.Identity = identity.NewGoTrue(identity.GoTrueConfig{
			BaseURL:        cfg.SupabaseURL,
			ServiceRoleKey: cfg.SupabaseServiceRoleKey,
			Timeout:        cfg.IdentityTimeout,
		})
	case config.IdentityLocal:
		if cfg.LocalJWTSecret == "" {
			return fmt.Errorf("IDENTITY_DRIVER=local requires LOCAL_JWT_SECRET")
		}
		c.Local = identity.NewLocal(c.Store, helpers.NewTokenManager(cfg.LocalJWTSecret, cfg.LocalJWTTTL, cfg.AppName))
		c.Identity = c.Local
	default:
		return fmt.Errorf("unknown IDENTITY_DRIVER %q", cfg.IdentityDriver)
	}
	return nil
}

func (c *Container) buildIndex() {
	addrs := c.Config.ESAddrs()
	if len(addrs) == 0 {
		return
	}
	es, err := helpers.NewESClient(addrs, c.Config.ElasticsearchUser, c.Config.ElasticsearchPass)
	if err != nil {
		c.Logger.WithError(err).Warn("elasticsearch unavailable; search falls back to a directory scan")
		return
	}
	c.Index = search.NewESMemberIndex(es, c.Config.ESMembersIndex)
}

func (c *Container) buildPhotos(ctx context.Context) {
	if c.Config.GCSBucket == "" {
		return
	}
	client, err := helpers.NewGCSClient(ctx, c.Config.GCSCredentialsJSONPath, c.Config.GCSEndpoint)
	if err != nil {
		c.Logger.WithError(err).Warn("GCS unavailable; photo uploads disabled")
		return
	}
	c.gcsClient = client
	c.Photos = storage.NewGCSPhotoStore(client, c.Config.GCSBucket)
}

func (c *Container) buildNotifier() {
	if !c.Config.MailSendEnabled || c.Config.RabbitMQURL == "" {
		return
	}
	pub, err := helpers.NewRabbitPublisher(c.Config.RabbitMQURL, c.Config.RabbitMQEmailQueue)
	if err != nil {
		c.Logger.WithError(err).Warn("rabbitmq unavailable; member emails disabled")
		return
	}
	c.rabbitPub = pub
	c.Notifier = notify.NewRabbitNotifier(pub, c.Config.GymName, c.Config.SupportURL)
}

// Close releases every connection Build opened. It is safe on a partially
// built container.
func (c *Container) Close() {
	if c.rabbitPub != nil {
		c.rabbitPub.Close()
	}
	if c.gcsClient != nil {
		_ = c.gcsClient.Close()
	}
	if c.sqlDB != nil {
		_ = c.sqlDB.Close()
	}
	if c.pgPool != nil {
		c.pgPool.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
