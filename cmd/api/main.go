package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/vistago/vistago-api/internal/authclient"
	"github.com/vistago/vistago-api/internal/config"
	"github.com/vistago/vistago-api/internal/domain"
	"github.com/vistago/vistago-api/internal/logger"
	"github.com/vistago/vistago-api/internal/media"
	minioclient "github.com/vistago/vistago-api/internal/repository/minio"
	"github.com/vistago/vistago-api/internal/repository/ports"
	"github.com/vistago/vistago-api/internal/repository/postgres"
	"github.com/vistago/vistago-api/internal/repository/redis"
	"github.com/vistago/vistago-api/internal/repository/secure"
	"github.com/vistago/vistago-api/internal/service"
	transport "github.com/vistago/vistago-api/internal/transport/http"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogstashTCPAddr)
	defer func() { _ = log.Sync() }()

	// Every store loads its persisted state before the server accepts
	// traffic; nothing renders against a half-initialized store.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	general, err := openGeneralStore(cfg)
	if err != nil {
		log.Fatal("storage unavailable", logger.Error(err))
	}

	secureStore, err := secure.New(general, cfg.SecureStoreSecret)
	if err != nil {
		log.Fatal("secure store init failed", logger.Error(err))
	}

	upstream := authclient.New(cfg.AuthBaseURL, cfg.AuthTokenTTLMins, cfg.AuthTimeout)

	var (
		avatars *media.AvatarCache
		primer  service.AvatarPrimer
	)
	if cfg.MinIOEndpoint != "" {
		client, err := minioclient.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
		if err != nil {
			log.Fatal("minio client init failed", logger.Error(err))
		}
		if err := minioclient.EnsureBucket(ctx, client, cfg.MinIOBucketAvatar); err != nil {
			log.Fatal("minio bucket init failed", logger.Error(err))
		}
		avatars = media.NewAvatarCache(client, cfg.MinIOBucketAvatar, cfg.MinIOPublicURL, cfg.AvatarMaxBytes)
		primer = avatars
	}

	scheme := service.StaticSchemeProvider{Scheme: domain.ColorScheme(cfg.SystemColorScheme)}

	destinations := service.NewDestinationService()
	favorites := service.NewFavoriteService(ctx, general, log)
	theme := service.NewThemeService(ctx, general, scheme, log)
	auth := service.NewAuthService(ctx, secureStore, upstream, primer, log)

	e := transport.NewRouter(cfg.AllowOrigins, log)
	transport.RegisterDestinations(e, destinations)
	transport.RegisterAuth(e, auth, avatars)
	transport.RegisterFavorites(e, auth, favorites, destinations)
	transport.RegisterTheme(e, theme)
	transport.RegisterSwagger(e)

	log.Info("starting api", logger.String("port", cfg.Port), logger.String("storage", cfg.StorageDriver))
	if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server stopped", logger.Error(err))
	}
}

func openGeneralStore(cfg config.Config) (ports.KVStore, error) {
	switch cfg.StorageDriver {
	case "postgres":
		return postgres.New(cfg.DatabaseURL)
	default:
		return redis.New(redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}
}
