package bootstrap

import (
	"context"
	"crypto/tls"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gameforge/ui-api/config"
	"github.com/gameforge/ui-api/internal/data"
)

// connectProbeTimeout bounds the startup ping for both Postgres and Redis.
const connectProbeTimeout = 5 * time.Second

// DatabaseConfig contains configuration for database connections.
type DatabaseConfig struct {
	DBConfig    config.DBConfig
	RedisConfig config.RedisConfig
	Logger      *slog.Logger
}

// ConnectDB opens and pings the PostgreSQL connection pool.
func ConnectDB(cfg DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", postgresDSN(cfg.DBConfig))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	applyPoolLimits(db, cfg.DBConfig)

	ctx, cancel := context.WithTimeout(context.Background(), connectProbeTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		if closeErr := db.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close database connection: %w", closeErr))
		}
		return nil, fmt.Errorf("ping database: %w", pingErr)
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("database connected",
			"host", cfg.DBConfig.Host,
			"port", cfg.DBConfig.Port,
			"database", cfg.DBConfig.Name,
		)
	}

	return db, nil
}

// postgresDSN builds the connection string through url.URL so credentials
// with special characters survive intact.
func postgresDSN(cfg config.DBConfig) string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	q := u.Query()
	q.Set("sslmode", cfg.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

func applyPoolLimits(db *sql.DB, cfg config.DBConfig) {
	open := cfg.MaxOpenConns
	if open <= 0 {
		open = 25
	}
	idle := cfg.MaxIdleConns
	if idle <= 0 {
		idle = 5
	}
	lifetime := cfg.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = 5 * time.Minute
	}
	db.SetMaxOpenConns(open)
	db.SetMaxIdleConns(idle)
	db.SetConnMaxLifetime(lifetime)
}

// ConnectRedis establishes a connection to Redis for sessions and the
// catalog cache.
//
//nolint:ireturn // returning redis.UniversalClient lets us pick single, sentinel, or cluster clients at runtime.
func ConnectRedis(cfg DatabaseConfig) (redis.UniversalClient, error) {
	client, addrDesc, err := dialRedis(cfg.RedisConfig)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectProbeTimeout)
	defer cancel()

	if pingErr := client.Ping(ctx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis: %w", pingErr)
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("redis connected", "addr", redactAddr(addrDesc))
	}

	return client, nil
}

//nolint:ireturn // topology selection happens at runtime.
func dialRedis(cfg config.RedisConfig) (redis.UniversalClient, string, error) {
	switch {
	case cfg.UseCluster:
		return dialClusterRedis(cfg)
	case cfg.UseSentinel:
		return dialSentinelRedis(cfg)
	default:
		return dialDirectRedis(cfg)
	}
}

//nolint:ireturn // topology selection happens at runtime.
func dialDirectRedis(cfg config.RedisConfig) (redis.UniversalClient, string, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, "", errors.New("redis direct configuration requires a URI")
	}

	if isRedisURL(uri) {
		opt, err := redis.ParseURL(uri)
		if err != nil {
			return nil, "", fmt.Errorf("parse redis url: %w", err)
		}
		return redis.NewClient(opt), opt.Addr, nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     uri,
		Password: cfg.Password,
	}), uri, nil
}

//nolint:ireturn // topology selection happens at runtime.
func dialSentinelRedis(cfg config.RedisConfig) (redis.UniversalClient, string, error) {
	if len(cfg.SentinelNodes) == 0 {
		return nil, "", errors.New("redis sentinel configuration requires at least one sentinel node")
	}

	client := redis.NewFailoverClient(&redis.FailoverOptions{
		MasterName:       cfg.SentinelMasterName,
		SentinelAddrs:    cfg.SentinelNodes,
		Password:         cfg.Password,
		SentinelPassword: cfg.SentinelPassword,
	})
	return client, "sentinel:" + cfg.SentinelMasterName, nil
}

//nolint:ireturn // topology selection happens at runtime.
func dialClusterRedis(cfg config.RedisConfig) (redis.UniversalClient, string, error) {
	addrs := trimAddrs(cfg.ClusterNodes)

	opts := &redis.ClusterOptions{Password: cfg.Password}
	if len(addrs) == 0 {
		// No explicit node list; fall back to the direct URI as a seed node.
		ep, err := clusterSeedFromURI(cfg.URI)
		if err != nil {
			return nil, "", err
		}
		if ep.addr != "" {
			addrs = []string{ep.addr}
			opts.Username = ep.username
			opts.TLSConfig = ep.tlsConfig
			if ep.password != "" {
				opts.Password = ep.password
			}
		}
	}

	if len(addrs) == 0 {
		return nil, "", errors.New("redis cluster configuration requires at least one address")
	}

	opts.Addrs = addrs
	return redis.NewClusterClient(opts), "cluster:" + strings.Join(addrs, ","), nil
}

// clusterEndpoint carries connection details parsed from a redis URI.
type clusterEndpoint struct {
	addr      string
	username  string
	password  string
	tlsConfig *tls.Config
}

func clusterSeedFromURI(uri string) (clusterEndpoint, error) {
	trimmed := strings.TrimSpace(uri)
	if trimmed == "" {
		return clusterEndpoint{}, nil
	}
	if !isRedisURL(trimmed) {
		return clusterEndpoint{addr: trimmed}, nil
	}

	opt, err := redis.ParseURL(trimmed)
	if err != nil {
		return clusterEndpoint{}, fmt.Errorf("parse redis cluster url: %w", err)
	}
	return clusterEndpoint{
		addr:      opt.Addr,
		username:  opt.Username,
		password:  opt.Password,
		tlsConfig: opt.TLSConfig,
	}, nil
}

func trimAddrs(raw []string) []string {
	result := make([]string, 0, len(raw))
	for _, addr := range raw {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// redactAddr strips credentials from a connection description before logging.
func redactAddr(addrDesc string) string {
	if u, err := url.Parse(addrDesc); err == nil && u.User != nil {
		u.User = url.User("*")
		return u.Redacted()
	}
	if i := strings.LastIndex(addrDesc, "@"); i > -1 {
		return addrDesc[i+1:]
	}
	return addrDesc
}

func isRedisURL(value string) bool {
	return strings.HasPrefix(value, "redis://") || strings.HasPrefix(value, "rediss://")
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if err := data.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	if logger != nil {
		logger.InfoContext(ctx, "database migrations completed")
	}

	return nil
}
