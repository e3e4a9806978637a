// Package cache implementa la caché de reportes sobre Redis con claves versionadas:
// cada escritura en el libro de stock o en ventas incrementa la versión y las claves viejas expiran solas.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventory-system/pkg/logger"
)

const (
	versionKey  = "reports:version"
	bumpChannel = "reports.bump"
)

// Options conexión a Redis.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// New crea el cliente y verifica la conexión con un ping.
func New(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: ping: %w", err)
	}
	return client, nil
}

// ReportCache caché de reportes. Con client nil todas las operaciones pasan directo al loader.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewReportCache construye la caché; client puede ser nil.
func NewReportCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *ReportCache {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportCache{client: client, ttl: ttl, log: log}
}

// Version devuelve la versión vigente, inicializándola si falta.
func (c *ReportCache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.SetNX(ctx, versionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, versionKey).Int64()
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// BuildKey arma la clave con la versión actual al final.
func (c *ReportCache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	joined := strings.Join(append([]string{"reports"}, parts...), ":")
	if c == nil || c.client == nil {
		return joined, nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return joined + ":" + strconv.FormatInt(ver, 10), nil
}

// FetchJSON lee key en dest; si no existe ejecuta loader y guarda el resultado con TTL.
// Un Redis caído no rompe el reporte: se registra el error y se usa el loader.
func (c *ReportCache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("cache: loader requerido")
	}
	if c != nil && c.client != nil {
		payload, err := c.client.Get(ctx, key).Bytes()
		if err == nil {
			return json.Unmarshal(payload, dest)
		}
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("key", key).Msg("cache: lectura fallida")
		}
	}

	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if c != nil && c.client != nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("cache: escritura fallida")
		}
	}
	return json.Unmarshal(raw, dest)
}

// Bump invalida todos los reportes incrementando la versión y publica el evento.
func (c *ReportCache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	ver, err := c.client.Incr(ctx, versionKey).Result()
	if err != nil {
		return err
	}
	return c.client.Publish(ctx, bumpChannel, strconv.FormatInt(ver, 10)).Err()
}

// Invalidate es Bump sin error, para usarse después de un commit.
func (c *ReportCache) Invalidate(ctx context.Context) {
	if err := c.Bump(ctx); err != nil {
		c.log.Warn().Err(err).Msg("cache: no se pudo invalidar reportes")
	}
}
