// Package lock implementa usecase.KeyLocker: candados distribuidos en Redis y un respaldo local.
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventory-ims/internal/application/usecase"
	"github.com/jhoicas/inventory-ims/internal/domain"
	"github.com/jhoicas/inventory-ims/pkg/config"
	"github.com/jhoicas/inventory-ims/pkg/logger"
)

var _ usecase.KeyLocker = (*RedisLocker)(nil)

const (
	defaultRetries    = 3
	defaultRetryDelay = 100 * time.Millisecond
)

// releaseScript borra la clave solo si aún guarda nuestro token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// NewRedisClient crea el cliente y verifica la conexión con un PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("could not ping redis: %w", err)
	}
	return client, nil
}

// RedisLocker candado por clave con SET NX y expiración. Reintenta unas pocas veces antes de
// devolver domain.ErrLockNotAcquired.
type RedisLocker struct {
	client     redis.Cmdable
	ttl        time.Duration
	retries    int
	retryDelay time.Duration
	log        *logger.Logger
	newToken   func() string
}

// NewRedisLocker construye el locker; ttl es la vida máxima del candado si el proceso muere.
func NewRedisLocker(client redis.Cmdable, ttl time.Duration, log *logger.Logger) *RedisLocker {
	return &RedisLocker{
		client:     client,
		ttl:        ttl,
		retries:    defaultRetries,
		retryDelay: defaultRetryDelay,
		log:        log,
		newToken:   func() string { return uuid.New().String() },
	}
}

// Lock toma el candado de key. El unlock devuelto libera solo si el candado sigue siendo nuestro.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := l.newToken()
	for attempt := 0; attempt < l.retries; attempt++ {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			l.log.Error().Err(err).Str("key", key).Msg("error de redis al tomar candado")
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}
		if attempt == l.retries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryDelay):
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrLockNotAcquired, key)
}

func (l *RedisLocker) release(key, token string) {
	// contexto propio: la liberación debe ocurrir aunque la petición ya se haya cancelado
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("no se pudo liberar candado")
	}
}
