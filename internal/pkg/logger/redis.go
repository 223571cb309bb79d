package logger

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisSlowThreshold = 100 * time.Millisecond

// RedisLoggerHook 缓存命令的错误与慢日志。redis.Nil 是缓存未命中，不算错误。
type RedisLoggerHook struct{}

func NewRedisLogger() *RedisLoggerHook {
	return &RedisLoggerHook{}
}

func (s *RedisLoggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.ErrorContext(ctx, "redis dial failed",
				log.String("addr", addr),
				log.Any("err", err),
			)
		}
		return conn, err
	}
}

func (s *RedisLoggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		elapsed := time.Since(start)

		if err != nil {
			if ignorableRedisError(cmd, err) {
				return err
			}
			log.ErrorContext(ctx, "redis command failed",
				log.String("command", cmd.Name()),
				log.String("args", fmt.Sprint(cmd.Args())),
				log.Duration("latency", elapsed),
				log.Any("err", err),
			)
			return err
		}

		if elapsed > redisSlowThreshold {
			log.WarnContext(ctx, "slow redis command",
				log.String("command", cmd.Name()),
				log.Duration("latency", elapsed),
			)
		}
		return nil
	}
}

func (s *RedisLoggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		if err != nil {
			log.ErrorContext(ctx, "redis pipeline failed",
				log.Int("cmd_count", len(cmds)),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err),
			)
		}
		return err
	}
}

func ignorableRedisError(cmd redis.Cmder, err error) bool {
	if errors.Is(err, redis.Nil) {
		return true
	}
	// 旧版服务端不认识 client setinfo，握手期间的报错无需关注
	return cmd.Name() == "client" && strings.Contains(err.Error(), "setinfo")
}
