package discord

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/attr"
	"github.com/bwmarrin/discordgo"
	"github.com/cenkalti/backoff/v4"
)

const (
	defaultReadRetries         = 3
	discordAPIBaseRetryDelay   = 200 * time.Millisecond
	discordAPIMaxRetryDelay    = 3 * time.Second
	discordAPIMaxRetryDuration = 15 * time.Second
)

// RetryDiscordAPI retries transient Discord API failures with exponential backoff and jitter.
// Only idempotent reads go through here; mutations are never replayed.
func RetryDiscordAPI(ctx context.Context, logger *slog.Logger, operation string, maxRetries uint64, fn func() error) error {
	policy := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(discordAPIBaseRetryDelay),
		backoff.WithMaxInterval(discordAPIMaxRetryDelay),
		backoff.WithMaxElapsedTime(discordAPIMaxRetryDuration),
	)

	attempt := 0
	op := func() error {
		attempt++
		err := fn()
		if err != nil && !isRetryableDiscordError(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		if logger != nil {
			logger.WarnContext(ctx, "Retrying transient Discord API failure",
				attr.Operation(operation),
				attr.Int("attempt", attempt),
				attr.Duration("retry_in", wait),
				attr.Error(err),
			)
		}
	}

	return backoff.RetryNotify(op, backoff.WithContext(backoff.WithMaxRetries(policy, maxRetries), ctx), notify)
}

func (d *DiscordSession) retryRead(operation string, options []discordgo.RequestOption, fn func() error) error {
	return RetryDiscordAPI(requestContext(options), d.logger, operation, d.readRetries, fn)
}

// requestContext returns the context carried by a discordgo.WithContext option, or Background.
func requestContext(options []discordgo.RequestOption) context.Context {
	cfg := &discordgo.RequestConfig{Request: &http.Request{Header: make(http.Header)}}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.Request == nil {
		return context.Background()
	}
	return cfg.Request.Context()
}

func isRetryableDiscordError(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Response != nil {
			status := restErr.Response.StatusCode
			if status == http.StatusTooManyRequests || status >= http.StatusInternalServerError {
				return true
			}
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}
