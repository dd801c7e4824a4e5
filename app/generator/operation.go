package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/attr"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// wrapGenerateOperation wraps generation phases with a span and a timing log line
func wrapGenerateOperation(
	ctx context.Context,
	opName string,
	fn func(ctx context.Context) error,
	logger *slog.Logger,
	tracer trace.Tracer,
) error {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("guild.generate.%s", opName))
	defer span.End()

	start := time.Now()

	err := fn(ctx)

	duration := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if logger != nil {
			logger.ErrorContext(ctx, "Guild generate operation failed",
				attr.Operation(opName),
				attr.String("duration_sec", fmt.Sprintf("%.2f", duration.Seconds())),
				attr.Error(err))
		}
	} else {
		if logger != nil {
			logger.DebugContext(ctx, "Guild generate operation completed",
				attr.Operation(opName),
				attr.String("duration_sec", fmt.Sprintf("%.2f", duration.Seconds())))
		}
	}

	return err
}
