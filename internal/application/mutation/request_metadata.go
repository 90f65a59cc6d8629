package mutation

import (
	"context"

	"github.com/bizdesk/backend/internal/domain/audit"
)

type requestMetadataKey struct{}

// WithRequestMetadata attaches transport metadata to the context for
// inclusion in audit entries. The extractor is optional: mutations made
// outside an HTTP request simply audit with absent fields.
func WithRequestMetadata(ctx context.Context, meta audit.RequestMetadata) context.Context {
	return context.WithValue(ctx, requestMetadataKey{}, meta)
}

// requestMetadataFrom retrieves transport metadata from the context,
// degrading gracefully to the zero value.
func requestMetadataFrom(ctx context.Context) audit.RequestMetadata {
	if meta, ok := ctx.Value(requestMetadataKey{}).(audit.RequestMetadata); ok {
		return meta
	}
	return audit.RequestMetadata{}
}
