package intseries

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// defaultChunkSize is the smallest slice of input given to one worker.
const defaultChunkSize = 256 << 10

// decodeFunc is the shape shared by the Append* decoders.
type decodeFunc[T uint32 | int32] func(dst []T, data []byte, seps *Separators) ([]T, error)

// ParseUnsignedParallel decodes data like ParseUnsigned, splitting it at
// separators into chunks decoded concurrently on up to workers goroutines.
// The result and any error are the same as with ParseUnsigned.
func ParseUnsignedParallel(ctx context.Context, data []byte, seps *Separators, workers int) ([]uint32, error) {
	return decodeParallel[uint32](ctx, data, seps, workers, defaultChunkSize, AppendUnsigned)
}

// ParseSignedParallel decodes data like ParseSigned on up to workers goroutines.
func ParseSignedParallel(ctx context.Context, data []byte, seps *Separators, workers int) ([]int32, error) {
	return decodeParallel[int32](ctx, data, seps, workers, defaultChunkSize, AppendSignedScalar)
}

// chunk is a half-open byte range of the input.
type chunk struct {
	start, end int
}

// splitChunks cuts data into ranges of at least size bytes. Every range but
// the last ends just after a separator, so each one starts in the same state
// as the beginning of input.
func splitChunks(data []byte, seps *Separators, size int) []chunk {
	var chunks []chunk
	for start := 0; start < len(data); {
		end := start + size
		if end >= len(data) {
			end = len(data)
		} else {
			for end < len(data) && !seps.member[data[end]] {
				end++
			}
			if end < len(data) {
				end++
			}
		}
		chunks = append(chunks, chunk{start, end})
		start = end
	}
	return chunks
}

func decodeParallel[T uint32 | int32](ctx context.Context, data []byte, seps *Separators, workers, size int, decode decodeFunc[T]) ([]T, error) {
	chunks := splitChunks(data, seps, size)
	if workers <= 1 || len(chunks) <= 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := decode(nil, data, seps)
		if err != nil {
			return nil, err
		}
		return out, nil
	}

	results := make([][]T, len(chunks))
	errs := make([]error, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			results[i], errs[i] = decode(nil, data[c.start:c.end], seps)
			if errs[i] != nil {
				errs[i] = withOffset(errs[i], c.start)
				return errs[i]
			}
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for i, c := range chunks {
		switch err := errs[i]; {
		case err == nil:
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			// Skipped after a later chunk failed; an earlier error must win.
			results[i], err = decode(nil, data[c.start:c.end], seps)
			if err != nil {
				return nil, withOffset(err, c.start)
			}
		default:
			return nil, err
		}
		total += len(results[i])
	}

	out := make([]T, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}
