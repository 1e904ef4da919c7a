package llm

import "context"

type ctxKeyWorker struct{}

// WithWorker attaches the name of the pipeline step issuing the request to
// the context, so middlewares can attribute logs and usage.
func WithWorker(ctx context.Context, worker string) context.Context {
	return context.WithValue(ctx, ctxKeyWorker{}, worker)
}

// WorkerFrom returns the worker name stored in the context.
func WorkerFrom(ctx context.Context) string {
	if v := ctx.Value(ctxKeyWorker{}); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "unknown"
}
