// Package reqctx carries request-scoped metadata from the HTTP layer into
// services.
//
// Context keys are private unexported types; access goes through the
// getter and setter functions:
//
//	ctx = reqctx.WithRequestMeta(ctx, &reqctx.RequestMeta{
//	    RequestID:   "abc-123",
//	    ClientIP:    "192.168.1.1",
//	    RequestedAt: time.Now(),
//	})
//
//	log := logger.With(reqctx.LogAttrs(ctx)...)
//
// RequestMeta is set by the request id middleware for every request.
package reqctx
