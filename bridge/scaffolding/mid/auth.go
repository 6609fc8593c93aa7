package mid

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrazmi/taskflow/bridge/scaffolding/errs"
	"github.com/jrazmi/taskflow/infrastructure/web"
	"github.com/jrazmi/taskflow/sdk/identity"
	"github.com/jrazmi/taskflow/sdk/logger"
)

// Bearer verifies the bearer credential on each request and attaches the
// authenticated identity to the context. Verification is stateless and
// repeated per request; the specific failure cause is not distinguished to
// the caller beyond the message text.
func Bearer(log *logger.Logger, secret string) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			header := r.Header.Get("Authorization")

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return errs.Newf(errs.Unauthenticated, "missing token")
			}

			ident, err := identity.Parse(token, secret)
			if err != nil {
				log.DebugContext(ctx, "token rejected", "err", err)
				return errs.Newf(errs.Unauthenticated, "invalid token")
			}

			ctx = setIdentity(ctx, ident)
			return next(ctx, r)
		}
	}
}
