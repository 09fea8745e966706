package middleware

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/valyala/fasthttp"
)

// CORSOptions configures the allow-list. Credentials are never allowed.
type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	// PathPrefix limits CORS handling to matching paths; empty means all paths.
	PathPrefix string
	MaxAge     int
}

var defaultMethods = []string{
	fasthttp.MethodGet,
	fasthttp.MethodPost,
	fasthttp.MethodPut,
	fasthttp.MethodDelete,
	fasthttp.MethodOptions,
}

// CORS answers preflight requests and adds Access-Control-Allow-Origin for
// origins on the allow-list. Other origins get no CORS headers, which makes
// browsers reject the response.
func CORS(opts CORSOptions) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	allowAll := false
	allowed := make(map[string]struct{}, len(opts.AllowedOrigins))
	for _, o := range opts.AllowedOrigins {
		o = strings.TrimSpace(o)
		if o == "*" {
			allowAll = true
			continue
		}
		if o != "" {
			allowed[strings.TrimRight(o, "/")] = struct{}{}
		}
	}

	methods := opts.AllowedMethods
	if len(methods) == 0 {
		methods = defaultMethods
	}
	allowMethods := strings.Join(methods, ", ")
	prefix := []byte(opts.PathPrefix)

	originAllowed := func(origin string) bool {
		if allowAll {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}

	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			if len(prefix) > 0 && !bytes.HasPrefix(ctx.Path(), prefix) {
				next(ctx)
				return
			}

			origin := string(ctx.Request.Header.Peek(fasthttp.HeaderOrigin))
			preflight := ctx.IsOptions() &&
				len(ctx.Request.Header.Peek(fasthttp.HeaderAccessControlRequestMethod)) > 0
			if origin == "" {
				next(ctx)
				return
			}

			ctx.Response.Header.Add(fasthttp.HeaderVary, fasthttp.HeaderOrigin)
			ok := originAllowed(origin)

			if preflight {
				if ok {
					setAllowOrigin(ctx, origin, allowAll)
					ctx.Response.Header.Set(fasthttp.HeaderAccessControlAllowMethods, allowMethods)
					if reqHeaders := ctx.Request.Header.Peek(fasthttp.HeaderAccessControlRequestHeaders); len(reqHeaders) > 0 {
						ctx.Response.Header.SetBytesV(fasthttp.HeaderAccessControlAllowHeaders, reqHeaders)
					}
					if opts.MaxAge > 0 {
						ctx.Response.Header.Set(fasthttp.HeaderAccessControlMaxAge, strconv.Itoa(opts.MaxAge))
					}
				}
				ctx.SetStatusCode(fasthttp.StatusNoContent)
				return
			}

			if ok {
				setAllowOrigin(ctx, origin, allowAll)
			}
			next(ctx)
		}
	}
}

func setAllowOrigin(ctx *fasthttp.RequestCtx, origin string, allowAll bool) {
	if allowAll {
		ctx.Response.Header.Set(fasthttp.HeaderAccessControlAllowOrigin, "*")
		return
	}
	ctx.Response.Header.Set(fasthttp.HeaderAccessControlAllowOrigin, origin)
}
