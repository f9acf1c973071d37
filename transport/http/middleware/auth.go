package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/phuhk2908/rms-backend/infras/jwt"
	"github.com/phuhk2908/rms-backend/infras/otel"
	"github.com/phuhk2908/rms-backend/permissions"
	"github.com/phuhk2908/rms-backend/shared/constant"
	"github.com/phuhk2908/rms-backend/shared/failure"
	"github.com/phuhk2908/rms-backend/transport/http/response"
)

// Auth validates bearer tokens issued by the external auth service and puts
// the acting staff identity on the request context. This backend never mints
// tokens itself. RBAC gates the role-restricted endpoints listed in the
// embedded rule set and must run after Auth.
type Auth interface {
	Auth(next http.Handler) http.Handler
	RBAC(next http.Handler) http.Handler
}

type authImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	rules      *permissions.RuleSet
}

func NewAuthMiddleware(jwtService jwt.JWT, otel otel.Otel, rules *permissions.RuleSet) Auth {
	return &authImpl{
		jwtService: jwtService,
		otel:       otel,
		rules:      rules,
	}
}

func (m *authImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == "" {
			err := failure.Unauthorized("Missing authorization header")
			response.WithError(writer, err)

			scope.TraceError(err)

			return
		}

		tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			err := failure.Unauthorized("Invalid authorization header format")
			response.WithError(writer, err)

			scope.TraceError(err)

			return
		}

		claims, err := m.jwtService.VerifyToken(tokenString)
		if err != nil {
			var message string

			switch {
			case errors.Is(err, jwt.ErrExpiredToken):
				message = "Token has expired"
			case errors.Is(err, jwt.ErrInvalidClaim):
				message = "Invalid token claims"
			default:
				message = "Invalid token"
			}

			err := failure.Unauthorized(message)
			response.WithError(writer, err)

			scope.TraceError(err)

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyStaffID, claims.StaffID)
		ctx = context.WithValue(ctx, constant.ContextKeyStaffEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyStaffRole, claims.Role)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func (m *authImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if m.rules == nil || m.rules.Skip {
			next.ServeHTTP(writer, request)

			return
		}

		rctx := chi.RouteContext(ctx)
		path := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)

		rule := m.rules.Find(path, request.Method)
		if rule.Skip || len(rule.Roles) == 0 {
			next.ServeHTTP(writer, request)

			return
		}

		role, _ := ctx.Value(constant.ContextKeyStaffRole).(string)
		if !slices.Contains(rule.Roles, role) {
			err := failure.Forbidden("staff role is not allowed to access this endpoint")
			response.WithError(writer, err)

			scope.TraceError(err)

			return
		}

		next.ServeHTTP(writer, request)
	})
}
