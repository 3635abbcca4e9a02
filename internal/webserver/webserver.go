package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/trendora/storefront/config"
	"github.com/trendora/storefront/internal/account"
)

const userIDKey = "userId"

// WebServer wraps echo with the three route groups the API uses: public,
// user-token and admin-token.
type WebServer struct {
	root *echo.Echo
	cfg  *config.AppConfig
}

func New(cfg *config.AppConfig) *WebServer {
	root := echo.New()
	root.HideBanner = true
	root.Debug = cfg.Web.Debug
	root.Use(middleware.Recover())
	root.Use(requestLogger())

	return &WebServer{root: root, cfg: cfg}
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Duration("elapsed", time.Since(start)))
			return err
		}
	}
}

func authReject(c echo.Context, err error) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": false,
		"message": "not authorized, login again",
	})
}

// userAuth validates a user token and injects the bound user id.
func (s *WebServer) userAuth(issuer *account.TokenIssuer) echo.MiddlewareFunc {
	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:token,header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return issuer.ParseUser(auth)
		},
		ErrorHandler: authReject,
	})
	inject := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get("user").(int64)
			if !ok || userID == 0 {
				return authReject(c, nil)
			}
			c.Set(userIDKey, userID)
			return next(c)
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return jwtMiddleware(inject(next))
	}
}

// adminAuth validates a token signed over the configured credential pair.
func (s *WebServer) adminAuth(issuer *account.TokenIssuer) echo.MiddlewareFunc {
	adminAccount := s.cfg.Admin.Email + s.cfg.Admin.Password
	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:token,header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return issuer.ParseAdmin(auth)
		},
		ErrorHandler: authReject,
	})
	check := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			acct, ok := c.Get("user").(string)
			if !ok || acct != adminAccount {
				return authReject(c, nil)
			}
			return next(c)
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return jwtMiddleware(check(next))
	}
}

// Groups returns the public, user and admin route groups. Token parsing is
// delegated to the issuer so middleware and issuance can never disagree.
func (s *WebServer) Groups(issuer *account.TokenIssuer) (pub, user, admin *echo.Group) {
	pub = s.root.Group("")
	user = s.root.Group("", s.userAuth(issuer))
	admin = s.root.Group("", s.adminAuth(issuer))
	return pub, user, admin
}

// CurrentUserID returns the authenticated user's id, zero when absent.
func CurrentUserID(c echo.Context) int64 {
	id, _ := c.Get(userIDKey).(int64)
	return id
}

// Start blocks serving HTTP until the listener fails or is shut down.
func (s *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)
	zap.L().Info("web server listening", zap.String("addr", addr))
	err := s.root.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

// Echo exposes the underlying router (used in tests).
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}
