// Package router sets up the gin engine and attaches all API routes.
package router

import (
	"net/http"
	"os"

	"github.com/estateops/backend/internal/config"
	"github.com/estateops/backend/internal/controllers/healthz"
	v1 "github.com/estateops/backend/internal/controllers/v1"
	"github.com/estateops/backend/internal/httputil"
	"github.com/estateops/backend/internal/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Router returns the fully configured gin engine.
func Router(cfg config.Config) (*gin.Engine, error) {
	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	if len(cfg.CORS.AllowOrigins) > 0 {
		log.Debug().Strs("allowOrigins", cfg.CORS.AllowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	AttachRoutes(cfg, &r.RouterGroup)

	log.Info().Str("version", version).Msg("backend startup complete")

	return r, nil
}

// URLMiddleware stores the base URL the request was made against in the
// request context so that handlers can build absolute links.
func URLMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(models.DBContextURL), httputil.RequestHost(c))
		c.Next()
	}
}

// AttachRoutes attaches the API routes to the router group that is passed in.
// Separating this from Router() allows tests to attach the routes to their
// own engine.
func AttachRoutes(cfg config.Config, group *gin.RouterGroup) {
	v1.Configure(cfg)

	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion)
	group.OPTIONS("/version", OptionsVersion)

	// pprof performance profiles
	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.RouteRegister(group, "debug/pprof")
	}

	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	healthz.RegisterRoutes(group.Group("/healthz"))

	// API v1 setup
	api := group.Group("/v1")
	{
		api.GET("", GetV1)
		api.OPTIONS("", OptionsV1)
	}

	v1.RegisterAuthRoutes(api.Group("/auth"))

	// Everything else requires a login
	authed := api.Group("", v1.RequireLogin())

	v1.RegisterUserRoutes(authed.Group("/users", v1.RequireRole(models.RoleAdmin)))
	v1.RegisterPropertyRoutes(authed.Group("/properties"))
	v1.RegisterPaymentRoutes(authed.Group("/payments"))
	v1.RegisterSpendingConfigRoutes(authed.Group("/spending-configs"))
	v1.RegisterComplaintRoutes(authed.Group("/complaints"))
	v1.RegisterReportRoutes(authed.Group("/reports", v1.RequireRole(models.RoleAdmin, models.RoleManager)))
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Docs    string `json:"docs" example:"https://example.com/docs/index.html"` // Swagger API documentation
	Healthz string `json:"healthz" example:"https://example.com/healthz"`      // Health check endpoint
	Version string `json:"version" example:"https://example.com/version"`      // Endpoint returning the version of the backend
	V1      string `json:"v1" example:"https://example.com/v1"`                // List endpoint for all v1 endpoints
}

// GetRoot returns the link list for the API root
//
//	@Summary		API root
//	@Description	Entrypoint for the API, listing all endpoints
//	@Tags			General
//	@Success		200	{object}	RootResponse
//	@Router			/ [get]
func GetRoot(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Docs:    url + "/docs/index.html",
			Healthz: url + "/healthz",
			Version: url + "/version",
			V1:      url + "/v1",
		},
	})
}

// OptionsRoot returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/ [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}

type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the backend
}

// GetVersion returns the API version object
//
//	@Summary		API version
//	@Description	Returns the software version of the API
//	@Tags			General
//	@Success		200	{object}	VersionResponse
//	@Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// OptionsVersion returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Auth            string `json:"auth" example:"https://example.com/v1/auth"`                        // URL of the authentication endpoints
	Users           string `json:"users" example:"https://example.com/v1/users"`                      // URL of the user list endpoint
	Properties      string `json:"properties" example:"https://example.com/v1/properties"`            // URL of the property list endpoint
	Payments        string `json:"payments" example:"https://example.com/v1/payments"`                // URL of the payment list endpoint
	SpendingConfigs string `json:"spendingConfigs" example:"https://example.com/v1/spending-configs"` // URL of the spending category list endpoint
	Complaints      string `json:"complaints" example:"https://example.com/v1/complaints"`            // URL of the complaint list endpoint
	Reports         string `json:"reports" example:"https://example.com/v1/reports"`                  // URL of the report list endpoint
}

// GetV1 returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	V1Response
//	@Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Auth:            url + "/v1/auth",
			Users:           url + "/v1/users",
			Properties:      url + "/v1/properties",
			Payments:        url + "/v1/payments",
			SpendingConfigs: url + "/v1/spending-configs",
			Complaints:      url + "/v1/complaints",
			Reports:         url + "/v1/reports",
		},
	})
}

// OptionsV1 returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
