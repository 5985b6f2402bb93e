package router

import (
	"net/http"
	"os"
	"strings"

	v1 "github.com/centavo-app/backend/internal/controllers/v1"
	"github.com/centavo-app/backend/internal/httputil"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Router controls the routes for the API.
func Router() (*gin.Engine, error) {
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
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		// Method, path, status, latency and user agent are logged by
		// the middleware itself, only the request ID has to be added
		logger.WithLogger(func(c *gin.Context, _ zerolog.Logger) zerolog.Logger {
			return log.Logger.With().
				Str("request-id", requestid.Get(c)).
				Logger()
		})))
	r.Use(SessionMiddleware())

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("allowOrigins", allowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept-Language", "X-User-ID"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	/*
	 *  Route setup
	 */
	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)
	r.GET("/version", GetVersion)
	r.OPTIONS("/version", OptionsVersion)
	r.GET("/healthz", GetHealth)
	r.OPTIONS("/healthz", OptionsHealth)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// The pprof endpoints are only mounted in debug mode
	if gin.IsDebugging() {
		pprof.Register(r)
	}

	// API v1 setup
	v1Group := r.Group("/v1")
	{
		v1Group.GET("", GetV1)
		v1Group.OPTIONS("", OptionsV1)
	}

	v1.RegisterSubscriptionRoutes(v1Group.Group("/subscriptions"))
	v1.RegisterCategoryRoutes(v1Group.Group("/categories"))
	v1.RegisterExpenseRoutes(v1Group.Group("/expenses"))
	v1.RegisterGoalRoutes(v1Group.Group("/goals"))
	v1.RegisterInstallmentRoutes(v1Group.Group("/installments"))
	v1.RegisterIncomeRoutes(v1Group.Group("/income"))
	v1.RegisterSummaryRoutes(v1Group.Group("/summary"))
	v1.RegisterInsightRoutes(v1Group.Group("/insights"))

	log.Info().Msg("backend startup complete")

	return r, nil
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Healthz string `json:"healthz" example:"https://example.com/api/healthz"`
	Version string `json:"version" example:"https://example.com/api/version"`
	Metrics string `json:"metrics" example:"https://example.com/api/metrics"`
	V1      string `json:"v1" example:"https://example.com/api/v1"`
}

// @Summary		API root
// @Description	Entrypoint for the API, listing all endpoints
// @Tags			General
// @Success		200	{object}	RootResponse
// @Router			/ [get]
func GetRoot(c *gin.Context) {
	url := httputil.RequestHost(c)

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Healthz: url + "/healthz",
			Version: url + "/version",
			Metrics: url + "/metrics",
			V1:      url + "/v1",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"`
}
type VersionObject struct {
	Version string `json:"version" example:"1.1.0"`
}

// @Summary		API version
// @Description	Returns the software version of the API
// @Tags			General
// @Success		200	{object}	VersionResponse
// @Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/ [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Health
// @Description	Returns the health of the API
// @Tags			General
// @Success		204
// @Router			/healthz [get]
func GetHealth(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/healthz [options]
func OptionsHealth(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Subscriptions string `json:"subscriptions" example:"https://example.com/api/v1/subscriptions"`
	Categories    string `json:"categories" example:"https://example.com/api/v1/categories"`
	Expenses      string `json:"expenses" example:"https://example.com/api/v1/expenses"`
	Goals         string `json:"goals" example:"https://example.com/api/v1/goals"`
	Income        string `json:"income" example:"https://example.com/api/v1/income"`
	Summary       string `json:"summary" example:"https://example.com/api/v1/summary"`
	Insights      string `json:"insights" example:"https://example.com/api/v1/insights"`
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			General
// @Success		200	{object}	V1Response
// @Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := httputil.RequestHost(c) + "/v1"

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Subscriptions: url + "/subscriptions",
			Categories:    url + "/categories",
			Expenses:      url + "/expenses",
			Goals:         url + "/goals",
			Income:        url + "/income",
			Summary:       url + "/summary",
			Insights:      url + "/insights",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
