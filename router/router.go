// Package router assembles the HTTP surface. The same controllers are
// mounted twice: under /api (the default surface) and /api/v2 (the mobile
// surface). Handlers that scope lists read the surface tag.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gtwndtl/travelbook-backend/controller/auth"
	"github.com/gtwndtl/travelbook-backend/controller/booking"
	"github.com/gtwndtl/travelbook-backend/controller/legal"
	"github.com/gtwndtl/travelbook-backend/controller/location"
	"github.com/gtwndtl/travelbook-backend/controller/place"
	"github.com/gtwndtl/travelbook-backend/controller/review"
	"github.com/gtwndtl/travelbook-backend/controller/trip"
	"github.com/gtwndtl/travelbook-backend/controller/user"
	"github.com/gtwndtl/travelbook-backend/entity"
	"github.com/gtwndtl/travelbook-backend/middlewares"
	"github.com/gtwndtl/travelbook-backend/services"
)

// Deps carries everything the handlers need. Constructed once in main and in
// tests; no globals.
type Deps struct {
	DB        *gorm.DB
	Jwt       *services.JwtWrapper
	Store     services.ImageStore
	Verifiers map[string]services.ProviderVerifier
	Logger    *zap.Logger
	UploadDir string
}

// Setup builds the engine with both API surfaces mounted.
func Setup(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if d.Logger != nil {
		r.Use(middlewares.RequestLogger(d.Logger))
	}
	if d.UploadDir != "" {
		r.Static("/uploads", d.UploadDir)
	}

	ctl := controllers{
		auth:     &auth.AuthController{DB: d.DB, Jwt: d.Jwt, Verifiers: d.Verifiers},
		location: &location.LocationController{DB: d.DB},
		place:    &place.PlaceController{DB: d.DB, Store: d.Store},
		trip:     &trip.TripController{DB: d.DB},
		booking:  &booking.BookingController{DB: d.DB},
		review:   &review.ReviewController{DB: d.DB, Store: d.Store},
		user:     &user.UserController{DB: d.DB},
		legal:    &legal.LegalController{DB: d.DB},
	}

	mountSurface(r.Group("/api"), middlewares.SurfaceDefault, d, ctl)
	mountSurface(r.Group("/api/v2"), middlewares.SurfaceV2, d, ctl)
	return r
}

type controllers struct {
	auth     *auth.AuthController
	location *location.LocationController
	place    *place.PlaceController
	trip     *trip.TripController
	booking  *booking.BookingController
	review   *review.ReviewController
	user     *user.UserController
	legal    *legal.LegalController
}

func mountSurface(g *gin.RouterGroup, surface string, d Deps, ctl controllers) {
	g.Use(middlewares.TagSurface(surface))
	authed := middlewares.Authorizes(d.Jwt)

	// auth
	g.POST("/auth/register", ctl.auth.Register)
	g.POST("/auth/login", ctl.auth.Login)
	g.POST("/auth/social", ctl.auth.Social)

	// public catalog reads
	g.GET("/locations", ctl.location.GetAll)
	g.GET("/locations/:id", ctl.location.GetByID)
	g.GET("/places", ctl.place.GetAll)
	g.GET("/places/recommended", ctl.place.GetRecommended)
	g.GET("/places/:id", ctl.place.GetByID)
	g.GET("/trips", ctl.trip.GetAll)
	g.GET("/trips/:id", ctl.trip.GetByID)

	// bookings
	g.POST("/bookings", authed, middlewares.RequireRole(entity.RoleUser), ctl.booking.Create)
	g.GET("/bookings", authed, ctl.booking.GetAll)
	g.GET("/bookings/:id", authed, ctl.booking.GetByID)

	// reviews
	g.GET("/reviews", authed, ctl.review.GetAll)
	g.POST("/reviews", authed, ctl.review.Create)
	g.PUT("/reviews/:id", authed, ctl.review.Update)
	g.DELETE("/reviews/:id", authed, middlewares.RequireRole(entity.RoleAdmin), ctl.review.Delete)
	g.POST("/reviews/:id/upload", authed, ctl.review.Upload)

	// per-user bookings
	g.GET("/users/:id/bookings", authed, ctl.user.GetBookings)

	// legal documents
	g.GET("/legal/privacy-policy/active", ctl.legal.GetActivePrivacyPolicy)
	g.GET("/legal/terms-of-service/active", ctl.legal.GetActiveTermsOfService)
	g.GET("/legal/privacy-policy", authed, middlewares.RequireRole(entity.RoleAdmin), ctl.legal.GetPrivacyPolicies)
	g.POST("/legal/privacy-policy", authed, middlewares.RequireRole(entity.RoleAdmin), ctl.legal.CreatePrivacyPolicy)
	g.GET("/legal/terms-of-service", authed, middlewares.RequireRole(entity.RoleAdmin), ctl.legal.GetTermsOfService)
	g.POST("/legal/terms-of-service", authed, middlewares.RequireRole(entity.RoleAdmin), ctl.legal.CreateTermsOfService)

	// admin surface
	admin := g.Group("/admin", authed)
	{
		adminOnly := middlewares.RequireRole(entity.RoleAdmin)
		superOnly := middlewares.RequireRole(entity.RoleSuperAdmin)

		admin.POST("/locations", adminOnly, ctl.location.Create)
		admin.PUT("/locations/:id", adminOnly, ctl.location.Update)
		admin.DELETE("/locations/:id", adminOnly, ctl.location.Delete)

		admin.POST("/places", adminOnly, ctl.place.Create)
		admin.PUT("/places/:id", adminOnly, ctl.place.Update)
		admin.DELETE("/places/:id", adminOnly, ctl.place.Delete)
		admin.POST("/places/:id/upload", adminOnly, ctl.place.Upload)

		admin.POST("/trips", adminOnly, ctl.trip.Create)
		admin.PUT("/trips/:id", adminOnly, ctl.trip.Update)
		admin.DELETE("/trips/:id", adminOnly, ctl.trip.Delete)

		admin.PUT("/bookings/:id", adminOnly, ctl.booking.Update)

		admin.GET("/users", superOnly, ctl.user.GetAll)
		admin.POST("/users", superOnly, ctl.user.Create)
		admin.GET("/users/:id", superOnly, ctl.user.GetByID)
	}
}
