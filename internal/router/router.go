package router

import (
	"time"

	"github.com/Misscott/LocationAPI/internal/config"
	"github.com/Misscott/LocationAPI/internal/handler"
	"github.com/Misscott/LocationAPI/internal/middleware"
	"github.com/Misscott/LocationAPI/internal/repository"
	"github.com/Misscott/LocationAPI/internal/service"
	"github.com/Misscott/LocationAPI/internal/token"
	"github.com/Misscott/LocationAPI/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler(!cfg.IsProduction()))
	r.Use(middleware.Snapshot())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	endpointRepo := repository.NewEndpointRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	linkRepo := repository.NewRolePermissionRepository(db)
	placeRepo := repository.NewPlaceRepository(db)
	coordinateRepo := repository.NewCoordinateRepository(db)
	reportTypeRepo := repository.NewReportTypeRepository(db)
	reportRepo := repository.NewReportRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	tokens := token.NewService(cfg)
	authSvc := service.NewAuthService(userRepo, roleRepo, tokens, dispatcher)
	permSvc := service.NewPermissionService(linkRepo, tokens)
	userSvc := service.NewUserService(userRepo, roleRepo)
	accessSvc := service.NewAccessService(roleRepo, endpointRepo, permissionRepo, linkRepo)
	placeSvc := service.NewPlaceService(placeRepo, coordinateRepo)
	reportSvc := service.NewReportService(reportTypeRepo, reportRepo, favoriteRepo, userRepo, placeRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(userSvc)
	rolesH := handler.NewRolesHandler(accessSvc)
	endpointsH := handler.NewEndpointsHandler(accessSvc)
	permissionsH := handler.NewPermissionsHandler(accessSvc)
	linksH := handler.NewRolePermissionsHandler(accessSvc)
	placesH := handler.NewPlacesHandler(placeSvc)
	coordinatesH := handler.NewCoordinatesHandler(placeSvc)
	reportTypesH := handler.NewReportTypesHandler(reportSvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	favoritesH := handler.NewFavoritesHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.NewHealthHandler(db, rdb).Check)
	r.POST("/login", middleware.LoginRateLimiter(rdb), authH.Login)
	r.POST("/register", authH.Register)
	r.POST("/refresh", authH.Refresh)

	// Protected routes. Grants live in the database: Authorize matches the
	// registered template (c.FullPath()) and verb against the caller's role.
	protected := r.Group("", middleware.Authenticate(permSvc), middleware.Authorize(permSvc))
	{
		crud(protected, "/users", usersH.List, usersH.Get, usersH.Create, usersH.Update, usersH.Delete)
		crud(protected, "/roles", rolesH.List, rolesH.Get, rolesH.Create, rolesH.Update, rolesH.Delete)
		crud(protected, "/endpoints", endpointsH.List, endpointsH.Get, endpointsH.Create, endpointsH.Update, endpointsH.Delete)
		crud(protected, "/permissions", permissionsH.List, permissionsH.Get, permissionsH.Create, permissionsH.Update, permissionsH.Delete)
		crud(protected, "/roles-permissions", linksH.List, linksH.Get, linksH.Create, linksH.Update, linksH.Delete)
		crud(protected, "/places", placesH.List, placesH.Get, placesH.Create, placesH.Update, placesH.Delete)
		crud(protected, "/coordinates", coordinatesH.List, coordinatesH.Get, coordinatesH.Create, coordinatesH.Update, coordinatesH.Delete)
		crud(protected, "/report-types", reportTypesH.List, reportTypesH.Get, reportTypesH.Create, reportTypesH.Update, reportTypesH.Delete)
		crud(protected, "/reports", reportsH.List, reportsH.Get, reportsH.Create, reportsH.Update, reportsH.Delete)
		crud(protected, "/favorites", favoritesH.List, favoritesH.Get, favoritesH.Create, favoritesH.Update, favoritesH.Delete)
	}

	// Swagger UI — only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

// crud registers the uniform five-route surface of a resource.
func crud(g *gin.RouterGroup, base string, list, get, create, update, del gin.HandlerFunc) {
	g.GET(base, list)
	g.GET(base+"/:uuid", get)
	g.POST(base, create)
	g.PUT(base+"/:uuid", update)
	g.DELETE(base+"/:uuid", del)
}
