package rest

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"docslot/config"
	"docslot/internal/domain"
	"docslot/internal/service"
	"docslot/internal/transport/websocket"
	"docslot/pkg/validator"
)

var registerBindings sync.Once

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
	hub      *websocket.NotificationHub
	limiter  *rateLimiter
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config, hub *websocket.NotificationHub) *Handler {
	registerBindings.Do(func() {
		if err := validator.RegisterGinBindings(); err != nil {
			logger.Error("ошибка регистрации правил валидации", zap.Error(err))
		}
	})

	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
		hub:      hub,
		limiter:  newRateLimiter(config.RateLimit.RPS, config.RateLimit.Burst),
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.requestIDMiddleware())

	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	api := router.Group("/api/v1")
	{
		h.initAvailabilityRoutes(api)

		practitioners := api.Group("/practitioners/:id")
		{
			practitioners.GET("/slots", h.getPractitionerSlots)
			practitioners.GET("/slots/day/:day", h.getPractitionerSlotsByDay)
			practitioners.GET("/free-slots", h.getPractitionerFreeSlots)
		}

		h.initBookingRoutes(api)
	}

	if h.hub != nil {
		router.GET("/ws/notifications", h.hub.HandleWebSocket)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.config.Version})
	})
}

func (h *Handler) initAvailabilityRoutes(api *gin.RouterGroup) {
	availability := api.Group("/availability", h.authMiddleware(), h.roleMiddleware(domain.UserRolePractitioner))
	{
		rules := availability.Group("/rules")
		{
			rules.POST("", h.createRule)
			rules.GET("", h.listRules)
			rules.GET("/:id", h.getRuleByID)
			rules.PUT("/:id", h.updateRule)
			rules.DELETE("/:id", h.deleteRule)
		}

		availability.GET("/slots/day/:day", h.getMySlotsByDay)
		availability.GET("/slots/date", h.getMySlotsByDate)
	}
}

func (h *Handler) initBookingRoutes(api *gin.RouterGroup) {
	bookings := api.Group("/bookings", h.authMiddleware())
	{
		bookings.POST("", h.roleMiddleware(domain.UserRoleClient), h.rateLimitMiddleware(), h.createBooking)
		bookings.GET("/me", h.roleMiddleware(domain.UserRoleClient), h.getMyBookings)
		bookings.GET("/practitioner", h.roleMiddleware(domain.UserRolePractitioner), h.getPractitionerBookings)
		bookings.POST("/export", h.roleMiddleware(domain.UserRolePractitioner), h.rateLimitMiddleware(), h.exportBookings)
		bookings.GET("/:id", h.getBookingByID)
		bookings.DELETE("/:id", h.rateLimitMiddleware(), h.cancelBooking)
	}
}

// currentPractitionerID resolves the practitioner profile of the caller and
// writes the error response itself when it cannot.
func (h *Handler) currentPractitionerID(c *gin.Context) (int64, bool) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return 0, false
	}

	practitionerID, err := h.services.Profile.PractitionerIDByUser(c.Request.Context(), userID)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка получения профиля специалиста")
		return 0, false
	}
	return practitionerID, true
}

func (h *Handler) currentClientID(c *gin.Context) (int64, bool) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return 0, false
	}

	clientID, err := h.services.Profile.ClientIDByUser(c.Request.Context(), userID)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка получения профиля клиента")
		return 0, false
	}
	return clientID, true
}
