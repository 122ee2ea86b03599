package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wellnexa/backend/internal/content"
	bookingHandler "github.com/wellnexa/backend/internal/handler/booking"
	"github.com/wellnexa/backend/internal/handler/chat"
	counselorHandler "github.com/wellnexa/backend/internal/handler/counselor"
	resourceHandler "github.com/wellnexa/backend/internal/handler/resource"
	"github.com/wellnexa/backend/internal/handler/site"
	"github.com/wellnexa/backend/internal/handler/stream"
	middlewarePkg "github.com/wellnexa/backend/internal/middleware"
	"github.com/wellnexa/backend/internal/model/counselor"
	"github.com/wellnexa/backend/internal/model/resource"
	bookingService "github.com/wellnexa/backend/internal/service/booking"
	chatService "github.com/wellnexa/backend/internal/service/chat"
)

// Dependencies 路由所需的服务集合
type Dependencies struct {
	Site           content.Site
	Chats          *chatService.Service
	Composer       *chatService.Composer
	Counselors     counselor.Store
	Resources      resource.Store
	Bookings       *bookingService.Service
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Dependencies) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(deps.AllowedOrigins))

	r.Get("/healthz", site.Health)

	// Create handlers
	siteHandler := site.New(deps.Site)
	chatHandler := chat.New(deps.Chats, deps.Composer)
	streamHandler := stream.New(deps.Composer, logger)
	wsHandler := stream.NewWebSocketHandler(deps.Chats, deps.Composer, logger, originChecker(deps.AllowedOrigins))
	counselors := counselorHandler.New(deps.Counselors)
	bookings := bookingHandler.New(deps.Bookings, logger)
	resources := resourceHandler.New(deps.Resources)

	r.Route("/api", func(api chi.Router) {
		siteHandler.RegisterRoutes(api)
		chatHandler.RegisterRoutes(api)
		streamHandler.RegisterRoutes(api)
		wsHandler.RegisterRoutes(api)
		counselors.RegisterRoutes(api)
		bookings.RegisterRoutes(api)
		resources.RegisterRoutes(api)
	})

	return r
}

// originChecker 复用 CORS 白名单校验 websocket 握手来源
func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			return nil
		}
		set[strings.TrimRight(origin, "/")] = struct{}{}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
