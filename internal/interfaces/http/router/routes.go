package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopfront/backend/internal/interfaces/http/handler"
	"github.com/shopfront/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles every API handler the shop exposes
type Handlers struct {
	Auth       *handler.AuthHandler
	Category   *handler.CategoryHandler
	Product    *handler.ProductHandler
	Client     *handler.ClientHandler
	Supplier   *handler.SupplierHandler
	Order      *handler.OrderHandler
	Bill       *handler.BillHandler
	Newsletter *handler.NewsletterHandler
	Contact    *handler.ContactHandler
	Banner     *handler.BannerHandler
}

// Guards configures authentication for the shop routes
type Guards struct {
	Authenticator middleware.Authenticator
	// AuthLimiter throttles login and signup per client IP. Nil disables it.
	AuthLimiter *middleware.RateLimiter
	Logger      *zap.Logger
}

type guardChains struct {
	admin    []gin.HandlerFunc
	user     []gin.HandlerFunc
	optional gin.HandlerFunc
	throttle []gin.HandlerFunc
}

func (g Guards) chains() guardChains {
	c := guardChains{
		admin:    []gin.HandlerFunc{middleware.RequireAuth(g.Authenticator, g.Logger), middleware.RequireAdmin()},
		user:     []gin.HandlerFunc{middleware.RequireAuth(g.Authenticator, g.Logger)},
		optional: middleware.OptionalAuth(g.Authenticator, g.Logger),
	}
	if g.AuthLimiter != nil {
		c.throttle = []gin.HandlerFunc{middleware.AuthRateLimit(g.AuthLimiter)}
	}
	return c
}

func with(chain []gin.HandlerFunc, h ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(chain)+len(h))
	out = append(out, chain...)
	return append(out, h...)
}

// ShopRoutes builds the domain groups of the shop API. Catalog and banner
// reads, order placement, signup, newsletter subscription and the contact
// form are public; every other route needs an admin token.
func ShopRoutes(h Handlers, g Guards) []*DomainGroup {
	c := g.chains()

	auth := NewDomainGroup("auth", "")
	auth.Public(http.MethodPost, "/login", with(c.throttle, h.Auth.Login)...)
	auth.Public(http.MethodPost, "/signup", with(c.throttle, c.optional, h.Auth.Signup)...)
	auth.Public(http.MethodPost, "/token/refresh", h.Auth.Refresh)
	auth.POST("/logout", with(c.user, h.Auth.Logout)...)
	auth.GET("/me", with(c.user, h.Auth.Me)...)

	categories := NewDomainGroup("categories", "/categories")
	categories.Public(http.MethodGet, "", h.Category.List)
	categories.Public(http.MethodGet, "/:id", h.Category.GetByID)
	categories.POST("", with(c.admin, h.Category.Create)...)
	categories.PUT("/:id", with(c.admin, h.Category.Update)...)
	categories.DELETE("/:id", with(c.admin, h.Category.Delete)...)

	products := NewDomainGroup("products", "/produits")
	products.Public(http.MethodGet, "", h.Product.List)
	products.Public(http.MethodGet, "/:id", h.Product.GetByID)
	products.POST("", with(c.admin, h.Product.Create)...)
	products.PUT("/:id", with(c.admin, h.Product.Update)...)
	products.DELETE("/:id", with(c.admin, h.Product.Delete)...)
	products.POST("/:id/media", with(c.admin, h.Product.UploadMedia)...)

	clients := NewDomainGroup("clients", "/clients").Use(c.admin...)
	clients.GET("", h.Client.List)
	clients.GET("/:id", h.Client.GetByID)
	clients.POST("", h.Client.Create)
	clients.PUT("/:id", h.Client.Update)
	clients.DELETE("/:id", h.Client.Delete)

	suppliers := NewDomainGroup("suppliers", "/fournisseurs").Use(c.admin...)
	suppliers.GET("", h.Supplier.List)
	suppliers.GET("/:id", h.Supplier.GetByID)
	suppliers.POST("", h.Supplier.Create)
	suppliers.PUT("/:id", h.Supplier.Update)
	suppliers.DELETE("/:id", h.Supplier.Delete)

	orders := NewDomainGroup("orders", "/orders")
	orders.Public(http.MethodPost, "", c.optional, h.Order.Create)
	orders.GET("", with(c.admin, h.Order.List)...)
	orders.GET("/:id", with(c.admin, h.Order.GetByID)...)
	orders.PUT("/:id", with(c.admin, h.Order.Update)...)
	orders.DELETE("/:id", with(c.admin, h.Order.Delete)...)

	bills := NewDomainGroup("buying-bills", "/buyingBills").Use(c.admin...)
	bills.GET("", h.Bill.List)
	bills.GET("/:id", h.Bill.GetByID)
	bills.POST("", h.Bill.Create)
	bills.PUT("/:id", h.Bill.Update)
	bills.DELETE("/:id", h.Bill.Delete)

	newsletters := NewDomainGroup("newsletters", "/newsletters")
	newsletters.Public(http.MethodPost, "", h.Newsletter.Subscribe)
	newsletters.GET("", with(c.admin, h.Newsletter.List)...)
	newsletters.DELETE("/:id", with(c.admin, h.Newsletter.Delete)...)

	contact := NewDomainGroup("contact", "/contact")
	contact.Public(http.MethodPost, "", h.Contact.Create)
	contact.GET("", with(c.admin, h.Contact.List)...)
	contact.GET("/:id", with(c.admin, h.Contact.GetByID)...)
	contact.PATCH("/:id", with(c.admin, h.Contact.SetState)...)
	contact.DELETE("/:id", with(c.admin, h.Contact.Delete)...)

	banners := NewDomainGroup("banners", "/banners")
	banners.Public(http.MethodGet, "", c.optional, h.Banner.List)
	banners.Public(http.MethodGet, "/:id", h.Banner.GetByID)
	banners.POST("", with(c.admin, h.Banner.Create)...)
	banners.PUT("/:id", with(c.admin, h.Banner.Update)...)
	banners.DELETE("/:id", with(c.admin, h.Banner.Delete)...)

	return []*DomainGroup{
		auth, categories, products, clients, suppliers,
		orders, bills, newsletters, contact, banners,
	}
}

// RegisterShop mounts the shop routes on r
func RegisterShop(r *Router, h Handlers, g Guards) {
	for _, group := range ShopRoutes(h, g) {
		r.Register(group)
	}
}
