package apihandlers

import (
	"shopdesk/internal/app"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and routes for the admin API.
func NewRouter(a *app.App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog())

	corsCfg := cors.DefaultConfig()
	if origins := a.Config.Server.AllowedOrigins; len(origins) > 0 {
		corsCfg.AllowOrigins = origins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", RequestIDHeader)
	corsCfg.ExposeHeaders = []string{RequestIDHeader}
	r.Use(cors.New(corsCfg))

	h := NewAPIHandler(a)

	r.GET("/health", h.HealthHandler)

	v1 := r.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", h.ListProductsHandler)
			products.POST("", h.CreateProductHandler)
			products.GET("/:id", h.GetProductHandler)
			products.PUT("/:id", h.UpdateProductHandler)
			products.DELETE("/:id", h.DeleteProductHandler)
		}

		v1.GET("/categories", h.ListCategoriesHandler)
		v1.GET("/brands", h.ListBrandsHandler)
	}

	return r
}
