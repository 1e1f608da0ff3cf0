package routes

import (
	adminapi "corporate-site/internal/api/admin"
	authapi "corporate-site/internal/api/auth"
	siteapi "corporate-site/internal/api/site"
	"corporate-site/internal/app/http/middleware"
	"corporate-site/internal/domain/admins"
	"corporate-site/internal/infra/uploads"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, files *uploads.Store) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public site
	r.GET("/api/site/*path", siteapi.ServePage)

	fragments := r.Group("/api/fragments")
	fragments.GET("/settings", siteapi.Settings)
	fragments.GET("/top-menu", siteapi.TopMenu)
	fragments.GET("/top-menu/:id/children", siteapi.TopMenuChildren)
	fragments.GET("/listing/:id", siteapi.StandardIndexListing)
	fragments.GET("/breadcrumbs/:id", siteapi.Breadcrumbs)
	fragments.GET("/adverts", siteapi.Adverts)
	fragments.GET("/carousels", siteapi.Carousels)
	fragments.GET("/head-images", siteapi.HeadImages)
	fragments.GET("/news-techs", siteapi.NewsTechs)
	fragments.GET("/intro", siteapi.Intro)
	fragments.GET("/contact", siteapi.Contact)
	fragments.GET("/scroll-products", siteapi.ScrollProducts)

	// Editor sign-in
	public := r.Group("/auth")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())
	public.POST("/login", authapi.Login)
	public.GET("/google", authapi.GoogleStart)
	public.GET("/google/callback", authapi.GoogleCallback)

	// Editors and admins
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(admins.RoleEditor, admins.RoleAdmin),
		middleware.SanitizeAndCleanInputMiddleware(),
	)
	admin.GET("/me", authapi.Me)
	admin.POST("/change-password", authapi.ChangePassword)
	admin.GET("/dashboard", adminapi.Dashboard)
	admin.GET("/kinds", adminapi.Kinds)
	admin.GET("/sites", adminapi.ListSites)

	admin.GET("/pages/root", adminapi.GetRootPage)
	admin.GET("/pages/:id", adminapi.GetPage)
	admin.GET("/pages/:id/children", adminapi.ListChildren)
	admin.GET("/pages/:id/ancestors", adminapi.PageAncestors)
	admin.POST("/pages/:id/children", adminapi.CreateChild)
	admin.PUT("/pages/:id", adminapi.UpdatePage)
	admin.POST("/pages/:id/publish", adminapi.PublishPage)
	admin.POST("/pages/:id/unpublish", adminapi.UnpublishPage)
	admin.DELETE("/pages/:id", adminapi.DeletePage)

	admin.GET("/pages/:id/adverts", adminapi.ListPlacements)
	admin.POST("/pages/:id/adverts", adminapi.PlaceAdvert)
	admin.DELETE("/pages/:id/adverts/:advertId", adminapi.RemovePlacement)

	admin.GET("/carousels", adminapi.ListCarousels)
	admin.POST("/carousels", adminapi.CreateCarousel)
	admin.PUT("/carousels/:id", adminapi.UpdateCarousel)
	admin.DELETE("/carousels/:id", adminapi.DeleteCarousel)

	admin.GET("/head-images", adminapi.ListHeadImages)
	admin.POST("/head-images", adminapi.CreateHeadImage)
	admin.PUT("/head-images/:id", adminapi.UpdateHeadImage)
	admin.DELETE("/head-images/:id", adminapi.DeleteHeadImage)

	admin.GET("/product-types", adminapi.ListProductTypes)
	admin.POST("/product-types", adminapi.CreateProductType)
	admin.PUT("/product-types/:id", adminapi.UpdateProductType)
	admin.DELETE("/product-types/:id", adminapi.DeleteProductType)

	admin.GET("/adverts", adminapi.ListAdverts)
	admin.POST("/adverts", adminapi.CreateAdvert)
	admin.PUT("/adverts/:id", adminapi.UpdateAdvert)
	admin.DELETE("/adverts/:id", adminapi.DeleteAdvert)

	mediaHandlers := &adminapi.MediaHandlers{Files: files}
	admin.GET("/images", mediaHandlers.ListImages)
	admin.POST("/images", mediaHandlers.RegisterImage)
	admin.POST("/images/upload", mediaHandlers.UploadImage)
	admin.PUT("/images/:id", mediaHandlers.UpdateImage)
	admin.DELETE("/images/:id", mediaHandlers.DeleteImage)

	admin.GET("/documents", mediaHandlers.ListDocuments)
	admin.POST("/documents/upload", mediaHandlers.UploadDocument)
	admin.DELETE("/documents/:id", mediaHandlers.DeleteDocument)

	// Account management
	accounts := admin.Group("/accounts")
	accounts.Use(middleware.RequireRole(admins.RoleAdmin))
	accounts.GET("", adminapi.ListAccounts)
	accounts.POST("", adminapi.CreateAccount)
	accounts.POST("/:id/deactivate", adminapi.DeactivateAccount)
}
