package gin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	papertrack "github.com/jackzhenguo/updatest-paper-in-arxiv"
	"github.com/jackzhenguo/updatest-paper-in-arxiv/auth"
)

// New builds the HTTP handler serving the whole API.
func New(store papertrack.Store, searcher papertrack.Searcher) http.Handler {
	router := gin.Default()

	// CORS
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, PUT, POST, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Accept-Language, Authorization, Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
		}
		c.Next()
	})

	// Unknown route
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"message": "Page not found"})
	})

	// Ping
	router.GET("/api/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, map[string]string{"data": "ok"})
	})

	sessions := &auth.SessionService{Store: store}
	authenticator := &Authenticator{Sessions: sessions}

	authHandler := AuthHandler{Users: store, Sessions: sessions}
	authHandler.RegisterRoutes(router)

	paperHandler := PaperHandler{Store: store, Authenticator: authenticator}
	paperHandler.RegisterRoutes(router)

	searchHandler := SearchHandler{Searcher: searcher}
	searchHandler.RegisterRoutes(router)

	return router
}
