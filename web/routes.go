package web

import "github.com/gin-gonic/gin"

// SetupRoutes builds the gin engine with logging and recovery middleware and
// registers all endpoints.
func SetupRoutes(h *Handlers) *gin.Engine {
	routes := gin.Default()

	routes.POST("/books", h.AddBook)
	routes.GET("/books/search", h.SearchBooks)

	routes.POST("/borrow", h.BorrowBook)
	routes.POST("/return", h.ReturnBook)

	routes.GET("/patrons/:id", h.PatronStatus)
	routes.GET("/patrons/:id/late_fee", h.LateFee)

	routes.POST("/payments", h.PayLateFees)
	routes.POST("/refunds", h.RefundLateFeePayment)

	return routes
}
