// routes/routes.go
package routes

import (
	"github.com/gorilla/mux"

	"tcm-webshop/controllers"
	"tcm-webshop/middleware"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, userController *controllers.UserController, productController *controllers.ProductController, orderController *controllers.OrderController) {
	api := router.PathPrefix("/api").Subrouter()

	// Public routes; /me and /status answer for anonymous callers too
	api.HandleFunc("/register", userController.Register).Methods("POST")
	api.HandleFunc("/login", userController.Login).Methods("POST")
	api.HandleFunc("/logout", userController.Logout).Methods("POST")
	api.HandleFunc("/me", userController.Me).Methods("GET")
	api.HandleFunc("/status", userController.Status).Methods("GET")

	// Product routes
	api.HandleFunc("/products", productController.ListProducts).Methods("GET")

	// Order routes
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/order", orderController.CreateOrder).Methods("POST")

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.AdminMiddleware)
	admin.HandleFunc("/product", productController.CreateProduct).Methods("POST")
	admin.HandleFunc("/product/{id}", productController.DeleteProduct).Methods("DELETE")
	admin.HandleFunc("/product/{id}/stock", productController.UpdateStock).Methods("POST")
	admin.HandleFunc("/orders", orderController.ListOrders).Methods("GET")
}
