package router

import (
	"go-furniture-api/handler"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// NewRouter wires every endpoint to its gate. Reads on the catalog and the
// auth entry points are public; refresh-scoped endpoints validate the
// cookie inside their handlers; everything else sits behind the access
// gate, with the admin gate stacked on top where needed.
func NewRouter(
	authMW *handler.AuthMiddleware,
	userHandler *handler.UserHandler,
	accountHandler *handler.AccountHandler,
	adminHandler *handler.AdminHandler,
	furnitureHandler *handler.FurnitureHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Session lifecycle. Refresh and logout read the refresh cookie
	// themselves: the token gate for those flows lives in the service.
	mux.Handle("POST /api/v1/auth/register", handler.ErrorHandlingMiddleware(userHandler.Register))
	mux.Handle("POST /api/v1/auth/login", handler.ErrorHandlingMiddleware(userHandler.Login))
	mux.Handle("POST /api/v1/auth/refresh", handler.ErrorHandlingMiddleware(userHandler.Refresh))
	mux.Handle("POST /api/v1/auth/logout", handler.ErrorHandlingMiddleware(userHandler.Logout))

	// Current account, access token required.
	mux.Handle("GET /api/v1/account",
		authMW.RequireAccess(handler.ErrorHandlingMiddleware(accountHandler.GetAccount)))
	mux.Handle("DELETE /api/v1/account",
		authMW.RequireAccess(handler.ErrorHandlingMiddleware(accountHandler.DeleteAccount)))
	mux.Handle("PATCH /api/v1/account/username",
		authMW.RequireAccess(handler.ErrorHandlingMiddleware(accountHandler.ChangeUsername)))
	mux.Handle("PATCH /api/v1/account/password",
		authMW.RequireAccess(handler.ErrorHandlingMiddleware(accountHandler.ChangePassword)))

	// Catalog: public reads, admin writes.
	mux.Handle("GET /api/v1/furnitures", handler.ErrorHandlingMiddleware(furnitureHandler.ListFurnitures))
	mux.Handle("GET /api/v1/furnitures/{id}", handler.ErrorHandlingMiddleware(furnitureHandler.GetFurniture))
	mux.Handle("POST /api/v1/furnitures",
		authMW.RequireAccess(authMW.RequireAdmin(handler.ErrorHandlingMiddleware(furnitureHandler.CreateFurniture))))
	mux.Handle("PUT /api/v1/furnitures/{id}",
		authMW.RequireAccess(authMW.RequireAdmin(handler.ErrorHandlingMiddleware(furnitureHandler.UpdateFurniture))))
	mux.Handle("DELETE /api/v1/furnitures/{id}",
		authMW.RequireAccess(authMW.RequireAdmin(handler.ErrorHandlingMiddleware(furnitureHandler.DeleteFurniture))))

	// User administration.
	mux.Handle("GET /api/v1/admin/users",
		authMW.RequireAccess(authMW.RequireAdmin(handler.ErrorHandlingMiddleware(adminHandler.ListUsers))))
	mux.Handle("PATCH /api/v1/admin/users/{id}/role",
		authMW.RequireAccess(authMW.RequireAdmin(handler.ErrorHandlingMiddleware(adminHandler.ToggleUserRole))))
	mux.Handle("DELETE /api/v1/admin/users/{id}",
		authMW.RequireAccess(authMW.RequireAdmin(handler.ErrorHandlingMiddleware(adminHandler.DeleteUser))))

	return mux
}
