package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcolmenar/colavirtual-api/internal/application/auth"
	"github.com/jcolmenar/colavirtual-api/internal/application/cola"
	"github.com/jcolmenar/colavirtual-api/internal/application/usecase"
	"github.com/jcolmenar/colavirtual-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC            *auth.AuthUseCase
	EstablecimientoUC *usecase.EstablecimientoUseCase
	FavoritoUC        *usecase.FavoritoUseCase
	ColaUC            *cola.ColaUseCase
	JWTSecret         string
	InvitadoRPS       float64
	InvitadoBurst     int
	Log               *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	establecimientoHandler := NewEstablecimientoHandler(deps.EstablecimientoUC)
	colaHandler := NewColaHandler(deps.ColaUC, deps.Log)

	// Establecimientos, consultas públicas. Las rutas estáticas van antes
	// que /:id para que Fiber no las capture como parámetro.
	establecimientos := api.Group("/establecimientos")
	establecimientos.Get("/buscar", establecimientoHandler.Search)
	establecimientos.Get("/cercanos", establecimientoHandler.Nearby)
	establecimientos.Get("/mios", AuthMiddleware(deps.JWTSecret), establecimientoHandler.Mine)
	establecimientos.Get("/:id", establecimientoHandler.Show)
	establecimientos.Get("/:id/cola", colaHandler.ListarCola)

	// Cola, acceso de invitados (público, con límite por IP en el alta)
	establecimientos.Post("/:id/apuntarse-como-invitado",
		RateLimitInvitado(deps.InvitadoRPS, deps.InvitadoBurst),
		colaHandler.ApuntarseComoInvitado)
	establecimientos.Post("/:id/desapuntarse-como-invitado", colaHandler.DesapuntarseComoInvitado)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Establecimientos, gestión (protegido)
	gestion := protected.Group("/establecimientos")
	gestion.Post("/", establecimientoHandler.Create)
	gestion.Put("/:id", establecimientoHandler.Update)
	gestion.Delete("/:id", establecimientoHandler.Delete)

	// Cola, usuarios registrados (protegido)
	gestion.Post("/:id/apuntarse", colaHandler.Apuntarse)
	gestion.Post("/:id/desapuntarse", colaHandler.Desapuntarse)

	// Cola, administración del establecimiento (protegido, con Authorization Gate)
	gestion.Get("/:id/pasar-turno", colaHandler.AdminPasaTurno)
	gestion.Get("/:id/admin-desapunta-usuario/:entradaId", colaHandler.AdminDesapunta)

	// Favoritos (protegido)
	favoritoHandler := NewFavoritoHandler(deps.FavoritoUC)
	gestion.Post("/:id/favorito", favoritoHandler.Mark)
	gestion.Delete("/:id/favorito", favoritoHandler.Unmark)
	protected.Get("/favoritos", favoritoHandler.List)
}
