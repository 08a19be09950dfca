package internal

import (
	"net/http"
	"prayerd/internal/controllers"
	"prayerd/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/times", http.HandlerFunc(apiController.GetTimes))
	routers.Get("/times/city", http.HandlerFunc(apiController.GetTimesByCity))
	routers.Get("/times/ip", http.HandlerFunc(apiController.GetTimesByIP))
	routers.Get("/times/cached", http.HandlerFunc(apiController.GetCachedTimes))
	routers.Get("/location", http.HandlerFunc(apiController.GetLocation))
	return routers
}
