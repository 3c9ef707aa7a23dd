package swagger

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

func Handler() http.Handler {
	// Serve the OpenAPI spec published at the root.
	return httpSwagger.Handler(
		httpSwagger.URL("/openapi.yml"),
	)
}

// SpecFile serves the raw OpenAPI document the swagger UI points at.
func SpecFile(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, "api/openapi.yml")
}
