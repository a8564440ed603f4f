// cmd/main.go
package main

import (
	"go-furniture-api/app"

	_ "go-furniture-api/docs"
)

// @title           Furniture Catalog API
// @version         1.0
// @description     REST backend for a furniture catalog with JWT authentication and token revocation.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
