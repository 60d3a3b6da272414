package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/cerebrexia/fest-backend/cmd/app"
)

// @termsOfService  http://swagger.io/terms/
// @contact.name   Fest Support
// @contact.email  info@cerebrexia25.com
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
