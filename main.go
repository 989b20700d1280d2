package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/andescode/event-registration-api/cmd/app"
)

// @contact.name   API Support
// @contact.email  soporte@andescode.dev
//
// @license.name  MIT
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token issued by /admin/auth/login
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
