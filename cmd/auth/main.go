// cmd/auth/main.go
package main

import (
	"go-ledger-api/app"
)

// @title           Ledger API
// @version         1.0
// @description     Auth, user profile and user settings services behind the ledger gateway.

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
	app.RunAuth()
}
