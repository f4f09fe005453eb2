// cmd/usersettings/main.go
package main

import (
	"go-ledger-api/app"
)

func main() {
	app.RunUserSettings()
}
