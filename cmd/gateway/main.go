// cmd/gateway/main.go
package main

import (
	"go-ledger-api/app"
)

func main() {
	app.RunGateway()
}
