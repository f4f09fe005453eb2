package repository

import (
	"os"
	"testing"

	"go-ledger-api/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}
