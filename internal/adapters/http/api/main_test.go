package api_test

import (
	"io"
	"testing"

	"go.uber.org/goleak"

	"github.com/okian/ironrank/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
	goleak.VerifyTestMain(m)
}
