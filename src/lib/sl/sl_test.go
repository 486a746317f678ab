package sl_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"sgformer-backend/src/lib/sl"
)

func TestErr(t *testing.T) {
	attr := sl.Err(errors.New("mongo unreachable"))

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("mongo unreachable"), attr.Value)
}
