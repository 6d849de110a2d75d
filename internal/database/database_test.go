package database

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenDBWithDSNRequiresDSN(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := OpenDBWithDSN(context.Background(), "", DefaultPool, log)
	assert.ErrorIs(t, err, ErrNoDSN)
}

func TestOpenDBWithDSNRejectsBadDSN(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := OpenDBWithDSN(context.Background(), "::not a dsn::", DefaultPool, log)
	assert.Error(t, err)
}
