//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fleet-scheduler/internal/repository"
)

func TestNewPool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dsn     func() string
		wantErr bool
	}{
		{name: "container dsn", dsn: func() string { return tcDSN }},
		{name: "malformed dsn", dsn: func() string { return "not-a-valid-dsn" }, wantErr: true},
		{name: "unreachable host", dsn: func() string { return "postgres://u:p@127.0.0.1:65000/none?sslmode=disable" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			pool, err := repository.NewPool(ctx, tt.dsn())
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, pool)
				return
			}
			require.NoError(t, err)
			defer pool.Close()

			// schedule_snapshots already exists from TestMain
			require.NoError(t, repository.EnsureSchema(ctx, pool))
		})
	}
}
