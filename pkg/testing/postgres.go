package testing

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const (
	PostgresUser     = "postgres"
	PostgresPassword = "postgres"
	PostgresDBName   = "myniu"
)

// PostgresContainer is a throwaway postgres started through the docker daemon.
type PostgresContainer struct {
	Host string
	Port string
	Pool *pgxpool.Pool

	resource *dockertest.Resource
}

// StartPostgres runs a postgres container and waits until it accepts
// connections. Close must be called to remove the container.
func StartPostgres(ctx context.Context) (*PostgresContainer, error) {
	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	dockerPool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("could not create new dockertest pool: %w", err)
	}
	if err := dockerPool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping dockertest pool: %w", err)
	}
	dockerPool.MaxWait = 60 * time.Second

	resource, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=" + PostgresUser,
			"POSTGRES_PASSWORD=" + PostgresPassword,
			"POSTGRES_DB=" + PostgresDBName,
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return nil, fmt.Errorf("dockerpool run postgres: %w", err)
	}
	// hard stop for containers left behind by a killed test binary
	_ = resource.Expire(300)

	c := &PostgresContainer{
		Host:     "localhost",
		Port:     resource.GetPort("5432/tcp"),
		resource: resource,
	}

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		PostgresUser, PostgresPassword, c.Host, c.Port, PostgresDBName,
	)
	if err := dockerPool.Retry(func() error {
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return err
		}
		c.Pool = pool
		return nil
	}); err != nil {
		_ = resource.Close()
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return c, nil
}

// Truncate empties the given tables and resets their sequences.
func (c *PostgresContainer) Truncate(ctx context.Context, tables ...string) error {
	for _, table := range tables {
		if _, err := c.Pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY", table)); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

func (c *PostgresContainer) Close() error {
	if c.Pool != nil {
		c.Pool.Close()
	}
	return c.resource.Close()
}
