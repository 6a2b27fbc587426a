package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/sales-portal-api/pkg/config"
)

// Session maneja el ciclo de vida del pool de conexiones: creación perezosa
// en el primer uso, sonda de salud en cada adquisición, y descarte con
// recreación cuando la conexión quedó en mal estado. Es seguro bajo
// peticiones concurrentes.
type Session struct {
	mu   sync.Mutex
	cfg  config.DBConfig
	pool *pgxpool.Pool
}

// NewSession construye la sesión sin conectar todavía.
func NewSession(cfg config.DBConfig) *Session {
	return &Session{cfg: cfg}
}

// Acquire devuelve un pool sano. Si el pool existente no responde al ping
// se cierra y se crea uno nuevo, en vez de reutilizarlo roto.
func (s *Session) Acquire(ctx context.Context) (*pgxpool.Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pool != nil {
		if err := s.pool.Ping(ctx); err == nil {
			return s.pool, nil
		}
		s.pool.Close()
		s.pool = nil
	}

	pool, err := newPool(ctx, s.cfg)
	if err != nil {
		return nil, err
	}
	s.pool = pool
	return s.pool, nil
}

// Invalidate descarta el pool actual; la próxima petición intentará una
// conexión fresca. Se invoca tras un fallo de consulta atribuible a la
// conexión.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
}

// Close cierra el pool definitivamente (apagado de la aplicación).
func (s *Session) Close() {
	s.Invalidate()
}

// newPool crea y verifica un pool de conexiones PostgreSQL.
func newPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	poolConfig.ConnConfig.ConnectTimeout = 10 * time.Second

	// Registrar codec para NUMERIC/DECIMAL -> shopspring/decimal (todas las conexiones del pool).
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}
