package portal

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/sales-portal-api/internal/application/dto"
)

// ResponseCache caché de respuestas de login acotada en tiempo y tamaño.
// Solo guarda el cuerpo liviano en modo resumen (nunca filas crudas de
// MasterData), así la huella de memoria no depende del tamaño de la tabla
// de hechos. Segura bajo peticiones concurrentes.
//
// Política de desalojo: al superar maxEntries se expulsa la mitad más
// vieja por timestamp de escritura, para que el tamaño no crezca sin tope
// con muchos códigos raíz distintos.
type ResponseCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	max     int
	now     func() time.Time // inyectable en tests
}

type cacheEntry struct {
	data    *dto.LoginResponse
	written time.Time
}

// NewResponseCache construye la caché. ttl y max fuera de rango caen a los
// valores históricos (5 minutos, 200 entradas).
func NewResponseCache(ttl time.Duration, max int) *ResponseCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if max <= 0 {
		max = 200
	}
	return &ResponseCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		max:     max,
		now:     time.Now,
	}
}

// Key clave de caché: (código raíz, flag de modo de presentación).
func Key(code string, summaryMode bool) string {
	return fmt.Sprintf("login|%s|summary=%t", code, summaryMode)
}

// Get devuelve la entrada viva para la clave. Una entrada vencida cuenta
// como miss y se elimina en el acto.
func (c *ResponseCache) Get(key string) (*dto.LoginResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.written) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.data, true
}

// Set guarda la respuesta y aplica el desalojo por capacidad.
func (c *ResponseCache) Set(key string, data *dto.LoginResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{data: data, written: c.now()}

	if len(c.entries) <= c.max {
		return
	}
	type keyed struct {
		key     string
		written time.Time
	}
	all := make([]keyed, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, keyed{k, e.written})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].written.Before(all[j].written) })
	for _, k := range all[:c.max/2] {
		delete(c.entries, k.key)
	}
}

// Clear vacía la caché incondicionalmente (action=clearCache).
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Len número de entradas vivas o vencidas aún no recolectadas.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// SetNow reemplaza la fuente de tiempo; solo para tests.
func (c *ResponseCache) SetNow(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
