// Package navigation ejecuta las decisiones de access.Decide contra un Navigator inyectable.
// La decisión es pura; la navegación efectiva (HTTP, tests) la hace el Navigator.
package navigation

import "github.com/jhoicas/hotelops-api/internal/domain/access"

// Navigator capacidad de navegación del cliente.
type Navigator interface {
	// Push navega agregando una entrada al historial.
	Push(path string)
	// Replace navega reemplazando la entrada actual del historial.
	Replace(path string)
}

// Recorder Navigator que registra las navegaciones en orden. Lo usan los handlers HTTP
// para devolver la redirección al SPA.
type Recorder struct {
	routes []access.Route
}

// Push registra una navegación push.
func (r *Recorder) Push(path string) {
	r.routes = append(r.routes, access.Route{Path: path})
}

// Replace registra una navegación que reemplaza el historial.
func (r *Recorder) Replace(path string) {
	r.routes = append(r.routes, access.Route{Path: path, Replace: true})
}

// Routes navegaciones registradas, en orden.
func (r *Recorder) Routes() []access.Route {
	return append([]access.Route(nil), r.routes...)
}

// Last última navegación o nil.
func (r *Recorder) Last() *access.Route {
	if len(r.routes) == 0 {
		return nil
	}
	last := r.routes[len(r.routes)-1]
	return &last
}
