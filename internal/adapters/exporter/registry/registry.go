package registry

import "github.com/turanbagtur/novel-translator/internal/ports"

type Registry struct{ byFormat map[string]ports.BookExporter }

func New() *Registry { return &Registry{byFormat: map[string]ports.BookExporter{}} }

func (r *Registry) Register(e ports.BookExporter) { r.byFormat[e.Format()] = e }

func (r *Registry) Get(format string) (ports.BookExporter, bool) {
	e, ok := r.byFormat[format]
	return e, ok
}
