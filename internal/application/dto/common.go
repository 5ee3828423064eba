package dto

// Límites de paginación de los listados.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageRequest ventana de un listado; usar NewPageRequest para obtenerla ya normalizada.
type PageRequest struct {
	Limit  int
	Offset int
}

// NewPageRequest normaliza limit a [1, MaxPageLimit] (DefaultPageLimit si es <= 0) y offset a >= 0.
func NewPageRequest(limit, offset int) PageRequest {
	switch {
	case limit <= 0:
		limit = DefaultPageLimit
	case limit > MaxPageLimit:
		limit = MaxPageLimit
	}
	return PageRequest{Limit: limit, Offset: max(offset, 0)}
}

// Response metadatos de la página devuelta.
func (p PageRequest) Response() PageResponse {
	return PageResponse{Limit: p.Limit, Offset: p.Offset}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ErrorResponse cuerpo de error HTTP: code estable (VALIDATION, NOT_FOUND, ...) y mensaje legible.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
