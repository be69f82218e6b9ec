package repository

// ListFilter filtros comunes de los listados paginados.
// Los campos vacíos no filtran.
type ListFilter struct {
	Query          string // búsqueda libre (ILIKE sobre nombre/código)
	OrganizationID string
	LocationID     string
	ProtocolID     string
	BatchID        string
	Status         string
	ActiveOnly     bool
	Limit          int
	Offset         int
}
