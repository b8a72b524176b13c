package database

// DataStore defines the unified interface for all data operations needed by the command surface.
// This interface is composed of smaller, domain-specific interfaces following the
// Interface Segregation Principle. Consumers can depend on smaller interfaces
// (e.g., CardRepository, ColumnRepository) for better testability and clearer dependencies.
type DataStore interface {
	BoardRepository
	ColumnRepository
	CardRepository
}

var _ DataStore = (*Repository)(nil)
