package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Catalog errors
	ErrInvalidCatalog  = fmt.Errorf("invalid catalog")
	ErrTrackNotFound   = fmt.Errorf("track not found")
	ErrEmptyCatalog    = fmt.Errorf("catalog is empty")
	ErrUnknownSource   = fmt.Errorf("unknown catalog source")
	ErrCatalogNotSaved = fmt.Errorf("no catalog stored in database")

	// Playback errors
	ErrInvalidDurationFormat = fmt.Errorf("invalid duration format")
	ErrTransportClosed       = fmt.Errorf("transport closed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
