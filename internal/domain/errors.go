package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrItemNotFound indicates the requested media item does not exist
	ErrItemNotFound = errors.New("item not found, it may have been deleted")

	// ErrNotCSV indicates an import file is not a delimited text file
	ErrNotCSV = errors.New("please provide a CSV file")

	// ErrEmptyImport indicates an import parsed cleanly but produced no items
	ErrEmptyImport = errors.New("no valid items found in CSV")

	// ErrNothingToExport indicates an export was requested on an empty collection
	ErrNothingToExport = errors.New("you have no items to export")

	// ErrAmbiguousID indicates an id prefix matched more than one item
	ErrAmbiguousID = errors.New("id prefix matches more than one item")

	// ErrInvalidItem indicates user-entered item fields failed validation
	ErrInvalidItem = errors.New("invalid item")
)
