// Package types defines the Store and Source interfaces, entity types,
// and standard error values for the gmex email archive.
package types
