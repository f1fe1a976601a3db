// Package formats provides parsers for Tiled map (.tmj) and tileset (.tsx)
// files and the GID encoding they share.
package formats
