// Package block provides in-memory N-dimensional byte blocks with row-major
// strided access, edge-replicate padding and its inverse crop.
package block
