// Package lib provide helpers shared by the allocator packages: bit
// twiddling on bitmap bytes and running averages for statistics.
package lib
