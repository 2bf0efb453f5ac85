// Package usage collects the size and last access time of every regular file
// below a directory.
//
// Files are gathered into an elist.List, either with fastwalk for parallel
// traversal or breadth-first on a single goroutine, then sorted by size or
// access time and trimmed to a limit.
package usage
