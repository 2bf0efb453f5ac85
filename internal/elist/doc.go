// Package elist provides a generic resizable array with an explicit
// capacity, a doubling growth policy and checked indexing.
//
// Every failing operation returns an error and leaves the list as it was.
package elist
