// Package collection manages an ordered list of schema objects for
// multi-object editors: typed mutations with index checks, an entry pipeline
// that repairs and validates incoming objects, and a contiguous selection with
// gates for editor actions.
//
// Objects are copied when they enter and when they are read, so callers never
// share state with the collection.
package collection
