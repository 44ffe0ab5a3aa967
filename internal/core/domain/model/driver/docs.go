// Package driver provides the Driver aggregate: the stable identity projection
// the engine keys claims and session views on. Authentication and session
// management live outside the engine; this package only models the identity
// record drivers register once.
package driver
