// Package modules contains the built-in check modules. Each registers
// itself with the lint registry from init(); importing this package for
// side effects activates the full set.
package modules
