// Package inspect formats controller-information fields for display.
package inspect
