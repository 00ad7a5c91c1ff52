// Package ui implements the platewatch terminal interface: a Bubble Tea
// program with a vehicle table, a stats view, and export settings, all
// repainted from the shared snapshot store once per second.
package ui
