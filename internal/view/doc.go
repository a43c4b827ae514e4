// Package view contains the three page views: the header and the two sibling
// containers. A view reads a slice of the shared tree through a selector,
// keeps a private local counter, and publishes every counter transition to
// the store. Views produce plain Content; drawing belongs to the caller.
package view
