// Package key defines the editor's internal key event representation
// and its mapping from tcell terminal events. Keeping the mapping here
// isolates the rest of the input layer from the terminal library.
package key
