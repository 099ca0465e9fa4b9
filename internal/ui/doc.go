// Package ui implements the greeting page: a controlled name input, a submit
// action that calls the injected greet command asynchronously, and an output
// paragraph that always shows the most recently resolved greeting.
//
// A Surface holds the page state for one viewer. Shells feed it events
// (SetInput, Submit), subscribe to its changes and render it as HTML.
package ui
