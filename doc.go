// Package codepart is a source-code editor widget for gio. It provides
// syntax highlighting, a line-number gutter, current-line highlighting,
// bookmark navigation, and rich-text rendering of list item labels.
//
// Use the Editor type as the API.
package codepart
