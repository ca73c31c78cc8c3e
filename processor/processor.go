// Package processor extracts translatable text from structured content and
// writes translations back into it.
package processor

import "github.com/FaizanAhmed099/tarjama"

// ContentProcessor is an alias to the main package interface.
type ContentProcessor = tarjama.ContentProcessor

// TextNode is an alias to the main package type.
type TextNode = tarjama.TextNode

// Node types produced by the HTML processor.
const (
	NodeTypeText      = "html_text"
	NodeTypeAttribute = "html_attr"
)
