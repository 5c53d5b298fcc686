package models

// Entry represents a source file that follows the yymmdd_label naming convention
type Entry struct {
	// Source is the file's base name without extension, used as the link target
	Source string
	// SortKey is the leading integer of the date segment. Only used for ordering.
	SortKey int64
	// DisplayName is the rendered link text, e.g. "[240101] demo"
	DisplayName string
}
