// =============================================================================
// XML to CSV Converter - Shared Types
// =============================================================================
//
// This package contains types shared by the pipeline stages to avoid import
// cycles. Types defined here are used by:
//   - xmlparser  (produces Records)
//   - converter  (builds the Table)
//   - validation (checks the Table)
//   - csvwriter / xlsxwriter (serialize the Table)
//
// =============================================================================

package types

// =============================================================================
// RECORD TYPES
// =============================================================================

// Record is one record element (ASBO) of the input document.
type Record struct {
	// Ordinal is the 1-based position of the record in document order.
	Ordinal int

	// Path is the slash-separated chain of local tag names from the root,
	// e.g. "/Messages/Batch/ASBO". Logged with Ordinal at debug level.
	Path string

	// Fields are the record's immediate child elements, in document order.
	// A local name may occur more than once.
	Fields []Field
}

// Field is one immediate child element of a record.
type Field struct {
	// Name is the local (namespace-stripped) tag name.
	Name string

	// Value is the element's text content; "" when the element has no text.
	Value string
}

// =============================================================================
// TABLE TYPES
// =============================================================================

// Table is the projected result: a header row plus one row per record.
// Every row has exactly len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

