package pl

// Frame is the lineage of a relational expression: the table it derives from
// and the columns it exposes. Produced by the namespace system when a table
// is declared; consumed by column inference downstream.
type Frame struct {
	// Name is the declared table name, when the frame came from a table.
	Name string

	Columns []FrameColumn
}

// FrameColumn is one column tracked by a frame.
type FrameColumn struct {
	// Name is empty for a wildcard column.
	Name string

	// Wildcard marks a column standing for all columns of the input.
	Wildcard bool
}
