package loans

import "fmt"

// MissingColumnError is returned when a required field is absent from every record.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column '%s' is missing in the dataset", e.Column)
}

// EmptyDatasetError is returned when a column exists but none of its values parse.
type EmptyDatasetError struct {
	Column string
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("column '%s' contains only invalid values", e.Column)
}
