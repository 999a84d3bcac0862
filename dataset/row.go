package dataset

import (
	"fmt"
	"strings"

	"github.com/pbanos/arbor/feature"
)

/*
Row represents an item to classify or from which to learn how to classify them:
an ordered sequence of feature values followed by a trailing label value.
*/
type Row []string

// ErrMissingValue is returned when a row has no value at a feature's column.
const ErrMissingValue = Error("row has no value for feature")

// Error is the type of errors returned by datasets.
type Error string

func (e Error) Error() string {
	return string(e)
}

/*
Label returns the trailing label value of the row, or the empty string
for an empty row.
*/
func (r Row) Label() string {
	if len(r) == 0 {
		return ""
	}
	return r[len(r)-1]
}

/*
ValueFor returns the value of the row at the column index of the given
feature or an error wrapping ErrMissingValue if the row is too short to
hold it.
*/
func (r Row) ValueFor(f *feature.Feature) (string, error) {
	return r.ValueAt(f.Index())
}

/*
ValueAt returns the value of the row at the given column index or an
error wrapping ErrMissingValue if there is no such column.
*/
func (r Row) ValueAt(index int) (string, error) {
	if index < 0 || index >= len(r) {
		return "", fmt.Errorf("%w at column %d of %d-column row", ErrMissingValue, index, len(r))
	}
	return r[index], nil
}

func (r Row) String() string {
	return fmt.Sprintf("[%s]", strings.Join(r, ","))
}
