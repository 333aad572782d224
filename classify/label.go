package classify

import (
	"fmt"
	"strings"
)

// Label is the presumed gender assigned to a partner.
type Label string

const (
	Male    Label = "M"
	Female  Label = "F"
	Unknown Label = "U"
)

// Labels lists every label in output column order.
var Labels = []Label{Male, Female, Unknown}

func (l Label) String() string {
	return string(l)
}

func (l Label) Valid() bool {
	return l == Male || l == Female || l == Unknown
}

// ParseLabel accepts M, F and U in any case, surrounded by optional spaces.
func ParseLabel(s string) (Label, error) {
	l := Label(strings.ToUpper(strings.TrimSpace(s)))
	if !l.Valid() {
		return Unknown, fmt.Errorf("%w: %q", ErrInvalidLabel, s)
	}
	return l, nil
}
