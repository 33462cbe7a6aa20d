package release

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

var ErrInvalidTagName = errors.New("invalid tag name")

// TagRef returns the full ref path for a tag name.
func TagRef(name string) string {
	return plumbing.NewTagReferenceName(name).String()
}

// ValidateTagName rejects names git itself would refuse under refs/tags/.
func ValidateTagName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidTagName)
	}
	if err := plumbing.NewTagReferenceName(name).Validate(); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidTagName, name, err)
	}
	return nil
}
