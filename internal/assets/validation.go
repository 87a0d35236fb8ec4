package assets

import (
	"fmt"
	"regexp"
)

// MaxAssetNameLength bounds style and template names.
const MaxAssetNameLength = 64

var assetNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateAssetName accepts names made of letters, digits, hyphens and
// underscores that start with a letter or digit. Anything else, including
// separators and dots, is rejected before a path is built from the name.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case len(name) > MaxAssetNameLength:
		return fmt.Errorf("%w: %d characters (max %d)", ErrInvalidAssetName, len(name), MaxAssetNameLength)
	case !assetNamePattern.MatchString(name):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
