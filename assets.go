package md2apa

import (
	"errors"

	"github.com/alnah/go-md2apa/internal/assets"
)

// Built-in asset names.
const (
	// DefaultStyle is the print stylesheet used for HTML and PDF output.
	DefaultStyle = assets.DefaultStyleName

	// DefaultTemplate is the HTML page template.
	DefaultTemplate = assets.DefaultTemplateName
)

// AssetLoader loads CSS styles and HTML page templates by name.
// NewAssetLoader provides a filesystem implementation with fallback to
// the embedded defaults; implement the interface for other backends.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML page template by name (without .html).
	// The template receives .Title, .Author, .Subject, .Keywords, .CSS
	// and .Body. Returns ErrTemplateNotFound if it doesn't exist.
	LoadTemplate(name string) (string, error)
}

// Styles returns the names of the embedded styles.
func Styles() []string {
	return assets.StyleNames()
}

// NewAssetLoader creates an AssetLoader rooted at basePath, which holds
// styles/{name}.css and templates/{name}.html. Assets missing there are
// read from the embedded set. An empty basePath uses embedded assets only.
// Returns ErrInvalidAssetPath if basePath is not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// WithAssetLoader replaces the asset source. It takes precedence over
// WithAssetPath.
func WithAssetLoader(l AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = l
	}
}

// assetLoaderAdapter maps internal asset errors to the public sentinels.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.resolver.LoadStyle(name)
	return content, convertAssetError(err)
}

func (a *assetLoaderAdapter) LoadTemplate(name string) (string, error) {
	content, err := a.resolver.LoadTemplate(name)
	return content, convertAssetError(err)
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrStyleNotFound), errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	default:
		return err
	}
}

// wrapError keeps the internal message while matching the public sentinel
// with errors.Is.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns only the sentinel; internal errors stay unexported.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
