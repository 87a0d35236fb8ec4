package assets

// Built-in asset names.
const (
	DefaultStyleName    = "apa"
	DefaultTemplateName = "document"
)

// AssetLoader loads CSS styles and HTML page templates by name. Names carry
// no extension. A missing asset yields ErrStyleNotFound or
// ErrTemplateNotFound; a malformed name yields ErrInvalidAssetName.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in CSS style by name.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads a built-in HTML page template by name.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}
