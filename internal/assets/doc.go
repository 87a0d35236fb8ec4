// Package assets provides the stylesheets and page templates used by the
// HTML and PDF renderers.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in assets compiled into the binary
//	    ├── FilesystemLoader  - assets from a directory on disk
//	    └── AssetResolver     - custom-first lookup with embedded fallback
//
// The built-in "apa" stylesheet reproduces the APA page layout in CSS
// (Times New Roman 12pt, double spacing, one inch margins). The "screen"
// stylesheet adds a page-like frame for reading in a browser.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── {name}.html
//
// # Security
//
// Asset names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
