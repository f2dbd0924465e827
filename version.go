package datatree

import _ "embed"

// Version is the release of the datatree module, read from the VERSION file.
//
//go:embed VERSION
var Version string
