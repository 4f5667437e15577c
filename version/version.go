package version

import (
	"fmt"
)

const (
	Version = "0.1.0"
)

// Used by "gridlayout --version"
var VersionString = fmt.Sprintf("gridlayout %s", Version)
