// Package seed embeds the default listing and city data sets.
package seed

import _ "embed"

// Listings is the YAML listing collection served by the embedded source driver.
//
//go:embed listings.yaml
var Listings []byte

// Cities is the YAML city reference list.
//
//go:embed cities.yaml
var Cities []byte
