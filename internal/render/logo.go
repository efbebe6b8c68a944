package render

import (
	"encoding/base64"
	"os"
	"path/filepath"
)

// logo candidates in preference order.
var logoNames = []string{"tokamak-logo.png", "logo.png", "logo.svg"}

// LoadLogoDataURI finds a logo image under dir and returns it as a data URI
// for inline embedding. Returns "" when no logo is present; a missing logo is
// not an error.
func LoadLogoDataURI(dir string) string {
	if dir == "" {
		return ""
	}
	for _, name := range logoNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		mime := "image/png"
		if filepath.Ext(name) == ".svg" {
			mime = "image/svg+xml"
		}
		return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
	}
	return ""
}
