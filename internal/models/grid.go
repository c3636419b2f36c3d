package models

import "encoding/json"

// GridEditor is one entry of the grid editor configuration. Config is kept
// verbatim because every editor defines its own shape.
type GridEditor struct {
	Name   string          `json:"name"`
	Alias  string          `json:"alias"`
	View   string          `json:"view"`
	Render string          `json:"render,omitempty"`
	Icon   string          `json:"icon,omitempty"`
	Config json.RawMessage `json:"config,omitempty"`
}

// PackageManifest is the subset of an App_Plugins package.manifest the exporter reads.
type PackageManifest struct {
	GridEditors []GridEditor `json:"gridEditors"`
}
