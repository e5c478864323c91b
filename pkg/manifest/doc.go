// Package manifest loads and validates the project manifest.
//
// A manifest lives at the project root as manifest.toml (preferred),
// manifest.yaml or manifest.yml:
//
//	schema = 1
//	name = "demo"
//	version = "1.2.0"
//	target = "target"
//
//	[dependencies]
//	core = ">=1.0.4"
//
// Schema 1 requires name and version, and names are letters only. Schema 2
// also requires description and authors and allows digits, "-" and "_"
// after the first letter.
//
// Loading is pure: nothing is written and no repository is touched.
// Dependency requirements are syntax-checked and recorded, never resolved.
package manifest
