// Package snapshot stores controller-information records on disk.
//
// A snapshot is a single nvm.ControllerInfo captured from a driver and
// saved so example programs can replay it without hardware. The file
// extension selects the encoding:
//
//	.yaml, .yml  YAML, human-editable
//	.json        indented JSON
//	.cbor        canonical CBOR with integer keys
package snapshot
