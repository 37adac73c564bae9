package logger

// Standard field names for structured logging.
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldTarget     = "target"
	FieldKind       = "kind"
	FieldFile       = "file"
	FieldImport     = "import"
	FieldMode       = "mode"
	FieldCached     = "cached"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldError      = "error"
)
