package core

// SeverityField is the attribute holding a finding's severity.
const SeverityField = "Severity"

// Finding is a single compliance observation as stored in the findings table.
// Attributes are passed through unmodified.
type Finding map[string]interface{}

// Severity returns the raw Severity attribute and whether it was present.
func (f Finding) Severity() (interface{}, bool) {
	value, ok := f[SeverityField]
	return value, ok
}

// SeverityString returns the Severity attribute when it is a string.
func (f Finding) SeverityString() (string, bool) {
	value, ok := f[SeverityField]
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}
