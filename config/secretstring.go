package config

// SecretStringValue replaces the real value whenever a SecretString is
// serialized.
const SecretStringValue = "<secret>"

// SecretString holds a credential, such as the integration token, that must
// never end up in logs or dumped configuration.
type SecretString string

// MarshalJSON emits the placeholder instead of the stored value, or null when
// the string is empty.
func (s SecretString) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return []byte("\"" + SecretStringValue + "\""), nil
}

// MarshalYAML emits the placeholder instead of the stored value, or nil when
// the string is empty.
func (s SecretString) MarshalYAML() (any, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return SecretStringValue, nil
}
