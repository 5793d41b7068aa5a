package gamesave

import "fmt"

// Schema is a user-defined record persisted into a container.
// Fields returns the persisted fields in declaration order; transient fields
// are not listed. The savegen tool generates Fields from struct declarations.
type Schema interface {
	Fields() []Field
}

// FieldNames returns the names of every persisted field of s, in order.
func FieldNames(s Schema) []string {
	fields := s.Fields()
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}

// SupportedFieldNames returns the persisted field names the codec can handle.
// These are the keys requested from a container on load.
func SupportedFieldNames(s Schema) []string {
	fields := s.Fields()
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Type.Supported() {
			names = append(names, f.Name)
		}
	}
	return names
}

// ValidateSchema checks that field names are unique, non-empty and usable as
// blob names.
func ValidateSchema(s Schema) error {
	seen := make(map[string]struct{})
	for _, f := range s.Fields() {
		if !ValidBlobName(f.Name) {
			return fmt.Errorf("%w: %q", ErrInvalidFieldName, f.Name)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateField, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}
