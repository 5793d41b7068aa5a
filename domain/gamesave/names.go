package gamesave

const (
	// MaxContainerNameLength is the longest accepted container name.
	MaxContainerNameLength = 256
	// MaxBlobNameLength is the longest accepted blob (field) name.
	MaxBlobNameLength = 64
)

// ValidContainerName reports whether name can address a container.
// Names use ASCII letters, digits, '_', '-' and '.', and may not start with '.'.
func ValidContainerName(name string) bool {
	return validName(name, MaxContainerNameLength)
}

// ValidBlobName reports whether name can address a blob inside a container.
func ValidBlobName(name string) bool {
	return validName(name, MaxBlobNameLength)
}

func validName(name string, maxLen int) bool {
	if name == "" || len(name) > maxLen || name[0] == '.' {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_', c == '-', c == '.':
		default:
			return false
		}
	}
	return true
}
