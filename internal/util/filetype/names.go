package filetype

import (
	"github.com/google/uuid"
)

const placeholderPrefix = "uudecoded_"

// GeneratePlaceholderName returns a unique name for files which did not carry one.
func GeneratePlaceholderName() string {
	return placeholderPrefix + uuid.New().String()
}
