package export

import (
	"os"

	"github.com/rs/zerolog/log"
)

// CleanFolder removes folder and everything below it. Failures are logged and
// otherwise ignored: by the time a folder is cleaned its archive already exists.
func CleanFolder(folder string) {
	if err := os.RemoveAll(folder); err != nil {
		log.Warn().Err(err).Str("folder", folder).Msg("Failed to clean working directory")
	}
}
