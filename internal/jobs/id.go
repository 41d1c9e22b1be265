package jobs

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/rs/zerolog/log"
)

// JobIDPrefix prefixes every video job id handed to callers.
const JobIDPrefix = "vid-"

// NewID creates a cryptographically random job id carrying JobIDPrefix.
func NewID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		log.Fatal().Err(err).Msg("Failed to generate random job ID")
	}
	return JobIDPrefix + hex.EncodeToString(b)
}
