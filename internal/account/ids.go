package account

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewID generates a registry id of the form acc-<unix-millis>-<6 hex
// chars>. The millisecond prefix keeps ids roughly sortable by
// creation time; the random suffix disambiguates ids minted within
// the same millisecond. The format is a persisted contract: profile
// directories are named after it.
func NewID() string {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return fmt.Sprintf("acc-%d-%s", time.Now().UnixMilli(), hex.EncodeToString(buf))
}
