package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("FLEETDESK_TEST_MODE") == "" {
			_ = os.Setenv("FLEETDESK_TEST_MODE", "1")
		}
	})
}
