package chinacal

import (
	_ "embed"
	"fmt"
	"sync"
)

// Version is reported by the HTTP health endpoint and the CLI.
const Version = "1.0.0"

//go:embed dataset/calendar.json
var embeddedDataset []byte

// Embedded builds a table from the dataset compiled into the binary.
func Embedded() (*Table, error) {
	t, err := ParseDataset(embeddedDataset)
	if err != nil {
		return nil, fmt.Errorf("embedded dataset: %w", err)
	}
	return t, nil
}

var defaultCalendar = sync.OnceValue(func() *Calendar {
	t, err := Embedded()
	if err != nil {
		// The embedded dataset is validated at build time by the test
		// suite; failing here means a corrupt binary.
		panic(err)
	}
	return New(t)
})

// Default returns a process-wide calendar over the embedded dataset.
// Callers that need a different table should construct their own via New.
func Default() *Calendar {
	return defaultCalendar()
}
