package device

import (
	"fmt"
	"strings"
)

// Resolve maps a free-text reference ("bedroom light", "ac", "kitchen")
// to a device.
//
// Two tiers: an exact case-insensitive name match wins outright; failing
// that, the first device in directory order whose name contains the
// reference, whose type equals it, or whose room contains it. No scoring
// beyond first-in-order, so ties go to the earlier seed entry.
//
// Resolve never mutates the directory and always returns a copy.
func (dir *Directory) Resolve(reference string) (*Device, error) {
	query := strings.ToLower(strings.TrimSpace(reference))
	if query == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrNotFound)
	}

	dir.mu.RLock()
	defer dir.mu.RUnlock()

	// Tier 1: exact name match.
	for _, id := range dir.order {
		d := dir.devices[id]
		if strings.ToLower(d.Name) == query {
			return d.DeepCopy(), nil
		}
	}

	// Tier 2: substring on name, exact on type, substring on room.
	for _, id := range dir.order {
		d := dir.devices[id]
		if strings.Contains(strings.ToLower(d.Name), query) ||
			strings.ToLower(string(d.Type)) == query ||
			strings.Contains(strings.ToLower(d.Room), query) {
			return d.DeepCopy(), nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrNotFound, reference)
}
