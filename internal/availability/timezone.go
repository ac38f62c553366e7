package availability

import "time"

// LoadZone resolves an IANA zone name. An empty or unknown name yields a
// *TimezoneError. "Local" is rejected on purpose: organizer configuration
// must not depend on where the server happens to run.
func LoadZone(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return nil, &TimezoneError{Zone: name}
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &TimezoneError{Zone: name}
	}
	return loc, nil
}
