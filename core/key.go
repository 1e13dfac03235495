package core

import "fmt"

// Key identifies one (antenna, channel) pair by zero-based indices.
type Key struct {
	Antenna int
	Channel int
}

// Name returns the archive column name rms{antenna}{channel}. Antennas are
// numbered from 1 and channels from 0, as in the station archives. Names are
// only unique while both numbers have one digit.
func (k Key) Name() string {
	return fmt.Sprintf("rms%d%d", k.Antenna+1, k.Channel)
}

func (k Key) String() string {
	return fmt.Sprintf("antenna %d, channel %d", k.Antenna+1, k.Channel+1)
}

// Keys lists all pairs of an antennas × channels matrix in antenna-major order.
func Keys(antennas, channels int) []Key {
	if antennas <= 0 || channels <= 0 {
		return nil
	}
	keys := make([]Key, 0, antennas*channels)
	for a := 0; a < antennas; a++ {
		for c := 0; c < channels; c++ {
			keys = append(keys, Key{Antenna: a, Channel: c})
		}
	}
	return keys
}
