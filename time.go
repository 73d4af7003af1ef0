package heirloom

import (
	"encoding/json"
	"time"

	"github.com/heirloom-labs/heirloom/errors"
)

// UnixTime represents a point in time as POSIX time with seconds precision.
// Models and messages use it instead of time.Time so that the serialized form
// does not depend on the time zone or carry nanoseconds.
//
// Values before the epoch are negative and valid, a birth date for example.
type UnixTime int64

// Time returns a time.Time structure that represents the same moment in time.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// IsZero returns true if this time represents a zero value.
func (t UnixTime) IsZero() bool {
	return t == 0
}

// Add modifies this UNIX time by given duration. This is compatible with
// time.Time.Add method.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

// AddSeconds returns this time moved by n seconds. It returns an overflow
// error instead of wrapping around.
func (t UnixTime) AddSeconds(n int64) (UnixTime, error) {
	sum := int64(t) + n
	if (n > 0 && sum < int64(t)) || (n < 0 && sum > int64(t)) {
		return 0, errors.Wrap(errors.ErrOverflow, "time")
	}
	return UnixTime(sum), nil
}

// Since returns the number of seconds elapsed between other and t. The
// result is negative when other is after t.
func (t UnixTime) Since(other UnixTime) int64 {
	return int64(t) - int64(other)
}

// AsUnixTime converts given Time structure into its UNIX time
// representation.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// UnmarshalJSON supports unmarshaling both as time.Time and from a number.
// Usually a number is used as a representation of this time in JSON but it is
// convenient to use a string format in configurations (ie genesis file).
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var unix int64
	if err := json.Unmarshal(raw, &unix); err == nil {
		*t = UnixTime(unix)
		return nil
	}

	var stdtime time.Time
	if err := json.Unmarshal(raw, &stdtime); err == nil {
		*t = AsUnixTime(stdtime)
		return nil
	}

	return errors.Wrap(errors.ErrInput, "invalid time format")
}

// String returns the usual string representation of this time as the
// time.Time structure would.
func (t UnixTime) String() string {
	return t.Time().String()
}
