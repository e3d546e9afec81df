package triton

import "strconv"

// Params accumulates URL query parameters, skipping unset values.
type Params map[string]string

// NewParams creates an empty parameter set.
func NewParams() Params { return Params{} }

// Set adds a string parameter unless the value is empty.
func (p Params) Set(key, value string) Params {
	if value != "" {
		p[key] = value
	}
	return p
}

// SetInt adds an integer parameter unless the value is zero or negative.
func (p Params) SetInt(key string, value int) Params {
	if value > 0 {
		p[key] = strconv.Itoa(value)
	}
	return p
}

// SetBool adds a boolean parameter when the value is true.
func (p Params) SetBool(key string, value bool) Params {
	if value {
		p[key] = "true"
	}
	return p
}
