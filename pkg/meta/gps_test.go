package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCoordinate(t *testing.T) {
	tests := []struct {
		name string
		in   any
		ref  string
		want string
	}{
		{name: "sexagesimal", in: "39 deg 54' 26.69\"", ref: "N", want: "39.907414° N"},
		{name: "decimal", in: 39.907414, ref: "N", want: "39.907414° N"},
		{name: "with trailing ref", in: "30 deg 33' 44.70\" N", ref: "North", want: "30.562417° North"},
		{name: "unrecognized", in: "somewhere", ref: "E", want: "somewhere E"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatCoordinate(tc.in, tc.ref))
		})
	}
}

func TestFormatAltitude(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "number", in: 120.0, want: "120 m"},
		{name: "suffixed", in: "123.45 m Above Sea Level", want: "123.45 m"},
		{name: "no digits", in: "high", want: "high m"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatAltitude(tc.in))
		})
	}
}
