package utils

import "testing"

func TestIntDefault(t *testing.T) {
	cases := []struct {
		s       string
		def     int
		want    int
		wantErr bool
	}{
		// empty -> default
		{"", 10, 10, false},
		{"   ", 3, 3, false},
		// valid ints
		{"42", 0, 42, false},
		{"-13", 1, -13, false},
		{"0012", 99, 12, false},
		{" 7 ", 0, 7, false},
		// invalid
		{"x", 5, 0, true},
		{"1.5", 5, 0, true},
		{"2abc", 5, 0, true},
		// overflow
		{"999999999999999999999999", -1, 0, true},
	}

	for _, tc := range cases {
		got, err := IntDefault(tc.s, tc.def)
		if (err != nil) != tc.wantErr {
			t.Fatalf("IntDefault(%q) err = %v, wantErr %v", tc.s, err, tc.wantErr)
		}
		if !tc.wantErr && got != tc.want {
			t.Fatalf("IntDefault(%q, %d) = %d; want %d", tc.s, tc.def, got, tc.want)
		}
	}
}

func TestFloatDefault(t *testing.T) {
	cases := []struct {
		s       string
		want    float64
		wantErr bool
	}{
		{"", 999999, false},
		{"50", 50, false},
		{"49.99", 49.99, false},
		{"-1", -1, false},
		{"1e3", 1000, false},
		{"abc", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
		{"-infinity", 0, true},
	}
	for _, tc := range cases {
		got, err := FloatDefault(tc.s, 999999)
		if (err != nil) != tc.wantErr {
			t.Fatalf("FloatDefault(%q) err = %v, wantErr %v", tc.s, err, tc.wantErr)
		}
		if !tc.wantErr && got != tc.want {
			t.Fatalf("FloatDefault(%q) = %v; want %v", tc.s, got, tc.want)
		}
	}
}

func TestBoolDefault(t *testing.T) {
	cases := []struct {
		s       string
		def     bool
		want    bool
		wantErr bool
	}{
		{"", true, true, false},
		{"true", false, true, false},
		{"TRUE", false, true, false},
		{"1", false, true, false},
		{"f", true, false, false},
		{"0", true, false, false},
		{"yes", false, false, true},
		{"maybe", false, false, true},
	}
	for _, tc := range cases {
		got, err := BoolDefault(tc.s, tc.def)
		if (err != nil) != tc.wantErr {
			t.Fatalf("BoolDefault(%q) err = %v, wantErr %v", tc.s, err, tc.wantErr)
		}
		if !tc.wantErr && got != tc.want {
			t.Fatalf("BoolDefault(%q) = %v; want %v", tc.s, got, tc.want)
		}
	}
}
