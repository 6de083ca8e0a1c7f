package main

import "testing"

func TestParseBlockSize(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"20", 20 << 20},
		{"1", 1 << 20},
		{"2047", 2047 << 20},
		{"1k", 1 << 10},
		{"512k", 512 << 10},
	}
	for _, tc := range tests {
		got, err := parseBlockSize(tc.s)
		if err != nil {
			t.Errorf("parseBlockSize(%q) error %s", tc.s, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseBlockSize(%q) = %d; want %d",
				tc.s, got, tc.want)
		}
	}
	for _, s := range []string{"", "0", "-1", "k", "0k", "x", "2048",
		"99999999999999999999"} {
		if _, err := parseBlockSize(s); err == nil {
			t.Errorf("parseBlockSize(%q) succeeded", s)
		}
	}
}

func TestTargetName(t *testing.T) {
	c := &options{}
	d := &options{decompress: true}
	tests := []struct {
		path string
		opts *options
		want string
	}{
		{"file", c, "file.bcm"},
		{"file.txt", c, "file.txt.bcm"},
		{"file.bcm", d, "file"},
		{"file.txt", d, "file.txt.out"},
		{".bcm", d, ".bcm.out"},
	}
	for _, tc := range tests {
		if got := targetName(tc.path, tc.opts); got != tc.want {
			t.Errorf("targetName(%q) = %q; want %q",
				tc.path, got, tc.want)
		}
	}
}
