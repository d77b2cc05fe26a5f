package storage

import "testing"

func TestParseURI(t *testing.T) {
	cases := []struct {
		uri    string
		bucket string
		key    string
		ok     bool
	}{
		{"s3://designs/jobs/a.pdf", "designs", "jobs/a.pdf", true},
		{"s3://designs/a", "designs", "a", true},
		{"s3://designs/", "", "", false},
		{"s3:///key", "", "", false},
		{"s3://designs", "", "", false},
		{"https://example.com/a.pdf", "", "", false},
		{"/local/path.pdf", "", "", false},
		{"", "", "", false},
	}
	for _, tc := range cases {
		bucket, key, ok := ParseURI(tc.uri)
		if bucket != tc.bucket || key != tc.key || ok != tc.ok {
			t.Errorf("ParseURI(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tc.uri, bucket, key, ok, tc.bucket, tc.key, tc.ok)
		}
	}
}
