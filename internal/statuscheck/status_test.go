package statuscheck

import (
	"context"
	"errors"
	"testing"
)

func TestCheckUploadDirWritable(t *testing.T) {
	c := New(Options{UploadDir: t.TempDir()})
	st := c.checkUploadDir()
	if !st.OK || st.Message != "Writable" {
		t.Errorf("status = %+v, want writable", st)
	}
}

func TestCheckUploadDirMissing(t *testing.T) {
	c := New(Options{UploadDir: "/nonexistent/dir/for/test"})
	if st := c.checkUploadDir(); st.OK {
		t.Errorf("status = %+v, want not OK for missing dir", st)
	}
}

func TestCheckS3Disabled(t *testing.T) {
	c := New(Options{UploadDir: t.TempDir()})
	st := c.checkS3(context.Background())
	if !st.OK || st.Message != "Disabled" {
		t.Errorf("status = %+v, want OK/Disabled without a bucket", st)
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string { return "i/o timeout" }
func (timeoutErr) Timeout() bool { return true }

func TestTrimError(t *testing.T) {
	if got := trimError(nil); got != "" {
		t.Errorf("trimError(nil) = %q", got)
	}
	if got := trimError(timeoutErr{}); got != "timeout" {
		t.Errorf("trimError(timeout) = %q", got)
	}
	long := errors.New(string(make([]byte, 300)))
	if got := trimError(long); len(got) != 120 {
		t.Errorf("trimError(long) length = %d, want 120", len(got))
	}
}
