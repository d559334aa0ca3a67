package misc

import (
	"bytes"
	"io"
	"net"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func TestReadWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	n, err := WriteFile(path, []byte(`{"RunName":"test"}`))
	if err != nil || n != 18 {
		t.Fatalf("wrote %d bytes: %v", n, err)
	}
	err, got := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"RunName":"test"}` {
		t.Errorf("read %q", got)
	}

	if err, _ := ReadFile(""); err == nil {
		t.Error("empty name accepted")
	}
	if err, _ := ReadFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("missing file read")
	}
	if _, err := WriteFile("", nil); err == nil {
		t.Error("empty name accepted")
	}
}

func TestCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := CreateFile(path, func(w io.Writer) error {
		_, err := w.Write([]byte("a,b\n"))
		return err
	}); err != nil {
		t.Fatal(err)
	}
	err, got := ReadFile(path)
	if err != nil || !bytes.Equal(got, []byte("a,b\n")) {
		t.Errorf("read %q: %v", got, err)
	}

	boom := errors.New("boom")
	if err := CreateFile(path, func(io.Writer) error { return boom }); errors.Cause(err) != boom {
		t.Errorf("expected the fill error, got %v", err)
	}
}

func TestLerp(t *testing.T) {
	if got := LerpFloat64(2, 4, 0.25); got != 2.5 {
		t.Errorf("lerp = %g", got)
	}
}

func TestNetwork(t *testing.T) {
	port, err := GetFreePort()
	if err != nil || port <= 0 {
		t.Fatalf("port %d: %v", port, err)
	}
	if ip := net.ParseIP(GetLocalAddress()); ip == nil || ip.To4() == nil {
		t.Errorf("not an IPv4 address: %q", GetLocalAddress())
	}
}

func TestSeverityString(t *testing.T) {
	if Warning.String() != "Warning" || Debug.String() != "Debug" {
		t.Errorf("got %s, %s", Warning, Debug)
	}
}
