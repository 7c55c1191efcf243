package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestEnableDisable(t *testing.T) {
	t.Cleanup(Disable)

	var buf bytes.Buffer
	Debug("hidden", "k", 1)

	Enable(&buf)
	Debug("visible", "url", "http://rb.test/api")
	if got := buf.String(); !strings.Contains(got, "visible") || !strings.Contains(got, "url=http://rb.test/api") {
		t.Errorf("debug record = %q", got)
	}
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("record logged before Enable: %q", buf.String())
	}

	buf.Reset()
	Disable()
	Debug("dropped")
	if buf.Len() != 0 {
		t.Errorf("record logged after Disable: %q", buf.String())
	}
}
