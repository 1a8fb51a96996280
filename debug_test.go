package kinetic

import (
	"bytes"
	"strings"
	"testing"

	"github.com/soninewmedia/kinetic/internal/log"
)

func captureLog(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.InitWriter(&buf, level)
	t.Cleanup(func() { log.Init("info") })
	return &buf
}

func TestDebugCheckDisposedMessage(t *testing.T) {
	n := NewContainer("gone")
	n.Dispose()
	defer func() {
		r := recover()
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "AddChild") || !strings.Contains(msg, `"gone"`) {
			t.Errorf("panic = %v", r)
		}
	}()
	debugCheckDisposed(n, "AddChild")
}

func TestDebugCheckDisposedLiveNode(t *testing.T) {
	debugCheckDisposed(NewContainer("live"), "AddChild")
}

func TestDebugTreeDepthWarning(t *testing.T) {
	buf := captureLog(t, "warn")

	n := NewContainer("n0")
	for i := 0; i < debugMaxTreeDepth; i++ {
		c := NewContainer("deep")
		n.AddChild(c)
		n = c
	}
	debugCheckTreeDepth(n)
	if !strings.Contains(buf.String(), "tree depth exceeds threshold") {
		t.Errorf("expected depth warning, got %q", buf.String())
	}
}

func TestDebugChildCountWarning(t *testing.T) {
	buf := captureLog(t, "warn")

	parent := NewContainer("wide")
	for i := 0; i <= debugMaxChildCount; i++ {
		parent.children = append(parent.children, NewContainer(""))
	}
	debugCheckChildCount(parent)
	if !strings.Contains(buf.String(), "child count exceeds threshold") {
		t.Errorf("expected child count warning, got %q", buf.String())
	}
}

func TestDebugFrameLog(t *testing.T) {
	buf := captureLog(t, "debug")

	e := newTestEngine()
	e.RegisterElement("a", StaticElement(Rect{Width: 10, Height: 10}))
	e.Update(testDT)
	if buf.Len() != 0 {
		t.Fatalf("frame stats logged without debug mode: %q", buf.String())
	}

	e.SetDebugMode(true)
	defer e.SetDebugMode(false)
	e.Update(testDT)

	out := buf.String()
	for _, want := range []string{"msg=frame", "elements=1", "nodes="} {
		if !strings.Contains(out, want) {
			t.Errorf("debug log missing %q: %q", want, out)
		}
	}
}

func TestFrameStatsTotal(t *testing.T) {
	s := frameStats{inputTime: 1, readTime: 2, deriveTime: 3, sceneTime: 4}
	if s.total() != 10 {
		t.Errorf("total = %v, want 10", s.total())
	}
}
