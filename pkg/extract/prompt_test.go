package extract

import (
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	std := BuildPrompt("Go concurrency", false)
	res := BuildPrompt("Go concurrency", true)

	for _, p := range []string{std, res} {
		if !strings.HasSuffix(p, "\n\nText: Go concurrency") {
			t.Errorf("prompt should end with the input text:\n%s", p)
		}
		if !strings.Contains(p, "Agentic AI Development Methodologies") {
			t.Error("prompt is missing the example structure")
		}
	}
	if !strings.Contains(std, "(15-25 total nodes)") || !strings.Contains(std, "3-5 main categories") {
		t.Errorf("standard prompt has wrong sizes:\n%s", std)
	}
	if !strings.Contains(res, "(20-30 total nodes)") || !strings.Contains(res, "4-6 main categories") {
		t.Errorf("research prompt has wrong sizes:\n%s", res)
	}
	if !strings.HasPrefix(res, "Create a comprehensive structured mind map") {
		t.Errorf("research prompt intro = %q", res[:40])
	}
}
