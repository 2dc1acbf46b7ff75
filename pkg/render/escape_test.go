package render

import "testing"

func TestEscape(t *testing.T) {
	if got := escapeHTML("a<b>&\"'"); got != "a&lt;b&gt;&amp;&quot;&#39;" {
		t.Errorf("escapeHTML = %q", got)
	}
	if got := escapeAttr("x\ty\r\n"); got != "x&#9;y&#13;&#10;" {
		t.Errorf("escapeAttr = %q", got)
	}
}
