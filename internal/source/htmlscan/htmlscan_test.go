package htmlscan_test

import (
	"testing"

	"github.com/goalfeed/goal-feed/internal/source/htmlscan"
)

const doc = `<html><body>
<div id="row" class="match card-link">
  <span> 18:30 </span>
  <a href="/stream/stream-42.php">Watch <b>now</b></a>
</div>
<p>short</p>
<script id="__NEXT_DATA__" type="application/json">{"x":1}</script>
</body></html>`

func TestFlatTextCollapses(t *testing.T) {
	root, err := htmlscan.Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	row := htmlscan.ByID(root, "row")
	if row == nil {
		t.Fatal("ByID found nothing")
	}
	if got := htmlscan.FlatText(row); got != "18:30 Watch now" {
		t.Fatalf("FlatText = %q", got)
	}
}

func TestElementsAndFirst(t *testing.T) {
	root, _ := htmlscan.Parse([]byte(doc))
	blocks := htmlscan.Elements(root, "div", "p")
	if len(blocks) != 2 {
		t.Fatalf("Elements found %d blocks, want 2", len(blocks))
	}
	a := htmlscan.First(blocks[0], "a")
	if a == nil || htmlscan.Attr(a, "href") != "/stream/stream-42.php" {
		t.Fatalf("First anchor wrong: %v", a)
	}
}

func TestHasClass(t *testing.T) {
	root, _ := htmlscan.Parse([]byte(doc))
	row := htmlscan.ByID(root, "row")
	if !htmlscan.HasClass(row, "card-link") || htmlscan.HasClass(row, "card") {
		t.Fatal("HasClass token matching broken")
	}
}

func TestScriptText(t *testing.T) {
	root, _ := htmlscan.Parse([]byte(doc))
	script := htmlscan.ByID(root, "__NEXT_DATA__")
	if script == nil {
		t.Fatal("script by id not found")
	}
	if got := htmlscan.FlatText(script); got != `{"x":1}` {
		t.Fatalf("script text = %q", got)
	}
}
