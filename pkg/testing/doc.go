// Package testing provides a render testing harness for vdom descriptors.
//
// # Quick Start
//
// Create a tester, render a tree, and make assertions:
//
//	func TestCounter(t *testing.T) {
//	    tester := vdomtest.NewTesterWithT(t)
//	    tester.Render(core.H(Counter, nil))
//
//	    // Find nodes
//	    button := tester.Find(vdomtest.ByTag("button")).First()
//
//	    // Dispatch events through the host listeners
//	    tester.Click(vdomtest.ByTag("button"))
//
//	    // Assert on the host tree
//	    if !tester.Find(vdomtest.ByText("1")).Exists() {
//	        t.Errorf("html = %s", tester.HTML())
//	    }
//	}
//
// The tester renders into an in-memory htmlhost document through a
// recording adapter, so tests can inspect both the resulting markup and the
// exact host operations a render issued.
//
// # Snapshot Testing
//
// Capture and compare the host tree and op log against golden files:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/counter.snapshot.yaml")
//
// Update snapshots with:
//
//	VDOM_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import vdomtest "github.com/go-drift/vdom/pkg/testing"
package testing
