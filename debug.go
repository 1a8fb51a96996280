package kinetic

import (
	"fmt"
	"time"

	"github.com/soninewmedia/kinetic/internal/log"
)

// frameStats holds per-frame phase timings and counts.
// Only populated when Engine.debug is true.
type frameStats struct {
	inputTime  time.Duration
	readTime   time.Duration
	deriveTime time.Duration
	sceneTime  time.Duration
	registry   RegistryStats
	nodes      int
	trackers   int
}

func (s frameStats) total() time.Duration {
	return s.inputTime + s.readTime + s.deriveTime + s.sceneTime
}

// debugLog writes phase timings and counts at debug level.
func (e *Engine) debugLog(stats frameStats) {
	if !e.debug {
		return
	}
	log.Debug("frame",
		"frame", e.frame,
		"input", stats.inputTime,
		"read", stats.readTime,
		"derive", stats.deriveTime,
		"scene", stats.sceneTime,
		"total", stats.total(),
	)
	log.Debug("frame counts",
		"elements", stats.registry.Entries,
		"visible", stats.registry.Visible,
		"reads", stats.registry.Reads,
		"dropped", stats.registry.Dropped,
		"trackers", stats.trackers,
		"nodes", stats.nodes,
	)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("kinetic debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		log.Warn("tree depth exceeds threshold", "depth", depth, "max", debugMaxTreeDepth, "node", n.Name)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		log.Warn("child count exceeds threshold", "node", n.Name, "children", len(n.children), "max", debugMaxChildCount)
	}
}
