package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treeflow/pkg/decision"
	"github.com/matzehuels/treeflow/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Loaded tree.json: 5 nodes, 4 edges (3ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

func fmtTreeStats(path string, t decision.Tree) string {
	return fmt.Sprintf("Loaded %s: %d nodes, %d edges", filepath.Base(path), len(t.Nodes), len(t.Edges))
}

// =============================================================================
// Canvas Hooks
// =============================================================================

// logHooks reports canvas gestures as debug log entries.
type logHooks struct {
	observability.NoopCanvasHooks
	logger *log.Logger
}

func newLogHooks(l *log.Logger) observability.CanvasHooks {
	return logHooks{logger: l.WithPrefix("canvas")}
}

func (h logHooks) OnDragStart(nodeID string) { h.logger.Debug("drag start", "node", nodeID) }

func (h logHooks) OnDragEnd(nodeID string) { h.logger.Debug("drag end", "node", nodeID) }

func (h logHooks) OnConnectStart(nodeID, handleID string) {
	h.logger.Debug("connect start", "node", nodeID, "handle", handleID)
}

func (h logHooks) OnConnect(source, sourceHandle, target, targetHandle string) {
	h.logger.Debug("connect", "source", source, "sourceHandle", sourceHandle, "target", target, "targetHandle", targetHandle)
}

func (h logHooks) OnConnectAbort(nodeID, handleID, reason string) {
	h.logger.Debug("connect aborted", "node", nodeID, "handle", handleID, "reason", reason)
}

func (h logHooks) OnEdgeSkipped(edgeID string) { h.logger.Debug("edge skipped", "edge", edgeID) }
