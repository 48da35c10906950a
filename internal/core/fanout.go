package core

// Target is one recipient of a room broadcast.
type Target struct {
	ID   ConnID
	Conn SignalConnection
}

// PublishResult reports delivery stats/backpressure to the orchestrator.
type PublishResult struct {
	SentTo  int
	Dropped []ConnID
}

// Fanout queues the same frame on every target. Frames queued by one call
// keep their order relative to earlier calls on the same connection.
func Fanout(targets []Target, f Frame) PublishResult {
	res := PublishResult{}
	for _, t := range targets {
		if err := t.Conn.TrySend(f); err != nil {
			res.Dropped = append(res.Dropped, t.ID)
			continue
		}
		res.SentTo++
	}
	return res
}
