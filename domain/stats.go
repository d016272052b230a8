package domain

// Stats holds the counters displayed next to the feed.
// They are tracked independently of the message list and only ever move forward.
type Stats struct {
	TotalMessages int
	UniqueUsers   int
	ActiveNow     int
}
