package parameter

const (
	// FeedListenAddr is the default TCP address for the landmark feed
	FeedListenAddr = "127.0.0.1:7711"
)
