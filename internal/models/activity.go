package models

// ActivityFeedCapacity bounds the dashboard activity feed.
const ActivityFeedCapacity = 5

// ActivityAges labels feed entries by position, newest first.
var ActivityAges = []string{"Just now", "2 min ago", "5 min ago", "8 min ago", "12 min ago"}

// Activity is one entry of the live activity feed.
type Activity struct {
	Age  string `json:"age" yaml:"age"`
	Text string `json:"text" yaml:"text"`
}

// SummaryCapacity is the number of lines the live summary grows to.
const SummaryCapacity = 8
