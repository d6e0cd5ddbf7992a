package dto

// ChannelStats is the owner-facing rollup for one channel. All four
// aggregates come back from a single read pass.
type ChannelStats struct {
	TotalVideos      int64 `json:"total_videos"`
	TotalViews       int64 `json:"total_views"`
	TotalLikes       int64 `json:"total_likes"`
	TotalSubscribers int64 `json:"total_subscribers"`
}
