package domain

// Collection names used by the example wiring.
const (
	CollectionUsers    = "users"
	CollectionPosts    = "posts"
	CollectionSettings = "settings"
)
