package port

type GreetingStore interface {
	// ShouldGreet reports true exactly once per user and records the user as greeted.
	ShouldGreet(userID int64) bool
	MarkGreeted(userID int64)
}
