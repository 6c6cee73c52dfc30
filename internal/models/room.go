package models

// RoomID derives the deterministic identifier for the direct-message room
// between two users. The participant IDs are sorted lexicographically before
// joining, so RoomID(a, b) == RoomID(b, a) and both sides of a conversation
// land in the same room regardless of who opened it first.
func RoomID(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return userA + "_" + userB
}
