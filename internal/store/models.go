package store

// Group is a scheduling group. Owned and written by the app backend; this
// service only reads it.
type Group struct {
	ID      string   `firestore:"-"`
	Name    string   `firestore:"name"`
	Members []string `firestore:"members"`
}

// DisplayName returns the group name, or a placeholder for unnamed groups.
func (g Group) DisplayName() string {
	if g.Name == "" {
		return "Unnamed Group"
	}
	return g.Name
}

// User is an app user with their registered push-delivery tokens. Tokens are
// opaque to this service; the same token may appear under several users.
type User struct {
	ID     string   `firestore:"-"`
	Nick   string   `firestore:"nick"`
	Tokens []string `firestore:"fcmTokens"`
}

// DisplayName returns the user's nick, or a placeholder when unset.
func (u User) DisplayName() string {
	if u.Nick == "" {
		return "A member"
	}
	return u.Nick
}

// classDoc is the stored shape of a recurring class meeting.
type classDoc struct {
	DayOfWeek int    `firestore:"dayOfWeek"`
	EndTime   string `firestore:"endTime"`
}
