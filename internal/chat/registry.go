package chat

// session binds a stable user identity to the transport connection it last
// joined on. The socket id changes on every reconnect; the user id does not.
type session struct {
	userID   string
	username string
	socketID string
}

// Registry tracks at most one live session per user id. It is not
// synchronized; the Hub serializes all access behind its own lock.
type Registry struct {
	sessions map[string]*session // keyed by userID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*session),
	}
}

// Upsert inserts or replaces the entry for userID. A rejoin from a new
// connection silently supersedes the previous socket association; the old
// connection is not closed here.
func (r *Registry) Upsert(userID, username, socketID string) {
	r.sessions[userID] = &session{
		userID:   userID,
		username: username,
		socketID: socketID,
	}
}

// RemoveBySocket removes the entry whose socket id matches, if any, and
// reports the removed user. The scan is linear; the registry holds tens to
// low hundreds of entries. A connection that never joined matches nothing.
func (r *Registry) RemoveBySocket(socketID string) (User, bool) {
	for userID, s := range r.sessions {
		if s.socketID == socketID {
			delete(r.sessions, userID)
			return User{UserID: s.userID, Username: s.username}, true
		}
	}
	return User{}, false
}

// List returns a snapshot of all registered users. Ordering follows map
// iteration and is not stable; callers must not depend on it.
func (r *Registry) List() []User {
	users := make([]User, 0, len(r.sessions))
	for _, s := range r.sessions {
		users = append(users, User{UserID: s.userID, Username: s.username})
	}
	return users
}

// Len reports the number of registered users.
func (r *Registry) Len() int {
	return len(r.sessions)
}
