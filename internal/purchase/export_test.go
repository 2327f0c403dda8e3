package purchase

// Session exposes the unexported session lookup to external tests.
func (m *Manager) Session(userID int64) *Session { return m.session(userID) }
