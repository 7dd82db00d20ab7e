package models

// Session is the client-side authentication state persisted across restarts.
type Session struct {
	UserID string `json:"userId"`
	Login  string `json:"login"`
	Token  string `json:"token"`
}

// IsValid reports whether the session carries enough data to talk to the
// remote store.
func (s Session) IsValid() bool {
	return s.UserID != "" && s.Token != ""
}
