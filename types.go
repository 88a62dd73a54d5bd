package authturso

import "time"

// User is an application user. EmailVerified is nil until the user's email
// has been confirmed.
type User struct {
	ID            string
	Name          string
	Email         string
	EmailVerified *time.Time
	Image         *string
}

// Account links a User to an external provider account, identified by the
// (Provider, ProviderAccountID) pair. Token fields are whatever the provider
// returned and may all be absent.
type Account struct {
	ID                string
	UserID            string
	Type              string
	Provider          string
	ProviderAccountID string
	RefreshToken      *string
	AccessToken       *string
	ExpiresAt         *int64
	TokenType         *string
	Scope             *string
	IDToken           *string
	SessionState      *string
}

// Session is an active login session, looked up by its unique SessionToken.
type Session struct {
	ID           string
	SessionToken string
	UserID       string
	Expires      time.Time
}

// SessionAndUser pairs a session with the user it belongs to.
type SessionAndUser struct {
	User    User
	Session Session
}

// VerificationToken is a single-use credential keyed by (Identifier, Token).
type VerificationToken struct {
	Identifier string
	Token      string
	Expires    time.Time
}

// Field is a tri-state patch value: left as its zero value it means "not
// supplied, leave the column unchanged"; Null means "explicitly clear the
// column"; Set carries a new value.
type Field[T any] struct {
	value   T
	defined bool
	null    bool
}

// Set returns a Field carrying v.
func Set[T any](v T) Field[T] {
	return Field[T]{value: v, defined: true}
}

// Null returns a Field that clears the column.
func Null[T any]() Field[T] {
	return Field[T]{defined: true, null: true}
}

// Defined reports whether the field was supplied at all, including as an
// explicit null.
func (f Field[T]) Defined() bool {
	return f.defined
}

// Value returns the carried value; ok is false when the field is unset or
// explicitly null.
func (f Field[T]) Value() (T, bool) {
	return f.value, f.defined && !f.null
}

// UserPatch selects the User fields to change. ID identifies the row and is
// never written.
type UserPatch struct {
	ID            string
	Name          Field[string]
	Email         Field[string]
	EmailVerified Field[time.Time]
	Image         Field[string]
}

func (p UserPatch) assignments() []assignment {
	var out []assignment
	out = appendString(out, "name", p.Name)
	out = appendString(out, "email", p.Email)
	out = appendTime(out, "emailVerified", p.EmailVerified)
	out = appendString(out, "image", p.Image)
	return out
}

// SessionPatch selects the Session fields to change. SessionToken identifies
// the row and is never written.
type SessionPatch struct {
	SessionToken string
	UserID       Field[string]
	Expires      Field[time.Time]
}

func (p SessionPatch) assignments() []assignment {
	var out []assignment
	out = appendString(out, "userId", p.UserID)
	out = appendTime(out, "expires", p.Expires)
	return out
}

func appendString(out []assignment, column string, f Field[string]) []assignment {
	if !f.Defined() {
		return out
	}
	if v, ok := f.Value(); ok {
		return append(out, assignment{column, v})
	}
	return append(out, assignment{column, nil})
}

func appendTime(out []assignment, column string, f Field[time.Time]) []assignment {
	if !f.Defined() {
		return out
	}
	if v, ok := f.Value(); ok {
		return append(out, assignment{column, formatTime(v)})
	}
	return append(out, assignment{column, nil})
}
