package authturso

import "context"

// Adapter persists users, sessions, linked accounts and verification tokens
// through a Client. Every method issues exactly one parameterized statement;
// there is no shared state between calls, so an Adapter is safe for
// concurrent use.
//
// The backing store is required to have the following schema, which can be
// extended further:
//
// CREATE TABLE User (
//     id TEXT PRIMARY KEY,
//     name TEXT,
//     email TEXT UNIQUE,
//     emailVerified TEXT,
//     image TEXT
// );
//
// CREATE TABLE Account (
//     id TEXT PRIMARY KEY,
//     userId TEXT NOT NULL REFERENCES User(id) ON DELETE CASCADE,
//     type TEXT NOT NULL,
//     provider TEXT NOT NULL,
//     providerAccountId TEXT NOT NULL,
//     refresh_token TEXT,
//     access_token TEXT,
//     expires_at INTEGER,
//     token_type TEXT,
//     scope TEXT,
//     id_token TEXT,
//     session_state TEXT,
//     UNIQUE (provider, providerAccountId)
// );
//
// CREATE TABLE Session (
//     id TEXT PRIMARY KEY,
//     sessionToken TEXT NOT NULL UNIQUE,
//     userId TEXT NOT NULL REFERENCES User(id) ON DELETE CASCADE,
//     expires TEXT NOT NULL
// );
//
// CREATE TABLE VerificationToken (
//     identifier TEXT NOT NULL,
//     token TEXT NOT NULL,
//     expires TEXT NOT NULL,
//     PRIMARY KEY (identifier, token)
// );
type Adapter struct {
	client  Client
	options Options
}

func New(client Client, options ...Options) *Adapter {
	if len(options) > 1 {
		panic("more than one Options entries provided")
	}

	var opts Options
	if len(options) == 1 {
		opts = options[0]
	}

	return &Adapter{
		client:  client,
		options: opts.withDefaults(),
	}
}

func (a *Adapter) execute(ctx context.Context, op string, stmt Stmt) (*ResultSet, error) {
	a.options.Logger.Debug("executing statement", "op", op)

	// Store failures propagate unchanged, never wrapped or retried.
	return a.client.Execute(ctx, stmt)
}

// CreateUser inserts a user and returns the stored row. An id is generated
// when the caller left it empty.
func (a *Adapter) CreateUser(ctx context.Context, user User) (*User, error) {
	if user.ID == "" {
		user.ID = a.options.GenerateID()
	}

	args := map[string]any{
		"id":            user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"emailVerified": user.EmailVerified,
		"image":         stringArg(user.Image),
	}
	serializeTime(args, "emailVerified")

	res, err := a.execute(ctx, "createUser", Stmt{
		SQL: `INSERT INTO User (id, name, email, emailVerified, image)
		VALUES (:id, :name, :email, :emailVerified, :image)
		RETURNING *`,
		NamedArgs: args,
	})
	if err != nil {
		return nil, err
	}

	return userFromRow(mapOneRow(res))
}

// GetUser returns the user with the given id, or nil when there is none.
func (a *Adapter) GetUser(ctx context.Context, id string) (*User, error) {
	res, err := a.execute(ctx, "getUser", Stmt{
		SQL:  `SELECT * FROM User WHERE id = ? LIMIT 1`,
		Args: []any{id},
	})
	if err != nil {
		return nil, err
	}

	return userFromRow(mapOneRow(res))
}

// GetUserByEmail returns the user with the given email, or nil.
func (a *Adapter) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	res, err := a.execute(ctx, "getUserByEmail", Stmt{
		SQL:  `SELECT * FROM User WHERE email = ? LIMIT 1`,
		Args: []any{email},
	})
	if err != nil {
		return nil, err
	}

	return userFromRow(mapOneRow(res))
}

// GetUserByAccount returns the user linked to the (provider,
// providerAccountId) pair, or nil.
func (a *Adapter) GetUserByAccount(ctx context.Context, provider, providerAccountID string) (*User, error) {
	res, err := a.execute(ctx, "getUserByAccount", Stmt{
		SQL: `SELECT User.id, name, email, emailVerified, image
		FROM Account
		INNER JOIN User ON Account.userId = User.id
		WHERE provider = ? AND providerAccountId = ?`,
		Args: []any{provider, providerAccountID},
	})
	if err != nil {
		return nil, err
	}

	return userFromRow(mapOneRow(res))
}

// UpdateUser writes only the fields supplied in patch and returns the stored
// row, or nil when no user matched. A patch with no supplied fields is
// ErrEmptyUpdate.
func (a *Adapter) UpdateUser(ctx context.Context, patch UserPatch) (*User, error) {
	fragment, args, err := updateFragment(patch.assignments(), "id")
	if err != nil {
		return nil, err
	}
	args["id"] = patch.ID

	res, err := a.execute(ctx, "updateUser", Stmt{
		SQL:       `UPDATE User SET ` + fragment + ` WHERE id = :id RETURNING *`,
		NamedArgs: args,
	})
	if err != nil {
		return nil, err
	}

	return userFromRow(mapOneRow(res))
}

// DeleteUser removes the user with the given id and returns the row that
// existed before deletion, or nil when nothing matched.
func (a *Adapter) DeleteUser(ctx context.Context, id string) (*User, error) {
	res, err := a.execute(ctx, "deleteUser", Stmt{
		SQL:  `DELETE FROM User WHERE id = ? RETURNING *`,
		Args: []any{id},
	})
	if err != nil {
		return nil, err
	}

	return userFromRow(mapOneRow(res))
}

// LinkAccount inserts an account row linking account.UserID to the external
// provider account. The row id is always generated.
func (a *Adapter) LinkAccount(ctx context.Context, account Account) (*Account, error) {
	account.ID = a.options.GenerateID()

	res, err := a.execute(ctx, "linkAccount", Stmt{
		SQL: `INSERT INTO Account
		(id, userId, type, provider, providerAccountId,
		 refresh_token, access_token, expires_at, token_type, scope,
		 id_token, session_state)
		VALUES (:id, :userId, :type, :provider, :providerAccountId,
		 :refresh_token, :access_token, :expires_at, :token_type, :scope,
		 :id_token, :session_state)
		RETURNING *`,
		NamedArgs: map[string]any{
			"id":                account.ID,
			"userId":            account.UserID,
			"type":              account.Type,
			"provider":          account.Provider,
			"providerAccountId": account.ProviderAccountID,
			"refresh_token":     stringArg(account.RefreshToken),
			"access_token":      stringArg(account.AccessToken),
			"expires_at":        int64Arg(account.ExpiresAt),
			"token_type":        stringArg(account.TokenType),
			"scope":             stringArg(account.Scope),
			"id_token":          stringArg(account.IDToken),
			"session_state":     stringArg(account.SessionState),
		},
	})
	if err != nil {
		return nil, err
	}

	return accountFromRow(mapOneRow(res)), nil
}

// UnlinkAccount removes the account identified by the (provider,
// providerAccountId) pair and returns the row that existed before deletion,
// or nil.
func (a *Adapter) UnlinkAccount(ctx context.Context, provider, providerAccountID string) (*Account, error) {
	res, err := a.execute(ctx, "unlinkAccount", Stmt{
		SQL:  `DELETE FROM Account WHERE provider = ? AND providerAccountId = ? RETURNING *`,
		Args: []any{provider, providerAccountID},
	})
	if err != nil {
		return nil, err
	}

	return accountFromRow(mapOneRow(res)), nil
}

// CreateSession inserts a session with a generated id and returns the stored
// row.
func (a *Adapter) CreateSession(ctx context.Context, session Session) (*Session, error) {
	session.ID = a.options.GenerateID()

	args := map[string]any{
		"id":           session.ID,
		"expires":      session.Expires,
		"sessionToken": session.SessionToken,
		"userId":       session.UserID,
	}
	serializeTime(args, "expires")

	res, err := a.execute(ctx, "createSession", Stmt{
		SQL: `INSERT INTO Session (id, expires, sessionToken, userId)
		VALUES (:id, :expires, :sessionToken, :userId)
		RETURNING *`,
		NamedArgs: args,
	})
	if err != nil {
		return nil, err
	}

	return sessionFromRow(mapOneRow(res))
}

// GetSessionAndUser returns the session with the given token together with
// its user, or nil as a whole when no session matched.
func (a *Adapter) GetSessionAndUser(ctx context.Context, sessionToken string) (*SessionAndUser, error) {
	res, err := a.execute(ctx, "getSessionAndUser", Stmt{
		SQL: `SELECT
			Session.id AS s_id,
			expires,
			sessionToken,
			userId,
			name,
			email,
			emailVerified,
			image
		FROM Session
		INNER JOIN User ON Session.userId = User.id
		WHERE sessionToken = ?`,
		Args: []any{sessionToken},
	})
	if err != nil {
		return nil, err
	}

	row := mapOneRow(res)
	if row == nil {
		return nil, nil
	}

	if _, err := deserializeTime(row, "expires"); err != nil {
		return nil, err
	}
	if _, err := deserializeTime(row, "emailVerified"); err != nil {
		return nil, err
	}

	return &SessionAndUser{
		User: User{
			ID:            text(row["userId"]),
			Name:          text(row["name"]),
			Email:         text(row["email"]),
			EmailVerified: timePtr(row["emailVerified"]),
			Image:         textPtr(row["image"]),
		},
		Session: Session{
			ID:           text(row["s_id"]),
			SessionToken: text(row["sessionToken"]),
			UserID:       text(row["userId"]),
			Expires:      timeValue(row["expires"]),
		},
	}, nil
}

// UpdateSession writes only the fields supplied in patch and returns the
// stored row, or nil when no session matched.
func (a *Adapter) UpdateSession(ctx context.Context, patch SessionPatch) (*Session, error) {
	fragment, args, err := updateFragment(patch.assignments(), "sessionToken")
	if err != nil {
		return nil, err
	}
	args["sessionToken"] = patch.SessionToken

	res, err := a.execute(ctx, "updateSession", Stmt{
		SQL:       `UPDATE Session SET ` + fragment + ` WHERE sessionToken = :sessionToken RETURNING *`,
		NamedArgs: args,
	})
	if err != nil {
		return nil, err
	}

	return sessionFromRow(mapOneRow(res))
}

// DeleteSession removes the session with the given token and returns the row
// that existed before deletion, or nil.
func (a *Adapter) DeleteSession(ctx context.Context, sessionToken string) (*Session, error) {
	res, err := a.execute(ctx, "deleteSession", Stmt{
		SQL:  `DELETE FROM Session WHERE sessionToken = ? RETURNING *`,
		Args: []any{sessionToken},
	})
	if err != nil {
		return nil, err
	}

	return sessionFromRow(mapOneRow(res))
}

// CreateVerificationToken inserts a verification token and returns it.
func (a *Adapter) CreateVerificationToken(ctx context.Context, token VerificationToken) (*VerificationToken, error) {
	_, err := a.execute(ctx, "createVerificationToken", Stmt{
		SQL:  `INSERT INTO VerificationToken (identifier, token, expires) VALUES (?, ?, ?)`,
		Args: []any{token.Identifier, token.Token, formatTime(token.Expires)},
	})
	if err != nil {
		return nil, err
	}

	return &token, nil
}

// UseVerificationToken consumes the token identified by (identifier, token):
// the first call deletes and returns it, any further call returns nil.
func (a *Adapter) UseVerificationToken(ctx context.Context, identifier, token string) (*VerificationToken, error) {
	res, err := a.execute(ctx, "useVerificationToken", Stmt{
		SQL:  `DELETE FROM VerificationToken WHERE identifier = ? AND token = ? RETURNING *`,
		Args: []any{identifier, token},
	})
	if err != nil {
		return nil, err
	}

	return verificationTokenFromRow(mapOneRow(res))
}

func userFromRow(row map[string]any) (*User, error) {
	if row == nil {
		return nil, nil
	}

	if _, err := deserializeTime(row, "emailVerified"); err != nil {
		return nil, err
	}

	return &User{
		ID:            text(row["id"]),
		Name:          text(row["name"]),
		Email:         text(row["email"]),
		EmailVerified: timePtr(row["emailVerified"]),
		Image:         textPtr(row["image"]),
	}, nil
}

func accountFromRow(row map[string]any) *Account {
	if row == nil {
		return nil
	}

	return &Account{
		ID:                text(row["id"]),
		UserID:            text(row["userId"]),
		Type:              text(row["type"]),
		Provider:          text(row["provider"]),
		ProviderAccountID: text(row["providerAccountId"]),
		RefreshToken:      textPtr(row["refresh_token"]),
		AccessToken:       textPtr(row["access_token"]),
		ExpiresAt:         int64Ptr(row["expires_at"]),
		TokenType:         textPtr(row["token_type"]),
		Scope:             textPtr(row["scope"]),
		IDToken:           textPtr(row["id_token"]),
		SessionState:      textPtr(row["session_state"]),
	}
}

func sessionFromRow(row map[string]any) (*Session, error) {
	if row == nil {
		return nil, nil
	}

	if _, err := deserializeTime(row, "expires"); err != nil {
		return nil, err
	}

	return &Session{
		ID:           text(row["id"]),
		SessionToken: text(row["sessionToken"]),
		UserID:       text(row["userId"]),
		Expires:      timeValue(row["expires"]),
	}, nil
}

func verificationTokenFromRow(row map[string]any) (*VerificationToken, error) {
	if row == nil {
		return nil, nil
	}

	if _, err := deserializeTime(row, "expires"); err != nil {
		return nil, err
	}

	return &VerificationToken{
		Identifier: text(row["identifier"]),
		Token:      text(row["token"]),
		Expires:    timeValue(row["expires"]),
	}, nil
}

func stringArg(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func int64Arg(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
