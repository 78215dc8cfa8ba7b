package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/studymate/internal/common"
	"github.com/dmitrijs2005/studymate/internal/logging"
	"github.com/dmitrijs2005/studymate/internal/models"
	"github.com/dmitrijs2005/studymate/internal/session"
	"github.com/dmitrijs2005/studymate/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	gw       *Gateway
	sessions *session.Store
	creds    *KVCredentialStore
	kv       storage.Store
}

func newEnv(t *testing.T) *env {
	t.Helper()
	kv, db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	codec := session.NewTokenCodec([]byte("k"), time.Hour)
	sessions := session.NewStore(kv, codec, logging.Discard())
	creds := NewKVCredentialStore(kv)
	uow := TxUnitOfWork(kv, func(kv storage.Store) SessionStore {
		return session.NewStore(kv, codec, logging.Discard())
	})
	return &env{
		gw:       NewGateway(creds, sessions, logging.Discard()).WithUnitOfWork(uow),
		sessions: sessions,
		creds:    creds,
		kv:       kv,
	}
}

func TestSignup_CreatesAccountActivityAndSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	u, err := e.gw.Signup(ctx, "Sara", "sara@x.io", []byte("pw1234"), "CS")
	require.NoError(t, err)
	assert.Equal(t, models.User{Name: "Sara", Email: "sara@x.io", Major: "CS"}, *u)

	assert.True(t, e.gw.CheckEmailExists(ctx, "sara@x.io"))

	raw, err := e.kv.Get(ctx, common.ActivityKey("sara@x.io"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"files":[],"plans":[],"tests":0}`, string(raw))

	sess := e.sessions.GetSession(ctx)
	require.NotNil(t, sess)
	assert.Equal(t, *u, *sess)
}

func TestSignup_PasswordNotStoredInPlaintext(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.gw.Signup(ctx, "Sara", "sara@x.io", []byte("pw1234"), "")
	require.NoError(t, err)

	raw, err := e.kv.Get(ctx, common.AccountsKey)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "pw1234")

	acc, err := e.creds.Find(ctx, "sara@x.io")
	require.NoError(t, err)
	assert.NotEmpty(t, acc.Salt)
	assert.NotEmpty(t, acc.Verifier)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.gw.Signup(ctx, "Sara", "sara@x.io", []byte("pw1234"), "")
	require.NoError(t, err)

	_, err = e.gw.Signup(ctx, "Other", "sara@x.io", []byte("zzzzzz"), "")
	require.ErrorIs(t, err, common.ErrDuplicateEmail)

	acc, err := e.creds.Find(ctx, "sara@x.io")
	require.NoError(t, err)
	assert.Equal(t, "Sara", acc.Name)
}

func TestSignup_MissingFields(t *testing.T) {
	e := newEnv(t)
	_, err := e.gw.Signup(context.Background(), "", "a@b.c", []byte("x"), "")
	require.ErrorIs(t, err, common.ErrNoInput)
	_, err = e.gw.Signup(context.Background(), "A", "a@b.c", nil, "")
	require.ErrorIs(t, err, common.ErrNoInput)
}

func TestLogin_RoundTrip(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.gw.Signup(ctx, "Sara", "sara@x.io", []byte("pw1234"), "CS")
	require.NoError(t, err)
	require.NoError(t, e.gw.Logout(ctx))
	assert.Nil(t, e.sessions.GetSession(ctx))

	u, err := e.gw.Login(ctx, "sara@x.io", []byte("pw1234"))
	require.NoError(t, err)
	assert.Equal(t, models.User{Name: "Sara", Email: "sara@x.io", Major: "CS"}, *u)
	assert.Equal(t, *u, *e.sessions.GetSession(ctx))
}

func TestLogin_InvalidLeavesSessionUnchanged(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.gw.Signup(ctx, "Sara", "sara@x.io", []byte("pw1234"), "")
	require.NoError(t, err)
	_, err = e.gw.Signup(ctx, "Omar", "omar@x.io", []byte("secret"), "")
	require.NoError(t, err)

	before := e.sessions.GetSession(ctx)
	require.NotNil(t, before)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "sara@x.io", "nope"},
		{"unknown email", "ghost@x.io", "pw1234"},
		{"email case differs", "Sara@x.io", "pw1234"},
		{"other user's password", "sara@x.io", "secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.gw.Login(ctx, tt.email, []byte(tt.password))
			require.ErrorIs(t, err, common.ErrInvalidCredentials)
			assert.Equal(t, *before, *e.sessions.GetSession(ctx))
		})
	}
}

func TestLogout_KeepsActivity(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.gw.Signup(ctx, "Sara", "sara@x.io", []byte("pw1234"), "")
	require.NoError(t, err)
	_, err = e.sessions.IncrementTestCount(ctx, "sara@x.io")
	require.NoError(t, err)

	require.NoError(t, e.gw.Logout(ctx))
	_, err = e.gw.Login(ctx, "sara@x.io", []byte("pw1234"))
	require.NoError(t, err)

	assert.Equal(t, 1, e.sessions.GetActivity(ctx, "sara@x.io").Tests)
}

func TestResetPassword(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.gw.Signup(ctx, "Sara", "sara@x.io", []byte("pw1234"), "")
	require.NoError(t, err)

	require.ErrorIs(t, e.gw.ResetPassword(ctx, "ghost@x.io", []byte("newpass")), common.ErrEmailNotFound)

	require.NoError(t, e.gw.ResetPassword(ctx, "sara@x.io", []byte("newpass")))

	_, err = e.gw.Login(ctx, "sara@x.io", []byte("pw1234"))
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	_, err = e.gw.Login(ctx, "sara@x.io", []byte("newpass"))
	require.NoError(t, err)
}

func TestUpdateProfile_UpdatesAccountAndSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.gw.Signup(ctx, "Sara", "sara@x.io", []byte("pw1234"), "")
	require.NoError(t, err)

	major := "Physics"
	u, err := e.gw.UpdateProfile(ctx, "sara@x.io", models.ProfileUpdate{Major: &major})
	require.NoError(t, err)
	assert.Equal(t, "Physics", u.Major)

	acc, err := e.creds.Find(ctx, "sara@x.io")
	require.NoError(t, err)
	assert.Equal(t, "Physics", acc.Major)

	require.NoError(t, e.gw.Logout(ctx))
	u, err = e.gw.Login(ctx, "sara@x.io", []byte("pw1234"))
	require.NoError(t, err)
	assert.Equal(t, "Physics", u.Major)
}

func TestUpdateProfile_EmailChangeDoesNotMoveActivity(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.gw.Signup(ctx, "Sara", "sara@x.io", []byte("pw1234"), "")
	require.NoError(t, err)
	_, err = e.sessions.IncrementTestCount(ctx, "sara@x.io")
	require.NoError(t, err)

	newEmail := "sara@new.io"
	u, err := e.gw.UpdateProfile(ctx, "sara@x.io", models.ProfileUpdate{Email: &newEmail})
	require.NoError(t, err)
	assert.Equal(t, newEmail, u.Email)

	assert.Equal(t, 0, e.sessions.GetActivity(ctx, newEmail).Tests)
	assert.Equal(t, 1, e.sessions.GetActivity(ctx, "sara@x.io").Tests)
	assert.False(t, e.gw.CheckEmailExists(ctx, "sara@x.io"))
}

type failingSessions struct {
	saveErr error
	saved   int
}

func (f *failingSessions) SaveSession(context.Context, models.User) error {
	f.saved++
	return f.saveErr
}
func (f *failingSessions) ClearSession(context.Context) error           { return nil }
func (f *failingSessions) EnsureActivity(context.Context, string) error { return nil }
func (f *failingSessions) UpdateProfile(context.Context, string, models.ProfileUpdate) (*models.User, error) {
	return nil, nil
}

func TestLogin_SessionWriteErrorPropagates(t *testing.T) {
	kv, db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	defer db.Close()

	fs := &failingSessions{}
	gw := NewGateway(NewKVCredentialStore(kv), fs, logging.Discard())
	ctx := context.Background()

	_, err = gw.Signup(ctx, "Sara", "sara@x.io", []byte("pw1234"), "")
	require.NoError(t, err)

	fs.saveErr = errors.New("disk full")
	_, err = gw.Login(ctx, "sara@x.io", []byte("pw1234"))
	require.ErrorIs(t, err, fs.saveErr)
}

// failingSetKV rejects writes to one key.
type failingSetKV struct {
	storage.Store
	key string
	err error
}

func (f failingSetKV) Set(ctx context.Context, key string, value []byte) error {
	if key == f.key {
		return f.err
	}
	return f.Store.Set(ctx, key, value)
}

// failingTx wraps each transaction's store in failingSetKV while err is set.
type failingTx struct {
	inner storage.Transactor
	key   string
	err   error
}

func (f *failingTx) InTx(ctx context.Context, fn func(ctx context.Context, kv storage.Store) error) error {
	return f.inner.InTx(ctx, func(ctx context.Context, kv storage.Store) error {
		if f.err != nil {
			kv = failingSetKV{Store: kv, key: f.key, err: f.err}
		}
		return fn(ctx, kv)
	})
}

func TestSignup_FailedWriteLeavesNoAccount(t *testing.T) {
	kv, db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	defer db.Close()

	const email = "sara@x.io"
	codec := session.NewTokenCodec([]byte("k"), time.Hour)
	sessions := session.NewStore(kv, codec, logging.Discard())
	tx := &failingTx{inner: kv, key: common.ActivityKey(email), err: errors.New("disk full")}
	gw := NewGateway(NewKVCredentialStore(kv), sessions, logging.Discard()).
		WithUnitOfWork(TxUnitOfWork(tx, func(kv storage.Store) SessionStore {
			return session.NewStore(kv, codec, logging.Discard())
		}))
	ctx := context.Background()

	_, err = gw.Signup(ctx, "Sara", email, []byte("pw1234"), "")
	require.ErrorIs(t, err, tx.err)

	assert.False(t, gw.CheckEmailExists(ctx, email))
	raw, err := kv.Get(ctx, common.ActivityKey(email))
	require.NoError(t, err)
	assert.Nil(t, raw)
	assert.Nil(t, sessions.GetSession(ctx))

	tx.err = nil
	u, err := gw.Signup(ctx, "Sara", email, []byte("pw1234"), "")
	require.NoError(t, err)
	assert.Equal(t, email, u.Email)
	assert.True(t, gw.CheckEmailExists(ctx, email))
	assert.Equal(t, models.EmptyActivity(), sessions.GetActivity(ctx, email))
}

func TestSignup_SessionWriteFailureRollsBackAccount(t *testing.T) {
	kv, db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	defer db.Close()

	codec := session.NewTokenCodec([]byte("k"), time.Hour)
	tx := &failingTx{inner: kv, key: common.SessionKey, err: errors.New("read-only")}
	gw := NewGateway(NewKVCredentialStore(kv), session.NewStore(kv, codec, logging.Discard()), logging.Discard()).
		WithUnitOfWork(TxUnitOfWork(tx, func(kv storage.Store) SessionStore {
			return session.NewStore(kv, codec, logging.Discard())
		}))
	ctx := context.Background()

	_, err = gw.Signup(ctx, "Sara", "sara@x.io", []byte("pw1234"), "")
	require.ErrorIs(t, err, tx.err)
	assert.False(t, gw.CheckEmailExists(ctx, "sara@x.io"))
}
