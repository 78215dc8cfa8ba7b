package common

// Keys of the durable key/value store. Activity records are stored per
// account under ActivityKeyPrefix + email.
const (
	AccountsKey       = "studymate.accounts"
	SessionKey        = "studymate.session"
	SecretKey         = "studymate.secret"
	ActivityKeyPrefix = "studymate.activity:"
)

// MinPasswordLength is the shortest password accepted by the reset flow.
const MinPasswordLength = 6

// ActivityKey returns the storage key of the activity record for email.
func ActivityKey(email string) string {
	return ActivityKeyPrefix + email
}
